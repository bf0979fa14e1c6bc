package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/tvules/Foodgram/internal/domain"
)

// CreateFollow records that follower subscribes to followee.
// Returns ErrAlreadyExists on a duplicate pair and ErrInvalidReference
// when either user is missing or the pair is a self-follow.
func (s *Store) CreateFollow(ctx context.Context, followerID, followeeID string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO follows (follower_id, followee_id, created_at) VALUES (?, ?, ?)`,
		followerID, followeeID, formatTime(time.Now()))
	if err != nil {
		if isUniqueViolation(err, "") {
			return ErrAlreadyExists
		}
		if isForeignKeyViolation(err) {
			return ErrInvalidReference
		}
		return err
	}
	return nil
}

// DeleteFollow removes the subscription.
// Returns ErrNotFound if the pair does not exist.
func (s *Store) DeleteFollow(ctx context.Context, followerID, followeeID string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = ? AND followee_id = ?`,
		followerID, followeeID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// FollowExists reports whether follower subscribes to followee.
func (s *Store) FollowExists(ctx context.Context, followerID, followeeID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM follows WHERE follower_id = ? AND followee_id = ?`,
		followerID, followeeID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListFollowees returns a page of users the follower subscribes to,
// most recently followed first, with the total count.
func (s *Store) ListFollowees(ctx context.Context, followerID string, page Page) ([]*domain.User, int, error) {
	page.Normalize()

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM follows WHERE follower_id = ?`, followerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.created_at, u.updated_at, u.email, u.username, u.first_name, u.last_name, u.password_hash
		FROM follows f
		JOIN users u ON u.id = f.followee_id
		WHERE f.follower_id = ?
		ORDER BY f.created_at DESC, u.id DESC
		LIMIT ? OFFSET ?`, followerID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
