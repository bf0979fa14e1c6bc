// Package domain defines the core entities of the recipe catalog.
package domain

import "time"

// User is a registered account.
type User struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
}

// Touch updates the modification timestamp.
func (u *User) Touch() {
	u.UpdatedAt = time.Now()
}

// UserProfile is a user as seen by another user.
type UserProfile struct {
	User
	IsSubscribed bool `json:"is_subscribed"`
}
