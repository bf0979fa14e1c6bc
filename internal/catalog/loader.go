// Package catalog imports ingredient and tag fixtures into the store.
package catalog

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tvules/Foodgram/internal/domain"
	"github.com/tvules/Foodgram/internal/id"
	"github.com/tvules/Foodgram/internal/search"
	"github.com/tvules/Foodgram/internal/store"
)

// ingredientFixture matches the JSON fixture shape:
// [{"name": "sugar", "measurement_unit": "g"}, ...]
type ingredientFixture struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// tagFixture matches the tag fixture shape:
// [{"name": "Breakfast", "color": "#E26C2D"}, ...]
type tagFixture struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// ImportRun summarizes one fixture import.
type ImportRun struct {
	ID       string        `json:"id"`
	Path     string        `json:"path"`
	Created  int           `json:"created"`
	Skipped  int           `json:"skipped"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration"`
}

// Loader reads fixture files and upserts their contents.
// Imports are idempotent: rows that already exist are skipped.
type Loader struct {
	store  *store.Store
	index  *search.SearchIndex
	logger *slog.Logger
}

// NewLoader creates a fixture loader. The search index may be nil, in
// which case imported ingredients are not indexed.
func NewLoader(s *store.Store, index *search.SearchIndex, logger *slog.Logger) *Loader {
	return &Loader{
		store:  s,
		index:  index,
		logger: logger,
	}
}

// LoadFile imports a single fixture file, dispatching on its name and
// extension. Files named tags*.json hold tags; everything else holds
// ingredients, as JSON or CSV.
func (l *Loader) LoadFile(ctx context.Context, path string) (*ImportRun, error) {
	run := &ImportRun{
		ID:   uuid.NewString(),
		Path: path,
	}
	start := time.Now()

	base := strings.ToLower(filepath.Base(path))
	ext := filepath.Ext(base)

	var err error
	switch {
	case strings.HasPrefix(base, "tags") && ext == ".json":
		err = l.loadTags(ctx, path, run)
	case ext == ".json":
		err = l.loadIngredientsJSON(ctx, path, run)
	case ext == ".csv":
		err = l.loadIngredientsCSV(ctx, path, run)
	default:
		return nil, fmt.Errorf("unsupported fixture format: %s", ext)
	}
	if err != nil {
		return nil, err
	}

	run.Duration = time.Since(start)
	l.logger.Info("fixture import finished",
		"run_id", run.ID,
		"path", path,
		"created", run.Created,
		"skipped", run.Skipped,
		"failed", run.Failed,
		"duration", run.Duration,
	)
	return run, nil
}

// LoadDir imports every fixture file in a directory, non-recursively.
func (l *Loader) LoadDir(ctx context.Context, dir string) ([]*ImportRun, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read import dir: %w", err)
	}

	var runs []*ImportRun
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".json" && ext != ".csv" {
			continue
		}

		run, err := l.LoadFile(ctx, filepath.Join(dir, entry.Name()))
		if err != nil {
			l.logger.Error("fixture import failed",
				"path", entry.Name(),
				"error", err,
			)
			continue
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func (l *Loader) loadIngredientsJSON(ctx context.Context, path string, run *ImportRun) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}

	var fixtures []ingredientFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("parse fixture: %w", err)
	}

	for _, f := range fixtures {
		l.importIngredient(ctx, f, run)
	}
	return nil
}

func (l *Loader) loadIngredientsCSV(ctx context.Context, path string, run *ImportRun) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open fixture: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 2

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("parse fixture: %w", err)
		}
		l.importIngredient(ctx, ingredientFixture{
			Name:            strings.TrimSpace(record[0]),
			MeasurementUnit: strings.TrimSpace(record[1]),
		}, run)
	}
	return nil
}

func (l *Loader) importIngredient(ctx context.Context, f ingredientFixture, run *ImportRun) {
	if f.Name == "" || f.MeasurementUnit == "" {
		run.Failed++
		return
	}

	unit, err := l.store.GetMeasurementUnitByName(ctx, f.MeasurementUnit)
	if err == store.ErrNotFound {
		unit = &domain.MeasurementUnit{
			ID:   id.MustGenerate("unit"),
			Name: f.MeasurementUnit,
		}
		if err := l.store.CreateMeasurementUnit(ctx, unit); err != nil && err != store.ErrAlreadyExists {
			l.logger.Warn("failed to create unit", "name", f.MeasurementUnit, "error", err)
			run.Failed++
			return
		}
	} else if err != nil {
		run.Failed++
		return
	}

	if _, err := l.store.GetIngredientByNameAndUnit(ctx, f.Name, unit.ID); err == nil {
		run.Skipped++
		return
	}

	ing := &domain.Ingredient{
		ID:   id.MustGenerate("ing"),
		Name: f.Name,
		Unit: *unit,
	}
	switch err := l.store.CreateIngredient(ctx, ing); err {
	case nil:
		run.Created++
		if l.index != nil {
			if err := l.index.IndexDocument(search.IngredientDocument(ing.ID, ing.Name, ing.Unit.Name)); err != nil {
				l.logger.Warn("failed to index ingredient", "name", ing.Name, "error", err)
			}
		}
	case store.ErrAlreadyExists:
		run.Skipped++
	default:
		l.logger.Warn("failed to create ingredient", "name", f.Name, "error", err)
		run.Failed++
	}
}

func (l *Loader) loadTags(ctx context.Context, path string, run *ImportRun) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}

	var fixtures []tagFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("parse fixture: %w", err)
	}

	for _, f := range fixtures {
		tag := &domain.Tag{
			ID:        id.MustGenerate("tag"),
			Name:      f.Name,
			Color:     f.Color,
			CreatedAt: time.Now(),
		}
		tag.Normalize()
		if err := tag.Validate(); err != nil {
			l.logger.Warn("invalid tag fixture", "name", f.Name, "error", err)
			run.Failed++
			continue
		}

		if _, err := l.store.GetTagBySlug(ctx, tag.Slug); err == nil {
			run.Skipped++
			continue
		}

		switch err := l.store.CreateTag(ctx, tag); err {
		case nil:
			run.Created++
		case store.ErrAlreadyExists:
			run.Skipped++
		default:
			l.logger.Warn("failed to create tag", "name", f.Name, "error", err)
			run.Failed++
		}
	}
	return nil
}
