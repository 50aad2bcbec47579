package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/tabdock/internal/domain/entity"
	"github.com/bnema/tabdock/internal/domain/repository"
	"github.com/bnema/tabdock/internal/logging"
)

// layoutFormatVersion is written with every layout so older rows can be
// migrated when the persisted format changes.
const layoutFormatVersion = 1

const (
	upsertLayoutSQL = `INSERT INTO saved_layouts (name, layout_json, panel_count, saved_at, format_version)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
    layout_json = excluded.layout_json,
    panel_count = excluded.panel_count,
    saved_at = excluded.saved_at,
    format_version = excluded.format_version`
	selectLayoutSQL = `SELECT name, layout_json, panel_count, saved_at FROM saved_layouts WHERE name = ?`
	listLayoutsSQL  = `SELECT name, layout_json, panel_count, saved_at FROM saved_layouts ORDER BY saved_at DESC, name`
	deleteLayoutSQL = `DELETE FROM saved_layouts WHERE name = ?`
)

type layoutRepo struct {
	db *sql.DB
}

// NewLayoutRepository creates a layout repository on an open database.
func NewLayoutRepository(db *sql.DB) repository.LayoutRepository {
	return &layoutRepo{db: db}
}

func (r *layoutRepo) Save(ctx context.Context, layout *entity.SavedLayout) error {
	log := logging.FromContext(ctx)
	if layout == nil || layout.Name == "" {
		return fmt.Errorf("layout name cannot be empty")
	}

	data, err := json.Marshal(layout.Layout)
	if err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}

	log.Debug().Str("layout", layout.Name).Int("bytes", len(data)).Msg("saving layout")

	_, err = r.db.ExecContext(ctx, upsertLayoutSQL,
		layout.Name,
		string(data),
		layout.PanelCount,
		layout.SavedAt.UTC(),
		layoutFormatVersion,
	)
	return err
}

func (r *layoutRepo) FindByName(ctx context.Context, name string) (*entity.SavedLayout, error) {
	row := r.db.QueryRowContext(ctx, selectLayoutSQL, name)
	layout, err := scanLayout(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return layout, nil
}

func (r *layoutRepo) List(ctx context.Context) ([]*entity.SavedLayout, error) {
	rows, err := r.db.QueryContext(ctx, listLayoutsSQL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var layouts []*entity.SavedLayout
	for rows.Next() {
		layout, err := scanLayout(rows)
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, layout)
	}
	return layouts, rows.Err()
}

func (r *layoutRepo) Delete(ctx context.Context, name string) error {
	log := logging.FromContext(ctx)
	log.Debug().Str("layout", name).Msg("deleting layout")
	_, err := r.db.ExecContext(ctx, deleteLayoutSQL, name)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLayout(s scanner) (*entity.SavedLayout, error) {
	var (
		name    string
		data    string
		panels  int
		savedAt time.Time
	)
	if err := s.Scan(&name, &data, &panels, &savedAt); err != nil {
		return nil, err
	}

	layout := &entity.SavedLayout{Name: name, PanelCount: panels, SavedAt: savedAt.UTC()}
	if err := json.Unmarshal([]byte(data), &layout.Layout); err != nil {
		return nil, fmt.Errorf("failed to decode layout %q: %w", name, err)
	}
	return layout, nil
}
