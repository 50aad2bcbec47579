package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/pressly/goose/v3"

	"github.com/bnema/tabdock/internal/logging"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// SchemaStatus describes the layout database schema and the format of the
// layouts stored in it.
type SchemaStatus struct {
	Version int64   `json:"version"`
	Pending []int64 `json:"pending,omitempty"`
	// Formats counts saved layouts per stored format_version.
	Formats map[int]int `json:"formats"`
	// Outdated counts layouts written with an older format than this build.
	Outdated int `json:"outdated"`
	// CurrentFormat is the format version this build writes.
	CurrentFormat int `json:"current_format"`
}

// UpToDate reports whether no migration is pending and every layout uses the
// current format.
func (s *SchemaStatus) UpToDate() bool {
	return len(s.Pending) == 0 && s.Outdated == 0
}

func newMigrationProvider(db *sql.DB) (*goose.Provider, error) {
	fsys, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("create migration provider: %w", err)
	}
	return provider, nil
}

// RunMigrations brings the saved layouts schema up to date.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	log := logging.FromContext(ctx)

	provider, err := newMigrationProvider(db)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply layout schema migrations: %w", err)
	}

	for _, r := range results {
		log.Info().
			Int64("version", r.Source.Version).
			Str("file", filepath.Base(r.Source.Path)).
			Dur("took", r.Duration).
			Msg("layout schema migration applied")
	}
	if len(results) == 0 {
		log.Debug().Msg("layout schema up to date")
	}
	return nil
}

// GetSchemaStatus reports the applied schema version, any pending migrations
// and how many saved layouts predate the current layout format.
func GetSchemaStatus(ctx context.Context, db *sql.DB) (*SchemaStatus, error) {
	provider, err := newMigrationProvider(db)
	if err != nil {
		return nil, err
	}

	migrations, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("read migration status: %w", err)
	}

	status := &SchemaStatus{Formats: map[int]int{}, CurrentFormat: layoutFormatVersion}
	for _, m := range migrations {
		if m.State == goose.StatePending {
			status.Pending = append(status.Pending, m.Source.Version)
			continue
		}
		status.Version = max(status.Version, m.Source.Version)
	}
	// format_version arrives with migration 2
	if status.Version < 2 {
		return status, nil
	}

	rows, err := db.QueryContext(ctx, `
		SELECT format_version, COUNT(*)
		FROM saved_layouts
		GROUP BY format_version
	`)
	if err != nil {
		return nil, fmt.Errorf("count layout formats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var format, count int
		if err := rows.Scan(&format, &count); err != nil {
			return nil, fmt.Errorf("scan layout format: %w", err)
		}
		status.Formats[format] = count
		if format < layoutFormatVersion {
			status.Outdated += count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate layout formats: %w", err)
	}
	return status, nil
}
