package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tabdock/internal/domain/entity"
	"github.com/bnema/tabdock/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/tabdock/internal/logging"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func savedLayout(name string, at time.Time) *entity.SavedLayout {
	x, y, w, h, z := 10.0, 20.0, 300.0, 200.0, 3
	layout := &entity.LayoutBase{
		DockBox: &entity.BoxBase{ID: "root", Mode: entity.ModeHorizontal, Size: 200, Children: []*entity.ChildBase{
			{Panel: &entity.PanelBase{ID: "p1", Size: 200, ActiveID: "t1", Tabs: []*entity.TabBase{{ID: "t1", Group: "editor"}}}},
		}},
		FloatBox: &entity.BoxBase{ID: "float", Mode: entity.ModeFloat, Children: []*entity.ChildBase{
			{Panel: &entity.PanelBase{ID: "f1", Tabs: []*entity.TabBase{{ID: "t2"}}, X: &x, Y: &y, W: &w, H: &h, Z: &z}},
		}},
	}
	return &entity.SavedLayout{Name: name, Layout: layout, PanelCount: layout.CountPanels(), SavedAt: at}
}

func TestLayoutRepository_CRUD(t *testing.T) {
	ctx := testCtx()
	dbPath := filepath.Join(t.TempDir(), "tabdock.db")

	db, err := sqlite.NewConnection(ctx, dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := sqlite.NewLayoutRepository(db)

	older := time.Date(2026, 1, 2, 8, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)
	require.NoError(t, repo.Save(ctx, savedLayout("coding", older)))
	require.NoError(t, repo.Save(ctx, savedLayout("review", newer)))

	got, err := repo.FindByName(ctx, "coding")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.PanelCount)
	assert.True(t, got.SavedAt.Equal(older))
	assert.Equal(t, savedLayout("coding", older).Layout, got.Layout)

	missing, err := repo.FindByName(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "review", all[0].Name)
	assert.Equal(t, "coding", all[1].Name)

	// saving under an existing name replaces the row
	replaced := savedLayout("coding", newer.Add(time.Hour))
	replaced.Layout.FloatBox = nil
	replaced.PanelCount = replaced.Layout.CountPanels()
	require.NoError(t, repo.Save(ctx, replaced))

	got, err = repo.FindByName(ctx, "coding")
	require.NoError(t, err)
	assert.Equal(t, 1, got.PanelCount)
	assert.Nil(t, got.Layout.FloatBox)

	require.NoError(t, repo.Delete(ctx, "coding"))
	require.NoError(t, repo.Delete(ctx, "coding"))
	all, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestLayoutRepository_RejectsEmptyName(t *testing.T) {
	ctx := testCtx()
	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "tabdock.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	err = sqlite.NewLayoutRepository(db).Save(ctx, &entity.SavedLayout{})
	require.Error(t, err)
}

func TestSchemaStatus(t *testing.T) {
	ctx := testCtx()
	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "tabdock.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	t.Run("fresh database", func(t *testing.T) {
		status, err := sqlite.GetSchemaStatus(ctx, db)
		require.NoError(t, err)
		assert.Equal(t, int64(2), status.Version)
		assert.Empty(t, status.Pending)
		assert.Empty(t, status.Formats)
		assert.Equal(t, 1, status.CurrentFormat)
		assert.True(t, status.UpToDate())
	})

	t.Run("counts layouts per format", func(t *testing.T) {
		repo := sqlite.NewLayoutRepository(db)
		require.NoError(t, repo.Save(ctx, savedLayout("current", time.Now())))
		_, err := db.ExecContext(ctx,
			`INSERT INTO saved_layouts (name, layout_json, panel_count, saved_at, format_version) VALUES (?, '{}', 0, ?, 0)`,
			"legacy", time.Now().UTC())
		require.NoError(t, err)

		status, err := sqlite.GetSchemaStatus(ctx, db)
		require.NoError(t, err)
		assert.Equal(t, map[int]int{0: 1, 1: 1}, status.Formats)
		assert.Equal(t, 1, status.Outdated)
		assert.False(t, status.UpToDate())
	})

	t.Run("migrations are idempotent", func(t *testing.T) {
		require.NoError(t, sqlite.RunMigrations(ctx, db))
		status, err := sqlite.GetSchemaStatus(ctx, db)
		require.NoError(t, err)
		assert.Equal(t, int64(2), status.Version)
		assert.Empty(t, status.Pending)
	})
}

func TestNewConnection_EmptyPath(t *testing.T) {
	_, err := sqlite.NewConnection(testCtx(), "")
	require.Error(t, err)
}
