// Package sqlite provides SQLite implementations of domain repositories.
//
// # Lazy repositories
//
// The lazy wrappers defer opening the database until a repository method is
// first called. CLI commands that never touch saved layouts (schema, config,
// normalize) therefore never pay for the WASM compilation and migrations.
package sqlite

import (
	"context"
	"sync"

	"github.com/bnema/tabdock/internal/application/port"
	"github.com/bnema/tabdock/internal/domain/entity"
	"github.com/bnema/tabdock/internal/domain/repository"
)

// LazyLayoutRepository wraps a layout repository with lazy database initialization.
type LazyLayoutRepository struct {
	provider port.DatabaseProvider
	repo     repository.LayoutRepository
	once     sync.Once
	initErr  error
}

// NewLazyLayoutRepository creates a lazy-loading layout repository.
func NewLazyLayoutRepository(provider port.DatabaseProvider) repository.LayoutRepository {
	return &LazyLayoutRepository{provider: provider}
}

func (r *LazyLayoutRepository) init(ctx context.Context) error {
	r.once.Do(func() {
		db, err := r.provider.DB(ctx)
		if err != nil {
			r.initErr = err
			return
		}
		r.repo = NewLayoutRepository(db)
	})
	return r.initErr
}

func (r *LazyLayoutRepository) Save(ctx context.Context, layout *entity.SavedLayout) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Save(ctx, layout)
}

func (r *LazyLayoutRepository) FindByName(ctx context.Context, name string) (*entity.SavedLayout, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.FindByName(ctx, name)
}

func (r *LazyLayoutRepository) List(ctx context.Context) ([]*entity.SavedLayout, error) {
	if err := r.init(ctx); err != nil {
		return nil, err
	}
	return r.repo.List(ctx)
}

func (r *LazyLayoutRepository) Delete(ctx context.Context, name string) error {
	if err := r.init(ctx); err != nil {
		return err
	}
	return r.repo.Delete(ctx, name)
}
