package repository

import (
	"context"

	"github.com/bnema/tabdock/internal/domain/entity"
)

// LayoutRepository persists named layouts.
type LayoutRepository interface {
	// Save inserts or replaces the layout stored under layout.Name.
	Save(ctx context.Context, layout *entity.SavedLayout) error
	// FindByName returns nil, nil when no layout has that name.
	FindByName(ctx context.Context, name string) (*entity.SavedLayout, error)
	// List returns every saved layout, most recently saved first.
	List(ctx context.Context) ([]*entity.SavedLayout, error)
	// Delete removes a layout. Deleting an unknown name is not an error.
	Delete(ctx context.Context, name string) error
}
