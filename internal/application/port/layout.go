package port

import "github.com/bnema/tabdock/internal/domain/entity"

// LayoutProvider exposes the live layout for background persistence.
type LayoutProvider interface {
	// CurrentLayout returns the persisted form of the current revision.
	CurrentLayout() *entity.LayoutBase
	// LayoutName is the saved-layout name autosaves are written under.
	LayoutName() string
}
