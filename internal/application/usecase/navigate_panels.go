package usecase

import (
	"context"

	"github.com/bnema/tabdock/internal/domain/dock"
	"github.com/bnema/tabdock/internal/domain/entity"
	"github.com/bnema/tabdock/internal/logging"
)

// navKeys maps arrow keys and their vim aliases to directions.
var navKeys = map[string]dock.NavDirection{
	"up":         dock.NavUp,
	"ArrowUp":    dock.NavUp,
	"k":          dock.NavUp,
	"down":       dock.NavDown,
	"ArrowDown":  dock.NavDown,
	"j":          dock.NavDown,
	"left":       dock.NavLeft,
	"ArrowLeft":  dock.NavLeft,
	"h":          dock.NavLeft,
	"right":      dock.NavRight,
	"ArrowRight": dock.NavRight,
	"l":          dock.NavRight,
}

// NavDirectionForKey resolves a key name to a navigation direction.
func NavDirectionForKey(key string) (dock.NavDirection, bool) {
	dir, ok := navKeys[key]
	return dir, ok
}

// NavigatePanelsUseCase moves keyboard focus between rendered panels.
type NavigatePanelsUseCase struct{}

// NewNavigatePanelsUseCase creates a new panel navigation use case.
func NewNavigatePanelsUseCase() *NavigatePanelsUseCase {
	return &NavigatePanelsUseCase{}
}

// NavigateInput contains the focus state and rendered geometry.
type NavigateInput struct {
	ActivePanelID string
	Panels        []entity.PanelRect
	Key           string
}

// Navigate returns the panel that should receive focus. ok is false when the
// key is not a navigation key or no panel lies in that direction.
func (uc *NavigatePanelsUseCase) Navigate(ctx context.Context, input NavigateInput) (panelID string, ok bool) {
	log := logging.FromContext(ctx)

	dir, known := NavDirectionForKey(input.Key)
	if !known {
		return "", false
	}

	var from *entity.PanelRect
	candidates := make([]entity.PanelRect, 0, len(input.Panels))
	for i := range input.Panels {
		if input.Panels[i].PanelID == input.ActivePanelID {
			from = &input.Panels[i]
			continue
		}
		candidates = append(candidates, input.Panels[i])
	}
	if from == nil {
		log.Debug().Str("panel_id", input.ActivePanelID).Msg("active panel not rendered")
		return "", false
	}

	panelID, ok = dock.NearestPanel(*from, candidates, dir)
	log.Debug().
		Str("from", input.ActivePanelID).
		Str("direction", string(dir)).
		Str("to", panelID).
		Msg("panel navigation")
	return panelID, ok
}
