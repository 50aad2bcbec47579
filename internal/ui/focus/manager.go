// Package focus tracks the focused panel and moves focus geometrically.
package focus

import (
	"context"

	"github.com/bnema/tabdock/internal/application/usecase"
	"github.com/bnema/tabdock/internal/domain/entity"
	"github.com/bnema/tabdock/internal/logging"
	"github.com/bnema/tabdock/internal/ui/layout"
)

// Manager handles focus state and geometric navigation.
type Manager struct {
	navUC  *usecase.NavigatePanelsUseCase
	active string
}

// NewManager creates a focus manager.
func NewManager(navUC *usecase.NavigatePanelsUseCase) *Manager {
	if navUC == nil {
		navUC = usecase.NewNavigatePanelsUseCase()
	}
	return &Manager{navUC: navUC}
}

// Active returns the focused panel id.
func (m *Manager) Active() string { return m.active }

// SetActive focuses a panel.
func (m *Manager) SetActive(panelID string) { m.active = panelID }

// Sync keeps focus on a drawn panel after the frame changed. When the focused
// panel is gone the topmost drawn panel takes focus.
func (m *Manager) Sync(frame *layout.Frame) {
	if _, ok := frame.Panel(m.active); ok && m.active != entity.MaximizedPlaceholderID {
		return
	}
	m.active = ""
	for i := len(frame.Panels) - 1; i >= 0; i-- {
		if id := frame.Panels[i].Panel.ID; id != entity.MaximizedPlaceholderID {
			m.active = id
			return
		}
	}
}

// NavigateGeometric moves focus to the nearest panel in the direction of key
// and reports whether focus moved.
func (m *Manager) NavigateGeometric(ctx context.Context, frame *layout.Frame, key string) bool {
	rects := frame.PanelRects()
	if len(rects) == 0 {
		return false
	}
	target, ok := m.navUC.Navigate(ctx, usecase.NavigateInput{
		ActivePanelID: m.active,
		Panels:        rects,
		Key:           key,
	})
	if !ok {
		return false
	}
	logging.FromContext(ctx).Debug().Str("from", m.active).Str("to", target).Msg("focus moved")
	m.active = target
	return true
}

// CycleTab returns the tab step positions away from the active tab of p,
// wrapping around. It returns nil when p has fewer than two tabs.
func CycleTab(p *entity.Panel, step int) *entity.Tab {
	n := len(p.Tabs)
	if n < 2 {
		return nil
	}
	idx := p.IndexOf(p.ActiveID)
	if idx < 0 {
		idx = 0
	}
	return p.Tabs[((idx+step)%n+n)%n]
}
