package usecase

import (
	"context"

	"github.com/bnema/tabdock/internal/domain/dock"
	"github.com/bnema/tabdock/internal/domain/entity"
	"github.com/bnema/tabdock/internal/logging"
)

// NormalizeLayout runs a persisted layout through the engine's normalization
// without any tab content: empty panels are dropped, single-child boxes are
// collapsed and duplicate ids are regenerated. Tab and panel extras survive
// as long as their ids do. A nil engine uses the default options.
func NormalizeLayout(ctx context.Context, engine *dock.Engine, base *entity.LayoutBase, groups map[string]entity.TabGroup) (*entity.LayoutBase, error) {
	if base == nil || base.DockBox == nil {
		return nil, ErrEmptyLayout
	}
	if engine == nil {
		engine = dock.NewEngine(nil, dock.DefaultOptions())
	}

	tabExtras := make(map[string]map[string]any)
	panelExtras := make(map[string]map[string]any)
	l := engine.LoadLayoutData(base, dock.LoadOptions{
		LoadTab: func(saved *entity.TabBase) *entity.Tab {
			if saved.ID == "" {
				return nil
			}
			if saved.Extra != nil {
				tabExtras[saved.ID] = saved.Extra
			}
			return &entity.Tab{ID: saved.ID, Group: saved.Group}
		},
		AfterPanelLoaded: func(saved *entity.PanelBase, panel *entity.Panel) {
			if saved.Extra != nil {
				panelExtras[panel.ID] = saved.Extra
			}
		},
		Groups: groups,
	})

	out := dock.SaveLayoutData(l, dock.SaveOptions{
		SaveTab: func(tab *entity.Tab) *entity.TabBase {
			return &entity.TabBase{ID: tab.ID, Group: tab.Group, Extra: tabExtras[tab.ID]}
		},
		AfterPanelSaved: func(saved *entity.PanelBase, panel *entity.Panel) {
			saved.Extra = panelExtras[panel.ID]
		},
	})

	logging.FromContext(ctx).Debug().
		Int("panels_in", base.CountPanels()).
		Int("panels_out", out.CountPanels()).
		Msg("layout normalized")
	return out, nil
}
