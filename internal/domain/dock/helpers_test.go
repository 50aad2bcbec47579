package dock

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bnema/tabdock/internal/domain/entity"
)

func seqIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("gen%d", n)
	}
}

func newTestEngine() *Engine {
	return NewEngine(seqIDs(), DefaultOptions())
}

func tab(id string) *entity.Tab {
	return &entity.Tab{ID: id, Title: id}
}

func panel(id string, size float64, tabs ...*entity.Tab) *entity.Panel {
	p := &entity.Panel{ID: id, Size: size, Tabs: tabs}
	if len(tabs) > 0 {
		p.ActiveID = tabs[0].ID
	}
	return p
}

func box(id string, mode entity.BoxMode, size float64, children ...entity.Child) *entity.Box {
	return &entity.Box{ID: id, Mode: mode, Size: size, Children: children}
}

// build links parent ids and wraps the trees into a revision.
func build(dock *entity.Box, floats ...*entity.Panel) *entity.LayoutData {
	link(dock, "")
	fb := box("float", entity.ModeFloat, 0)
	for _, p := range floats {
		fb.Children = append(fb.Children, p)
	}
	link(fb, "")
	return entity.NewLayoutData(dock, fb,
		box("window", entity.ModeWindow, 0),
		box("max", entity.ModeMaximize, 0))
}

func link(b *entity.Box, parentID string) {
	b.ParentID = parentID
	for _, child := range b.Children {
		switch c := child.(type) {
		case *entity.Box:
			link(c, b.ID)
		case *entity.Panel:
			c.ParentID = b.ID
			for _, t := range c.Tabs {
				t.ParentID = c.ID
			}
		}
	}
}

func childIDs(b *entity.Box) []string {
	ids := make([]string, 0, len(b.Children))
	for _, c := range b.Children {
		ids = append(ids, c.NodeID())
	}
	return ids
}

func tabIDs(p *entity.Panel) []string {
	ids := make([]string, 0, len(p.Tabs))
	for _, t := range p.Tabs {
		ids = append(ids, t.ID)
	}
	return ids
}

// requireNormalized checks the structural invariants every normalized revision holds.
func requireNormalized(t *testing.T, l *entity.LayoutData) {
	t.Helper()
	seen := map[string]bool{}
	require.True(t, l.DockBox.Mode.IsDockMode(), "dockbox mode")
	require.Equal(t, entity.ModeFloat, l.FloatBox.Mode)
	require.Equal(t, entity.ModeWindow, l.WindowBox.Mode)
	require.Equal(t, entity.ModeMaximize, l.MaxBox.Mode)
	require.LessOrEqual(t, len(l.MaxBox.Children), 1, "maxbox holds at most one panel")

	for _, root := range l.Roots() {
		require.Empty(t, root.ParentID)
		root.Walk(func(n entity.Node) bool {
			require.NotEmpty(t, n.NodeID())
			require.False(t, seen[n.NodeID()], "duplicate id %s", n.NodeID())
			seen[n.NodeID()] = true

			switch v := n.(type) {
			case *entity.Box:
				if v.ParentID != "" {
					require.GreaterOrEqual(t, len(v.Children), 2, "box %s", v.ID)
				}
				if !v.Mode.IsDockMode() {
					for _, c := range v.Children {
						require.IsType(t, &entity.Panel{}, c, "root %s holds panels only", v.ID)
					}
				}
				for _, c := range v.Children {
					require.Equal(t, v.ID, c.Parent(), "parent of %s", c.NodeID())
					require.GreaterOrEqual(t, c.NodeSize(), 0.0)
				}
			case *entity.Panel:
				if len(v.Tabs) == 0 {
					require.NotNil(t, v.PanelLock, "empty panel %s must be locked", v.ID)
				} else {
					require.GreaterOrEqual(t, v.IndexOf(v.ActiveID), 0, "active tab of %s", v.ID)
				}
				for _, tb := range v.Tabs {
					require.Equal(t, v.ID, tb.ParentID)
				}
			}
			return true
		})
	}
}
