package dock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tabdock/internal/domain/entity"
)

func twoPanels(e *Engine) *entity.LayoutData {
	return e.FixLayoutData(build(box("root", entity.ModeHorizontal, 200,
		panel("a", 200, tab("t1"), tab("t2")),
		panel("b", 200, tab("t3")),
	)), nil, nil)
}

func TestDockMove_TabToPanelEdge(t *testing.T) {
	e := newTestEngine()
	l := twoPanels(e)

	got := e.DockMove(l, FindTab(l, "t2"), FindPanel(l, "b"), entity.DropRight, MoveOptions{})

	require.NotSame(t, l, got)
	require.Len(t, got.DockBox.Children, 3)
	created := got.DockBox.Children[2].(*entity.Panel)
	assert.Equal(t, []string{"t2"}, tabIDs(created))
	assert.Equal(t, 100.0, created.Size)
	assert.Equal(t, []string{"t1"}, tabIDs(FindPanel(got, "a")))
	requireNormalized(t, got)
}

func TestDockMove_FloatWithoutRectIsCentered(t *testing.T) {
	e := newTestEngine()
	l := twoPanels(e)

	got := e.DockMove(l, FindTab(l, "t2"), nil, entity.DropFloat, MoveOptions{
		Container: entity.Rect{W: 900, H: 600},
	})

	require.Len(t, got.FloatBox.Children, 1)
	f := got.FloatBox.Children[0].(*entity.Panel)
	assert.Equal(t, []string{"t2"}, tabIDs(f))
	assert.Equal(t, 300.0, f.W)
	assert.Equal(t, 200.0, f.H)
	assert.Equal(t, 300.0, f.X)
	assert.Equal(t, 200.0, f.Y)
	assert.Equal(t, 1, f.Z)
}

func TestDockMove_FloatWithRectUsesGroupBounds(t *testing.T) {
	e := newTestEngine()
	l := twoPanels(e)
	groups := map[string]entity.TabGroup{"": {PreferredFloatWidth: [2]float64{0, 250}}}

	got := e.DockMove(l, FindPanel(l, "b"), nil, entity.DropFloat, MoveOptions{
		FloatRect: &entity.Rect{X: 5, Y: 6, W: 400, H: 300},
		Groups:    groups,
	})

	f := FindPanel(got, "b")
	require.NotNil(t, f)
	assert.Equal(t, "float", f.ParentID)
	assert.Equal(t, 250.0, f.W)
	assert.Equal(t, 300.0, f.H)
}

func TestDockMove_OntoOwnPanelIsNoop(t *testing.T) {
	e := newTestEngine()
	l := twoPanels(e)

	assert.Same(t, l, e.DockMove(l, FindTab(l, "t3"), FindPanel(l, "b"), entity.DropMiddle, MoveOptions{}))
	assert.Same(t, l, e.DockMove(l, FindPanel(l, "a"), FindPanel(l, "a"), entity.DropLeft, MoveOptions{}))
}

func TestDockMove_BeforeTabAndRemove(t *testing.T) {
	e := newTestEngine()
	l := twoPanels(e)

	got := e.DockMove(l, FindTab(l, "t3"), FindTab(l, "t1"), entity.DropBeforeTab, MoveOptions{})
	assert.Equal(t, []string{"t3", "t1", "t2"}, tabIDs(FindPanel(got, "a")))
	assert.Nil(t, FindPanel(got, "b"))

	removed := e.DockMove(got, FindTab(got, "t1"), nil, entity.DropRemove, MoveOptions{})
	assert.Nil(t, FindTab(removed, "t1"))
}

func TestDockMove_MaximizeAndNewWindow(t *testing.T) {
	e := newTestEngine()
	l := twoPanels(e)

	maxed := e.DockMove(l, FindPanel(l, "a"), nil, entity.DropMaximize, MoveOptions{})
	assert.Equal(t, []string{"a"}, childIDs(maxed.MaxBox))
	requireNormalized(t, maxed)

	windowed := e.DockMove(l, FindPanel(l, "b"), nil, entity.DropNewWindow, MoveOptions{})
	assert.Equal(t, []string{"b"}, childIDs(windowed.WindowBox))
	assert.Equal(t, []string{"a"}, childIDs(windowed.DockBox))
}

func TestDockMove_ExternalTab(t *testing.T) {
	e := newTestEngine()
	l := twoPanels(e)

	got := e.DockMove(l, tab("new"), FindPanel(l, "b"), entity.DropMiddle, MoveOptions{})

	assert.Equal(t, []string{"t3", "new"}, tabIDs(FindPanel(got, "b")))
	assert.Equal(t, "new", FindPanel(got, "b").ActiveID)
}

func TestDragPayload(t *testing.T) {
	src := tab("t1")
	fields := DragPayload{Tab: src, PanelSize: [2]float64{10, 20}, TabGroup: "g"}.Fields()

	got, ok := PayloadFrom(func(field string) any { return fields[field] })

	require.True(t, ok)
	assert.Same(t, src, got.Tab)
	assert.Equal(t, [2]float64{10, 20}, got.PanelSize)
	assert.Equal(t, "g", got.TabGroup)
	assert.Equal(t, 1, got.TabCount())

	_, ok = PayloadFrom(func(string) any { return nil })
	assert.False(t, ok)
}
