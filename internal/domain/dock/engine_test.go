package dock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tabdock/internal/domain/entity"
)

func TestFind_SearchesRootsWithFilter(t *testing.T) {
	l := build(
		box("root", entity.ModeHorizontal, 200,
			panel("a", 100, tab("t1")),
			panel("b", 100, tab("t2")),
		),
		panel("f", 200, tab("t3")),
	)
	win := panel("w", 200, tab("t4"))
	wb := box("window", entity.ModeWindow, 0, win)
	link(wb, "")
	l = entity.NewLayoutData(l.DockBox, l.FloatBox, wb, l.MaxBox)

	assert.Equal(t, "a", Find(l, "a", entity.FilterAnyPanel).NodeID())
	assert.Nil(t, Find(l, "a", entity.FilterAnyTab), "kind filter excludes panels")
	assert.Equal(t, "t3", Find(l, "t3", entity.FilterTab|entity.FilterFloated).NodeID())
	assert.Nil(t, Find(l, "t3", entity.FilterTab|entity.FilterDocked))
	assert.Equal(t, "root", Find(l, "root", entity.FilterAnyBox).NodeID())

	// only in windowbox
	assert.Nil(t, Find(l, "w", entity.FilterDocked|entity.FilterFloated))
	assert.Equal(t, "w", Find(l, "w", entity.FilterWindowed).NodeID())
	assert.Nil(t, Find(l, "missing", entity.FilterAll))
}

func TestRemoveFromLayout_LastTabCollapsesBox(t *testing.T) {
	e := newTestEngine()
	l := build(box("root", entity.ModeVertical, 200,
		box("row", entity.ModeHorizontal, 300,
			panel("a", 100, tab("t1")),
			panel("b", 100, tab("t2")),
		),
		panel("c", 100, tab("t3")),
	))

	got := e.RemoveFromLayout(l, FindTab(l, "t1"))

	require.NotSame(t, l, got)
	assert.Nil(t, Find(got, "a", entity.FilterAll))
	assert.Nil(t, Find(got, "row", entity.FilterAll))
	assert.Equal(t, []string{"b", "c"}, childIDs(got.DockBox))
	b := FindPanel(got, "b")
	assert.Equal(t, 300.0, b.Size)
	assert.Equal(t, "root", b.ParentID)
	requireNormalized(t, got)

	// previous revision untouched
	assert.Equal(t, []string{"row", "c"}, childIDs(l.DockBox))
}

func TestRemoveFromLayout_TabKeepsPanelAndMovesActive(t *testing.T) {
	e := newTestEngine()
	l := build(box("root", entity.ModeHorizontal, 200,
		panel("a", 100, tab("t1"), tab("t2"), tab("t3")),
	))
	a := FindPanel(l, "a")
	np := a.Clone()
	np.ActiveID = "t2"
	l = e.replacePanel(l, a, np)

	got := e.RemoveFromLayout(l, FindTab(l, "t2"))

	a = FindPanel(got, "a")
	assert.Equal(t, []string{"t1", "t3"}, tabIDs(a))
	assert.Equal(t, "t3", a.ActiveID)
}

func TestRemoveFromLayout_StaleNodeIsNoop(t *testing.T) {
	e := newTestEngine()
	l := build(box("root", entity.ModeHorizontal, 200,
		panel("a", 100, tab("t1")),
		panel("b", 100, tab("t2")),
	))
	stale := FindPanel(l, "a")
	next := e.AddTabToPanel(l, tab("t9"), stale, -1)
	require.NotSame(t, l, next)

	assert.Same(t, next, e.RemoveFromLayout(next, stale))
	assert.Same(t, next, e.AddTabToPanel(next, tab("t10"), stale, -1))
	assert.Same(t, next, e.DockPanelToPanel(next, panel("n", 100, tab("tn")), stale, entity.DropRight))
	assert.Same(t, next, e.Maximize(next, stale))
}

func TestAddTabToPanel(t *testing.T) {
	e := newTestEngine()
	l := build(box("root", entity.ModeHorizontal, 200,
		panel("a", 100, tab("t1"), tab("t2")),
	))

	t.Run("tab becomes active at index", func(t *testing.T) {
		got := e.AddTabToPanel(l, tab("tn"), FindPanel(l, "a"), 1)
		a := FindPanel(got, "a")
		assert.Equal(t, []string{"t1", "tn", "t2"}, tabIDs(a))
		assert.Equal(t, "tn", a.ActiveID)
		assert.Equal(t, "a", FindTab(got, "tn").ParentID)
	})

	t.Run("panel source keeps its active tab", func(t *testing.T) {
		src := panel("src", 100, tab("x1"), tab("x2"))
		src.ActiveID = "x1"
		got := e.AddTabToPanel(l, src, FindPanel(l, "a"), 99)
		a := FindPanel(got, "a")
		assert.Equal(t, []string{"t1", "t2", "x1", "x2"}, tabIDs(a))
		assert.Equal(t, "x1", a.ActiveID)
	})

	t.Run("empty source is a noop", func(t *testing.T) {
		assert.Same(t, l, e.AddTabToPanel(l, panel("empty", 100), FindPanel(l, "a"), 0))
	})
}

func TestAddNextToTab(t *testing.T) {
	e := newTestEngine()
	l := build(box("root", entity.ModeHorizontal, 200,
		panel("a", 100, tab("t1"), tab("t2")),
	))

	got := e.AddNextToTab(l, tab("tn"), FindTab(l, "t1"), entity.DropAfterTab)
	assert.Equal(t, []string{"t1", "tn", "t2"}, tabIDs(FindPanel(got, "a")))

	got = e.AddNextToTab(l, tab("tn"), FindTab(l, "t1"), entity.DropBeforeTab)
	assert.Equal(t, []string{"tn", "t1", "t2"}, tabIDs(FindPanel(got, "a")))

	assert.Same(t, l, e.AddNextToTab(l, tab("tn"), FindTab(l, "t1"), entity.DropLeft))
}

func TestConvertToPanel(t *testing.T) {
	e := newTestEngine()
	src := tab("t1")
	src.Group = "editor"

	p := e.ConvertToPanel(src)
	require.NotNil(t, p)
	assert.Equal(t, "gen1", p.ID)
	assert.Equal(t, "editor", p.Group)
	assert.Equal(t, "t1", p.ActiveID)
	assert.Equal(t, "gen1", p.Tabs[0].ParentID)
	assert.Empty(t, src.ParentID, "source tab is not mutated")

	existing := panel("p", 100, tab("x"))
	assert.Same(t, existing, e.ConvertToPanel(existing))
}

func TestDockPanelToPanel_SameAxisSplitsTargetSize(t *testing.T) {
	e := newTestEngine()
	l := build(box("root", entity.ModeHorizontal, 200,
		panel("a", 200, tab("t1")),
		panel("b", 200, tab("t2")),
	))

	got := e.DockPanelToPanel(l, panel("n", 200, tab("tn")), FindPanel(l, "b"), entity.DropRight)

	assert.Equal(t, []string{"a", "b", "n"}, childIDs(got.DockBox))
	assert.Equal(t, 100.0, FindPanel(got, "b").Size)
	assert.Equal(t, 100.0, FindPanel(got, "n").Size)
	assert.Equal(t, 200.0, FindPanel(got, "a").Size)
	requireNormalized(t, got)
}

func TestDockPanelToPanel_PerpendicularWrapsTarget(t *testing.T) {
	e := newTestEngine()
	l := build(box("root", entity.ModeHorizontal, 200,
		panel("a", 200, tab("t1")),
		panel("b", 300, tab("t2")),
	))

	got := e.DockPanelToPanel(l, panel("n", 50, tab("tn")), FindPanel(l, "b"), entity.DropTop)

	assert.Equal(t, []string{"a", "gen1"}, childIDs(got.DockBox))
	wrapper := FindBox(got, "gen1")
	require.NotNil(t, wrapper)
	assert.Equal(t, entity.ModeVertical, wrapper.Mode)
	assert.Equal(t, 300.0, wrapper.Size)
	assert.Equal(t, []string{"n", "b"}, childIDs(wrapper))
	assert.Equal(t, 200.0, FindPanel(got, "n").Size)
	assert.Equal(t, 200.0, FindPanel(got, "b").Size)
	requireNormalized(t, got)
}

func TestDockPanelToPanel_MiddleMergesTabs(t *testing.T) {
	e := newTestEngine()
	l := build(box("root", entity.ModeHorizontal, 200,
		panel("a", 200, tab("t1")),
	))

	got := e.DockPanelToPanel(l, panel("n", 200, tab("tn")), FindPanel(l, "a"), entity.DropMiddle)

	assert.Equal(t, []string{"t1", "tn"}, tabIDs(FindPanel(got, "a")))
	assert.Nil(t, FindPanel(got, "n"))
}

func TestDockPanelToBox(t *testing.T) {
	t.Run("root along its axis", func(t *testing.T) {
		e := newTestEngine()
		l := build(box("root", entity.ModeHorizontal, 200,
			panel("a", 70, tab("t1")),
			panel("b", 70, tab("t2")),
		))
		got := e.DockPanelToBox(l, panel("n", 200, tab("tn")), l.DockBox, entity.DropLeft)
		assert.Equal(t, []string{"n", "a", "b"}, childIDs(got.DockBox))
		assert.InDelta(t, 60.0, FindPanel(got, "n").Size, 1e-9)
	})

	t.Run("root perpendicular wraps root", func(t *testing.T) {
		e := newTestEngine()
		l := build(box("root", entity.ModeHorizontal, 200,
			panel("a", 100, tab("t1")),
			panel("b", 100, tab("t2")),
		))
		got := e.DockPanelToBox(l, panel("n", 200, tab("tn")), l.DockBox, entity.DropBottom)
		assert.Equal(t, "gen1", got.DockBox.ID)
		assert.Equal(t, entity.ModeVertical, got.DockBox.Mode)
		assert.Equal(t, []string{"root", "n"}, childIDs(got.DockBox))
		assert.Equal(t, 280.0, FindBox(got, "root").Size)
		assert.Equal(t, 120.0, FindPanel(got, "n").Size)
		requireNormalized(t, got)
	})

	t.Run("nested box along parent axis", func(t *testing.T) {
		e := newTestEngine()
		l := build(box("root", entity.ModeHorizontal, 200,
			panel("a", 100, tab("t1")),
			box("col", entity.ModeVertical, 100,
				panel("b", 100, tab("t2")),
				panel("c", 100, tab("t3")),
			),
		))
		got := e.DockPanelToBox(l, panel("n", 200, tab("tn")), FindBox(l, "col"), entity.DropRight)
		assert.Equal(t, []string{"a", "col", "n"}, childIDs(got.DockBox))
		assert.InDelta(t, 70.0, FindBox(got, "col").Size, 1e-9)
		assert.InDelta(t, 30.0, FindPanel(got, "n").Size, 1e-9)
	})
}

func TestFloatPanelAndWindow(t *testing.T) {
	e := newTestEngine()
	l := build(box("root", entity.ModeHorizontal, 200,
		panel("a", 100, tab("t1")),
		panel("b", 100, tab("t2")),
	))

	got := e.FloatPanel(l, FindPanel(l, "b"), &entity.Rect{X: 10, Y: 20, W: 300, H: 200})
	f := FindPanel(got, "b")
	require.NotNil(t, f)
	assert.Equal(t, "float", f.ParentID)
	assert.Equal(t, entity.Rect{X: 10, Y: 20, W: 300, H: 200}, entity.Rect{X: f.X, Y: f.Y, W: f.W, H: f.H})
	assert.Equal(t, 1, f.Z)
	assert.Equal(t, []string{"a"}, childIDs(got.DockBox))

	got = e.PanelToWindow(got, FindPanel(got, "a"))
	assert.Equal(t, "window", FindPanel(got, "a").ParentID)
	assert.Nil(t, Find(got, "a", entity.FilterDocked))
}

func TestMaximize_RoundTrip(t *testing.T) {
	e := newTestEngine()
	l := e.FixLayoutData(build(box("root", entity.ModeHorizontal, 200,
		panel("a", 150, tab("t1")),
		panel("b", 250, tab("t2")),
	)), nil, nil)

	maxed := e.Maximize(l, FindPanel(l, "a"))
	assert.Equal(t, []string{"a"}, childIDs(maxed.MaxBox))
	assert.Equal(t, []string{entity.MaximizedPlaceholderID, "b"}, childIDs(maxed.DockBox))
	ph := FindPanel(maxed, entity.MaximizedPlaceholderID)
	require.NotNil(t, ph.PanelLock)
	assert.Equal(t, 150.0, ph.Size)

	restored := e.Maximize(maxed, FindPanel(maxed, "a"))
	assert.Empty(t, restored.MaxBox.Children)
	assert.Equal(t, SaveLayoutData(l, SaveOptions{}), SaveLayoutData(restored, SaveOptions{}))
}

func TestMaximize_TabActivatesAndRemovalDropsPlaceholder(t *testing.T) {
	e := newTestEngine()
	l := build(box("root", entity.ModeHorizontal, 200,
		panel("a", 100, tab("t1"), tab("t2")),
		panel("b", 100, tab("t3")),
	))

	maxed := e.Maximize(l, FindTab(l, "t2"))
	a := FindPanel(maxed, "a")
	assert.Equal(t, "max", a.ParentID)
	assert.Equal(t, "t2", a.ActiveID)

	closed := e.RemoveFromLayout(maxed, a)
	assert.Empty(t, closed.MaxBox.Children)
	assert.Nil(t, FindPanel(closed, entity.MaximizedPlaceholderID))
	assert.Equal(t, []string{"b"}, childIDs(closed.DockBox))
}

func TestMaximize_PlaceholderTakesNoTabs(t *testing.T) {
	e := newTestEngine()
	l := e.FixLayoutData(build(box("root", entity.ModeHorizontal, 200,
		panel("a", 100, tab("t1")),
		panel("b", 100, tab("t2"), tab("t3")),
	)), nil, nil)
	maxed := e.Maximize(l, FindPanel(l, "a"))
	ph := FindPanel(maxed, entity.MaximizedPlaceholderID)
	require.NotNil(t, ph)

	assert.Same(t, maxed, e.AddTabToPanel(maxed, FindTab(maxed, "t3"), ph, -1))
	assert.Same(t, maxed, e.DockMove(maxed, FindTab(maxed, "t3"), ph, entity.DropMiddle, MoveOptions{}))

	// restoring still finds the slot and loses no tab
	restored := e.Maximize(maxed, FindPanel(maxed, "a"))
	assert.Equal(t, []string{"a", "b"}, childIDs(restored.DockBox))
	assert.Equal(t, []string{"t2", "t3"}, tabIDs(FindPanel(restored, "b")))
}

func TestMaximize_WithoutPlaceholderDocksRight(t *testing.T) {
	e := newTestEngine()
	l := build(box("root", entity.ModeHorizontal, 200,
		panel("b", 100, tab("t2")),
	))
	mb := box("max", entity.ModeMaximize, 0, panel("a", 100, tab("t1")))
	link(mb, "")
	l = entity.NewLayoutData(l.DockBox, l.FloatBox, l.WindowBox, mb)

	got := e.Maximize(l, FindPanel(l, "a"))
	assert.Equal(t, []string{"b", "a"}, childIDs(got.DockBox))
	assert.Empty(t, got.MaxBox.Children)
}

func TestMoveToFront(t *testing.T) {
	e := newTestEngine()
	f1 := panel("f1", 100, tab("t1"), tab("t2"))
	f2 := panel("f2", 100, tab("t3"))
	l := build(box("root", entity.ModeHorizontal, 200, panel("a", 100, tab("t0"))), f1, f2)
	l = e.FloatPanel(l, FindPanel(l, "f1"), nil)
	l = e.FloatPanel(l, FindPanel(l, "f2"), nil)
	require.Equal(t, 1, FindPanel(l, "f1").Z)
	require.Equal(t, 2, FindPanel(l, "f2").Z)

	got := e.MoveToFront(l, FindTab(l, "t2"))
	f := FindPanel(got, "f1")
	assert.Equal(t, 3, f.Z)
	assert.Equal(t, "t2", f.ActiveID)

	// already on top and active
	assert.Same(t, got, e.MoveToFront(got, FindTab(got, "t2")))

	// docked panels only get the tab activated
	assert.Same(t, got, e.MoveToFront(got, FindPanel(got, "a")))
}

func TestNextZIndex(t *testing.T) {
	e := newTestEngine()
	assert.Equal(t, 1, e.NextZIndex(0))
	assert.Equal(t, 1, e.NextZIndex(1))
	assert.Equal(t, 2, e.NextZIndex(0))
	assert.Equal(t, 3, e.NextZIndex(1))
	e.reserveZ(10)
	assert.Equal(t, 11, e.NextZIndex(3))
}

func TestResizeBox(t *testing.T) {
	e := newTestEngine()
	l := build(box("root", entity.ModeHorizontal, 200,
		panel("a", 100, tab("t1")),
		panel("b", 100, tab("t2")),
	))

	got := e.ResizeBox(l, l.DockBox, []float64{150, 50})
	assert.Equal(t, 150.0, FindPanel(got, "a").Size)
	assert.Equal(t, 50.0, FindPanel(got, "b").Size)
	assert.Equal(t, 100.0, FindPanel(l, "a").Size)

	assert.Same(t, got, e.ResizeBox(got, got.DockBox, []float64{150, 50}))
}

func TestUpdateTab(t *testing.T) {
	e := newTestEngine()
	l := build(box("root", entity.ModeHorizontal, 200,
		panel("a", 100, tab("t1"), tab("t2")),
	))

	got := e.UpdateTab(l, "t2", &entity.Tab{Title: "renamed"}, true)
	a := FindPanel(got, "a")
	assert.Equal(t, "renamed", FindTab(got, "t2").Title)
	assert.Equal(t, "t2", a.ActiveID)
	assert.Equal(t, []string{"t1", "t2"}, tabIDs(a))

	assert.Same(t, got, e.UpdateTab(got, "missing", tab("x"), false))
}
