// Package entity contains domain entities representing core business concepts.
// These entities are pure Go types with no infrastructure dependencies.
package entity

// BoxMode indicates how a box arranges its children.
type BoxMode string

const (
	ModeHorizontal BoxMode = "horizontal" // Children laid out left to right
	ModeVertical   BoxMode = "vertical"   // Children laid out top to bottom
	ModeFloat      BoxMode = "float"      // Root of floating panels
	ModeWindow     BoxMode = "window"     // Root of panels hosted in their own window
	ModeMaximize   BoxMode = "maximize"   // Root holding the maximized panel
)

// IsDockMode reports whether the mode is one of the two docking axes.
func (m BoxMode) IsDockMode() bool {
	return m == ModeHorizontal || m == ModeVertical
}

// DefaultNodeSize is the flex basis assigned to nodes without a valid size.
const DefaultNodeSize = 200

// MaximizedPlaceholderID is the id of the locked panel left in the slot of a maximized panel.
const MaximizedPlaceholderID = "-maximized-placeholder-"

// PlaceholderGroup is the group of the locked panel kept in an empty dockbox.
const PlaceholderGroup = "-placeholder-"

// Node is any element of the layout forest: *Box, *Panel or *Tab.
type Node interface {
	NodeID() string
	Parent() string
	isNode()
}

// Child is a node that can live inside a Box: *Box or *Panel.
type Child interface {
	Node
	NodeSize() float64
	isChild()
}

// Box is a layout container grouping panels and boxes along one axis or mode.
type Box struct {
	ID       string
	Mode     BoxMode
	Children []Child
	Size     float64

	MinWidth   float64
	MinHeight  float64
	WidthFlex  *float64
	HeightFlex *float64

	// ParentID is the id of the owning box; empty for the four roots.
	ParentID string
}

// PanelLock keeps a panel alive when it has no tab and overrides its sizing.
type PanelLock struct {
	MinWidth   float64  `json:"min_width,omitempty"`
	MinHeight  float64  `json:"min_height,omitempty"`
	WidthFlex  *float64 `json:"width_flex,omitempty"`
	HeightFlex *float64 `json:"height_flex,omitempty"`
}

// Panel is a tab container. It is the leaf of the box tree.
type Panel struct {
	ID       string
	Tabs     []*Tab
	ActiveID string
	Group    string
	Size     float64

	// Float/window geometry, meaningful only under a float or window box.
	X, Y, W, H float64
	Z          int

	PanelLock *PanelLock

	MinWidth   float64
	MinHeight  float64
	WidthFlex  *float64
	HeightFlex *float64

	ParentID string
}

// Tab is the leaf content descriptor.
type Tab struct {
	ID       string
	Title    string
	Content  any
	Closable bool
	Cached   bool
	Group    string

	MinWidth  float64
	MinHeight float64

	ParentID string
}

func (b *Box) NodeID() string { return b.ID }
func (b *Box) Parent() string { return b.ParentID }
func (b *Box) NodeSize() float64 { return b.Size }
func (*Box) isNode() {}
func (*Box) isChild() {}
func (p *Panel) NodeID() string { return p.ID }
func (p *Panel) Parent() string { return p.ParentID }
func (p *Panel) NodeSize() float64 { return p.Size }
func (*Panel) isNode() {}
func (*Panel) isChild() {}
func (t *Tab) NodeID() string { return t.ID }
func (t *Tab) Parent() string { return t.ParentID }
func (*Tab) isNode() {}

// Clone returns a shallow copy of the box with its own children slice.
func (b *Box) Clone() *Box {
	nb := *b
	nb.Children = append([]Child(nil), b.Children...)
	return &nb
}

// Clone returns a shallow copy of the panel with its own tabs slice.
func (p *Panel) Clone() *Panel {
	np := *p
	np.Tabs = append([]*Tab(nil), p.Tabs...)
	return &np
}

// Clone returns a shallow copy of the tab.
func (t *Tab) Clone() *Tab {
	nt := *t
	return &nt
}

// IndexOf returns the position of the child with the given id, or -1.
func (b *Box) IndexOf(id string) int {
	for i, c := range b.Children {
		if c.NodeID() == id {
			return i
		}
	}
	return -1
}

// IndexOf returns the position of the tab with the given id, or -1.
func (p *Panel) IndexOf(id string) int {
	for i, t := range p.Tabs {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// ActiveTab returns the currently shown tab, or nil when the panel is empty.
func (p *Panel) ActiveTab() *Tab {
	if i := p.IndexOf(p.ActiveID); i >= 0 {
		return p.Tabs[i]
	}
	return nil
}

// Walk traverses the box depth-first calling fn for each box, panel and tab.
// Returns false if fn stopped the walk.
func (b *Box) Walk(fn func(Node) bool) bool {
	if !fn(b) {
		return false
	}
	for _, child := range b.Children {
		switch c := child.(type) {
		case *Box:
			if !c.Walk(fn) {
				return false
			}
		case *Panel:
			if !c.Walk(fn) {
				return false
			}
		}
	}
	return true
}

// Walk calls fn for the panel and then each of its tabs.
func (p *Panel) Walk(fn func(Node) bool) bool {
	if !fn(p) {
		return false
	}
	for _, t := range p.Tabs {
		if !fn(t) {
			return false
		}
	}
	return true
}

// LayoutData is one revision of the layout forest.
// A LayoutData value and every node reachable from it are treated as immutable
// once built; rewrites produce a new LayoutData sharing untouched subtrees.
type LayoutData struct {
	DockBox   *Box
	FloatBox  *Box
	WindowBox *Box
	MaxBox    *Box

	index map[string]Node
}

// NewLayoutData creates a revision from four roots and indexes it.
// Nil roots are replaced by empty boxes of the matching mode.
func NewLayoutData(dock, float, window, max *Box) *LayoutData {
	if dock == nil {
		dock = &Box{Mode: ModeHorizontal}
	}
	if float == nil {
		float = &Box{Mode: ModeFloat}
	}
	if window == nil {
		window = &Box{Mode: ModeWindow}
	}
	if max == nil {
		max = &Box{Mode: ModeMaximize}
	}
	l := &LayoutData{DockBox: dock, FloatBox: float, WindowBox: window, MaxBox: max}
	l.reindex()
	return l
}

// Roots returns the four trees in search order.
func (l *LayoutData) Roots() []*Box {
	return []*Box{l.DockBox, l.FloatBox, l.WindowBox, l.MaxBox}
}

func (l *LayoutData) reindex() {
	l.index = make(map[string]Node)
	for _, root := range l.Roots() {
		if root == nil {
			continue
		}
		root.Walk(func(n Node) bool {
			if n.NodeID() != "" {
				if _, dup := l.index[n.NodeID()]; !dup {
					l.index[n.NodeID()] = n
				}
			}
			return true
		})
	}
}

// Lookup returns the node with the given id in this revision.
func (l *LayoutData) Lookup(id string) Node {
	if l == nil || id == "" {
		return nil
	}
	if l.index == nil {
		l.reindex()
	}
	return l.index[id]
}

// Contains reports whether this exact node belongs to this revision.
// Nodes from earlier revisions that were replaced are not contained.
func (l *LayoutData) Contains(n Node) bool {
	if n == nil {
		return false
	}
	found := l.Lookup(n.NodeID())
	return found != nil && found == n
}

// ParentBox returns the box owning the given panel or box in this revision.
func (l *LayoutData) ParentBox(n Child) *Box {
	if n == nil || n.Parent() == "" {
		return nil
	}
	box, ok := l.Lookup(n.Parent()).(*Box)
	if !ok || box.IndexOf(n.NodeID()) < 0 {
		return nil
	}
	return box
}

// PanelOf returns the panel owning the given tab in this revision.
func (l *LayoutData) PanelOf(t *Tab) *Panel {
	if t == nil || t.ParentID == "" {
		return nil
	}
	panel, ok := l.Lookup(t.ParentID).(*Panel)
	if !ok || panel.IndexOf(t.ID) < 0 {
		return nil
	}
	return panel
}

// RootOf returns the root box the node lives under, or nil.
func (l *LayoutData) RootOf(n Node) *Box {
	var box *Box
	switch v := n.(type) {
	case *Tab:
		p := l.PanelOf(v)
		if p == nil {
			return nil
		}
		box = l.ParentBox(p)
	case *Panel:
		box = l.ParentBox(v)
	case *Box:
		box = v
	}
	for box != nil && box.ParentID != "" {
		box = l.ParentBox(box)
	}
	return box
}

// Panels returns every panel of a root box in depth-first order.
func Panels(root *Box) []*Panel {
	var panels []*Panel
	if root == nil {
		return panels
	}
	root.Walk(func(n Node) bool {
		if p, ok := n.(*Panel); ok {
			panels = append(panels, p)
		}
		return true
	})
	return panels
}
