package dock

import (
	"math"

	"github.com/bnema/tabdock/internal/domain/entity"
)

// FixLayoutData is the normalization pass run after every structural change
// and on load. It rebuilds the whole forest so that:
//
//   - the four roots exist with their modes, and every node has a unique id;
//   - sizes are non-negative numbers;
//   - tabs are (re)loaded through loadTab when it is set, dropping unresolved ones;
//   - panel groups, flex and minimum sizes are resolved, and boxes aggregate
//     the minimum sizes of their children;
//   - empty boxes and empty unlocked panels are gone, single-child boxes are
//     collapsed into their parent, and the dockbox root is unwrapped;
//   - an empty dockbox holds a locked placeholder panel;
//   - float and window boxes hold panels only and maxbox holds at most one.
//
// Running it twice yields the same structure.
func (e *Engine) FixLayoutData(l *entity.LayoutData, groups map[string]entity.TabGroup, loadTab LoadTabFunc) *entity.LayoutData {
	if l == nil {
		l = entity.NewLayoutData(nil, nil, nil, nil)
	}
	n := &normalizer{
		e:       e,
		groups:  groups,
		loadTab: loadTab,
		seen:    make(map[string]struct{}),
	}

	dock := n.fixRoot(l.DockBox)
	float := n.fixFlat(l.FloatBox, entity.ModeFloat)
	window := n.fixFlat(l.WindowBox, entity.ModeWindow)
	maxBox := n.fixFlat(l.MaxBox, entity.ModeMaximize)
	if len(maxBox.Children) > 1 {
		maxBox.Children = maxBox.Children[:1]
	}
	return entity.NewLayoutData(dock, float, window, maxBox)
}

type normalizer struct {
	e       *Engine
	groups  map[string]entity.TabGroup
	loadTab LoadTabFunc
	seen    map[string]struct{}
}

// id returns a unique id, generating one for empty or duplicate ids.
func (n *normalizer) id(id string) string {
	for {
		if _, dup := n.seen[id]; id != "" && !dup {
			n.seen[id] = struct{}{}
			return id
		}
		id = n.e.newID()
	}
}

func fixSize(size float64) float64 {
	if !(size >= 0) || math.IsInf(size, 0) {
		return entity.DefaultNodeSize
	}
	return size
}

func (n *normalizer) fixRoot(src *entity.Box) *entity.Box {
	if src == nil {
		src = &entity.Box{Mode: entity.ModeHorizontal}
	}
	dock := n.fixBox(src, "", true)

	for len(dock.Children) == 1 {
		sub, ok := dock.Children[0].(*entity.Box)
		if !ok {
			break
		}
		dock = sub.Clone()
		dock.ParentID = ""
	}

	if len(dock.Children) == 0 {
		placeholder := n.fixPanel(&entity.Panel{
			Group:     entity.PlaceholderGroup,
			Size:      entity.DefaultNodeSize,
			PanelLock: &entity.PanelLock{},
		}, dock.ID)
		dock.Children = []entity.Child{placeholder}
		n.aggregate(dock)
	}
	return dock
}

func (n *normalizer) fixBox(src *entity.Box, parentID string, root bool) *entity.Box {
	b := &entity.Box{
		ID:       n.id(src.ID),
		Mode:     src.Mode,
		Size:     fixSize(src.Size),
		ParentID: parentID,
	}
	if !b.Mode.IsDockMode() {
		b.Mode = entity.ModeHorizontal
	}

	for _, child := range src.Children {
		switch c := child.(type) {
		case *entity.Box:
			fc := n.fixBox(c, b.ID, false)
			switch len(fc.Children) {
			case 0:
			case 1:
				sub := fc.Children[0]
				if sb, ok := sub.(*entity.Box); ok && sb.Mode == b.Mode {
					for _, gc := range scaleChildren(sb.Children, fc.Size) {
						b.Children = append(b.Children, adopt(gc, b.ID))
					}
					continue
				}
				b.Children = append(b.Children, adopt(withSize(sub, fc.Size), b.ID))
			default:
				b.Children = append(b.Children, fc)
			}
		case *entity.Panel:
			if fp := n.fixPanel(c, b.ID); fp != nil {
				b.Children = append(b.Children, fp)
			}
		}
	}

	if len(b.Children) > 1 || !root {
		kept := b.Children[:0]
		for _, child := range b.Children {
			if p, ok := child.(*entity.Panel); ok && p.Group == entity.PlaceholderGroup && len(p.Tabs) == 0 &&
				p.ID != entity.MaximizedPlaceholderID {
				continue
			}
			kept = append(kept, child)
		}
		b.Children = kept
	}

	n.aggregate(b)
	return b
}

// fixFlat normalizes a float, window or maximize root: every panel found under
// it becomes a direct child.
func (n *normalizer) fixFlat(src *entity.Box, mode entity.BoxMode) *entity.Box {
	if src == nil {
		src = &entity.Box{}
	}
	b := &entity.Box{ID: n.id(src.ID), Mode: mode, Size: fixSize(src.Size)}
	for _, child := range src.Children {
		var panels []*entity.Panel
		switch c := child.(type) {
		case *entity.Panel:
			panels = []*entity.Panel{c}
		case *entity.Box:
			panels = entity.Panels(c)
		}
		for _, p := range panels {
			if fp := n.fixPanel(p, b.ID); fp != nil {
				b.Children = append(b.Children, fp)
			}
		}
	}
	return b
}

// fixPanel returns the normalized panel, or nil when it has to be dropped.
func (n *normalizer) fixPanel(src *entity.Panel, parentID string) *entity.Panel {
	p := src.Clone()
	p.ID = n.id(src.ID)
	p.ParentID = parentID
	p.Size = fixSize(src.Size)
	if src.PanelLock != nil {
		lock := *src.PanelLock
		p.PanelLock = &lock
	}

	p.Tabs = p.Tabs[:0]
	for _, t := range src.Tabs {
		loaded := t
		if n.loadTab != nil {
			loaded = n.loadTab(&entity.TabBase{ID: t.ID, Group: t.Group})
			if loaded == nil {
				continue
			}
		}
		nt := loaded.Clone()
		nt.ID = n.id(nt.ID)
		nt.ParentID = p.ID
		p.Tabs = append(p.Tabs, nt)
	}

	if p.Group == "" && len(p.Tabs) > 0 {
		p.Group = p.Tabs[0].Group
	}

	p.MinWidth, p.MinHeight = 0, 0
	p.WidthFlex, p.HeightFlex = nil, nil
	if g, ok := n.groups[p.Group]; ok {
		p.WidthFlex, p.HeightFlex = g.WidthFlex, g.HeightFlex
	}
	for _, t := range p.Tabs {
		p.MinWidth = math.Max(p.MinWidth, t.MinWidth)
		p.MinHeight = math.Max(p.MinHeight, t.MinHeight)
	}
	if lock := p.PanelLock; lock != nil {
		p.MinWidth = math.Max(p.MinWidth, lock.MinWidth)
		p.MinHeight = math.Max(p.MinHeight, lock.MinHeight)
		if lock.WidthFlex != nil {
			p.WidthFlex = lock.WidthFlex
		}
		if lock.HeightFlex != nil {
			p.HeightFlex = lock.HeightFlex
		}
	}

	if p.IndexOf(p.ActiveID) < 0 {
		p.ActiveID = ""
		if len(p.Tabs) > 0 {
			p.ActiveID = p.Tabs[0].ID
		}
	}

	if len(p.Tabs) == 0 && p.PanelLock == nil {
		return nil
	}
	n.e.reserveZ(p.Z)
	return p
}

// aggregate computes a box's minimum sizes and flex from its children.
// Along the box axis minimums add up, plus one divider per gap; across it the
// largest minimum wins.
func (n *normalizer) aggregate(b *entity.Box) {
	b.MinWidth, b.MinHeight = 0, 0
	b.WidthFlex, b.HeightFlex = nil, nil
	for _, child := range b.Children {
		minW, minH, wf, hf := sizing(child)
		if b.Mode == entity.ModeVertical {
			b.MinWidth = math.Max(b.MinWidth, minW)
			b.MinHeight += minH
			b.WidthFlex = maxFlex(b.WidthFlex, wf)
			b.HeightFlex = mergeFlex(b.HeightFlex, hf)
		} else {
			b.MinWidth += minW
			b.MinHeight = math.Max(b.MinHeight, minH)
			b.WidthFlex = mergeFlex(b.WidthFlex, wf)
			b.HeightFlex = maxFlex(b.HeightFlex, hf)
		}
	}
	if gaps := len(b.Children) - 1; gaps > 0 {
		divider := float64(gaps) * n.e.opts.DividerSize
		if b.Mode == entity.ModeVertical {
			b.MinHeight += divider
		} else {
			b.MinWidth += divider
		}
	}
}

func sizing(child entity.Child) (minW, minH float64, wf, hf *float64) {
	switch c := child.(type) {
	case *entity.Box:
		return c.MinWidth, c.MinHeight, c.WidthFlex, c.HeightFlex
	case *entity.Panel:
		return c.MinWidth, c.MinHeight, c.WidthFlex, c.HeightFlex
	}
	return 0, 0, nil, nil
}

func maxFlex(current, next *float64) *float64 {
	if next == nil {
		return current
	}
	if current == nil || *next > *current {
		v := *next
		return &v
	}
	return current
}

// mergeFlex combines flex values along an axis: values on both sides of 1 meet at 1.
func mergeFlex(current, next *float64) *float64 {
	if next == nil {
		return current
	}
	if current == nil {
		v := *next
		return &v
	}
	c, nx := *current, *next
	var v float64
	switch {
	case c == nx:
		v = nx
	case c >= 1:
		if nx <= 1 {
			v = 1
		} else {
			v = math.Min(c, nx)
		}
	default:
		if nx >= 1 {
			v = 1
		} else {
			v = math.Max(c, nx)
		}
	}
	return &v
}
