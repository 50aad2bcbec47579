package dock

import "github.com/bnema/tabdock/internal/domain/entity"

// LoadTabFunc resolves a saved tab into a full tab with its content.
// Returning nil drops the tab.
type LoadTabFunc func(saved *entity.TabBase) *entity.Tab

// SaveTabFunc reduces a tab to what is persisted.
type SaveTabFunc func(tab *entity.Tab) *entity.TabBase

// AfterPanelSavedFunc lets the host add fields to a saved panel.
type AfterPanelSavedFunc func(saved *entity.PanelBase, panel *entity.Panel)

// AfterPanelLoadedFunc lets the host restore its fields onto a loaded panel.
type AfterPanelLoadedFunc func(saved *entity.PanelBase, panel *entity.Panel)

// SaveOptions configures SaveLayoutData.
type SaveOptions struct {
	SaveTab         SaveTabFunc
	AfterPanelSaved AfterPanelSavedFunc
}

// LoadOptions configures LoadLayoutData.
// Tabs are resolved through LoadTab, or by id from DefaultLayout when LoadTab is nil.
type LoadOptions struct {
	LoadTab          LoadTabFunc
	DefaultLayout    *entity.LayoutData
	AfterPanelLoaded AfterPanelLoadedFunc
	Groups           map[string]entity.TabGroup
}

// SaveLayoutData converts a revision into its persisted form.
// Float and window panels keep their geometry.
func SaveLayoutData(l *entity.LayoutData, opts SaveOptions) *entity.LayoutBase {
	if l == nil {
		return nil
	}
	saveTab := opts.SaveTab
	if saveTab == nil {
		saveTab = func(t *entity.Tab) *entity.TabBase {
			return &entity.TabBase{ID: t.ID, Group: t.Group}
		}
	}
	s := saver{saveTab: saveTab, after: opts.AfterPanelSaved}
	return &entity.LayoutBase{
		DockBox:   s.box(l.DockBox, false),
		FloatBox:  s.box(l.FloatBox, true),
		WindowBox: s.box(l.WindowBox, true),
		MaxBox:    s.box(l.MaxBox, false),
	}
}

type saver struct {
	saveTab SaveTabFunc
	after   AfterPanelSavedFunc
}

func (s saver) box(b *entity.Box, geometry bool) *entity.BoxBase {
	if b == nil {
		return nil
	}
	saved := &entity.BoxBase{
		ID:       b.ID,
		Mode:     b.Mode,
		Size:     b.Size,
		Children: make([]*entity.ChildBase, 0, len(b.Children)),
	}
	for _, child := range b.Children {
		switch c := child.(type) {
		case *entity.Box:
			saved.Children = append(saved.Children, &entity.ChildBase{Box: s.box(c, geometry)})
		case *entity.Panel:
			saved.Children = append(saved.Children, &entity.ChildBase{Panel: s.panel(c, geometry)})
		}
	}
	return saved
}

func (s saver) panel(p *entity.Panel, geometry bool) *entity.PanelBase {
	saved := &entity.PanelBase{
		ID:       p.ID,
		Size:     p.Size,
		Group:    p.Group,
		ActiveID: p.ActiveID,
		Tabs:     make([]*entity.TabBase, 0, len(p.Tabs)),
	}
	for _, t := range p.Tabs {
		if tb := s.saveTab(t); tb != nil {
			saved.Tabs = append(saved.Tabs, tb)
		}
	}
	if p.PanelLock != nil {
		lock := *p.PanelLock
		saved.PanelLock = &lock
	}
	if geometry {
		x, y, w, h, z := p.X, p.Y, p.W, p.H, p.Z
		saved.X, saved.Y, saved.W, saved.H, saved.Z = &x, &y, &w, &h, &z
	}
	if s.after != nil {
		s.after(saved, p)
	}
	return saved
}

// LoadLayoutData rebuilds a normalized revision from its persisted form.
// A nil base yields the normalized default layout.
func (e *Engine) LoadLayoutData(base *entity.LayoutBase, opts LoadOptions) *entity.LayoutData {
	if base == nil {
		return e.FixLayoutData(opts.DefaultLayout, opts.Groups, nil)
	}
	loadTab := opts.LoadTab
	if loadTab == nil {
		def := opts.DefaultLayout
		loadTab = func(saved *entity.TabBase) *entity.Tab {
			return FindTab(def, saved.ID)
		}
	}
	ld := loader{loadTab: loadTab, after: opts.AfterPanelLoaded}
	l := entity.NewLayoutData(
		ld.box(base.DockBox, entity.ModeHorizontal, ""),
		ld.box(base.FloatBox, entity.ModeFloat, ""),
		ld.box(base.WindowBox, entity.ModeWindow, ""),
		ld.box(base.MaxBox, entity.ModeMaximize, ""),
	)
	return e.FixLayoutData(l, opts.Groups, nil)
}

type loader struct {
	loadTab LoadTabFunc
	after   AfterPanelLoadedFunc
}

func (ld loader) box(saved *entity.BoxBase, fallback entity.BoxMode, parentID string) *entity.Box {
	if saved == nil {
		return nil
	}
	b := &entity.Box{ID: saved.ID, Mode: saved.Mode, Size: saved.Size, ParentID: parentID}
	if b.Mode == "" {
		b.Mode = fallback
	}
	for _, child := range saved.Children {
		switch {
		case child == nil:
		case child.Box != nil:
			b.Children = append(b.Children, ld.box(child.Box, entity.ModeHorizontal, b.ID))
		case child.Panel != nil:
			b.Children = append(b.Children, ld.panel(child.Panel, b.ID))
		}
	}
	return b
}

func (ld loader) panel(saved *entity.PanelBase, parentID string) *entity.Panel {
	p := &entity.Panel{
		ID:       saved.ID,
		Size:     saved.Size,
		Group:    saved.Group,
		ActiveID: saved.ActiveID,
		ParentID: parentID,
	}
	switch {
	case saved.PanelLock != nil:
		lock := *saved.PanelLock
		p.PanelLock = &lock
	case saved.ID == entity.MaximizedPlaceholderID:
		// layouts saved without locks still keep the maximize slot
		p.PanelLock = &entity.PanelLock{}
	}
	if saved.X != nil {
		p.X = *saved.X
	}
	if saved.Y != nil {
		p.Y = *saved.Y
	}
	if saved.W != nil {
		p.W = *saved.W
	}
	if saved.H != nil {
		p.H = *saved.H
	}
	if saved.Z != nil {
		p.Z = *saved.Z
	}
	for _, tb := range saved.Tabs {
		if tb == nil {
			continue
		}
		loaded := ld.loadTab(tb)
		if loaded == nil {
			continue
		}
		t := loaded.Clone()
		t.ParentID = p.ID
		p.Tabs = append(p.Tabs, t)
	}
	if ld.after != nil {
		ld.after(saved, p)
	}
	return p
}
