package entity

import "time"

// LayoutBase is the persisted form of a layout: ids, sizes, modes, groups and
// float geometry, with no tab content. Content is re-attached on load by a
// host supplied tab loader.
type LayoutBase struct {
	DockBox   *BoxBase `json:"dockbox"`
	FloatBox  *BoxBase `json:"floatbox,omitempty"`
	WindowBox *BoxBase `json:"windowbox,omitempty"`
	MaxBox    *BoxBase `json:"maxbox,omitempty"`
}

// BoxBase captures a box. Exactly one of Box or Panel is set on each child.
type BoxBase struct {
	ID       string       `json:"id,omitempty"`
	Mode     BoxMode      `json:"mode"`
	Size     float64      `json:"size"`
	Children []*ChildBase `json:"children"`
}

// ChildBase is the tagged union of a persisted box child.
type ChildBase struct {
	Box   *BoxBase   `json:"box,omitempty"`
	Panel *PanelBase `json:"panel,omitempty"`
}

// PanelBase captures a panel. Geometry is only written for float and window panels.
type PanelBase struct {
	ID       string     `json:"id,omitempty"`
	Size     float64    `json:"size"`
	Tabs     []*TabBase `json:"tabs"`
	Group    string     `json:"group,omitempty"`
	ActiveID string     `json:"active_id,omitempty"`

	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
	W *float64 `json:"w,omitempty"`
	H *float64 `json:"h,omitempty"`
	Z *int     `json:"z,omitempty"`

	PanelLock *PanelLock `json:"panel_lock,omitempty"`

	// Extra carries host fields injected by the after-panel-saved hook.
	Extra map[string]any `json:"extra,omitempty"`
}

// TabBase captures a tab by id; hosts may add fields through Extra.
type TabBase struct {
	ID    string         `json:"id"`
	Group string         `json:"group,omitempty"`
	Extra map[string]any `json:"extra,omitempty"`
}

// CountPanels returns the number of panels across all four trees.
func (l *LayoutBase) CountPanels() int {
	if l == nil {
		return 0
	}
	count := 0
	for _, box := range []*BoxBase{l.DockBox, l.FloatBox, l.WindowBox, l.MaxBox} {
		count += box.countPanels()
	}
	return count
}

func (b *BoxBase) countPanels() int {
	if b == nil {
		return 0
	}
	count := 0
	for _, child := range b.Children {
		switch {
		case child == nil:
		case child.Panel != nil:
			count++
		case child.Box != nil:
			count += child.Box.countPanels()
		}
	}
	return count
}

// SavedLayout is a named layout stored by the layout repository.
type SavedLayout struct {
	Name       string      `json:"name"`
	Layout     *LayoutBase `json:"layout"`
	PanelCount int         `json:"panel_count"`
	SavedAt    time.Time   `json:"saved_at"`
}
