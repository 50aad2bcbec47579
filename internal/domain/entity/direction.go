package entity

// DropDirection is the semantic outcome of a drag-drop or layout change.
type DropDirection string

const (
	DropLeft      DropDirection = "left"
	DropRight     DropDirection = "right"
	DropTop       DropDirection = "top"
	DropBottom    DropDirection = "bottom"
	DropMiddle    DropDirection = "middle"
	DropBeforeTab DropDirection = "before-tab"
	DropAfterTab  DropDirection = "after-tab"
	DropFloat     DropDirection = "float"
	DropFront     DropDirection = "front"
	DropMaximize  DropDirection = "maximize"
	DropNewWindow DropDirection = "new-window"
	DropMove      DropDirection = "move"
	DropActive    DropDirection = "active"
	DropUpdate    DropDirection = "update"
	DropRemove    DropDirection = "remove"
)

// DockMode returns the box mode a docking direction splits along.
// ok is false for directions that do not split.
func (d DropDirection) DockMode() (mode BoxMode, ok bool) {
	switch d {
	case DropLeft, DropRight:
		return ModeHorizontal, true
	case DropTop, DropBottom:
		return ModeVertical, true
	default:
		return "", false
	}
}

// AfterTarget reports whether the new node is placed after the target.
func (d DropDirection) AfterTarget() bool {
	return d == DropRight || d == DropBottom || d == DropAfterTab
}

// Valid reports whether d is a known direction.
func (d DropDirection) Valid() bool {
	switch d {
	case DropLeft, DropRight, DropTop, DropBottom, DropMiddle, DropBeforeTab, DropAfterTab,
		DropFloat, DropFront, DropMaximize, DropNewWindow, DropMove, DropActive, DropUpdate, DropRemove:
		return true
	}
	return false
}
