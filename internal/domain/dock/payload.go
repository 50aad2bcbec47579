package dock

import "github.com/bnema/tabdock/internal/domain/entity"

// Fields of a dock drag payload.
const (
	PayloadTab       = "tab"
	PayloadPanel     = "panel"
	PayloadPanelSize = "panelSize"
	PayloadTabGroup  = "tabGroup"
)

// DragPayload is what a tab or panel drag carries to drop targets.
// Exactly one of Tab or Panel is set.
type DragPayload struct {
	Tab       *entity.Tab
	Panel     *entity.Panel
	PanelSize [2]float64
	TabGroup  string
}

// Source returns the dragged node.
func (p DragPayload) Source() entity.Node {
	if p.Tab != nil {
		return p.Tab
	}
	if p.Panel != nil {
		return p.Panel
	}
	return nil
}

// TabCount returns how many tabs move with the drag.
func (p DragPayload) TabCount() int {
	if p.Panel != nil {
		return len(p.Panel.Tabs)
	}
	if p.Tab != nil {
		return 1
	}
	return 0
}

// Fields flattens the payload for a drag session.
func (p DragPayload) Fields() map[string]any {
	fields := map[string]any{
		PayloadPanelSize: p.PanelSize,
		PayloadTabGroup:  p.TabGroup,
	}
	if p.Tab != nil {
		fields[PayloadTab] = p.Tab
	}
	if p.Panel != nil {
		fields[PayloadPanel] = p.Panel
	}
	return fields
}

// PayloadFrom reads a payload back through a session getter.
// ok is false when the session carries neither a tab nor a panel.
func PayloadFrom(get func(field string) any) (payload DragPayload, ok bool) {
	if get == nil {
		return DragPayload{}, false
	}
	payload.Tab, _ = get(PayloadTab).(*entity.Tab)
	payload.Panel, _ = get(PayloadPanel).(*entity.Panel)
	payload.PanelSize, _ = get(PayloadPanelSize).([2]float64)
	payload.TabGroup, _ = get(PayloadTabGroup).(string)
	return payload, payload.Source() != nil
}
