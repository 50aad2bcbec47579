package entity

// Filter restricts which nodes a search may match.
// Combine a kind (Tab, Panel, Box) with one or more placements.
type Filter uint

const (
	FilterTab Filter = 1 << iota
	FilterPanel
	FilterBox
	FilterDocked
	FilterFloated
	FilterWindowed
	FilterMaximized
)

const (
	FilterEverywhere  = FilterDocked | FilterFloated | FilterWindowed | FilterMaximized
	FilterAnyTab      = FilterTab | FilterEverywhere
	FilterAnyPanel    = FilterPanel | FilterEverywhere
	FilterAnyBox      = FilterBox | FilterEverywhere
	FilterAnyTabPanel = FilterTab | FilterPanel | FilterEverywhere
	FilterAll         = FilterTab | FilterPanel | FilterBox | FilterEverywhere
)

// Has reports whether every bit of other is set.
func (f Filter) Has(other Filter) bool {
	return f&other == other
}
