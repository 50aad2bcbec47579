package dragdrop

import "github.com/bnema/tabdock/internal/domain/entity"

const noParent = -1

type hitNode struct {
	id       string
	parent   int
	rect     entity.Rect
	handlers Handlers
}

// HitTree is the spatial index the Manager hit-tests against.
// Elements are appended in paint order: a later element is on top of every
// earlier one, and a child must be added after its parent.
// Hosts rebuild the tree each frame with Reset and Add.
type HitTree struct {
	nodes []hitNode
	index map[string]int
}

// NewHitTree creates an empty tree.
func NewHitTree() *HitTree {
	return &HitTree{index: make(map[string]int)}
}

// Reset drops every element and keeps the allocated storage.
func (t *HitTree) Reset() {
	t.nodes = t.nodes[:0]
	clear(t.index)
}

// Add registers an element under parentID ("" for a top-level element).
// Re-adding an existing id replaces its rect and handlers in place.
func (t *HitTree) Add(id, parentID string, rect entity.Rect, h Handlers) {
	parent := noParent
	if idx, ok := t.index[parentID]; ok && parentID != "" {
		parent = idx
	}
	if idx, ok := t.index[id]; ok {
		t.nodes[idx].rect = rect
		t.nodes[idx].handlers = h
		t.nodes[idx].parent = parent
		return
	}
	t.index[id] = len(t.nodes)
	t.nodes = append(t.nodes, hitNode{id: id, parent: parent, rect: rect, handlers: h})
}

// Len returns the number of registered elements.
func (t *HitTree) Len() int { return len(t.nodes) }

// Rect returns the geometry registered for id.
func (t *HitTree) Rect(id string) (entity.Rect, bool) {
	idx, ok := t.index[id]
	if !ok {
		return entity.Rect{}, false
	}
	return t.nodes[idx].rect, true
}

func (t *HitTree) handlers(id string) (Handlers, bool) {
	idx, ok := t.index[id]
	if !ok {
		return Handlers{}, false
	}
	return t.nodes[idx].handlers, true
}

// ElementAt returns the topmost element under the point. An element is only
// hit when the point is also inside each of its ancestors, so children are
// clipped to their parents.
func (t *HitTree) ElementAt(x, y float64) (string, bool) {
	for i := len(t.nodes) - 1; i >= 0; i-- {
		if t.hit(i, x, y) {
			return t.nodes[i].id, true
		}
	}
	return "", false
}

func (t *HitTree) hit(idx int, x, y float64) bool {
	for idx != noParent {
		n := &t.nodes[idx]
		if !n.rect.Contains(x, y) {
			return false
		}
		idx = n.parent
	}
	return true
}

// Ancestors returns id followed by its parents up to the top-level element.
func (t *HitTree) Ancestors(id string) []string {
	idx, ok := t.index[id]
	if !ok {
		return nil
	}
	var chain []string
	for idx != noParent {
		chain = append(chain, t.nodes[idx].id)
		idx = t.nodes[idx].parent
	}
	return chain
}
