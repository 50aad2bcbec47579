// Package dock implements the layout algorithm engine: pure rewrites that turn
// one revision of the layout forest into another.
//
// Every operation takes the current *entity.LayoutData and returns either the
// same pointer (nothing changed, including when an operand is no longer part
// of the revision) or a new revision. Nodes reachable from a revision are never
// mutated; changed nodes are cloned along the path to their root and untouched
// siblings are shared. Callers holding node pointers across rewrites must
// re-fetch them with Refresh.
package dock

import (
	"github.com/google/uuid"

	"github.com/bnema/tabdock/internal/domain/entity"
)

// IDGenerator is a function type for generating unique node IDs.
type IDGenerator func() string

// Options tunes the sizing constants used by the engine.
type Options struct {
	// DividerSize is added to a box minimum size for each gap between children.
	DividerSize float64
	// FloatHeader is the part of a float panel that must stay inside the container.
	FloatHeader float64
	// FloatMinContainer is the container size at or below which float panels are left alone.
	FloatMinContainer float64
}

// DefaultOptions returns the constants used by pixel based hosts.
func DefaultOptions() Options {
	return Options{
		DividerSize:       4,
		FloatHeader:       16,
		FloatMinContainer: 0,
	}
}

// Engine carries the engine's only mutable state: id generation and the
// monotonic z-index counter. An Engine is not safe for concurrent use.
type Engine struct {
	newID  IDGenerator
	zCount int
	opts   Options
}

// NewEngine creates an engine. A nil generator falls back to random UUIDs.
func NewEngine(idGen IDGenerator, opts Options) *Engine {
	if idGen == nil {
		idGen = uuid.NewString
	}
	if opts.DividerSize < 0 {
		opts.DividerSize = 0
	}
	if opts.FloatHeader <= 0 {
		opts.FloatHeader = DefaultOptions().FloatHeader
	}
	if opts.FloatMinContainer < 0 {
		opts.FloatMinContainer = 0
	}
	return &Engine{newID: idGen, opts: opts}
}

// Options returns the engine sizing constants.
func (e *Engine) Options() Options {
	return e.opts
}

// NextZIndex returns a z-index above every panel seen so far.
// A panel already on top keeps its index.
func (e *Engine) NextZIndex(current int) int {
	if current > 0 && current == e.zCount {
		return current
	}
	e.zCount++
	return e.zCount
}

// reserveZ makes sure future z-indices are above z.
func (e *Engine) reserveZ(z int) {
	if z > e.zCount {
		e.zCount = z
	}
}

// Refresh returns the node carrying the same id in the given revision.
// It is how callers re-fetch a node after a rewrite replaced it.
func Refresh[T entity.Node](l *entity.LayoutData, node T) T {
	var zero T
	if l == nil {
		return zero
	}
	found, ok := l.Lookup(node.NodeID()).(T)
	if !ok {
		return zero
	}
	return found
}
