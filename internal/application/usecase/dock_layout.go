package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bnema/tabdock/internal/application/port"
	"github.com/bnema/tabdock/internal/domain/dock"
	"github.com/bnema/tabdock/internal/domain/entity"
	"github.com/bnema/tabdock/internal/logging"
)

// ErrNoLayoutSource is returned when a dock layout has neither a LoadTab
// callback nor a default layout to resolve tabs from.
var ErrNoLayoutSource = errors.New("dock layout requires a load tab callback or a default layout")

const (
	fixFloatKey           = "dock.fix-float"
	defaultResizeDebounce = 100 * time.Millisecond
)

const tracerName = "github.com/bnema/tabdock/internal/application/usecase"

// LayoutChange is sent to subscribers after a structural change.
type LayoutChange struct {
	Layout    *entity.LayoutBase
	TabID     string
	Direction entity.DropDirection
}

// DockLayoutConfig configures a DockLayoutUseCase.
type DockLayoutConfig struct {
	// Layout is the persisted layout to start from. When nil DefaultLayout is used.
	Layout        *entity.LayoutBase
	DefaultLayout *entity.LayoutData

	LoadTab          dock.LoadTabFunc
	SaveTab          dock.SaveTabFunc
	AfterPanelLoaded dock.AfterPanelLoadedFunc
	AfterPanelSaved  dock.AfterPanelSavedFunc
	Groups           map[string]entity.TabGroup

	// ResizeDebounce delays float panel repositioning after Resize.
	ResizeDebounce time.Duration
}

// DockLayoutUseCase hosts one dock layout. It owns the current revision and
// routes every change through the engine.
type DockLayoutUseCase struct {
	engine    *dock.Engine
	scheduler port.Scheduler
	cfg       DockLayoutConfig

	mu        sync.Mutex
	layout    *entity.LayoutData
	container entity.Rect
	nextSubID int
	subs      map[int]func(LayoutChange)
}

// NewDockLayoutUseCase loads the initial layout. scheduler may be nil, in
// which case Resize repositions float panels immediately.
func NewDockLayoutUseCase(
	ctx context.Context,
	engine *dock.Engine,
	scheduler port.Scheduler,
	cfg DockLayoutConfig,
) (*DockLayoutUseCase, error) {
	if cfg.LoadTab == nil && cfg.DefaultLayout == nil {
		return nil, ErrNoLayoutSource
	}
	if engine == nil {
		engine = dock.NewEngine(nil, dock.DefaultOptions())
	}
	if cfg.ResizeDebounce <= 0 {
		cfg.ResizeDebounce = defaultResizeDebounce
	}

	uc := &DockLayoutUseCase{
		engine:    engine,
		scheduler: scheduler,
		cfg:       cfg,
		subs:      make(map[int]func(LayoutChange)),
	}
	uc.layout = engine.LoadLayoutData(cfg.Layout, uc.loadOptions())

	logging.FromContext(ctx).Debug().
		Int("panels", countPanels(uc.layout)).
		Bool("from_saved", cfg.Layout != nil).
		Msg("dock layout loaded")
	return uc, nil
}

func (uc *DockLayoutUseCase) loadOptions() dock.LoadOptions {
	return dock.LoadOptions{
		LoadTab:          uc.cfg.LoadTab,
		DefaultLayout:    uc.cfg.DefaultLayout,
		AfterPanelLoaded: uc.cfg.AfterPanelLoaded,
		Groups:           uc.cfg.Groups,
	}
}

// Groups returns the configured tab groups.
func (uc *DockLayoutUseCase) Groups() map[string]entity.TabGroup { return uc.cfg.Groups }

// Layout returns the current revision. Revisions are immutable.
func (uc *DockLayoutUseCase) Layout() *entity.LayoutData {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.layout
}

// Container returns the last size passed to Resize.
func (uc *DockLayoutUseCase) Container() entity.Rect {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.container
}

// Find looks up a node in the current revision.
func (uc *DockLayoutUseCase) Find(id string, filter entity.Filter) entity.Node {
	return dock.Find(uc.Layout(), id, filter)
}

// Subscribe registers fn for layout changes and returns a function that
// removes it.
func (uc *DockLayoutUseCase) Subscribe(fn func(LayoutChange)) func() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	id := uc.nextSubID
	uc.nextSubID++
	uc.subs[id] = fn
	return func() {
		uc.mu.Lock()
		defer uc.mu.Unlock()
		delete(uc.subs, id)
	}
}

// MoveInput describes a dock move.
type MoveInput struct {
	Source    entity.Node
	Target    entity.Node
	Direction entity.DropDirection
	// FloatRect places the source when Direction is float.
	FloatRect *entity.Rect
}

// DockMove applies a move to the current revision and reports whether the
// layout changed.
func (uc *DockLayoutUseCase) DockMove(ctx context.Context, input MoveInput) bool {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "DockLayout.DockMove")
	defer span.End()

	log := logging.FromContext(ctx)
	if input.Source == nil || !input.Direction.Valid() {
		log.Debug().Str("direction", string(input.Direction)).Msg("ignoring dock move without source")
		return false
	}
	targetID := ""
	if input.Target != nil {
		targetID = input.Target.NodeID()
	}
	span.SetAttributes(
		attribute.String("dock.source", input.Source.NodeID()),
		attribute.String("dock.target", targetID),
		attribute.String("dock.direction", string(input.Direction)),
	)
	log.Debug().
		Str("source", input.Source.NodeID()).
		Str("target", targetID).
		Str("direction", string(input.Direction)).
		Msg("dock move")

	uc.mu.Lock()
	prev := uc.layout
	next := uc.engine.DockMove(prev, input.Source, input.Target, input.Direction, dock.MoveOptions{
		FloatRect: input.FloatRect,
		Container: uc.container,
		Groups:    uc.cfg.Groups,
	})
	uc.layout = next
	uc.mu.Unlock()

	if next == prev {
		span.SetAttributes(attribute.Bool("dock.changed", false))
		return false
	}
	span.SetAttributes(attribute.Bool("dock.changed", true))
	log.Info().
		Str("source", input.Source.NodeID()).
		Str("direction", string(input.Direction)).
		Int("panels", countPanels(next)).
		Msg("layout changed")

	uc.publish(next, currentTabID(next, input.Source), input.Direction)
	return true
}

// UpdateTab replaces the tab with the given id. With makeActive the tab also
// becomes the active tab of its panel.
func (uc *DockLayoutUseCase) UpdateTab(ctx context.Context, id string, tab *entity.Tab, makeActive bool) bool {
	log := logging.FromContext(ctx)

	uc.mu.Lock()
	prev := uc.layout
	next := uc.engine.UpdateTab(prev, id, tab, makeActive)
	uc.layout = next
	uc.mu.Unlock()

	if next == prev {
		log.Debug().Str("tab_id", id).Msg("tab update had no effect")
		return false
	}
	dir := entity.DropUpdate
	if makeActive {
		dir = entity.DropActive
	}
	log.Debug().Str("tab_id", id).Bool("active", makeActive).Msg("tab updated")
	uc.publish(next, id, dir)
	return true
}

// ResizeBox writes divider sizes for the children of a box.
func (uc *DockLayoutUseCase) ResizeBox(ctx context.Context, boxID string, sizes []float64) bool {
	uc.mu.Lock()
	prev := uc.layout
	box := dock.FindBox(prev, boxID)
	next := uc.engine.ResizeBox(prev, box, sizes)
	uc.layout = next
	uc.mu.Unlock()

	if next == prev {
		return false
	}
	logging.FromContext(ctx).Debug().Str("box_id", boxID).Floats64("sizes", sizes).Msg("box resized")
	uc.publish(next, "", entity.DropMove)
	return true
}

// Resize records the container size and schedules float panel repositioning.
func (uc *DockLayoutUseCase) Resize(ctx context.Context, width, height float64) {
	uc.mu.Lock()
	uc.container = entity.Rect{W: width, H: height}
	uc.mu.Unlock()

	if uc.scheduler == nil {
		uc.FixFloatPanels(ctx)
		return
	}
	uc.scheduler.Debounce(fixFloatKey, uc.cfg.ResizeDebounce, func() {
		uc.FixFloatPanels(ctx)
	})
}

// FixFloatPanels keeps float panels reachable in the current container and
// publishes the repositioned revision.
func (uc *DockLayoutUseCase) FixFloatPanels(ctx context.Context) bool {
	uc.mu.Lock()
	prev, container := uc.layout, uc.container
	next := uc.engine.FixFloatPanelPos(prev, container.W, container.H)
	uc.layout = next
	uc.mu.Unlock()

	if next == prev {
		return false
	}
	logging.FromContext(ctx).Debug().
		Float64("width", container.W).
		Float64("height", container.H).
		Msg("float panels repositioned")
	uc.publish(next, "", entity.DropMove)
	return true
}

// SaveLayout returns the persisted form of the current revision.
func (uc *DockLayoutUseCase) SaveLayout() *entity.LayoutBase {
	return dock.SaveLayoutData(uc.Layout(), dock.SaveOptions{
		SaveTab:         uc.cfg.SaveTab,
		AfterPanelSaved: uc.cfg.AfterPanelSaved,
	})
}

// LoadLayout replaces the current revision with a persisted layout.
// A nil layout restores the default layout.
func (uc *DockLayoutUseCase) LoadLayout(ctx context.Context, base *entity.LayoutBase) {
	uc.mu.Lock()
	next := uc.engine.LoadLayoutData(base, uc.loadOptions())
	uc.layout = next
	uc.mu.Unlock()

	logging.FromContext(ctx).Info().Int("panels", countPanels(next)).Msg("layout loaded")
}

func (uc *DockLayoutUseCase) publish(l *entity.LayoutData, tabID string, dir entity.DropDirection) {
	uc.mu.Lock()
	subs := make([]func(LayoutChange), 0, len(uc.subs))
	for _, fn := range uc.subs {
		subs = append(subs, fn)
	}
	uc.mu.Unlock()
	if len(subs) == 0 {
		return
	}

	change := LayoutChange{
		Layout: dock.SaveLayoutData(l, dock.SaveOptions{
			SaveTab:         uc.cfg.SaveTab,
			AfterPanelSaved: uc.cfg.AfterPanelSaved,
		}),
		TabID:     tabID,
		Direction: dir,
	}
	for _, fn := range subs {
		fn(change)
	}
}

// currentTabID is the moved tab, or the active tab of a moved panel.
func currentTabID(l *entity.LayoutData, source entity.Node) string {
	switch s := source.(type) {
	case *entity.Tab:
		return s.ID
	case *entity.Panel:
		if p := dock.FindPanel(l, s.ID); p != nil {
			return p.ActiveID
		}
		return s.ActiveID
	}
	return ""
}

func countPanels(l *entity.LayoutData) int {
	if l == nil {
		return 0
	}
	n := 0
	for _, root := range l.Roots() {
		n += len(entity.Panels(root))
	}
	return n
}
