// Package model provides Bubble Tea models for CLI commands.
package model

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/tabdock/internal/application/usecase"
	"github.com/bnema/tabdock/internal/cli/styles"
	"github.com/bnema/tabdock/internal/domain/dock"
	"github.com/bnema/tabdock/internal/domain/entity"
	"github.com/bnema/tabdock/internal/domain/resize"
	"github.com/bnema/tabdock/internal/logging"
	"github.com/bnema/tabdock/internal/ui/dragdrop"
	"github.com/bnema/tabdock/internal/ui/focus"
	"github.com/bnema/tabdock/internal/ui/layout"
)

// footerHeight is the status line plus the short help line.
const footerHeight = 2

// resizeStep is how many cells one grow or shrink key press moves a divider.
const resizeStep = 2

// DockModel is the Bubble Tea model for the interactive dock.
type DockModel struct {
	// UI components
	help  help.Model
	keys  styles.DockKeyMap
	theme *styles.Theme

	// Dependencies
	ctx    context.Context
	dock   *usecase.DockLayoutUseCase
	focus  *focus.Manager
	tree   *dragdrop.HitTree
	drag   *dragdrop.Manager
	onSave func(context.Context) (string, error)

	// Config
	zones      dock.DropZones
	refreshLag time.Duration
	layoutName string

	// State
	width, height int
	frame         *layout.Frame
	pending       *pendingDrop
	grab          entity.Rect
	proxy         *dragProxy
	status        string
	quitting      bool
}

// DockModelConfig holds configuration for the dock model.
type DockModelConfig struct {
	DockLayout    *usecase.DockLayoutUseCase
	Focus         *focus.Manager
	Zones         dock.DropZones
	DragThreshold float64
	// ResizeDebounce is how long the layout waits before fixing float panels
	// after a terminal resize.
	ResizeDebounce time.Duration
	// OnSave stores the current layout and returns a status message.
	OnSave     func(context.Context) (string, error)
	LayoutName string
}

// NewDockModel creates a new dock model.
func NewDockModel(ctx context.Context, theme *styles.Theme, cfg DockModelConfig) *DockModel {
	if cfg.Focus == nil {
		cfg.Focus = focus.NewManager(nil)
	}
	if cfg.Zones == (dock.DropZones{}) {
		cfg.Zones = dock.DefaultDropZones()
	}
	threshold := cfg.DragThreshold
	if threshold <= 0 {
		threshold = dragdrop.DefaultThreshold
	}

	m := &DockModel{
		help:       styles.NewStyledHelp(theme),
		keys:       styles.DefaultDockKeyMap(),
		theme:      theme,
		ctx:        ctx,
		dock:       cfg.DockLayout,
		focus:      cfg.Focus,
		tree:       dragdrop.NewHitTree(),
		onSave:     cfg.OnSave,
		zones:      cfg.Zones,
		refreshLag: cfg.ResizeDebounce,
		layoutName: cfg.LayoutName,
		frame:      layout.Arrange(nil, entity.Rect{}, 0),
	}
	m.drag = dragdrop.NewManager(m.tree,
		dragdrop.WithThreshold(threshold),
		dragdrop.WithDraggingElement(m.newProxy),
		dragdrop.WithLogger(*logging.FromContext(logging.WithComponent(ctx, "dragdrop"))),
	)
	return m
}

// DropZonesMsg replaces the drop zone thresholds, for example after the
// config file changed.
type DropZonesMsg struct {
	Zones dock.DropZones
}

type layoutRefreshMsg struct{}

type layoutSavedMsg struct {
	text string
	err  error
}

// Init implements tea.Model.
func (m *DockModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *DockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.dock.Resize(m.ctx, float64(m.width), float64(m.areaHeight()))
		m.relayout()
		return m, m.refreshAfter(m.refreshLag)

	case layoutRefreshMsg:
		m.relayout()
		return m, nil

	case DropZonesMsg:
		m.zones = msg.Zones
		m.status = "drop zones reloaded"
		return m, nil

	case layoutSavedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = msg.text
		}
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *DockModel) refreshAfter(d time.Duration) tea.Cmd {
	if d <= 0 {
		return nil
	}
	// one extra tick so the debounced float fix has landed
	return tea.Tick(d+10*time.Millisecond, func(time.Time) tea.Msg { return layoutRefreshMsg{} })
}

func (m *DockModel) areaHeight() int {
	return max(m.height-footerHeight, 0)
}

func (m *DockModel) area() entity.Rect {
	return entity.Rect{W: float64(m.width), H: float64(m.areaHeight())}
}

// relayout recomputes geometry from the current revision. The hit tree is
// left alone while a drag runs so the session keeps resolving the elements it
// started with.
func (m *DockModel) relayout() {
	m.frame = layout.Arrange(m.dock.Layout(), m.area(), 0)
	m.focus.Sync(m.frame)
	if !m.drag.Active() {
		m.rebuildTree()
	}
}

func (m *DockModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.drag.Active() {
		switch {
		case key.Matches(msg, m.keys.Cancel):
			if m.drag.HandleKey(msg.String()) {
				m.pending = nil
				m.relayout()
			}
		case msg.String() == "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down),
		key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right):
		m.focus.NavigateGeometric(m.ctx, m.frame, msg.String())
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		m.cycleTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		m.cycleTab(-1)
	case key.Matches(msg, m.keys.Maximize):
		m.toggleMaximize()
	case key.Matches(msg, m.keys.Float):
		m.toggleFloat()
	case key.Matches(msg, m.keys.Front):
		m.moveFocused(nil, entity.DropFront)
	case key.Matches(msg, m.keys.Window):
		m.toWindow()
	case key.Matches(msg, m.keys.Unwindow):
		m.fromWindow()
	case key.Matches(msg, m.keys.Close):
		m.closeTab()
	case key.Matches(msg, m.keys.Grow, m.keys.GrowAll):
		m.resizeFocused(resizeStep, resizeMode(msg, key.Matches(msg, m.keys.GrowAll)))
	case key.Matches(msg, m.keys.Shrink, m.keys.ShrinkAll):
		m.resizeFocused(-resizeStep, resizeMode(msg, key.Matches(msg, m.keys.ShrinkAll)))
	case key.Matches(msg, m.keys.Save):
		return m, m.save()
	case key.Matches(msg, m.keys.Reset):
		m.dock.LoadLayout(m.ctx, nil)
		m.status = "default layout restored"
	default:
		return m, nil
	}
	m.relayout()
	return m, nil
}

func (m *DockModel) focusedPanel() *entity.Panel {
	return dock.FindPanel(m.dock.Layout(), m.focus.Active())
}

func (m *DockModel) group(name string) entity.TabGroup {
	return m.dock.Groups()[name]
}

func (m *DockModel) cycleTab(step int) {
	p := m.focusedPanel()
	if p == nil {
		return
	}
	next := focus.CycleTab(p, step)
	if next == nil {
		return
	}
	m.dock.UpdateTab(logging.WithPanelID(m.ctx, p.ID), next.ID, next, true)
}

func (m *DockModel) moveFocused(target entity.Node, dir entity.DropDirection) bool {
	p := m.focusedPanel()
	if p == nil {
		return false
	}
	return m.dock.DockMove(m.ctx, usecase.MoveInput{Source: p, Target: target, Direction: dir})
}

func (m *DockModel) toggleMaximize() {
	p := m.focusedPanel()
	if p == nil {
		return
	}
	maximized := m.dock.Layout().ParentBox(p) == m.dock.Layout().MaxBox
	if !maximized && !m.group(p.Group).Maximizable {
		m.status = fmt.Sprintf("panels of group %q cannot be maximized", p.Group)
		return
	}
	m.moveFocused(nil, entity.DropMaximize)
}

func (m *DockModel) toggleFloat() {
	l := m.dock.Layout()
	p := m.focusedPanel()
	if p == nil {
		return
	}
	switch l.ParentBox(p) {
	case l.MaxBox:
		m.status = "restore the panel before floating it"
	case l.FloatBox:
		m.moveFocused(l.DockBox, entity.DropRight)
	default:
		if !m.group(p.Group).CanFloat(len(p.Tabs)) {
			m.status = fmt.Sprintf("panels of group %q cannot float", p.Group)
			return
		}
		m.moveFocused(nil, entity.DropFloat)
	}
}

func (m *DockModel) toWindow() {
	p := m.focusedPanel()
	if p == nil {
		return
	}
	if m.moveFocused(nil, entity.DropNewWindow) {
		m.status = fmt.Sprintf("panel %s moved to its own window", p.ID)
	}
}

func (m *DockModel) fromWindow() {
	l := m.dock.Layout()
	n := len(l.WindowBox.Children)
	if n == 0 {
		m.status = "no windowed panels"
		return
	}
	last := l.WindowBox.Children[n-1]
	if m.dock.DockMove(m.ctx, usecase.MoveInput{Source: last, Target: l.DockBox, Direction: entity.DropRight}) {
		m.focus.SetActive(last.NodeID())
	}
}

func (m *DockModel) closeTab() {
	p := m.focusedPanel()
	if p == nil {
		return
	}
	tab := p.ActiveTab()
	if tab == nil {
		return
	}
	if !tab.Closable {
		m.status = fmt.Sprintf("tab %q cannot be closed", layout.TabTitle(tab))
		return
	}
	m.dock.DockMove(m.ctx, usecase.MoveInput{Source: tab, Direction: entity.DropRemove})
}

// resizeMode picks the divider mode for a resize key. The braces are the
// shifted brackets, so they count as shift held; alt+< and alt+> spread too.
func resizeMode(msg tea.KeyMsg, shifted bool) resize.Mode {
	return resize.ModeFor(resize.Modifiers{Shift: shifted, Alt: msg.Alt})
}

func (m *DockModel) resizeFocused(delta float64, mode resize.Mode) {
	l := m.dock.Layout()
	p := m.focusedPanel()
	if p == nil {
		return
	}
	box := l.ParentBox(p)
	if box == nil || !box.Mode.IsDockMode() {
		m.status = "only docked panels can be resized"
		return
	}
	rect, ok := m.frame.NodeRect(box.ID)
	if !ok {
		return
	}
	span := rect.W
	if box.Mode == entity.ModeVertical {
		span = rect.H
	}
	sizes, ok := layout.Grow(box, box.IndexOf(p.ID), delta, span, mode)
	if !ok {
		m.status = "nothing to resize against"
		return
	}
	m.dock.ResizeBox(m.ctx, box.ID, sizes)
}

func (m *DockModel) save() tea.Cmd {
	if m.onSave == nil {
		m.status = "saving is disabled"
		return nil
	}
	ctx, onSave := m.ctx, m.onSave
	return func() tea.Msg {
		text, err := onSave(ctx)
		return layoutSavedMsg{text: text, err: err}
	}
}

// Status returns the current status line message.
func (m *DockModel) Status() string { return m.status }

// Focused returns the focused panel id.
func (m *DockModel) Focused() string { return m.focus.Active() }
