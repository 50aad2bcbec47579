package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// KeyMap defines keybindings that can be rendered as help.
type KeyMap interface {
	ShortHelp() []key.Binding
	FullHelp() [][]key.Binding
}

// DockKeyMap defines keybindings for the dock demo.
type DockKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Maximize  key.Binding
	Float     key.Binding
	Front     key.Binding
	Window    key.Binding
	Unwindow  key.Binding
	Close     key.Binding
	Grow      key.Binding
	Shrink    key.Binding
	GrowAll   key.Binding
	ShrinkAll key.Binding
	Save      key.Binding
	Reset     key.Binding
	Cancel    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k DockKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.NextTab, k.Maximize, k.Float, k.Grow, k.Save, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k DockKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.NextTab, k.PrevTab, k.Close},
		{k.Maximize, k.Float, k.Front, k.Window, k.Unwindow},
		{k.Grow, k.Shrink, k.GrowAll, k.ShrinkAll},
		{k.Save, k.Reset, k.Cancel, k.Help, k.Quit},
	}
}

// DefaultDockKeyMap returns the default dock keybindings.
func DefaultDockKeyMap() DockKeyMap {
	return DockKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "focus up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "focus down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "focus left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "focus right"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Maximize: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "maximize"),
		),
		Float: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "float/dock"),
		),
		Front: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "to front"),
		),
		Window: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "to window"),
		),
		Unwindow: key.NewBinding(
			key.WithKeys("W"),
			key.WithHelp("W", "dock last window"),
		),
		Close: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "close tab"),
		),
		Grow: key.NewBinding(
			key.WithKeys(">", "alt+>"),
			key.WithHelp(">", "grow"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("<", "alt+<"),
			key.WithHelp("<", "shrink"),
		),
		GrowAll: key.NewBinding(
			key.WithKeys("}"),
			key.WithHelp("} alt+>", "grow, spread"),
		),
		ShrinkAll: key.NewBinding(
			key.WithKeys("{"),
			key.WithHelp("{ alt+<", "shrink, spread"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel drag"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// NewStyledHelp creates a themed help model.
func NewStyledHelp(theme *Theme) help.Model {
	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.Muted)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	h.Styles.FullKey = lipgloss.NewStyle().Foreground(theme.Accent)
	h.Styles.FullDesc = lipgloss.NewStyle().Foreground(theme.Text)
	h.Styles.FullSeparator = lipgloss.NewStyle().Foreground(theme.Border)
	return h
}
