package model

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bnema/tabdock/internal/domain/entity"
	"github.com/bnema/tabdock/internal/ui/layout"
)

// View implements tea.Model.
func (m *DockModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	canvas := layout.NewCanvas(m.width, m.areaHeight())
	for _, place := range m.frame.Panels {
		if place.Panel.ID == entity.MaximizedPlaceholderID {
			continue
		}
		canvas.Draw(int(place.Rect.X), int(place.Rect.Y), m.renderPanel(place))
	}

	if m.drag.Active() {
		if p := m.pending; p != nil && p.hint.W >= 1 && p.hint.H >= 1 {
			canvas.Draw(int(p.hint.X), int(p.hint.Y), m.renderHint(p.hint))
		}
		if m.proxy != nil && m.proxy.visible {
			canvas.Draw(m.proxy.x+1, m.proxy.y, m.theme.DragProxy.Render(m.proxy.label))
		}
	}

	if m.help.ShowAll {
		full := m.help.FullHelpView(m.keys.FullHelp())
		lines := strings.Count(full, "\n") + 1
		canvas.Draw(0, max(m.areaHeight()-lines, 0), full)
	}

	return canvas.String() + "\n" + m.renderFooter()
}

func (m *DockModel) renderPanel(place layout.Placement) string {
	w, h := int(place.Rect.W), int(place.Rect.H)
	if w < 2 || h < 2 {
		return ""
	}

	style := m.theme.Panel
	switch {
	case place.Panel.ID == m.focus.Active():
		style = m.theme.PanelFocused
	case place.Floating:
		style = m.theme.PanelFloat
	}

	inner := w - 2
	lines := []string{m.renderTabs(place)}
	lines = append(lines, m.renderBody(place.Panel, inner, h-3)...)
	return style.Width(inner).Height(h - 2).MaxHeight(h).Render(strings.Join(lines, "\n"))
}

func (m *DockModel) renderTabs(place layout.Placement) string {
	var b strings.Builder
	for _, label := range layout.TabStrip(place.Panel, place.Rect) {
		if label.Active {
			b.WriteString(m.theme.ActiveTab.Render(label.Text))
		} else {
			b.WriteString(m.theme.InactiveTab.Render(label.Text))
		}
	}
	return b.String()
}

func (m *DockModel) renderBody(p *entity.Panel, width, height int) []string {
	if height <= 0 {
		return nil
	}
	tab := p.ActiveTab()
	if tab == nil {
		return nil
	}
	var text string
	switch c := tab.Content.(type) {
	case string:
		text = c
	case fmt.Stringer:
		text = c.String()
	default:
		text = m.theme.Subtle.Render(layout.TabTitle(tab))
	}

	body := strings.Split(text, "\n")
	if len(body) > height {
		body = body[:height]
	}
	for i, line := range body {
		body[i] = m.theme.PanelBody.Render(ansi.Truncate(line, width, "…"))
	}
	return body
}

func (m *DockModel) renderHint(r entity.Rect) string {
	w, h := int(r.W), int(r.H)
	if w < 2 || h < 2 {
		return m.theme.DropHint.UnsetBorderStyle().Reverse(true).Render(strings.Repeat(" ", w))
	}
	return m.theme.DropHint.Width(w - 2).Height(h - 2).Render("")
}

func (m *DockModel) renderFooter() string {
	l := m.dock.Layout()
	status := m.status
	if m.drag.Active() {
		if _, msg := m.drag.Target(); msg != "" {
			status = "drop: " + msg
		} else {
			status = "dragging"
		}
	}

	right := fmt.Sprintf("%s  %d panels  %d windows", m.layoutName, len(m.frame.PanelRects()), len(l.WindowBox.Children))
	gap := max(m.width-lipgloss.Width(status)-lipgloss.Width(right)-2, 1)
	bar := m.theme.StatusBar.Width(m.width).Render(ansi.Truncate(status+strings.Repeat(" ", gap)+right, m.width, ""))

	return bar + "\n" + m.help.ShortHelpView(m.keys.ShortHelp())
}
