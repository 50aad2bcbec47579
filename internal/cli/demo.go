package cli

import (
	"fmt"
	"strings"

	"github.com/bnema/tabdock/internal/domain/entity"
	"github.com/bnema/tabdock/internal/infrastructure/config"
)

// demoTab is a tab of the demo catalog.
type demoTab struct {
	title string
	group string
	body  string
}

var demoCatalog = map[string]demoTab{
	"main.go":   {title: "main.go", group: config.GroupDefault, body: "package main\n\nfunc main() {\n\tcmd.Execute()\n}"},
	"engine.go": {title: "engine.go", group: config.GroupDefault, body: "// Engine carries id generation\n// and the z-index counter."},
	"README.md": {title: "README.md", group: config.GroupDefault, body: "# tabdock\n\nDrag tabs by their label,\npanels by their top border."},
	"files":     {title: "Files", group: config.GroupTool, body: "cmd/\ninternal/\ngo.mod\nREADME.md"},
	"search":    {title: "Search", group: config.GroupTool, body: "no results"},
	"terminal":  {title: "Terminal", group: config.GroupTool, body: "$ go test ./...\nok"},
	"problems":  {title: "Problems", group: config.GroupTool, body: "0 errors, 0 warnings"},
	"outline":   {title: "Outline", group: config.GroupPinned, body: "Engine\n  NewEngine\n  DockMove\n  Maximize"},
}

func newDemoTab(id string) *entity.Tab {
	entry, ok := demoCatalog[id]
	if !ok {
		return &entity.Tab{ID: id, Title: id, Closable: true, Content: fmt.Sprintf("tab %s", id)}
	}
	return &entity.Tab{
		ID:       id,
		Title:    entry.title,
		Group:    entry.group,
		Closable: entry.group == config.GroupDefault,
		Content:  entry.body,
	}
}

func demoPanel(id string, size float64, group string, tabIDs ...string) *entity.Panel {
	p := &entity.Panel{ID: id, Size: size, Group: group, ActiveID: tabIDs[0]}
	for _, tabID := range tabIDs {
		p.Tabs = append(p.Tabs, newDemoTab(tabID))
	}
	return p
}

// DemoLayout is the layout the demo starts from when nothing was saved.
// A tool column sits left of the editors, with a pinned outline and a bottom
// panel for terminal output.
func DemoLayout() *entity.LayoutData {
	root := &entity.Box{ID: "root", Mode: entity.ModeHorizontal, Children: []entity.Child{
		&entity.Box{ID: "side", Mode: entity.ModeVertical, Size: 120, Children: []entity.Child{
			demoPanel("explorer", 200, config.GroupTool, "files", "search"),
			demoPanel("outline", 120, config.GroupPinned, "outline"),
		}},
		&entity.Box{ID: "main", Mode: entity.ModeVertical, Size: 380, Children: []entity.Child{
			demoPanel("editor", 300, config.GroupDefault, "main.go", "engine.go", "README.md"),
			demoPanel("bottom", 120, config.GroupTool, "terminal", "problems"),
		}},
	}}
	return entity.NewLayoutData(root, nil, nil, nil)
}

// LoadDemoTab rebuilds a saved tab from the demo catalog. Unknown ids still
// load, so layouts saved by other hosts can be viewed.
func LoadDemoTab(saved *entity.TabBase) *entity.Tab {
	if saved == nil || strings.TrimSpace(saved.ID) == "" {
		return nil
	}
	tab := newDemoTab(saved.ID)
	if saved.Group != "" {
		tab.Group = saved.Group
	}
	return tab
}
