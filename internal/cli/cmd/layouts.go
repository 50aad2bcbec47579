package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/tabdock/internal/application/usecase"
	"github.com/bnema/tabdock/internal/cli"
	"github.com/bnema/tabdock/internal/domain/dock"
	"github.com/bnema/tabdock/internal/domain/entity"
	"github.com/bnema/tabdock/internal/infrastructure/persistence/sqlite"
)

// importConcurrency bounds how many layout files are parsed at once.
const importConcurrency = 4

var (
	layoutsJSON bool
	exportOut   string
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "Manage saved layouts",
	Long: `List, inspect, delete, import and export saved dock layouts.

Layouts are stored in the tabdock database. The demo autosaves its layout
under the name set by dock.autosave_layout in the config.`,
}

func init() {
	rootCmd.AddCommand(layoutsCmd)
	layoutsCmd.AddCommand(layoutsListCmd, layoutsShowCmd, layoutsDeleteCmd, layoutsImportCmd, layoutsExportCmd, layoutsStatusCmd)

	layoutsListCmd.Flags().BoolVar(&layoutsJSON, "json", false, "output as JSON")
	layoutsStatusCmd.Flags().BoolVar(&layoutsJSON, "json", false, "output as JSON")
	layoutsExportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "write to file instead of stdout")
}

// layouts list
var layoutsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved layouts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}

		layouts, err := app.LayoutsUC.List(app.Ctx())
		if err != nil {
			return err
		}
		if layoutsJSON {
			return writeJSON(cmd.OutOrStdout(), layouts)
		}
		return outputLayoutsTable(cmd.OutOrStdout(), layouts, time.Now())
	},
}

func outputLayoutsTable(out io.Writer, layouts []*entity.SavedLayout, now time.Time) error {
	if len(layouts) == 0 {
		_, _ = fmt.Fprintln(out, "No saved layouts found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tPANELS\tSAVED")
	for _, l := range layouts {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\n", l.Name, l.PanelCount, relativeTime(l.SavedAt, now))
	}
	return w.Flush()
}

// relativeTime formats t as a short age relative to now.
func relativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Local().Format("2006-01-02")
	}
}

// layouts status
var layoutsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the layout database schema and format versions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}

		status, err := app.SchemaStatus(app.Ctx())
		if err != nil {
			return err
		}
		if layoutsJSON {
			return writeJSON(cmd.OutOrStdout(), status)
		}
		return outputSchemaStatus(cmd.OutOrStdout(), status)
	},
}

func outputSchemaStatus(out io.Writer, status *sqlite.SchemaStatus) error {
	_, _ = fmt.Fprintf(out, "schema version: %d\n", status.Version)
	if len(status.Pending) > 0 {
		pending := make([]string, len(status.Pending))
		for i, v := range status.Pending {
			pending[i] = fmt.Sprint(v)
		}
		_, _ = fmt.Fprintf(out, "pending migrations: %s\n", strings.Join(pending, ", "))
	}
	_, _ = fmt.Fprintf(out, "layout format: %d\n", status.CurrentFormat)

	if len(status.Formats) > 0 {
		formats := make([]int, 0, len(status.Formats))
		for f := range status.Formats {
			formats = append(formats, f)
		}
		slices.Sort(formats)

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "FORMAT\tLAYOUTS")
		for _, f := range formats {
			_, _ = fmt.Fprintf(w, "%d\t%d\n", f, status.Formats[f])
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	if status.Outdated > 0 {
		_, _ = fmt.Fprintf(out, "%d layout(s) use an older format; re-import them to upgrade\n", status.Outdated)
	}
	return nil
}

// layouts show <name>
var layoutsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a saved layout as a tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}

		saved, err := app.LayoutsUC.Get(app.Ctx(), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "%s  %s  %d panels\n",
			app.Theme.Title.Render(saved.Name),
			app.Theme.Subtle.Render(saved.SavedAt.Local().Format(time.DateTime)),
			saved.PanelCount)
		_, _ = fmt.Fprint(out, renderLayoutTree(saved.Layout))
		return nil
	},
}

// renderLayoutTree prints the four roots of a persisted layout, one node per
// line, indented by depth.
func renderLayoutTree(l *entity.LayoutBase) string {
	var b strings.Builder
	roots := []struct {
		name string
		box  *entity.BoxBase
	}{
		{"dock", l.DockBox}, {"float", l.FloatBox}, {"window", l.WindowBox}, {"maximize", l.MaxBox},
	}
	for _, root := range roots {
		if root.box == nil || (root.name != "dock" && len(root.box.Children) == 0) {
			continue
		}
		fmt.Fprintf(&b, "%s\n", root.name)
		writeBoxTree(&b, root.box, 1)
	}
	return b.String()
}

func writeBoxTree(b *strings.Builder, box *entity.BoxBase, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, child := range box.Children {
		switch {
		case child == nil:
		case child.Box != nil:
			fmt.Fprintf(b, "%sbox %s %s size=%g\n", indent, child.Box.ID, child.Box.Mode, child.Box.Size)
			writeBoxTree(b, child.Box, depth+1)
		case child.Panel != nil:
			p := child.Panel
			tabs := make([]string, 0, len(p.Tabs))
			for _, t := range p.Tabs {
				name := t.ID
				if t.ID == p.ActiveID {
					name = "*" + name
				}
				tabs = append(tabs, name)
			}
			fmt.Fprintf(b, "%spanel %s size=%g", indent, p.ID, p.Size)
			if p.Group != "" {
				fmt.Fprintf(b, " group=%s", p.Group)
			}
			if p.W != nil && p.H != nil {
				fmt.Fprintf(b, " rect=%gx%g", *p.W, *p.H)
			}
			fmt.Fprintf(b, " [%s]\n", strings.Join(tabs, " "))
		}
	}
}

// layouts delete <name>
var layoutsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved layout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}

		if err := app.LayoutsUC.Delete(app.Ctx(), args[0]); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), app.Theme.SuccessStyle.Render(fmt.Sprintf("Deleted layout %q", args[0])))
		return nil
	},
}

// layouts import <file>...
var layoutsImportCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import layouts from JSON files",
	Long: `Import one or more layouts exported with 'tabdock layouts export'.

Each file is normalized before it is saved, under the file name without its
extension. Files are parsed concurrently; nothing is saved if any file fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}

		parsed, err := readLayoutFiles(app.Ctx(), app, args)
		if err != nil {
			return err
		}
		for i, base := range parsed {
			name := layoutNameFromPath(args[i])
			saved, err := app.LayoutsUC.Save(app.Ctx(), name, base)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %s (%d panels)\n", saved.Name, saved.PanelCount)
		}
		return nil
	},
}

func readLayoutFiles(ctx context.Context, app *cli.App, paths []string) ([]*entity.LayoutBase, error) {
	parsed := make([]*entity.LayoutBase, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(importConcurrency)
	for i, path := range paths {
		g.Go(func() error {
			base, err := readLayoutFile(path)
			if err != nil {
				return err
			}
			// one engine per file; engines are not safe for concurrent use
			engine := dock.NewEngine(nil, app.Config.Dock.EngineOptions())
			normalized, err := usecase.NormalizeLayout(ctx, engine, base, app.Config.Groups)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			parsed[i] = normalized
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return parsed, nil
}

func readLayoutFile(path string) (*entity.LayoutBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	var base entity.LayoutBase
	if err := json.Unmarshal(data, &base); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &base, nil
}

func layoutNameFromPath(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// layouts export <name>
var layoutsExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Export a saved layout as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}

		saved, err := app.LayoutsUC.Get(app.Ctx(), args[0])
		if err != nil {
			return err
		}
		if exportOut == "" {
			return writeJSON(cmd.OutOrStdout(), saved.Layout)
		}

		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOut, err)
		}
		if err := writeJSON(f, saved.Layout); err != nil {
			_ = f.Close()
			return err
		}
		return f.Close()
	},
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
