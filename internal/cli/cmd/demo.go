package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bnema/tabdock/internal/application/usecase"
	"github.com/bnema/tabdock/internal/cli"
	"github.com/bnema/tabdock/internal/cli/model"
	"github.com/bnema/tabdock/internal/domain/dock"
	"github.com/bnema/tabdock/internal/domain/entity"
	"github.com/bnema/tabdock/internal/infrastructure/config"
	"github.com/bnema/tabdock/internal/infrastructure/scheduler"
	"github.com/bnema/tabdock/internal/infrastructure/snapshot"
	"github.com/bnema/tabdock/internal/logging"
)

var demoFresh bool

var demoCmd = &cobra.Command{
	Use:   "demo [layout]",
	Short: "Open the interactive dock",
	Long: `Open the dock in the terminal.

Without arguments the autosaved layout is restored, falling back to the
built-in demo layout. With a layout name that saved layout is opened instead.
Changes are autosaved under the layout name unless autosave is disabled in
the config.

Drag a tab by its label or a panel by its top border. Press ? for keys.

Examples:
  tabdock demo              # Restore the last session
  tabdock demo work         # Open the layout saved as 'work'
  tabdock demo --fresh      # Start from the built-in layout`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().BoolVar(&demoFresh, "fresh", false, "ignore the saved layout")
}

// liveLayout exposes the running dock to the autosave service.
type liveLayout struct {
	dock *usecase.DockLayoutUseCase
	name string
}

func (l liveLayout) CurrentLayout() *entity.LayoutBase { return l.dock.SaveLayout() }
func (l liveLayout) LayoutName() string                { return l.name }

func runDemo(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("demo needs an interactive terminal")
	}

	cfg := app.Config
	name := cfg.Dock.AutosaveLayout
	if len(args) == 1 {
		name = args[0]
	}
	ctx, cancel := context.WithCancel(logging.WithLayoutName(app.Ctx(), name))
	defer cancel()
	log := logging.FromContext(ctx)

	saved, err := restoreLayout(ctx, app, name)
	if err != nil {
		return err
	}

	debouncer := scheduler.NewDebouncer(ctx)
	defer debouncer.Stop()

	engine := dock.NewEngine(nil, cfg.Dock.EngineOptions())
	dockUC, err := usecase.NewDockLayoutUseCase(ctx, engine, debouncer, usecase.DockLayoutConfig{
		Layout:         saved,
		DefaultLayout:  cli.DemoLayout(),
		LoadTab:        cli.LoadDemoTab,
		Groups:         cfg.Groups,
		ResizeDebounce: cfg.Dock.ResizeDebounce(),
	})
	if err != nil {
		return fmt.Errorf("create dock: %w", err)
	}

	var autosave *snapshot.Service
	if name != "" {
		autosave = snapshot.NewService(app.LayoutsUC, liveLayout{dock: dockUC, name: name}, cfg.Dock.AutosaveDebounceMs)
		autosave.Start(ctx)
		unsubscribe := dockUC.Subscribe(autosave.OnLayoutChange)
		defer unsubscribe()
		autosave.SetReady()
	}

	m := model.NewDockModel(ctx, app.Theme, model.DockModelConfig{
		DockLayout:     dockUC,
		Zones:          cfg.Dock.Zones(),
		DragThreshold:  cfg.Dock.DragThreshold,
		ResizeDebounce: cfg.Dock.ResizeDebounce(),
		LayoutName:     name,
		OnSave: func(ctx context.Context) (string, error) {
			if name == "" {
				return "", fmt.Errorf("no layout name to save under")
			}
			saved, err := app.LayoutsUC.Save(ctx, name, dockUC.SaveLayout())
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("saved %q (%d panels)", saved.Name, saved.PanelCount), nil
		},
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	if mgr := app.ConfigManager; mgr != nil {
		mgr.OnConfigChange(func(next *config.Config) {
			p.Send(model.DropZonesMsg{Zones: next.Dock.Zones()})
		})
		if err := mgr.Watch(); err != nil {
			log.Warn().Err(err).Msg("config hot reload disabled")
		}
	}

	_, runErr := p.Run()
	if errors.Is(runErr, tea.ErrProgramKilled) {
		runErr = nil
	}

	if autosave != nil {
		if err := autosave.Stop(context.WithoutCancel(ctx)); err != nil {
			log.Error().Err(err).Msg("final layout save failed")
		}
	}
	return runErr
}

// restoreLayout returns the saved layout to start from, or nil for the demo
// layout.
func restoreLayout(ctx context.Context, app *cli.App, name string) (*entity.LayoutBase, error) {
	if demoFresh || name == "" {
		return nil, nil
	}
	saved, err := app.LayoutsUC.Get(ctx, name)
	var notFound *usecase.LayoutNotFoundError
	switch {
	case errors.As(err, &notFound):
		logging.FromContext(ctx).Info().Str("layout", name).Msg("no saved layout, using demo layout")
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("load layout %q: %w", name, err)
	}
	return saved.Layout, nil
}
