package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/tabdock/internal/application/usecase"
	"github.com/bnema/tabdock/internal/domain/dock"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <file>",
	Short: "Normalize a layout file",
	Long: `Read a layout JSON file, normalize it and print the result.

Normalization drops panels without tabs, collapses boxes left with a single
child, merges nested boxes running along the same axis and regenerates
duplicate ids. The file itself is not modified.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}

		base, err := readLayoutFile(args[0])
		if err != nil {
			return err
		}
		engine := dock.NewEngine(nil, app.Config.Dock.EngineOptions())
		normalized, err := usecase.NormalizeLayout(app.Ctx(), engine, base, app.Config.Groups)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), normalized)
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}
