package cmd

import (
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/bnema/tabdock/internal/domain/entity"
	"github.com/bnema/tabdock/internal/infrastructure/config"
)

var schemaCmd = &cobra.Command{
	Use:       "schema [layout|config]",
	Short:     "Print a JSON schema",
	Long:      `Print the JSON schema of exported layout files (default) or of config.toml.`,
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"layout", "config"},
	RunE: func(cmd *cobra.Command, args []string) error {
		subject := "layout"
		if len(args) == 1 {
			subject = args[0]
		}

		var schema *jsonschema.Schema
		switch subject {
		case "config":
			schema = config.ConfigSchema()
		case "layout":
			schema = layoutSchema()
		default:
			return fmt.Errorf("unknown schema %q", subject)
		}
		return writeJSON(cmd.OutOrStdout(), schema)
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func layoutSchema() *jsonschema.Schema {
	r := new(jsonschema.Reflector)
	schema := r.Reflect(&entity.LayoutBase{})
	schema.ID = "https://github.com/bnema/tabdock/layout.schema.json"
	schema.Title = "Tabdock Layout"
	schema.Description = "A persisted dock layout as written by 'tabdock layouts export'"
	return schema
}
