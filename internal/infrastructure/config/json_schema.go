package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
)

const schemaName = "config.schema.json"

// ConfigSchema returns the JSON schema of config.toml. Property names follow
// the TOML keys.
func ConfigSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{FieldNameTag: "toml"}
	schema := r.Reflect(&Config{})
	schema.ID = "https://github.com/bnema/tabdock/config.schema.json"
	schema.Title = "Tabdock Configuration"
	schema.Description = "Configuration schema for tabdock, a dockable tab and panel layout engine"
	return schema
}

// writeSchemaFile writes ConfigSchema next to config.toml so editors can
// validate it.
func writeSchemaFile(dir string) error {
	data, err := json.MarshalIndent(ConfigSchema(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, schemaName), data, filePerm); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	return nil
}
