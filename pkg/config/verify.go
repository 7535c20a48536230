package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	// parse schema
	var schema map[string]any
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	// every top-level section declared by the schema has to be present
	if err := checkSections(schema, configMap); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// basic validation - check required fields match
	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// checkSections compares top-level properties of the Config definition with the marshaled config
func checkSections(schema, configMap map[string]any) error {
	defs, ok := schema["$defs"].(map[string]any)
	if !ok {
		return fmt.Errorf("schema has no definitions")
	}
	root, ok := defs["Config"].(map[string]any)
	if !ok {
		return fmt.Errorf("schema has no Config definition")
	}
	props, ok := root["properties"].(map[string]any)
	if !ok {
		return fmt.Errorf("schema Config has no properties")
	}
	for name := range props {
		if _, found := configMap[name]; !found {
			return fmt.Errorf("section %q is missing", name)
		}
	}
	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if cfg.State.Path == "" {
		return fmt.Errorf("state.path is required")
	}
	for i, src := range cfg.Sources {
		if src.Name == "" {
			return fmt.Errorf("sources[%d].name is required", i)
		}
		if src.URL == "" {
			return fmt.Errorf("sources[%d].url is required", i)
		}
	}
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
