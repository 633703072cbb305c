package catalog

import (
	"fmt"
	"strings"
)

// Validate verifies required fields of the catalog.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if strings.TrimSpace(cfg.Server.Name) == "" {
		return fmt.Errorf("server.name is required")
	}
	if strings.TrimSpace(cfg.Server.Version) == "" {
		return fmt.Errorf("server.version is required")
	}
	if len(cfg.Tools) == 0 {
		return fmt.Errorf("tools must not be empty")
	}

	toolNames := map[string]struct{}{}
	for i, tool := range cfg.Tools {
		if strings.TrimSpace(tool.Name) == "" {
			return fmt.Errorf("tools[%d].name is required", i)
		}
		if _, exists := toolNames[tool.Name]; exists {
			return fmt.Errorf("duplicate tool name: %s", tool.Name)
		}
		toolNames[tool.Name] = struct{}{}
		if strings.TrimSpace(tool.Description) == "" {
			return fmt.Errorf("tools[%d].description is required", i)
		}
		if tool.InputSchema == nil {
			return fmt.Errorf("tools[%d].input_schema is required", i)
		}
	}
	return nil
}
