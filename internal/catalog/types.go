package catalog

import "github.com/google/jsonschema-go/jsonschema"

// Config is the top-level YAML catalog.
type Config struct {
	// Server describes the MCP server identity.
	Server ServerConfig `yaml:"server"`
	// Tools lists all tool declarations.
	Tools []ToolConfig `yaml:"tools"`
}

// ServerConfig defines MCP server identity.
type ServerConfig struct {
	// Name is the MCP server name.
	Name string `yaml:"name"`
	// Version is the MCP server version.
	Version string `yaml:"version"`
}

// ToolConfig declares a tool exposed by the MCP server.
type ToolConfig struct {
	// Name is the tool name.
	Name string `yaml:"name"`
	// Title is the human-friendly tool title.
	Title string `yaml:"title"`
	// Description explains the tool for the agent.
	Description string `yaml:"description"`
	// Annotations provides optional tool hints.
	Annotations *ToolAnnotationsConfig `yaml:"annotations,omitempty"`
	// InputSchema defines JSON Schema for tool input.
	InputSchema map[string]any `yaml:"input_schema"`
}

// ToolAnnotationsConfig defines tool behavior hints.
type ToolAnnotationsConfig struct {
	// ReadOnlyHint indicates a read-only tool.
	ReadOnlyHint bool `yaml:"read_only_hint,omitempty"`
	// DestructiveHint indicates the tool may be destructive.
	DestructiveHint *bool `yaml:"destructive_hint,omitempty"`
	// IdempotentHint indicates repeated calls have no additional effect.
	IdempotentHint bool `yaml:"idempotent_hint,omitempty"`
	// OpenWorldHint indicates interaction with external entities.
	OpenWorldHint *bool `yaml:"open_world_hint,omitempty"`
	// Title is an optional tool display title.
	Title string `yaml:"title,omitempty"`
}

// Descriptor is an immutable catalog entry with a compiled input schema.
type Descriptor struct {
	Name        string
	Title       string
	Description string
	Annotations *ToolAnnotationsConfig
	InputSchema *jsonschema.Schema
}

// Catalog is the validated, ordered set of tool descriptors.
type Catalog struct {
	Server ServerConfig
	tools  []Descriptor
}

// Tools returns a copy of the descriptors in declaration order.
func (c *Catalog) Tools() []Descriptor {
	if c == nil {
		return nil
	}
	out := make([]Descriptor, len(c.tools))
	copy(out, c.tools)
	return out
}

// Lookup returns the descriptor with the given name.
func (c *Catalog) Lookup(name string) (Descriptor, bool) {
	if c == nil {
		return Descriptor{}, false
	}
	for _, tool := range c.tools {
		if tool.Name == name {
			return tool, true
		}
	}
	return Descriptor{}, false
}
