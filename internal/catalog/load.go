package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/jsonschema-go/jsonschema"
	"gopkg.in/yaml.v3"
)

// Load parses YAML bytes into a Catalog and validates it.
func Load(data []byte) (*Catalog, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return compile(&cfg)
}

func compile(cfg *Config) (*Catalog, error) {
	tools := make([]Descriptor, 0, len(cfg.Tools))
	for i, tool := range cfg.Tools {
		schema, err := toSchema(tool.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("tools[%d].input_schema: %w", i, err)
		}
		tools = append(tools, Descriptor{
			Name:        tool.Name,
			Title:       tool.Title,
			Description: tool.Description,
			Annotations: tool.Annotations,
			InputSchema: schema,
		})
	}
	return &Catalog{Server: cfg.Server, tools: tools}, nil
}

func toSchema(raw map[string]any) (*jsonschema.Schema, error) {
	normalized, err := normalizeValue(raw)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(normalized)
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	if schema.Type != "object" {
		return nil, fmt.Errorf("schema type must be object, got %q", schema.Type)
	}
	return &schema, nil
}

func normalizeValue(value any) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			normalized, err := normalizeValue(val)
			if err != nil {
				return nil, err
			}
			out[key] = normalized
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			keyStr, ok := key.(string)
			if !ok {
				return nil, fmt.Errorf("schema key must be string, got %T", key)
			}
			normalized, err := normalizeValue(val)
			if err != nil {
				return nil, err
			}
			out[keyStr] = normalized
		}
		return out, nil
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			normalized, err := normalizeValue(item)
			if err != nil {
				return nil, err
			}
			out[i] = normalized
		}
		return out, nil
	default:
		return value, nil
	}
}
