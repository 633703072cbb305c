package configs

import (
	"embed"
	"fmt"
	"io/fs"
)

// CatalogFile is the embedded tool catalog.
const CatalogFile = "tools.yaml"

//go:embed *.yaml
var embeddedConfigs embed.FS

// Load returns the embedded YAML config by filename.
func Load(name string) ([]byte, error) {
	if name == "" {
		return nil, fmt.Errorf("embedded config name is empty")
	}
	data, err := fs.ReadFile(embeddedConfigs, name)
	if err != nil {
		return nil, fmt.Errorf("read embedded config %q: %w", name, err)
	}
	return data, nil
}
