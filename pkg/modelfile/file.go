// Package modelfile handles semantic-model documents on disk and the text
// artefacts generated from them (DDL, LookML).
package modelfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ha1tch/semgraph/pkg/model"
)

// Load reads a model document, picking the codec from the file extension.
// .yaml and .yml parse as YAML; .json as JSON. The loaded model is validated
// before it is returned.
func Load(path string) (*model.SemanticModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}

	var m model.SemanticModel
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported model file extension %q", filepath.Ext(path))
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model in %s: %w", path, err)
	}
	return &m, nil
}

// LoadCategories reads a YAML document mapping entity ids to category
// labels.
func LoadCategories(path string) (model.CategoryMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading categories file: %w", err)
	}
	var cats model.CategoryMap
	if err := yaml.Unmarshal(data, &cats); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cats, nil
}

// Save writes a model document, picking the codec from the file extension.
func Save(m *model.SemanticModel, path string) error {
	data, err := Marshal(m, filepath.Ext(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing model file: %w", err)
	}
	return nil
}

// Marshal encodes a model for the given extension (".yaml", ".yml", ".json").
func Marshal(m *model.SemanticModel, ext string) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		data, err := yaml.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("encoding model: %w", err)
		}
		return data, nil
	case ".json":
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding model: %w", err)
		}
		return append(data, '\n'), nil
	}
	return nil, fmt.Errorf("unsupported model file extension %q", ext)
}
