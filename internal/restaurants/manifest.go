package restaurants

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MenuItem is one dish on a restaurant's menu
type MenuItem struct {
	Name     string  `yaml:"name" json:"name"`
	Price    float64 `yaml:"price" json:"price"`
	Category string  `yaml:"category" json:"category"`
}

// Manifest represents a parsed restaurant.yaml file. Slug and name are
// required; everything else is optional.
type Manifest struct {
	Slug        string     `yaml:"slug" json:"slug"`
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description" json:"description"`
	Cuisine     string     `yaml:"cuisine" json:"cuisine"`
	Address     string     `yaml:"address" json:"address"`
	Rating      float64    `yaml:"rating" json:"rating"`
	PriceForTwo int        `yaml:"price_for_two" json:"price_for_two"`
	Image       string     `yaml:"image" json:"image"`
	Menu        []MenuItem `yaml:"menu" json:"menu"`
}

// LoadManifest reads and parses a restaurant.yaml file with strict parsing.
// Unknown YAML fields are rejected (via KnownFields) to catch typos in
// hand-maintained catalog files.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read restaurant manifest: %w", err)
	}

	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse restaurant manifest: %w", err)
	}

	if m.Slug == "" {
		return nil, fmt.Errorf("restaurant manifest missing required field: slug")
	}
	if m.Name == "" {
		return nil, fmt.Errorf("restaurant manifest missing required field: name")
	}

	if err := validateManifest(&m); err != nil {
		return nil, err
	}

	return &m, nil
}
