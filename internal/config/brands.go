package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Brand defines what to track for one brand: the keywords that double as
// content themes, the competitor and influencer handles, and which
// categories the scheduler should gather automatically.
type Brand struct {
	Keywords    []string   `json:"keywords"`
	Competitors []string   `json:"competitors"`
	Influencers []string   `json:"influencers"`
	Monitoring  Monitoring `json:"monitoring"`
}

// Monitoring flags gate scheduled runs; an explicit one-shot run always
// honors its own category options instead.
type Monitoring struct {
	Competitors bool `json:"competitors"`
	Influencers bool `json:"influencers"`
	Trends      bool `json:"trends"`
}

// Brands maps brand identifier to its definition.
type Brands map[string]Brand

// LoadBrands reads the brand definitions file. A missing or unreadable
// file is a fatal configuration error.
func LoadBrands(path string) (Brands, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read brands config %s: %w", path, err)
	}

	var brands Brands
	if err := json.Unmarshal(data, &brands); err != nil {
		return nil, fmt.Errorf("failed to parse brands config %s: %w", path, err)
	}

	return brands, nil
}

// Get returns the named brand. A missing brand key is a fatal
// configuration error.
func (b Brands) Get(name string) (Brand, error) {
	brand, ok := b[name]
	if !ok {
		return Brand{}, fmt.Errorf("brand %q not found in configuration", name)
	}
	return brand, nil
}
