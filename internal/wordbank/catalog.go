package wordbank

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// CatalogEntry describes one language the app offers.
type CatalogEntry struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	// File is the word bank base name without extension. Defaults to Name.
	File string `yaml:"file,omitempty"`
}

// BaseName returns the file base name used to look up the word bank.
func (e CatalogEntry) BaseName() string {
	if e.File != "" {
		return e.File
	}
	return e.Name
}

// Catalog is the ordered list of offered languages.
type Catalog struct {
	Languages []CatalogEntry `yaml:"languages"`
}

// Entry returns the catalog entry for a language id.
func (c Catalog) Entry(id string) (CatalogEntry, bool) {
	for _, e := range c.Languages {
		if e.ID == id {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

// ParseCatalog decodes a YAML language catalog.
func ParseCatalog(r io.Reader) (Catalog, error) {
	var c Catalog
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}
	seen := make(map[string]bool)
	for i, e := range c.Languages {
		e.ID = strings.TrimSpace(e.ID)
		if e.ID == "" {
			return Catalog{}, fmt.Errorf("catalog entry %d: missing id", i)
		}
		if seen[e.ID] {
			return Catalog{}, fmt.Errorf("catalog entry %d: duplicate id %q", i, e.ID)
		}
		seen[e.ID] = true
		if e.Name == "" {
			e.Name = strings.ToUpper(e.ID[:1]) + e.ID[1:]
		}
		c.Languages[i] = e
	}
	return c, nil
}
