// Package repository loads the embedded reference price catalog.
package repository

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed reference_prices.yaml
var catalogYAML []byte

// Entry is a single reference price line: a cost-basis unit price for a
// unit of work, used to ground estimate generation.
type Entry struct {
	Code        string   `yaml:"code"`
	Description string   `yaml:"description"`
	Unit        string   `yaml:"unit"`
	UnitPrice   float64  `yaml:"unit_price"`
	Keywords    []string `yaml:"keywords"`
}

// Category groups entries under a named work category, in catalog order.
type Category struct {
	Name    string  `yaml:"name"`
	Entries []Entry `yaml:"entries"`
}

type catalogFile struct {
	Categories []Category `yaml:"categories"`
}

// Repo provides read access to the embedded catalog. The catalog is
// parsed once on first access.
type Repo struct {
	once       sync.Once
	categories []Category
	loadErr    error
}

// New creates a catalog repository backed by the embedded YAML file.
func New() *Repo {
	return &Repo{}
}

func (r *Repo) load() {
	var file catalogFile
	if err := yaml.Unmarshal(catalogYAML, &file); err != nil {
		r.loadErr = fmt.Errorf("parse reference price catalog: %w", err)
		return
	}
	r.categories = file.Categories
}

// Categories returns all catalog categories in catalog order.
func (r *Repo) Categories() ([]Category, error) {
	r.once.Do(r.load)
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return r.categories, nil
}
