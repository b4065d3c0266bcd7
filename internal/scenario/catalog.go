package scenario

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/mipractice/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.json
var defaultCatalogJSON []byte

// Catalog is the static reference data profile generation draws from.
type Catalog struct {
	Version   string                          `json:"version" yaml:"version"`
	Names     []string                        `json:"names" yaml:"names"`
	Sexes     []domain.Sex                    `json:"sexes" yaml:"sexes"`
	Templates []domain.PatientProfileTemplate `json:"templates" yaml:"templates"`
}

// DefaultCatalog returns the built-in catalog. It panics if the embedded
// file is invalid, which would be a build defect.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalogJSON, ".json")
	if err != nil {
		panic(fmt.Sprintf("embedded scenario catalog: %v", err))
	}
	return c
}

// LoadCatalog reads a catalog from a JSON or YAML file, chosen by extension.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario catalog: %w", err)
	}
	return ParseCatalog(data, filepath.Ext(path))
}

// ParseCatalog decodes and validates catalog data. ext selects the format;
// ".yaml" and ".yml" decode as YAML, anything else as JSON.
func ParseCatalog(data []byte, ext string) (*Catalog, error) {
	var c Catalog
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parsing scenario catalog: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parsing scenario catalog: %w", err)
		}
	}
	if errs := ValidateCatalog(&c); len(errs) > 0 {
		return nil, fmt.Errorf("invalid scenario catalog: %w", errors.Join(errs...))
	}
	return &c, nil
}

// Topics returns the distinct template topics in table order.
func (c *Catalog) Topics() []string {
	seen := make(map[string]bool, len(c.Templates))
	var topics []string
	for _, t := range c.Templates {
		if seen[t.Topic] {
			continue
		}
		seen[t.Topic] = true
		topics = append(topics, t.Topic)
	}
	return topics
}

// TemplatesForTopic returns templates whose topic matches case-insensitively.
// An empty topic, or one with no matches, returns the whole table.
func (c *Catalog) TemplatesForTopic(topic string) []domain.PatientProfileTemplate {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return c.Templates
	}
	var matched []domain.PatientProfileTemplate
	for _, t := range c.Templates {
		if strings.EqualFold(t.Topic, topic) {
			matched = append(matched, t)
		}
	}
	if len(matched) == 0 {
		return c.Templates
	}
	return matched
}
