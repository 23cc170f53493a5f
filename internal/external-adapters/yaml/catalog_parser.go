// Package yaml provides YAML-based variant catalog parsing and loading.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ochairo/hashwatch/internal/domain/entities"
	"github.com/ochairo/hashwatch/internal/domain/services"
)

// yamlCatalog represents the raw YAML structure
type yamlCatalog struct {
	Package    string        `yaml:"package"`
	Algorithms []string      `yaml:"algorithms"`
	Variants   []yamlVariant `yaml:"variants"`
}

type yamlVariant struct {
	Name     string       `yaml:"name"`
	Version  yamlVersion  `yaml:"version"`
	Download yamlDownload `yaml:"download"`
}

type yamlVersion struct {
	URL     string `yaml:"url"`
	Pattern string `yaml:"pattern"`
}

type yamlDownload struct {
	URL string `yaml:"url"`
}

// CatalogParser parses YAML catalog files
type CatalogParser struct{}

// NewCatalogParser creates a new YAML parser
func NewCatalogParser() *CatalogParser {
	return &CatalogParser{}
}

// ParseFile parses a YAML catalog file into a validated Catalog
func (p *CatalogParser) ParseFile(filePath string) (*services.Catalog, error) {
	//nolint:gosec // G304: filePath is the catalog path given on the command line
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into a validated Catalog
func (p *CatalogParser) Parse(data []byte) (*services.Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var raw yamlCatalog
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: catalog is empty", entities.ErrInvalidCatalog)
		}
		return nil, fmt.Errorf("%w: failed to parse YAML: %v", entities.ErrInvalidCatalog, err)
	}

	// Validate required fields
	if raw.Package == "" {
		return nil, fmt.Errorf("%w: catalog must have a package name", entities.ErrInvalidCatalog)
	}

	variants := make([]entities.VariantSpec, 0, len(raw.Variants))
	for _, v := range raw.Variants {
		variants = append(variants, convertVariant(v))
	}

	return services.NewCatalog(raw.Package, variants, raw.Algorithms)
}

func convertVariant(yv yamlVariant) entities.VariantSpec {
	return entities.VariantSpec{
		Name:                yv.Name,
		VersionPageURL:      yv.Version.URL,
		VersionPattern:      yv.Version.Pattern,
		DownloadURLTemplate: yv.Download.URL,
	}
}
