// Package services implements domain business logic: catalog validation,
// version extraction and streaming digests.
package services

import (
	"fmt"
	"strings"

	"github.com/ochairo/hashwatch/internal/domain/entities"
)

// Catalog is the validated, immutable list of variants tracked for one package
type Catalog struct {
	pkg        string
	algorithms []string
	variants   []entities.VariantSpec
}

// NewCatalog validates variants once and returns an immutable catalog.
// A nil algorithms slice selects DefaultAlgorithms.
func NewCatalog(pkg string, variants []entities.VariantSpec, algorithms []string) (*Catalog, error) {
	if pkg == "" || strings.ContainsAny(pkg, `/\`) || pkg == "." || pkg == ".." {
		return nil, fmt.Errorf("%w: invalid package name %q", entities.ErrInvalidCatalog, pkg)
	}

	if len(algorithms) == 0 {
		algorithms = DefaultAlgorithms
	}
	if _, err := LookupAlgorithms(algorithms); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrInvalidCatalog, err)
	}

	seen := make(map[string]bool, len(variants))
	for i, v := range variants {
		if v.Name == "" {
			return nil, fmt.Errorf("%w: variant %d has no name", entities.ErrInvalidCatalog, i)
		}
		if seen[v.Name] {
			return nil, fmt.Errorf("%w: duplicate variant %s", entities.ErrInvalidCatalog, v.Name)
		}
		seen[v.Name] = true

		if v.VersionPageURL == "" {
			return nil, fmt.Errorf("%w: variant %s has no version page URL", entities.ErrInvalidCatalog, v.Name)
		}
		if _, err := compileVersionPattern(v.VersionPattern); err != nil {
			return nil, fmt.Errorf("variant %s: %w", v.Name, err)
		}
		if err := validateTemplate(v.DownloadURLTemplate); err != nil {
			return nil, fmt.Errorf("variant %s: %w", v.Name, err)
		}
	}

	return &Catalog{
		pkg:        pkg,
		algorithms: append([]string(nil), algorithms...),
		variants:   append([]entities.VariantSpec(nil), variants...),
	}, nil
}

// Package returns the tracked package name, used to name the report file
func (c *Catalog) Package() string {
	return c.pkg
}

// Algorithms returns the digest algorithms in output order
func (c *Catalog) Algorithms() []string {
	return append([]string(nil), c.algorithms...)
}

// Variants returns the variants in catalog order
func (c *Catalog) Variants() []entities.VariantSpec {
	return append([]entities.VariantSpec(nil), c.variants...)
}

// Len returns the number of variants
func (c *Catalog) Len() int {
	return len(c.variants)
}
