package yaml

import (
	"context"
	"fmt"
	"os"

	"github.com/ochairo/hashwatch/internal/domain/services"
)

// CatalogRepository implements repositories.CatalogRepository.
// An empty path loads the built-in default catalog.
type CatalogRepository struct {
	path   string
	parser *CatalogParser
}

// NewCatalogRepository creates a new YAML-based catalog repository
func NewCatalogRepository(path string) *CatalogRepository {
	return &CatalogRepository{
		path:   path,
		parser: NewCatalogParser(),
	}
}

// LoadCatalog reads and validates the catalog
func (r *CatalogRepository) LoadCatalog(_ context.Context) (*services.Catalog, error) {
	if r.path == "" {
		return services.DefaultCatalog(), nil
	}

	// Check if file exists
	if _, err := os.Stat(r.path); os.IsNotExist(err) {
		return nil, fmt.Errorf("catalog not found: %s", r.path)
	}

	catalog, err := r.parser.ParseFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", r.path, err)
	}
	return catalog, nil
}
