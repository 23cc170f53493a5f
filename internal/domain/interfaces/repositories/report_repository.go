// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/ochairo/hashwatch/internal/domain/entities"
	"github.com/ochairo/hashwatch/internal/domain/services"
)

// CatalogRepository loads the variant catalog
type CatalogRepository interface {
	LoadCatalog(ctx context.Context) (*services.Catalog, error)
}

// ReportRepository persists run reports, one document per package
type ReportRepository interface {
	// SaveReport overwrites the stored report for pkg and returns its location
	SaveReport(ctx context.Context, pkg string, report *entities.RunReport) (string, error)

	// LoadReport reads the stored report for pkg
	LoadReport(ctx context.Context, pkg string) (*entities.RunReport, error)
}
