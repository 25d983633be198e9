package search

import (
	"context"

	"github.com/tanakakogyo/shopkb/internal/domain/record"
)

// CatalogLoader reads the full product catalog.
type CatalogLoader interface {
	LoadCompanies(ctx context.Context) ([]record.Company, error)
}

// DrawingLoader reads all work-instruction records.
type DrawingLoader interface {
	LoadDrawings(ctx context.Context) ([]record.Drawing, error)
}

// ContributionLoader reads all community contributions.
type ContributionLoader interface {
	LoadContributions(ctx context.Context) ([]record.Contribution, error)
}
