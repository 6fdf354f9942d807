package ports

import (
	"context"

	"github.com/gorchard/farmhand/internal/domain"
)

// CatalogSource provides the pricing/name lookup table. Implementations
// cache: when the underlying data is unchanged, Load returns the identical
// *domain.Catalog it returned last time.
type CatalogSource interface {
	Load(ctx context.Context) (*domain.Catalog, error)
}
