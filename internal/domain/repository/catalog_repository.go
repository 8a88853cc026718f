package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
)

// CatalogRepository is the read-only gateway to a business's menu catalog.
// The order engine never writes through it; menu management is a separate
// concern.
type CatalogRepository interface {
	// GetItems batch-fetches the given items of a business with their options
	// and variants. Items that do not exist or belong to another business are
	// simply absent from the result.
	GetItems(ctx context.Context, businessID uuid.UUID, itemIDs []uuid.UUID) ([]entity.MenuItem, error)
}
