package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	domainRepo "github.com/mesahq/mesa-api/internal/domain/repository"
	"gorm.io/gorm"
)

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) domainRepo.CatalogRepository {
	return &catalogRepository{db: db}
}

// GetItems batch-fetches menu items with options and variants in one round
// trip per level (prevents N+1). Items of other businesses are filtered out
// rather than erroring; the caller decides how to treat missing references.
func (r *catalogRepository) GetItems(ctx context.Context, businessID uuid.UUID, itemIDs []uuid.UUID) ([]entity.MenuItem, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	var items []entity.MenuItem
	err := r.db.WithContext(ctx).
		Preload("Options.Variants").
		Where("business_id = ? AND id IN ?", businessID, itemIDs).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
