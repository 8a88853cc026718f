package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
	domainRepo "github.com/mesahq/mesa-api/internal/domain/repository"
	"github.com/mesahq/mesa-api/pkg/apperror"
	"gorm.io/gorm"
)

type businessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository creates a new business repository
func NewBusinessRepository(db *gorm.DB) domainRepo.BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	var business entity.Business
	err := r.db.WithContext(ctx).First(&business, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &business, nil
}

// IncrementOrderCounter bumps the counter in a single UPDATE ... RETURNING so
// concurrent allocations for the same business serialize on the row and never
// see the same value.
func (r *businessRepository) IncrementOrderCounter(ctx context.Context, id uuid.UUID) (int64, error) {
	var counter int64
	res := r.db.WithContext(ctx).Raw(`
		UPDATE businesses
		SET order_counter = order_counter + 1, updated_at = ?
		WHERE id = ?
		RETURNING order_counter
	`, time.Now(), id).Scan(&counter)

	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, apperror.NewNotFoundError("Business")
	}
	return counter, nil
}
