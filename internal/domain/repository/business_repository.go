package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mesahq/mesa-api/internal/domain/entity"
)

// BusinessRepository is the gateway to the per-business ledger record: the
// tax rate and the monotonic order counter.
type BusinessRepository interface {
	// GetByID returns (nil, nil) when the business does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Business, error)

	// IncrementOrderCounter atomically increments the business's order counter
	// and returns the new value. Concurrent calls for the same business never
	// observe the same value. Returns a not-found error when the business does
	// not exist. Counter values are never reused, even if the order that
	// consumed one is later cancelled.
	IncrementOrderCounter(ctx context.Context, id uuid.UUID) (int64, error)
}
