package ports

import (
	"context"

	"github.com/google/uuid"
)

// ResultCache keeps derived per-choice counts out of the hot path.
// Implementations must treat a miss as (nil, nil); callers always fall
// back to the repository aggregation.
type ResultCache interface {
	GetCounts(ctx context.Context, questionID uuid.UUID) (map[uuid.UUID]int64, error)
	SetCounts(ctx context.Context, questionID uuid.UUID, counts map[uuid.UUID]int64) error
	Invalidate(ctx context.Context, questionID uuid.UUID) error
}
