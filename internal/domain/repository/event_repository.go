package repository

import (
	"context"

	"github.com/eventfeed/eventfeed-api/internal/domain/entity"
)

// EventRepository defines the interface for event persistence.
// List returns events newest first joined with the owner projection;
// Count and List are separate reads with no transactional isolation.
type EventRepository interface {
	Create(ctx context.Context, e *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	List(ctx context.Context, offset, limit int) ([]entity.FeedEvent, error)
	Count(ctx context.Context) (int, error)
	ListByOwner(ctx context.Context, userID string) ([]entity.Event, error)
	Delete(ctx context.Context, id string) error
}
