package order

import (
	"context"

	"luxelush/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	SetStatus(ctx context.Context, id, status string) error

	// MarkEventProcessed records a webhook delivery and reports whether
	// this (order, event type) pair is being seen for the first time.
	// A false result means a replay: side effects must not run again.
	MarkEventProcessed(ctx context.Context, orderID, eventType string) (bool, error)
}
