package review

import (
	"context"

	"luxelush/internal/domain"
)

type CreateReviewInput struct {
	ProductID string
	Author    string
	Rating    int
	Comment   string
}

type Repository interface {
	Create(ctx context.Context, in CreateReviewInput) (*domain.Review, error)
	ListApprovedByProduct(ctx context.Context, productID string) ([]domain.Review, error)
	ListByStatus(ctx context.Context, status string) ([]domain.Review, error)
	SetStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}
