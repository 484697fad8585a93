package review

import (
	"context"
	"strings"

	"luxelush/internal/domain"
	productrepo "luxelush/internal/repository/product"
	reviewrepo "luxelush/internal/repository/review"
)

// Service gates reviews through moderation: submissions land pending and
// only become public once an admin approves them.
type Service struct {
	reviews  reviewrepo.Repository
	products productrepo.Repository
}

func New(reviews reviewrepo.Repository, products productrepo.Repository) *Service {
	return &Service{reviews: reviews, products: products}
}

func (s *Service) Submit(ctx context.Context, in reviewrepo.CreateReviewInput) (*domain.Review, error) {
	if strings.TrimSpace(in.Author) == "" {
		return nil, domain.Validationf("review author is required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, domain.Validationf("rating must be between 1 and 5")
	}
	if _, err := s.products.GetByID(ctx, in.ProductID); err != nil {
		return nil, err
	}
	return s.reviews.Create(ctx, in)
}

func (s *Service) ListForProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	return s.reviews.ListApprovedByProduct(ctx, productID)
}

func (s *Service) ListPending(ctx context.Context) ([]domain.Review, error) {
	return s.reviews.ListByStatus(ctx, domain.ReviewPending)
}

func (s *Service) Moderate(ctx context.Context, id, status string) error {
	if status != domain.ReviewApproved && status != domain.ReviewRejected {
		return domain.Validationf("status must be %q or %q", domain.ReviewApproved, domain.ReviewRejected)
	}
	return s.reviews.SetStatus(ctx, id, status)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.reviews.Delete(ctx, id)
}
