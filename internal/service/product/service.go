package product

import (
	"context"
	"strings"

	"luxelush/internal/domain"
	productrepo "luxelush/internal/repository/product"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, category string) ([]domain.Product, error) {
	return s.repo.List(ctx, category)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in productrepo.CreateProductInput) (*domain.Product, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, in)
}

func (s *Service) Update(ctx context.Context, id string, in productrepo.CreateProductInput) (*domain.Product, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) AddVariant(ctx context.Context, productID string, in productrepo.VariantInput) (*domain.Variant, error) {
	if err := validateVariant(in); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.AddVariant(ctx, productID, in)
}

func (s *Service) UpdateVariant(ctx context.Context, variantID string, in productrepo.VariantInput) (*domain.Variant, error) {
	if err := validateVariant(in); err != nil {
		return nil, err
	}
	return s.repo.UpdateVariant(ctx, variantID, in)
}

func (s *Service) DeleteVariant(ctx context.Context, variantID string) error {
	return s.repo.DeleteVariant(ctx, variantID)
}

func (s *Service) AppendVariantImage(ctx context.Context, variantID, url string) error {
	return s.repo.AppendVariantImage(ctx, variantID, url)
}

func validateProduct(in productrepo.CreateProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Validationf("product name is required")
	}
	if in.BasePrice < 0 {
		return domain.Validationf("base price must not be negative")
	}
	if strings.TrimSpace(in.Category) == "" {
		return domain.Validationf("product category is required")
	}
	return nil
}

func validateVariant(in productrepo.VariantInput) error {
	if strings.TrimSpace(in.Color) == "" {
		return domain.Validationf("variant color is required")
	}
	if in.Stock < 0 {
		return domain.Validationf("variant stock must not be negative")
	}
	if in.Price < 0 {
		return domain.Validationf("variant price must not be negative")
	}
	return nil
}
