package product

import (
	"context"

	"luxelush/internal/domain"
)

type CreateProductInput struct {
	Name        string
	Description string
	BasePrice   int64
	Category    string
	Sizes       []string
	Materials   []string
}

type VariantInput struct {
	Color     string
	ColorCode string
	Images    []string
	Stock     int
	Price     int64
}

type Repository interface {
	List(ctx context.Context, category string) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in CreateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error

	AddVariant(ctx context.Context, productID string, in VariantInput) (*domain.Variant, error)
	UpdateVariant(ctx context.Context, variantID string, in VariantInput) (*domain.Variant, error)
	DeleteVariant(ctx context.Context, variantID string) error
	AppendVariantImage(ctx context.Context, variantID, url string) error
	DecrementStock(ctx context.Context, variantID string, quantity int) error
}
