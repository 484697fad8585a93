package product

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"luxelush/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, log *zap.Logger) Repository {
	if log == nil {
		log = zap.NewNop()
	}
	return &postgresRepo{pool: pool, log: log}
}

const productColumns = `
p.id::text, p.name, COALESCE(p.description, ''), p.base_price, p.category,
p.sizes, p.materials, p.created_at,
COALESCE(r.avg_rating, 0), COALESCE(r.review_count, 0)
`

const ratingJoin = `
LEFT JOIN (
	SELECT product_id, AVG(rating)::float8 AS avg_rating, COUNT(*)::int AS review_count
	FROM reviews
	WHERE status = 'approved'
	GROUP BY product_id
) r ON r.product_id = p.id
`

func (r *postgresRepo) List(ctx context.Context, category string) ([]domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products p ` + ratingJoin
	args := []interface{}{}
	if category != "" {
		q += ` WHERE p.category = $1`
		args = append(args, category)
	}
	q += ` ORDER BY p.created_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	ids := []string{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return products, nil
	}

	variantsByProduct, err := r.loadVariants(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].Variants = variantsByProduct[products[i].ID]
		if products[i].Variants == nil {
			products[i].Variants = []domain.Variant{}
		}
	}
	r.log.Debug("product list", zap.String("category", category), zap.Int("count", len(products)))
	return products, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products p ` + ratingJoin + ` WHERE p.id = $1`
	row := r.pool.QueryRow(ctx, q, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	variantsByProduct, err := r.loadVariants(ctx, []string{p.ID})
	if err != nil {
		return nil, err
	}
	p.Variants = variantsByProduct[p.ID]
	if p.Variants == nil {
		p.Variants = []domain.Variant{}
	}
	return &p, nil
}

func (r *postgresRepo) Create(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, description, base_price, category, sizes, materials)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text, created_at
`
	p := domain.Product{
		Name:        in.Name,
		Description: in.Description,
		BasePrice:   in.BasePrice,
		Category:    in.Category,
		Sizes:       in.Sizes,
		Materials:   in.Materials,
		Variants:    []domain.Variant{},
	}
	if err := r.pool.QueryRow(ctx, q, in.Name, in.Description, in.BasePrice, in.Category, in.Sizes, in.Materials).
		Scan(&p.ID, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) Update(ctx context.Context, id string, in CreateProductInput) (*domain.Product, error) {
	const q = `
UPDATE products
SET name = $1, description = $2, base_price = $3, category = $4, sizes = $5, materials = $6
WHERE id = $7
RETURNING id::text
`
	var updated string
	if err := r.pool.QueryRow(ctx, q, in.Name, in.Description, in.BasePrice, in.Category, in.Sizes, in.Materials, id).
		Scan(&updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) AddVariant(ctx context.Context, productID string, in VariantInput) (*domain.Variant, error) {
	const q = `
INSERT INTO variants (product_id, color, color_code, images, stock, price)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text
`
	v := domain.Variant{
		ProductID: productID,
		Color:     in.Color,
		ColorCode: in.ColorCode,
		Images:    in.Images,
		Stock:     in.Stock,
		Price:     in.Price,
	}
	if err := r.pool.QueryRow(ctx, q, productID, in.Color, in.ColorCode, in.Images, in.Stock, in.Price).
		Scan(&v.ID); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *postgresRepo) UpdateVariant(ctx context.Context, variantID string, in VariantInput) (*domain.Variant, error) {
	const q = `
UPDATE variants
SET color = $1, color_code = $2, images = $3, stock = $4, price = $5
WHERE id = $6
RETURNING id::text, product_id::text
`
	v := domain.Variant{
		Color:     in.Color,
		ColorCode: in.ColorCode,
		Images:    in.Images,
		Stock:     in.Stock,
		Price:     in.Price,
	}
	if err := r.pool.QueryRow(ctx, q, in.Color, in.ColorCode, in.Images, in.Stock, in.Price, variantID).
		Scan(&v.ID, &v.ProductID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *postgresRepo) DeleteVariant(ctx context.Context, variantID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM variants WHERE id = $1`, variantID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) AppendVariantImage(ctx context.Context, variantID, url string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE variants SET images = array_append(images, $1) WHERE id = $2`, url, variantID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementStock floors at zero: a confirmed sale never drives stock
// negative even if the catalog was edited while payment was in flight.
func (r *postgresRepo) DecrementStock(ctx context.Context, variantID string, quantity int) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE variants
SET stock = GREATEST(stock - $1, 0)
WHERE id = $2
`, quantity, variantID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) loadVariants(ctx context.Context, productIDs []string) (map[string][]domain.Variant, error) {
	const q = `
SELECT id::text, product_id::text, color, COALESCE(color_code, ''), images, stock, price
FROM variants
WHERE product_id::text = ANY($1)
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, productIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]domain.Variant)
	for rows.Next() {
		var v domain.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Color, &v.ColorCode, &v.Images, &v.Stock, &v.Price); err != nil {
			return nil, err
		}
		out[v.ProductID] = append(out[v.ProductID], v)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.BasePrice,
		&p.Category,
		&p.Sizes,
		&p.Materials,
		&p.CreatedAt,
		&p.Rating.Average,
		&p.Rating.Count,
	)
	return p, err
}
