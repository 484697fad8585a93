package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type variantSeed struct {
	Color     string
	ColorCode string
	Stock     int
	Price     int64
}

type productSeed struct {
	Name        string
	Description string
	BasePrice   int64
	Category    string
	Sizes       []string
	Materials   []string
	Variants    []variantSeed
}

// Apply inserts catalog data for manual testing. Reruns are safe:
// products are matched by name, variants by (product, color).
func Apply(ctx context.Context, pool *pgxpool.Pool, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	products := []productSeed{
		{
			Name:        "Gold Hoop Earrings",
			Description: "Hand-finished 18k gold-plated hoops with a secure hinge clasp.",
			BasePrice:   2499,
			Category:    "earrings",
			Materials:   []string{"18k gold plating", "sterling silver base"},
			Variants: []variantSeed{
				{Color: "Gold", ColorCode: "#D4AF37", Stock: 24},
				{Color: "Rose Gold", ColorCode: "#B76E79", Stock: 12, Price: 200},
			},
		},
		{
			Name:        "Pearl Pendant Necklace",
			Description: "Freshwater pearl on an adjustable cable chain.",
			BasePrice:   3299,
			Category:    "necklaces",
			Sizes:       []string{"16in", "18in", "20in"},
			Materials:   []string{"freshwater pearl", "sterling silver"},
			Variants: []variantSeed{
				{Color: "Silver", ColorCode: "#C0C0C0", Stock: 18},
				{Color: "Gold", ColorCode: "#D4AF37", Stock: 9, Price: 300},
			},
		},
		{
			Name:        "Stacking Ring Set",
			Description: "Set of three slim bands designed to be worn together or apart.",
			BasePrice:   1899,
			Category:    "rings",
			Sizes:       []string{"5", "6", "7", "8"},
			Materials:   []string{"sterling silver"},
			Variants: []variantSeed{
				{Color: "Silver", ColorCode: "#C0C0C0", Stock: 30},
			},
		},
		{
			Name:        "Charm Bracelet",
			Description: "Personalizable charm bracelet with an engravable tag.",
			BasePrice:   2799,
			Category:    "bracelets",
			Sizes:       []string{"S", "M", "L"},
			Materials:   []string{"18k gold plating"},
			Variants: []variantSeed{
				{Color: "Gold", ColorCode: "#D4AF37", Stock: 15},
				{Color: "Silver", ColorCode: "#C0C0C0", Stock: 0},
			},
		},
	}

	for _, p := range products {
		id, err := ensureProduct(ctx, pool, p)
		if err != nil {
			return fmt.Errorf("ensure product %q: %w", p.Name, err)
		}
		for _, v := range p.Variants {
			if err := ensureVariant(ctx, pool, id, v); err != nil {
				return fmt.Errorf("ensure variant %q of %q: %w", v.Color, p.Name, err)
			}
		}
		log.Info("seeded product", zap.String("name", p.Name), zap.String("id", id))
	}
	return nil
}

func ensureProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) (string, error) {
	var id string
	err := pool.QueryRow(ctx, `SELECT id::text FROM products WHERE name = $1`, p.Name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	const insert = `
INSERT INTO products (name, description, base_price, category, sizes, materials)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id::text
`
	sizes := p.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	err = pool.QueryRow(ctx, insert, p.Name, p.Description, p.BasePrice, p.Category, sizes, p.Materials).Scan(&id)
	return id, err
}

func ensureVariant(ctx context.Context, pool *pgxpool.Pool, productID string, v variantSeed) error {
	var exists bool
	err := pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM variants WHERE product_id = $1 AND color = $2)`,
		productID, v.Color).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = pool.Exec(ctx, `
INSERT INTO variants (product_id, color, color_code, stock, price)
VALUES ($1, $2, $3, $4, $5)
`, productID, v.Color, v.ColorCode, v.Stock, v.Price)
	return err
}
