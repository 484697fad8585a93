package review

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"luxelush/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateReviewInput) (*domain.Review, error) {
	const q = `
INSERT INTO reviews (product_id, author, rating, comment, status)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, created_at
`
	rv := domain.Review{
		ProductID: in.ProductID,
		Author:    in.Author,
		Rating:    in.Rating,
		Comment:   in.Comment,
		Status:    domain.ReviewPending,
	}
	if err := r.pool.QueryRow(ctx, q, in.ProductID, in.Author, in.Rating, in.Comment, rv.Status).
		Scan(&rv.ID, &rv.CreatedAt); err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *postgresRepo) ListApprovedByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	const q = `
SELECT id::text, product_id::text, author, rating, COALESCE(comment, ''), status, created_at
FROM reviews
WHERE product_id = $1 AND status = $2
ORDER BY created_at DESC
`
	return r.list(ctx, q, productID, domain.ReviewApproved)
}

func (r *postgresRepo) ListByStatus(ctx context.Context, status string) ([]domain.Review, error) {
	const q = `
SELECT id::text, product_id::text, author, rating, COALESCE(comment, ''), status, created_at
FROM reviews
WHERE status = $1
ORDER BY created_at ASC
`
	return r.list(ctx, q, status)
}

func (r *postgresRepo) SetStatus(ctx context.Context, id, status string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE reviews SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.Review, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.Author, &rv.Rating, &rv.Comment, &rv.Status, &rv.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
