package order

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"luxelush/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tags, err := json.Marshal(o.Tags)
	if err != nil {
		return err
	}

	const insertOrder = `
INSERT INTO orders (id, amount, currency, customer_id, customer_name, customer_email,
	customer_phone, note, return_url, notify_url, tags, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING created_at
`
	if err := tx.QueryRow(ctx, insertOrder,
		o.ID, o.Amount, o.Currency,
		o.Customer.ID, o.Customer.Name, o.Customer.Email, o.Customer.Phone,
		o.Note, o.ReturnURL, o.NotifyURL, tags, o.Status,
	).Scan(&o.CreatedAt); err != nil {
		return err
	}

	const insertItem = `
INSERT INTO order_items (order_id, product_id, name, variant_id, size, quantity, price)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	for _, it := range o.Items {
		if _, err := tx.Exec(ctx, insertItem,
			o.ID, it.ProductID, it.Name, it.VariantID, it.Size, it.Quantity, it.Price); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	const q = `
SELECT id, amount, currency, customer_id, customer_name, customer_email, customer_phone,
	COALESCE(note, ''), COALESCE(return_url, ''), COALESCE(notify_url, ''), tags, status, created_at
FROM orders
WHERE id = $1
`
	var (
		o    domain.Order
		tags []byte
	)
	err := r.pool.QueryRow(ctx, q, id).Scan(
		&o.ID, &o.Amount, &o.Currency,
		&o.Customer.ID, &o.Customer.Name, &o.Customer.Email, &o.Customer.Phone,
		&o.Note, &o.ReturnURL, &o.NotifyURL, &tags, &o.Status, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &o.Tags); err != nil {
			return nil, err
		}
	}

	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Order, error) {
	const q = `
SELECT id, amount, currency, customer_id, customer_name, customer_email, customer_phone,
	COALESCE(note, ''), status, created_at
FROM orders
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID, &o.Amount, &o.Currency,
			&o.Customer.ID, &o.Customer.Name, &o.Customer.Email, &o.Customer.Phone,
			&o.Note, &o.Status, &o.CreatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *postgresRepo) SetStatus(ctx context.Context, id, status string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) MarkEventProcessed(ctx context.Context, orderID, eventType string) (bool, error) {
	const q = `
INSERT INTO webhook_events (order_id, event_type)
VALUES ($1, $2)
ON CONFLICT (order_id, event_type) DO NOTHING
`
	cmd, err := r.pool.Exec(ctx, q, orderID, eventType)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *postgresRepo) loadItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	const q = `
SELECT product_id::text, name, variant_id::text, COALESCE(size, ''), quantity, price
FROM order_items
WHERE order_id = $1
ORDER BY id ASC
`
	rows, err := r.pool.Query(ctx, q, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.OrderItem{}
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ProductID, &it.Name, &it.VariantID, &it.Size, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
