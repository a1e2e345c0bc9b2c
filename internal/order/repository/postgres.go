package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/model"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/order"
	"github.com/shakthiprasad243/NaveenTextiles-sub001/internal/order/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

const insertOrderQuery = `
    INSERT INTO orders (
        id, order_number, customer_name, customer_phone, customer_email,
        shipping_address, subtotal, shipping, total, payment_method,
        status, whatsapp_message, reserved_until, created_at, updated_at
    )
    VALUES (
        :id, :order_number, :customer_name, :customer_phone, :customer_email,
        :shipping_address, :subtotal, :shipping, :total, :payment_method,
        :status, :whatsapp_message, :reserved_until, :created_at, :updated_at
    )
`

const insertOrderItemQuery = `
    INSERT INTO order_items (
        id, order_id, product_variant_id, product_name, size, color,
        qty, unit_price, line_total
    )
    VALUES (
        :id, :order_id, :product_variant_id, :product_name, :size, :color,
        :qty, :unit_price, :line_total
    )
`

func (r *PGRepository) CreateWithItems(ctx context.Context, o *model.Order) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.NamedExecContext(ctx, insertOrderQuery, o); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	if _, err := tx.NamedExecContext(ctx, insertOrderItemQuery, o.Items); err != nil {
		return fmt.Errorf("failed to insert order items: %w", err)
	}

	return tx.Commit()
}

func (r *PGRepository) Delete(ctx context.Context, orderID string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, orderID); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	return tx.Commit()
}

func (r *PGRepository) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	return r.getOne(ctx, `SELECT * FROM orders WHERE id = $1`, orderID)
}

func (r *PGRepository) GetByNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	return r.getOne(ctx, `SELECT * FROM orders WHERE order_number = $1`, orderNumber)
}

func (r *PGRepository) getOne(ctx context.Context, query, arg string) (*model.Order, error) {
	var o model.Order
	if err := r.DB.GetContext(ctx, &o, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, err
	}
	if err := r.loadItems(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) loadItems(ctx context.Context, o *model.Order) error {
	return r.DB.SelectContext(ctx, &o.Items, `
        SELECT * FROM order_items WHERE order_id = $1
    `, o.ID)
}

func (r *PGRepository) ListByPhone(ctx context.Context, phone string) ([]model.Order, error) {
	var items []model.Order
	err := r.DB.SelectContext(ctx, &items, `
        SELECT * FROM orders WHERE customer_phone = $1 ORDER BY created_at DESC
    `, phone)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if err := r.loadItems(ctx, &items[i]); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (r *PGRepository) ListExpiredPending(ctx context.Context, now time.Time) ([]model.Order, error) {
	var items []model.Order
	err := r.DB.SelectContext(ctx, &items, `
        SELECT * FROM orders
        WHERE status = $1 AND reserved_until IS NOT NULL AND reserved_until < $2
    `, model.OrderStatusPending, now)
	return items, err
}

func (r *PGRepository) List(ctx context.Context, f *dto.OrderFilters) ([]model.Order, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	rows, err := r.DB.NamedQueryContext(ctx, "SELECT count(*) FROM orders"+whereClause, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM orders" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	var items []model.Order
	if err := nstmt.SelectContext(ctx, &items, args); err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

// UpdateStatus is the transition commit point: the WHERE clause re-checks the
// status the caller observed, so a transition raced by another writer affects
// zero rows instead of clobbering it. reserved_until is cleared because no
// transition re-enters PENDING.
func (r *PGRepository) UpdateStatus(ctx context.Context, orderID string, from, to model.OrderStatus) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
        UPDATE orders
        SET status = $3, reserved_until = NULL, updated_at = now()
        WHERE id = $1 AND status = $2
    `, orderID, from, to)
	if err != nil {
		return false, fmt.Errorf("failed to update order status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
