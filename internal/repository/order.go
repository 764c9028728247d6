package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/almasoman/almas-api/internal/domain/order"
	"github.com/almasoman/almas-api/internal/domain/shipping"
)

const (
	orderColumns = `id, session_id, customer_name, customer_phone, lines, destination, gift,
		with_card, card_message, subtotal, discount, card_fee, delivery_fee, total,
		coupon_code, payment_method, order_status, created_at, updated_at`

	insertOrderSQL = `INSERT INTO orders
		(id, session_id, customer_name, customer_phone, lines, destination, gift,
		 with_card, card_message, subtotal, discount, card_fee, delivery_fee, total,
		 coupon_code, payment_method, order_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	getOrderSQL   = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	listOrdersSQL = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`

	updateOrderStatusSQL = `UPDATE orders SET order_status = $2, updated_at = now() WHERE id = $1`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists a new order. Lines, destination, and gift details are
// serialized to JSONB.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	linesJSON, err := json.Marshal(o.Lines)
	if err != nil {
		return fmt.Errorf("marshaling order lines: %w", err)
	}

	destJSON, err := shipping.EncodeDestination(o.Destination)
	if err != nil {
		return fmt.Errorf("marshaling destination: %w", err)
	}

	var giftJSON []byte
	if o.Gift != nil {
		giftJSON, err = json.Marshal(o.Gift)
		if err != nil {
			return fmt.Errorf("marshaling gift details: %w", err)
		}
	}

	_, err = r.pool.Exec(ctx, insertOrderSQL,
		o.ID, o.SessionID, o.CustomerName, o.CustomerPhone, linesJSON, destJSON, giftJSON,
		o.WithCard, o.CardMessage,
		o.Pricing.Subtotal, o.Pricing.Discount, o.Pricing.CardFee, o.Pricing.DeliveryFee, o.Pricing.Total,
		o.CouponCode, string(o.PaymentMethod), string(o.Status), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating order %q: %w", o.ID, err)
	}
	return nil
}

// GetByID returns a single order, or order.ErrNotFound.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	rows, err := r.pool.Query(ctx, getOrderSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting order %q: %w", id, err)
	}

	o, err := pgx.CollectExactlyOneRow(rows, scanOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %q: %w", id, err)
	}
	return &o, nil
}

// List returns all orders, newest first, for the admin surface.
func (r *OrderRepository) List(ctx context.Context) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, listOrdersSQL)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}

	orders, err := pgx.CollectRows(rows, scanOrder)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets an order's status, or order.ErrNotFound.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, s order.Status) error {
	tag, err := r.pool.Exec(ctx, updateOrderStatusSQL, id, string(s))
	if err != nil {
		return fmt.Errorf("updating status of order %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.CollectableRow) (order.Order, error) {
	var (
		o             order.Order
		linesJSON     []byte
		destJSON      []byte
		giftJSON      []byte
		paymentMethod string
		status        string
	)
	err := row.Scan(
		&o.ID, &o.SessionID, &o.CustomerName, &o.CustomerPhone, &linesJSON, &destJSON, &giftJSON,
		&o.WithCard, &o.CardMessage,
		&o.Pricing.Subtotal, &o.Pricing.Discount, &o.Pricing.CardFee, &o.Pricing.DeliveryFee, &o.Pricing.Total,
		&o.CouponCode, &paymentMethod, &status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return order.Order{}, err
	}

	if err := json.Unmarshal(linesJSON, &o.Lines); err != nil {
		return order.Order{}, fmt.Errorf("unmarshaling order lines: %w", err)
	}

	o.Destination, err = shipping.DecodeDestination(destJSON)
	if err != nil {
		return order.Order{}, err
	}

	if len(giftJSON) > 0 {
		var gift order.GiftDetails
		if err := json.Unmarshal(giftJSON, &gift); err != nil {
			return order.Order{}, fmt.Errorf("unmarshaling gift details: %w", err)
		}
		o.Gift = &gift
	}

	o.PaymentMethod = order.Method(paymentMethod)
	o.Status = order.Status(status)
	return o, nil
}
