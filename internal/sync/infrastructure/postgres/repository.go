package postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmehra2102/order-sync/internal/sync/readmodel"
)

// Read-store repositories backed by the read database. Upserts overwrite
// every mutable column, so replaying the same message is a no-op.

type CustomerReadRepository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewCustomerReadRepository(log *slog.Logger, pool *pgxpool.Pool) *CustomerReadRepository {
	return &CustomerReadRepository{log: log, pool: pool}
}

func (r *CustomerReadRepository) FindByID(ctx context.Context, id uuid.UUID) (*readmodel.Customer, error) {
	var c readmodel.Customer
	err := r.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, phone, document_number, date_of_birth, created_at, updated_at, is_active
		FROM customers WHERE id=$1
	`, id).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.DocumentNumber, &c.DateOfBirth, &c.CreatedAt, &c.UpdatedAt, &c.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerReadRepository) Upsert(ctx context.Context, c readmodel.Customer) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO customers (id, first_name, last_name, email, phone, document_number, date_of_birth, created_at, updated_at, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO UPDATE SET
			first_name=$2, last_name=$3, email=$4, phone=$5,
			document_number=$6, date_of_birth=$7, created_at=$8, updated_at=$9, is_active=$10
	`, c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.DocumentNumber, c.DateOfBirth, c.CreatedAt, c.UpdatedAt, c.IsActive)
	return err
}

type OrderReadRepository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewOrderReadRepository(log *slog.Logger, pool *pgxpool.Pool) *OrderReadRepository {
	return &OrderReadRepository{log: log, pool: pool}
}

func (r *OrderReadRepository) FindByID(ctx context.Context, id uuid.UUID) (*readmodel.Order, error) {
	var o readmodel.Order
	err := r.pool.QueryRow(ctx, `
		SELECT id, order_number, customer_id, status,
			subtotal_amount, subtotal_currency, tax_amount, tax_currency,
			shipping_amount, shipping_currency, discount_amount, discount_currency,
			total_amount, total_currency, notes, cancelled_at, created_at, updated_at, is_active
		FROM orders WHERE id=$1
	`, id).Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.Status,
		&o.SubtotalAmount, &o.SubtotalCurrency, &o.TaxAmount, &o.TaxCurrency,
		&o.ShippingAmount, &o.ShippingCurrency, &o.DiscountAmount, &o.DiscountCurrency,
		&o.TotalAmount, &o.TotalCurrency, &o.Notes, &o.CancelledAt, &o.CreatedAt, &o.UpdatedAt, &o.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderReadRepository) Upsert(ctx context.Context, o readmodel.Order) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO orders (id, order_number, customer_id, status,
			subtotal_amount, subtotal_currency, tax_amount, tax_currency,
			shipping_amount, shipping_currency, discount_amount, discount_currency,
			total_amount, total_currency, notes, cancelled_at, created_at, updated_at, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		ON CONFLICT (id) DO UPDATE SET
			order_number=$2, customer_id=$3, status=$4,
			subtotal_amount=$5, subtotal_currency=$6, tax_amount=$7, tax_currency=$8,
			shipping_amount=$9, shipping_currency=$10, discount_amount=$11, discount_currency=$12,
			total_amount=$13, total_currency=$14, notes=$15, cancelled_at=$16,
			created_at=$17, updated_at=$18, is_active=$19
	`, o.ID, o.OrderNumber, o.CustomerID, o.Status,
		o.SubtotalAmount, o.SubtotalCurrency, o.TaxAmount, o.TaxCurrency,
		o.ShippingAmount, o.ShippingCurrency, o.DiscountAmount, o.DiscountCurrency,
		o.TotalAmount, o.TotalCurrency, o.Notes, o.CancelledAt, o.CreatedAt, o.UpdatedAt, o.IsActive)
	return err
}

type ProductReadRepository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewProductReadRepository(log *slog.Logger, pool *pgxpool.Pool) *ProductReadRepository {
	return &ProductReadRepository{log: log, pool: pool}
}

func (r *ProductReadRepository) FindByID(ctx context.Context, id uuid.UUID) (*readmodel.Product, error) {
	var p readmodel.Product
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, description, sku, price, currency, stock_quantity, created_at, updated_at, is_active
		FROM products WHERE id=$1
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.SKU, &p.Price, &p.Currency, &p.StockQuantity, &p.CreatedAt, &p.UpdatedAt, &p.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductReadRepository) Upsert(ctx context.Context, p readmodel.Product) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (id, name, description, sku, price, currency, stock_quantity, created_at, updated_at, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO UPDATE SET
			name=$2, description=$3, sku=$4, price=$5, currency=$6,
			stock_quantity=$7, created_at=$8, updated_at=$9, is_active=$10
	`, p.ID, p.Name, p.Description, p.SKU, p.Price, p.Currency, p.StockQuantity, p.CreatedAt, p.UpdatedAt, p.IsActive)
	return err
}
