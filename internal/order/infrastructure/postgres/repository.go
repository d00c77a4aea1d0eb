package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmehra2102/order-sync/internal/order/domain"
	"github.com/dmehra2102/order-sync/pkg/outbox"
)

// Write-side repositories. Every save inserts the entity row and its
// captured outbox records in the same transaction; either both commit
// or neither does.

type CustomerRepository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewCustomerRepository(log *slog.Logger, pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{log: log, pool: pool}
}

func (r *CustomerRepository) SaveWithEvents(ctx context.Context, c domain.Customer, records []outbox.Record) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx, `
		INSERT INTO customers (id, first_name, last_name, email, phone, document_number, date_of_birth, created_at, updated_at, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO UPDATE SET
			first_name=$2, last_name=$3, email=$4, phone=$5,
			document_number=$6, date_of_birth=$7, updated_at=$9, is_active=$10
	`, c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.DocumentNumber, c.DateOfBirth, c.CreatedAt, c.UpdatedAt, c.IsActive)
	if err != nil {
		return err
	}

	if err := insertOutboxRecords(ctx, tx, records); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *CustomerRepository) Get(ctx context.Context, id uuid.UUID) (domain.Customer, error) {
	var c domain.Customer
	err := r.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, phone, document_number, date_of_birth, created_at, updated_at, is_active
		FROM customers WHERE id=$1
	`, id).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.DocumentNumber, &c.DateOfBirth, &c.CreatedAt, &c.UpdatedAt, &c.IsActive)
	if err != nil {
		return domain.Customer{}, err
	}
	return c, nil
}

type OrderRepository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewOrderRepository(log *slog.Logger, pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{log: log, pool: pool}
}

func (r *OrderRepository) SaveWithEvents(ctx context.Context, o domain.Order, records []outbox.Record) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, order_number, customer_id, status,
			subtotal_amount, subtotal_currency, tax_amount, tax_currency,
			shipping_amount, shipping_currency, discount_amount, discount_currency,
			total_amount, total_currency, notes, cancelled_at, created_at, updated_at, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		ON CONFLICT (id) DO UPDATE SET
			status=$4, subtotal_amount=$5, subtotal_currency=$6,
			tax_amount=$7, tax_currency=$8, shipping_amount=$9, shipping_currency=$10,
			discount_amount=$11, discount_currency=$12, total_amount=$13, total_currency=$14,
			notes=$15, cancelled_at=$16, updated_at=$18, is_active=$19
	`, o.ID, o.OrderNumber, o.CustomerID, o.Status,
		o.Subtotal.Amount, o.Subtotal.Currency, o.TaxAmount.Amount, o.TaxAmount.Currency,
		o.ShippingAmount.Amount, o.ShippingAmount.Currency, o.DiscountAmount.Amount, o.DiscountAmount.Currency,
		o.TotalAmount.Amount, o.TotalAmount.Currency, o.Notes, o.CancelledAt, o.CreatedAt, o.UpdatedAt, o.IsActive)
	if err != nil {
		return err
	}

	if err := insertOutboxRecords(ctx, tx, records); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *OrderRepository) Get(ctx context.Context, id uuid.UUID) (domain.Order, error) {
	var o domain.Order
	err := r.pool.QueryRow(ctx, `
		SELECT id, order_number, customer_id, status,
			subtotal_amount, subtotal_currency, tax_amount, tax_currency,
			shipping_amount, shipping_currency, discount_amount, discount_currency,
			total_amount, total_currency, notes, cancelled_at, created_at, updated_at, is_active
		FROM orders WHERE id=$1
	`, id).Scan(&o.ID, &o.OrderNumber, &o.CustomerID, &o.Status,
		&o.Subtotal.Amount, &o.Subtotal.Currency, &o.TaxAmount.Amount, &o.TaxAmount.Currency,
		&o.ShippingAmount.Amount, &o.ShippingAmount.Currency, &o.DiscountAmount.Amount, &o.DiscountAmount.Currency,
		&o.TotalAmount.Amount, &o.TotalAmount.Currency, &o.Notes, &o.CancelledAt, &o.CreatedAt, &o.UpdatedAt, &o.IsActive)
	if err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

type ProductRepository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewProductRepository(log *slog.Logger, pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{log: log, pool: pool}
}

func (r *ProductRepository) SaveWithEvents(ctx context.Context, p domain.Product, records []outbox.Record) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx, `
		INSERT INTO products (id, name, description, sku, price, currency, stock_quantity, created_at, updated_at, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO UPDATE SET
			name=$2, description=$3, sku=$4, price=$5, currency=$6,
			stock_quantity=$7, updated_at=$9, is_active=$10
	`, p.ID, p.Name, p.Description, p.SKU, p.Price.Amount, p.Price.Currency, p.StockQuantity, p.CreatedAt, p.UpdatedAt, p.IsActive)
	if err != nil {
		return err
	}

	if err := insertOutboxRecords(ctx, tx, records); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *ProductRepository) Get(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	var p domain.Product
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, description, sku, price, currency, stock_quantity, created_at, updated_at, is_active
		FROM products WHERE id=$1
	`, id).Scan(&p.ID, &p.Name, &p.Description, &p.SKU, &p.Price.Amount, &p.Price.Currency, &p.StockQuantity, &p.CreatedAt, &p.UpdatedAt, &p.IsActive)
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}
