package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/shop-api/internal/domain"
	"github.com/phrazzld/shop-api/internal/platform/logger"
	"github.com/phrazzld/shop-api/internal/store"
)

const orderColumns = `id, product_id, quantity, customer_name, total_price::float8, order_date`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// PostgresOrderStore implements the store.OrderStore interface
// using a PostgreSQL database as the storage backend.
type PostgresOrderStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresOrderStore creates a new PostgreSQL implementation of the OrderStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresOrderStore(db store.DBTX, logger *slog.Logger) *PostgresOrderStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresOrderStore{
		db:     db,
		logger: logger.With(slog.String("component", "order_store")),
	}
}

// Ensure PostgresOrderStore implements store.OrderStore interface
var _ store.OrderStore = (*PostgresOrderStore)(nil)

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	var productID string
	if err := row.Scan(&o.ID, &productID, &o.Quantity, &o.CustomerName, &o.TotalPrice, &o.OrderDate); err != nil {
		return nil, err
	}
	o.ProductID = domain.ProductID(productID)
	return &o, nil
}

// Create implements store.OrderStore.Create
func (s *PostgresOrderStore) Create(ctx context.Context, order *domain.Order) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO orders (product_id, quantity, customer_name, total_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, order_date
	`
	err := s.db.QueryRowContext(ctx, query,
		order.ProductID.String(),
		order.Quantity,
		order.CustomerName,
		order.TotalPrice,
	).Scan(&order.ID, &order.OrderDate)
	if err != nil {
		log.Error("failed to create order",
			slog.String("error", err.Error()),
			slog.String("product_id", order.ProductID.String()))
		return MapError(err, nil)
	}

	log.Debug("order created",
		slog.Int64("order_id", order.ID),
		slog.String("product_id", order.ProductID.String()))
	return nil
}

// List implements store.OrderStore.List
func (s *PostgresOrderStore) List(ctx context.Context, productID *domain.ProductID) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []any
	if productID != nil {
		query += ` WHERE product_id = $1`
		args = append(args, productID.String())
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err, nil)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err, nil)
	}
	return orders, nil
}

// GetByID implements store.OrderStore.GetByID
func (s *PostgresOrderStore) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, MapError(err, store.ErrOrderNotFound)
	}
	return o, nil
}

// Update implements store.OrderStore.Update
func (s *PostgresOrderStore) Update(ctx context.Context, order *domain.Order) error {
	query := `
		UPDATE orders
		SET product_id = $1, quantity = $2, customer_name = $3, total_price = $4
		WHERE id = $5
	`
	result, err := s.db.ExecContext(ctx, query,
		order.ProductID.String(),
		order.Quantity,
		order.CustomerName,
		order.TotalPrice,
		order.ID,
	)
	if err != nil {
		return MapError(err, nil)
	}
	return CheckRowsAffected(result, store.ErrOrderNotFound)
}

// Delete implements store.OrderStore.Delete
func (s *PostgresOrderStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return MapError(err, nil)
	}
	if err := CheckRowsAffected(result, store.ErrOrderNotFound); err != nil {
		return err
	}

	log.Debug("order deleted", slog.Int64("order_id", id))
	return nil
}

// nullableString converts an optional string-kinded value for a COALESCE
// parameter: nil keeps the stored column value.
func nullableString[T ~string](v *T) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*v), Valid: true}
}
