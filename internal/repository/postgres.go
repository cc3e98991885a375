package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/config"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/models"
)

const (
	connectRetries = 5

	pgForeignKeyViolation = "23503"
)

// PostgresProductRepository implements ProductRepository on a pgx pool
type PostgresProductRepository struct{ pool *pgxpool.Pool }

// PostgresTableRepository implements TableRepository on a pgx pool
type PostgresTableRepository struct{ pool *pgxpool.Pool }

// PostgresSessionRepository implements SessionRepository on a pgx pool
type PostgresSessionRepository struct{ pool *pgxpool.Pool }

// PostgresOrderRepository implements OrderRepository on a pgx pool
type PostgresOrderRepository struct{ pool *pgxpool.Pool }

// NewPostgresStore connects to PostgreSQL, retrying with a linear backoff
func NewPostgresStore(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute

	var pool *pgxpool.Pool
	for i := 0; i < connectRetries; i++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = pool.Ping(pingCtx)
			cancel()
			if err == nil {
				break
			}
			pool.Close()
		}

		if i < connectRetries-1 {
			wait := time.Duration(i+1) * 2 * time.Second
			log.Warn("database connection failed, retrying", "attempt", i+1, "retry_in", wait.String(), "error", err)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", connectRetries, err)
	}

	return NewPostgresStoreFromPool(pool, log), nil
}

// NewPostgresStoreFromPool wraps an existing pool. Closing the store closes the pool.
func NewPostgresStoreFromPool(pool *pgxpool.Pool, log *slog.Logger) *Store {
	return &Store{
		Products: &PostgresProductRepository{pool: pool},
		Tables:   &PostgresTableRepository{pool: pool},
		Sessions: &PostgresSessionRepository{pool: pool},
		Orders:   &PostgresOrderRepository{pool: pool},
		driver:   config.DriverPgx,
		ping:     pool.Ping,
		migrate: func(ctx context.Context) error {
			return RunMigrations(ctx, pool, log)
		},
		close: func() error {
			pool.Close()
			return nil
		},
	}
}

// Create inserts a product and fills its generated columns
func (r *PostgresProductRepository) Create(ctx context.Context, product *models.Product) error {
	err := r.pool.QueryRow(ctx, insertProductSQL, product.Name, product.Price).
		Scan(&product.ID, &product.Price, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

// List returns products whose name contains name, ignoring case
func (r *PostgresProductRepository) List(ctx context.Context, name string) ([]models.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsSQL, likePattern(name))
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// GetByID returns a product by its ID
func (r *PostgresProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	err := r.pool.QueryRow(ctx, getProductSQL, id).
		Scan(&p.ID, &p.Name, &p.Price, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &p, nil
}

// Update replaces name and price and refreshes updated_at
func (r *PostgresProductRepository) Update(ctx context.Context, product *models.Product) error {
	err := r.pool.QueryRow(ctx, updateProductSQL, product.Name, product.Price, product.ID).
		Scan(&product.Price, &product.CreatedAt, &product.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrProductNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", product.ID, err)
	}
	return nil
}

// Delete removes a product; products referenced by orders are kept
func (r *PostgresProductRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, deleteProductSQL, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return ErrProductInUse
		}
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

// Create inserts a table
func (r *PostgresTableRepository) Create(ctx context.Context, table *models.Table) error {
	if err := r.pool.QueryRow(ctx, insertTableSQL, table.TableNumber).Scan(&table.ID); err != nil {
		return fmt.Errorf("failed to insert table: %w", err)
	}
	return nil
}

// List returns all tables ordered by table number
func (r *PostgresTableRepository) List(ctx context.Context) ([]models.Table, error) {
	rows, err := r.pool.Query(ctx, listTablesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	tables := make([]models.Table, 0)
	for rows.Next() {
		var t models.Table
		if err := rows.Scan(&t.ID, &t.TableNumber); err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		tables = append(tables, t)
	}

	return tables, rows.Err()
}

// GetByID returns a table by its ID
func (r *PostgresTableRepository) GetByID(ctx context.Context, id int64) (*models.Table, error) {
	var t models.Table
	err := r.pool.QueryRow(ctx, getTableSQL, id).Scan(&t.ID, &t.TableNumber)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get table %d: %w", id, err)
	}
	return &t, nil
}

// Create inserts a session
func (r *PostgresSessionRepository) Create(ctx context.Context, session *models.TableSession) error {
	err := r.pool.QueryRow(ctx, insertSessionSQL, session.TableID, session.OpenedAt).Scan(&session.ID)
	if err != nil {
		return fmt.Errorf("failed to insert table session: %w", err)
	}
	return nil
}

// GetByID returns a session by its ID
func (r *PostgresSessionRepository) GetByID(ctx context.Context, id int64) (*models.TableSession, error) {
	return r.getOne(ctx, getSessionSQL, id)
}

// GetOpenByTable returns the open session of a table
func (r *PostgresSessionRepository) GetOpenByTable(ctx context.Context, tableID int64) (*models.TableSession, error) {
	return r.getOne(ctx, getOpenSessionByTableSQL, tableID)
}

func (r *PostgresSessionRepository) getOne(ctx context.Context, sql string, arg int64) (*models.TableSession, error) {
	var s models.TableSession
	err := r.pool.QueryRow(ctx, sql, arg).Scan(&s.ID, &s.TableID, &s.OpenedAt, &s.ClosedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get table session: %w", err)
	}
	return &s, nil
}

// List returns closed sessions by closing time, followed by open sessions
func (r *PostgresSessionRepository) List(ctx context.Context) ([]models.TableSession, error) {
	rows, err := r.pool.Query(ctx, listSessionsSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query table sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]models.TableSession, 0)
	for rows.Next() {
		var s models.TableSession
		if err := rows.Scan(&s.ID, &s.TableID, &s.OpenedAt, &s.ClosedAt); err != nil {
			return nil, fmt.Errorf("failed to scan table session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// Close sets the closing time of a session
func (r *PostgresSessionRepository) Close(ctx context.Context, id int64, closedAt time.Time) error {
	tag, err := r.pool.Exec(ctx, closeSessionSQL, closedAt, id)
	if err != nil {
		return fmt.Errorf("failed to close table session %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Create inserts an order
func (r *PostgresOrderRepository) Create(ctx context.Context, order *models.Order) error {
	err := r.pool.QueryRow(ctx, insertOrderSQL, order.TableSessionID, order.ProductID, order.Quantity, order.Price).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// ListBySession returns the orders of a session joined with product names, newest first
func (r *PostgresOrderRepository) ListBySession(ctx context.Context, sessionID int64) ([]models.OrderLine, error) {
	rows, err := r.pool.Query(ctx, listOrderLinesSQL, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	lines := make([]models.OrderLine, 0)
	for rows.Next() {
		var l models.OrderLine
		err := rows.Scan(&l.ID, &l.TableSessionID, &l.ProductID, &l.Name,
			&l.Price, &l.Quantity, &l.Total, &l.CreatedAt, &l.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		lines = append(lines, l)
	}

	return lines, rows.Err()
}

// TotalBySession sums price times quantity and quantity over a session's orders
func (r *PostgresOrderRepository) TotalBySession(ctx context.Context, sessionID int64) (models.OrderTotal, error) {
	var total models.OrderTotal
	if err := r.pool.QueryRow(ctx, orderTotalSQL, sessionID).Scan(&total.Total, &total.Quantity); err != nil {
		return models.OrderTotal{}, fmt.Errorf("failed to sum orders: %w", err)
	}
	return total, nil
}

// isPostgresURL reports whether url uses a PostgreSQL scheme
func isPostgresURL(url string) bool {
	return strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://")
}
