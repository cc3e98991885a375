package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductInUse    = errors.New("product is referenced by orders")
	ErrTableNotFound   = errors.New("table not found")
	ErrSessionNotFound = errors.New("table session not found")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	// List returns products whose name contains name, case-insensitively, ordered by name
	List(ctx context.Context, name string) ([]models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int64) error
}

// TableRepository defines the interface for dining table data access
type TableRepository interface {
	Create(ctx context.Context, table *models.Table) error
	List(ctx context.Context) ([]models.Table, error)
	GetByID(ctx context.Context, id int64) (*models.Table, error)
}

// SessionRepository defines the interface for table session data access
type SessionRepository interface {
	Create(ctx context.Context, session *models.TableSession) error
	GetByID(ctx context.Context, id int64) (*models.TableSession, error)
	// GetOpenByTable returns ErrSessionNotFound when the table has no open session
	GetOpenByTable(ctx context.Context, tableID int64) (*models.TableSession, error)
	List(ctx context.Context) ([]models.TableSession, error)
	Close(ctx context.Context, id int64, closedAt time.Time) error
}

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	// ListBySession returns the session's orders joined with product names, newest first
	ListBySession(ctx context.Context, sessionID int64) ([]models.OrderLine, error)
	TotalBySession(ctx context.Context, sessionID int64) (models.OrderTotal, error)
}

// Store bundles the repositories of one backend
type Store struct {
	Products ProductRepository
	Tables   TableRepository
	Sessions SessionRepository
	Orders   OrderRepository

	driver  string
	ping    func(ctx context.Context) error
	migrate func(ctx context.Context) error
	close   func() error
}

// Driver names the backend behind the store
func (s *Store) Driver() string {
	return s.driver
}

// Ping checks that the backend is reachable
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Migrate brings the schema up to date
func (s *Store) Migrate(ctx context.Context) error {
	if s.migrate == nil {
		return nil
	}
	return s.migrate(ctx)
}

// Close releases the backend's connections
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// likePattern builds a LIKE pattern matching name anywhere in a value.
// LIKE wildcards in name are escaped with a backslash.
func likePattern(name string) string {
	var b []rune
	for _, r := range name {
		if r == '%' || r == '_' || r == '\\' {
			b = append(b, '\\')
		}
		b = append(b, r)
	}
	return "%" + string(b) + "%"
}
