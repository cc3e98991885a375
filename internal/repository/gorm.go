package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/config"
	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/models"
)

// GormProductRepository implements ProductRepository with gorm
type GormProductRepository struct{ db *gorm.DB }

// GormTableRepository implements TableRepository with gorm
type GormTableRepository struct{ db *gorm.DB }

// GormSessionRepository implements SessionRepository with gorm
type GormSessionRepository struct{ db *gorm.DB }

// GormOrderRepository implements OrderRepository with gorm
type GormOrderRepository struct{ db *gorm.DB }

// OpenGorm opens a gorm connection for a postgres:// or sqlite:// URL
func OpenGorm(databaseURL string) (*gorm.DB, error) {
	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	if isPostgresURL(databaseURL) {
		return gorm.Open(postgres.Open(databaseURL), gormConfig)
	}

	if strings.HasPrefix(databaseURL, "sqlite://") {
		path := strings.TrimPrefix(databaseURL, "sqlite://")
		db, err := gorm.Open(sqlite.Open(path), gormConfig)
		if err != nil {
			return nil, err
		}
		if strings.Contains(path, ":memory:") {
			// every connection would get its own empty database
			sqlDB, err := db.DB()
			if err != nil {
				return nil, err
			}
			sqlDB.SetMaxOpenConns(1)
		}
		return db, nil
	}

	return nil, fmt.Errorf("unsupported database URL: %s", databaseURL)
}

// NewGormStore builds a store on an open gorm connection
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Products: &GormProductRepository{db: db},
		Tables:   &GormTableRepository{db: db},
		Sessions: &GormSessionRepository{db: db},
		Orders:   &GormOrderRepository{db: db},
		driver:   config.DriverGorm,
		ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		migrate: func(ctx context.Context) error {
			return db.WithContext(ctx).AutoMigrate(
				&models.Product{},
				&models.Table{},
				&models.TableSession{},
				&models.Order{},
			)
		},
		close: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

// Create inserts a product
func (r *GormProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

// List returns products whose name contains name, ignoring case
func (r *GormProductRepository) List(ctx context.Context, name string) ([]models.Product, error) {
	products := make([]models.Product, 0)
	err := r.db.WithContext(ctx).
		Where(`LOWER(name) LIKE LOWER(?) ESCAPE '\'`, likePattern(name)).
		Order("name, id").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	return products, nil
}

// GetByID returns a product by its ID
func (r *GormProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

// Update replaces name and price and refreshes UpdatedAt
func (r *GormProductRepository) Update(ctx context.Context, product *models.Product) error {
	result := r.db.WithContext(ctx).Model(&models.Product{ID: product.ID}).
		Updates(map[string]any{
			"name":       product.Name,
			"price":      product.Price,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update product %d: %w", product.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	stored, err := r.GetByID(ctx, product.ID)
	if err != nil {
		return err
	}
	*product = *stored
	return nil
}

// Delete removes a product that no order references
func (r *GormProductRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var orders int64
		if err := tx.Model(&models.Order{}).Where("product_id = ?", id).Count(&orders).Error; err != nil {
			return fmt.Errorf("failed to count orders of product %d: %w", id, err)
		}
		if orders > 0 {
			return ErrProductInUse
		}

		result := tx.Delete(&models.Product{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete product %d: %w", id, result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrProductNotFound
		}
		return nil
	})
}

// Create inserts a table
func (r *GormTableRepository) Create(ctx context.Context, table *models.Table) error {
	if err := r.db.WithContext(ctx).Create(table).Error; err != nil {
		return fmt.Errorf("failed to insert table: %w", err)
	}
	return nil
}

// List returns all tables ordered by table number
func (r *GormTableRepository) List(ctx context.Context) ([]models.Table, error) {
	tables := make([]models.Table, 0)
	if err := r.db.WithContext(ctx).Order("table_number").Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	return tables, nil
}

// GetByID returns a table by its ID
func (r *GormTableRepository) GetByID(ctx context.Context, id int64) (*models.Table, error) {
	var table models.Table
	err := r.db.WithContext(ctx).First(&table, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get table %d: %w", id, err)
	}
	return &table, nil
}

// Create inserts a session
func (r *GormSessionRepository) Create(ctx context.Context, session *models.TableSession) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to insert table session: %w", err)
	}
	return nil
}

// GetByID returns a session by its ID
func (r *GormSessionRepository) GetByID(ctx context.Context, id int64) (*models.TableSession, error) {
	var session models.TableSession
	err := r.db.WithContext(ctx).First(&session, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get table session %d: %w", id, err)
	}
	return &session, nil
}

// GetOpenByTable returns the most recently opened session of a table that is still open
func (r *GormSessionRepository) GetOpenByTable(ctx context.Context, tableID int64) (*models.TableSession, error) {
	var session models.TableSession
	err := r.db.WithContext(ctx).
		Where("table_id = ? AND closed_at IS NULL", tableID).
		Order("opened_at DESC").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get open session of table %d: %w", tableID, err)
	}
	return &session, nil
}

// List returns closed sessions by closing time, followed by open sessions
func (r *GormSessionRepository) List(ctx context.Context) ([]models.TableSession, error) {
	sessions := make([]models.TableSession, 0)
	err := r.db.WithContext(ctx).
		Order("CASE WHEN closed_at IS NULL THEN 1 ELSE 0 END, closed_at, id").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query table sessions: %w", err)
	}
	return sessions, nil
}

// Close sets the closing time of a session
func (r *GormSessionRepository) Close(ctx context.Context, id int64, closedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.TableSession{ID: id}).Update("closed_at", closedAt)
	if result.Error != nil {
		return fmt.Errorf("failed to close table session %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Create inserts an order
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

// ListBySession returns the orders of a session joined with product names, newest first
func (r *GormOrderRepository) ListBySession(ctx context.Context, sessionID int64) ([]models.OrderLine, error) {
	lines := make([]models.OrderLine, 0)
	err := r.db.WithContext(ctx).
		Table("orders").
		Select(`orders.id, orders.table_session_id, orders.product_id, products.name,
			orders.price, orders.quantity, orders.price * orders.quantity AS total,
			orders.created_at, orders.updated_at`).
		Joins("JOIN products ON products.id = orders.product_id").
		Where("orders.table_session_id = ?", sessionID).
		Order("orders.created_at DESC, orders.id DESC").
		Scan(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	return lines, nil
}

// TotalBySession sums price times quantity and quantity over a session's orders
func (r *GormOrderRepository) TotalBySession(ctx context.Context, sessionID int64) (models.OrderTotal, error) {
	var total models.OrderTotal
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("COALESCE(SUM(price * quantity), 0) AS total, COALESCE(SUM(quantity), 0) AS quantity").
		Where("table_session_id = ?", sessionID).
		Scan(&total).Error
	if err != nil {
		return models.OrderTotal{}, fmt.Errorf("failed to sum orders: %w", err)
	}
	return total, nil
}
