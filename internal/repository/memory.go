package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/models"
)

// memoryData is the shared state of the in-memory repositories
type memoryData struct {
	mu sync.RWMutex

	products map[int64]models.Product
	tables   map[int64]models.Table
	sessions map[int64]models.TableSession
	orders   map[int64]models.Order

	lastProductID int64
	lastTableID   int64
	lastSessionID int64
	lastOrderID   int64
}

// InMemoryProductRepository implements ProductRepository with in-memory storage
type InMemoryProductRepository struct{ data *memoryData }

// InMemoryTableRepository implements TableRepository with in-memory storage
type InMemoryTableRepository struct{ data *memoryData }

// InMemorySessionRepository implements SessionRepository with in-memory storage
type InMemorySessionRepository struct{ data *memoryData }

// InMemoryOrderRepository implements OrderRepository with in-memory storage
type InMemoryOrderRepository struct{ data *memoryData }

// NewInMemoryStore creates an in-memory store seeded with the default menu and tables
func NewInMemoryStore() *Store {
	store := NewEmptyInMemoryStore()
	data := store.Products.(*InMemoryProductRepository).data

	now := time.Now().UTC()
	for _, p := range SeedProducts {
		data.lastProductID++
		data.products[data.lastProductID] = models.Product{
			ID:        data.lastProductID,
			Name:      p.Name,
			Price:     p.Price,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	for _, number := range SeedTableNumbers {
		data.lastTableID++
		data.tables[data.lastTableID] = models.Table{ID: data.lastTableID, TableNumber: number}
	}

	return store
}

// NewEmptyInMemoryStore creates an in-memory store without seed data
func NewEmptyInMemoryStore() *Store {
	data := &memoryData{
		products: make(map[int64]models.Product),
		tables:   make(map[int64]models.Table),
		sessions: make(map[int64]models.TableSession),
		orders:   make(map[int64]models.Order),
	}

	return &Store{
		Products: &InMemoryProductRepository{data: data},
		Tables:   &InMemoryTableRepository{data: data},
		Sessions: &InMemorySessionRepository{data: data},
		Orders:   &InMemoryOrderRepository{data: data},
		driver:   "memory",
	}
}

// Create stores a new product and assigns its ID
func (r *InMemoryProductRepository) Create(ctx context.Context, product *models.Product) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()

	now := time.Now().UTC()
	r.data.lastProductID++
	product.ID = r.data.lastProductID
	product.CreatedAt = now
	product.UpdatedAt = now
	r.data.products[product.ID] = *product
	return nil
}

// List returns products matching name, ordered by name
func (r *InMemoryProductRepository) List(ctx context.Context, name string) ([]models.Product, error) {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()

	filter := strings.ToLower(name)
	products := make([]models.Product, 0, len(r.data.products))
	for _, product := range r.data.products {
		if strings.Contains(strings.ToLower(product.Name), filter) {
			products = append(products, product)
		}
	}

	sort.Slice(products, func(i, j int) bool {
		if products[i].Name == products[j].Name {
			return products[i].ID < products[j].ID
		}
		return products[i].Name < products[j].Name
	})
	return products, nil
}

// GetByID returns a product by its ID
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()

	product, exists := r.data.products[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// Update replaces name and price and refreshes UpdatedAt
func (r *InMemoryProductRepository) Update(ctx context.Context, product *models.Product) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()

	stored, exists := r.data.products[product.ID]
	if !exists {
		return ErrProductNotFound
	}

	stored.Name = product.Name
	stored.Price = product.Price
	stored.UpdatedAt = time.Now().UTC()
	r.data.products[product.ID] = stored
	*product = stored
	return nil
}

// Delete removes a product that no order references
func (r *InMemoryProductRepository) Delete(ctx context.Context, id int64) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()

	if _, exists := r.data.products[id]; !exists {
		return ErrProductNotFound
	}
	for _, order := range r.data.orders {
		if order.ProductID == id {
			return ErrProductInUse
		}
	}

	delete(r.data.products, id)
	return nil
}

// Create stores a new table and assigns its ID
func (r *InMemoryTableRepository) Create(ctx context.Context, table *models.Table) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()

	r.data.lastTableID++
	table.ID = r.data.lastTableID
	r.data.tables[table.ID] = *table
	return nil
}

// List returns all tables ordered by table number
func (r *InMemoryTableRepository) List(ctx context.Context) ([]models.Table, error) {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()

	tables := make([]models.Table, 0, len(r.data.tables))
	for _, table := range r.data.tables {
		tables = append(tables, table)
	}

	sort.Slice(tables, func(i, j int) bool {
		return tables[i].TableNumber < tables[j].TableNumber
	})
	return tables, nil
}

// GetByID returns a table by its ID
func (r *InMemoryTableRepository) GetByID(ctx context.Context, id int64) (*models.Table, error) {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()

	table, exists := r.data.tables[id]
	if !exists {
		return nil, ErrTableNotFound
	}
	return &table, nil
}

// Create stores a new session and assigns its ID
func (r *InMemorySessionRepository) Create(ctx context.Context, session *models.TableSession) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()

	r.data.lastSessionID++
	session.ID = r.data.lastSessionID
	r.data.sessions[session.ID] = *session
	return nil
}

// GetByID returns a session by its ID
func (r *InMemorySessionRepository) GetByID(ctx context.Context, id int64) (*models.TableSession, error) {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()

	session, exists := r.data.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

// GetOpenByTable returns the most recently opened session of a table that is still open
func (r *InMemorySessionRepository) GetOpenByTable(ctx context.Context, tableID int64) (*models.TableSession, error) {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()

	var open *models.TableSession
	for _, session := range r.data.sessions {
		if session.TableID != tableID || !session.IsOpen() {
			continue
		}
		if open == nil || session.OpenedAt.After(open.OpenedAt) {
			s := session
			open = &s
		}
	}

	if open == nil {
		return nil, ErrSessionNotFound
	}
	return open, nil
}

// List returns closed sessions by closing time, followed by open sessions
func (r *InMemorySessionRepository) List(ctx context.Context) ([]models.TableSession, error) {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()

	sessions := make([]models.TableSession, 0, len(r.data.sessions))
	for _, session := range r.data.sessions {
		sessions = append(sessions, session)
	}

	sort.Slice(sessions, func(i, j int) bool {
		a, b := sessions[i], sessions[j]
		switch {
		case a.ClosedAt == nil && b.ClosedAt == nil:
			return a.ID < b.ID
		case a.ClosedAt == nil:
			return false
		case b.ClosedAt == nil:
			return true
		case a.ClosedAt.Equal(*b.ClosedAt):
			return a.ID < b.ID
		default:
			return a.ClosedAt.Before(*b.ClosedAt)
		}
	})
	return sessions, nil
}

// Close sets the closing time of a session
func (r *InMemorySessionRepository) Close(ctx context.Context, id int64, closedAt time.Time) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()

	session, exists := r.data.sessions[id]
	if !exists {
		return ErrSessionNotFound
	}

	session.ClosedAt = &closedAt
	r.data.sessions[id] = session
	return nil
}

// Create stores a new order and assigns its ID
func (r *InMemoryOrderRepository) Create(ctx context.Context, order *models.Order) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()

	now := time.Now().UTC()
	r.data.lastOrderID++
	order.ID = r.data.lastOrderID
	order.CreatedAt = now
	order.UpdatedAt = now
	r.data.orders[order.ID] = *order
	return nil
}

// ListBySession returns the orders of a session joined with product names, newest first.
// Orders whose product no longer exists are skipped.
func (r *InMemoryOrderRepository) ListBySession(ctx context.Context, sessionID int64) ([]models.OrderLine, error) {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()

	lines := make([]models.OrderLine, 0)
	for _, order := range r.data.orders {
		if order.TableSessionID != sessionID {
			continue
		}
		product, exists := r.data.products[order.ProductID]
		if !exists {
			continue
		}

		lines = append(lines, models.OrderLine{
			ID:             order.ID,
			TableSessionID: order.TableSessionID,
			ProductID:      order.ProductID,
			Name:           product.Name,
			Price:          order.Price,
			Quantity:       order.Quantity,
			Total:          order.Price * float64(order.Quantity),
			CreatedAt:      order.CreatedAt,
			UpdatedAt:      order.UpdatedAt,
		})
	}

	sort.Slice(lines, func(i, j int) bool {
		if lines[i].CreatedAt.Equal(lines[j].CreatedAt) {
			return lines[i].ID > lines[j].ID
		}
		return lines[i].CreatedAt.After(lines[j].CreatedAt)
	})
	return lines, nil
}

// TotalBySession sums price times quantity and quantity over a session's orders
func (r *InMemoryOrderRepository) TotalBySession(ctx context.Context, sessionID int64) (models.OrderTotal, error) {
	r.data.mu.RLock()
	defer r.data.mu.RUnlock()

	var total models.OrderTotal
	for _, order := range r.data.orders {
		if order.TableSessionID != sessionID {
			continue
		}
		total.Total += order.Price * float64(order.Quantity)
		total.Quantity += order.Quantity
	}
	return total, nil
}
