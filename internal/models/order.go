package models

import "time"

// Order is a single order row placed against a table session.
// Price is copied from the product when the order is created and never recalculated.
type Order struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	TableSessionID int64     `gorm:"index;not null" json:"table_session_id"`
	ProductID      int64     `gorm:"index;not null" json:"product_id"`
	Quantity       int64     `gorm:"not null" json:"quantity"`
	Price          float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName returns the table name for Order
func (Order) TableName() string {
	return "orders"
}

// OrderLine is an order joined with its product name and line total
type OrderLine struct {
	ID             int64     `json:"id"`
	TableSessionID int64     `json:"table_session_id"`
	ProductID      int64     `json:"product_id"`
	Name           string    `json:"name"`
	Price          float64   `json:"price"`
	Quantity       int64     `json:"quantity"`
	Total          float64   `json:"total"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProductSummary collapses every order of one product within a session.
// Price is the price of the first order seen for the product.
type ProductSummary struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int64   `json:"quantity"`
	Total     float64 `json:"total"`
}

// OrderTotal is the sum over all orders of a session
type OrderTotal struct {
	Total    float64 `json:"total"`
	Quantity int64   `json:"quantity"`
}
