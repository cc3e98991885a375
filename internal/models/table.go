package models

import "time"

// Table is a physical dining table
type Table struct {
	ID          int64 `gorm:"primaryKey" json:"id"`
	TableNumber int   `gorm:"uniqueIndex;not null" json:"table_number"`
}

// TableName returns the table name for Table
func (Table) TableName() string {
	return "tables"
}

// TableSession is the period a table is occupied. It is open while ClosedAt is nil.
type TableSession struct {
	ID       int64      `gorm:"primaryKey" json:"id"`
	TableID  int64      `gorm:"index;not null" json:"table_id"`
	OpenedAt time.Time  `gorm:"not null" json:"opened_at"`
	ClosedAt *time.Time `json:"closed_at"`
}

// TableName returns the table name for TableSession
func (TableSession) TableName() string {
	return "tables_sessions"
}

// IsOpen reports whether the session still accepts orders
func (s *TableSession) IsOpen() bool {
	return s.ClosedAt == nil
}
