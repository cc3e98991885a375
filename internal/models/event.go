package models

import "time"

const EventTableSessionClosed = "table_session.closed"

// TableSessionClosedEvent is the bill emitted when a session is closed
type TableSessionClosedEvent struct {
	EventID        string           `json:"event_id"`
	Type           string           `json:"type"`
	TableSessionID int64            `json:"table_session_id"`
	TableID        int64            `json:"table_id"`
	OpenedAt       time.Time        `json:"opened_at"`
	ClosedAt       time.Time        `json:"closed_at"`
	Items          []ProductSummary `json:"items"`
	Total          OrderTotal       `json:"total"`
}
