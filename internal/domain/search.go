package domain

import "time"

// SearchVisibility tags who may retrieve an indexed document.
type SearchVisibility string

const (
	SearchVisibilityDealer   SearchVisibility = "dealer"
	SearchVisibilityInternal SearchVisibility = "internal"
)

// SearchIndexEntry is the denormalized document handed to the external
// full-text engine. Derived and rebuildable; one row per (Type, TicketID).
type SearchIndexEntry struct {
	TicketType   TicketType
	TicketID     string
	TicketNumber string
	Title        string
	Description  string
	Resolution   string
	Tags         []string
	ProductModel string
	SerialNumber string
	Category     string
	Status       string
	DealerID     *string
	Visibility   SearchVisibility
	ClosedAt     *time.Time
	IndexedAt    time.Time
}
