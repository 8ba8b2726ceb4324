package domain

import "time"

// TicketSequence tracks the last issued sequence number for a
// (type, channel, year-month) numbering scope. Numbers are never reused,
// even when the ticket they were issued for is later removed.
type TicketSequence struct {
	TicketType   TicketType
	ChannelCode  string
	YearMonth    string
	LastSequence int64
	UpdatedAt    time.Time
}
