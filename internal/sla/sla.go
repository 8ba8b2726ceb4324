// Package sla derives due timestamps and due-state for tickets. Deadlines
// re-base whenever a ticket changes node and freeze at terminal status.
package sla

import (
	"time"

	"github.com/lumis/servicedesk/internal/domain"
)

// warningFraction of the span before the deadline counts as the warning
// window: a ticket with 25% or less of its SLA budget left is "warning".
const warningFraction = 0.25

// Config holds the per-type due offsets. Inquiry carries a short
// first-response target; the repair flows get resolution targets.
type Config struct {
	InquiryResponse time.Duration
	RMAResolution   time.Duration
	SVCResolution   time.Duration
}

// DefaultConfig returns the stock offsets: inquiry 8h, RMA 2 days,
// dealer repair 3 days.
func DefaultConfig() Config {
	return Config{
		InquiryResponse: 8 * time.Hour,
		RMAResolution:   48 * time.Hour,
		SVCResolution:   72 * time.Hour,
	}
}

// Offset returns the due offset for a ticket type.
func (c Config) Offset(ticketType domain.TicketType) time.Duration {
	switch ticketType {
	case domain.TicketTypeRMA:
		return c.RMAResolution
	case domain.TicketTypeDealerRepair:
		return c.SVCResolution
	default:
		return c.InquiryResponse
	}
}

// DueAt computes the deadline for a ticket entering a node at from.
func (c Config) DueAt(ticketType domain.TicketType, from time.Time) time.Time {
	return from.Add(c.Offset(ticketType))
}

// StatusAt evaluates the due-state at now for a deadline computed from
// enteredAt. Severity only ever increases as time advances.
func StatusAt(dueAt, enteredAt, now time.Time) domain.SlaStatus {
	if !now.Before(dueAt) {
		return domain.SlaBreached
	}
	span := dueAt.Sub(enteredAt)
	if span <= 0 {
		return domain.SlaBreached
	}
	warningStart := dueAt.Add(-time.Duration(float64(span) * warningFraction))
	if !now.Before(warningStart) {
		return domain.SlaWarning
	}
	return domain.SlaNormal
}

var severityRank = map[domain.SlaStatus]int{
	domain.SlaNormal:   0,
	domain.SlaWarning:  1,
	domain.SlaBreached: 2,
}

// Worse returns the more severe of two due-states.
func Worse(a, b domain.SlaStatus) domain.SlaStatus {
	if severityRank[b] > severityRank[a] {
		return b
	}
	return a
}

// Evaluate recomputes a ticket's due-state. Terminal tickets keep their
// last stored value: the clock stops when the lifecycle ends, so the call
// is idempotent and safe to run on every transition.
func Evaluate(ticket *domain.Ticket, now time.Time, terminal bool) domain.SlaStatus {
	if terminal {
		return ticket.SlaStatus
	}
	if ticket.SlaDueAt == nil {
		return domain.SlaNormal
	}
	return StatusAt(*ticket.SlaDueAt, ticket.NodeEnteredAt, now)
}
