package events

import (
	"time"

	"github.com/lumis/servicedesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventTicketCommentAdded  EventType = "ticket_comment_added"
	EventTicketConverted     EventType = "ticket_converted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string `json:"user_id"`
	Name   string `json:"name,omitempty"`
	Role   string `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketNumber string            `json:"ticket_number"`
	TicketType   domain.TicketType `json:"ticket_type"`
	Status       domain.Status     `json:"status"`
	Node         domain.Node       `json:"node"`
	Priority     domain.Priority   `json:"priority"`
	AssignedTo   *string           `json:"assigned_to,omitempty"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	TicketType domain.TicketType `json:"ticket_type"`
	OldStatus  domain.Status     `json:"old_status"`
	NewStatus  domain.Status     `json:"new_status"`
	OldNode    domain.Node       `json:"old_node"`
	NewNode    domain.Node       `json:"new_node"`
	Terminal   bool              `json:"terminal"`
	Comment    string            `json:"comment,omitempty"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	OldAssignee *string     `json:"old_assignee,omitempty"`
	NewAssignee string      `json:"new_assignee"`
	Node        domain.Node `json:"node"`
}

// TicketCommentAddedPayload payload.
// Mention identifies a user referenced in a comment. The display name is
// resolved at extraction time so delivery needs no further lookup.
type Mention struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

type TicketCommentAddedPayload struct {
	ActivityID     string            `json:"activity_id"`
	Visibility     domain.Visibility `json:"visibility"`
	MentionedUsers []Mention         `json:"mentioned_users,omitempty"`
	BodyPreview    string            `json:"body_preview"`
}

// TicketConvertedPayload payload.
type TicketConvertedPayload struct {
	SourceTicketID   string            `json:"source_ticket_id"`
	SourceNumber     string            `json:"source_number"`
	TargetTicketID   string            `json:"target_ticket_id"`
	TargetNumber     string            `json:"target_number"`
	TargetTicketType domain.TicketType `json:"target_ticket_type"`
}
