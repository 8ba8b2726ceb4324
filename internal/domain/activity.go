package domain

import "time"

// ActivityType labels an entry in the per-ticket timeline.
type ActivityType string

const (
	ActivityComment      ActivityType = "comment"
	ActivityStatusChange ActivityType = "status_change"
	ActivityAssignment   ActivityType = "assignment"
	ActivityMention      ActivityType = "mention"
)

// Visibility controls who may read an activity.
type Visibility string

const (
	VisibilityInternal Visibility = "internal"
	VisibilityExternal Visibility = "external"
)

// TicketActivity is an immutable timeline entry. Rows are only ever
// appended; there is no update or delete path.
type TicketActivity struct {
	ID         string
	TicketID   string
	Type       ActivityType
	Content    string
	Visibility Visibility
	ActorID    string
	ActorName  string
	ActorRole  string
	Metadata   map[string]any
	CreatedAt  time.Time
}
