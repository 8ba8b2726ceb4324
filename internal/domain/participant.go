package domain

import "time"

// ParticipantRole describes why a user is attached to a ticket.
type ParticipantRole string

const (
	RoleOwner     ParticipantRole = "owner"
	RoleAssignee  ParticipantRole = "assignee"
	RoleMentioned ParticipantRole = "mentioned"
	RoleWatcher   ParticipantRole = "watcher"
)

// JoinMethod records how a participant was attached.
type JoinMethod string

const (
	JoinAuto    JoinMethod = "auto"
	JoinInvite  JoinMethod = "invite"
	JoinMention JoinMethod = "mention"
)

// NotifyLevel controls downstream notification fan-out for a participant.
type NotifyLevel string

const (
	NotifyAll      NotifyLevel = "all"
	NotifyMentions NotifyLevel = "mentions"
	NotifyNone     NotifyLevel = "none"
)

// TicketParticipant attaches a user to a ticket. Keyed by (TicketID, UserID);
// the first insert wins the role, later adds are no-ops.
type TicketParticipant struct {
	TicketID    string
	UserID      string
	Role        ParticipantRole
	JoinMethod  JoinMethod
	NotifyLevel NotifyLevel
	AddedBy     string
	JoinedAt    time.Time
}
