package dto

import (
	"time"

	"github.com/lumis/servicedesk/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Type        domain.TicketType `json:"type"`
	ChannelCode string            `json:"channel_code"`
	Status      string            `json:"status"`
	Priority    domain.Priority   `json:"priority"`

	AccountID    *string `json:"account_id"`
	DealerID     *string `json:"dealer_id"`
	ProductID    *string `json:"product_id"`
	SerialNumber *string `json:"serial_number"`
	ReporterName *string `json:"reporter_name"`
	AssignedTo   *string `json:"assigned_to"`

	ServiceType      *string `json:"service_type"`
	Channel          *string `json:"channel"`
	ProblemSummary   *string `json:"problem_summary"`
	CommunicationLog *string `json:"communication_log"`

	IssueType          *string `json:"issue_type"`
	IssueCategory      *string `json:"issue_category"`
	Severity           int     `json:"severity"`
	ProblemDescription *string `json:"problem_description"`
	IsWarranty         bool    `json:"is_warranty"`
}

// ChangeStatusRequest payload.
type ChangeStatusRequest struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

// AssignRequest payload.
type AssignRequest struct {
	AssigneeID string `json:"assignee_id"`
}

// AddCommentRequest payload.
type AddCommentRequest struct {
	Body       string            `json:"body"`
	Visibility domain.Visibility `json:"visibility"`
}

// ConvertRequest payload.
type ConvertRequest struct {
	TargetType  domain.TicketType `json:"target_type"`
	ChannelCode string            `json:"channel_code"`
	IssueType   *string           `json:"issue_type"`
	Severity    int               `json:"severity"`
}

// TicketSummary response.
type TicketSummary struct {
	ID           string            `json:"id"`
	TicketNumber string            `json:"ticket_number"`
	Type         domain.TicketType `json:"type"`
	Status       domain.Status     `json:"status"`
	CurrentNode  domain.Node       `json:"current_node"`
	Priority     domain.Priority   `json:"priority"`
	SlaDueAt     *time.Time        `json:"sla_due_at"`
	SlaStatus    domain.SlaStatus  `json:"sla_status"`
	AssignedTo   *string           `json:"assigned_to"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// TicketDetailResponse provides full ticket info with type-specific groups.
type TicketDetailResponse struct {
	TicketSummary

	ChannelCode  string  `json:"channel_code,omitempty"`
	AccountID    *string `json:"account_id,omitempty"`
	DealerID     *string `json:"dealer_id,omitempty"`
	ProductID    *string `json:"product_id,omitempty"`
	SerialNumber *string `json:"serial_number,omitempty"`
	ReporterName *string `json:"reporter_name,omitempty"`
	SubmittedBy  string  `json:"submitted_by"`

	Inquiry *InquiryFields `json:"inquiry,omitempty"`
	Repair  *RepairFields  `json:"repair,omitempty"`

	ParentTicketID *string    `json:"parent_ticket_id,omitempty"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
}

// InquiryFields groups inquiry-only fields.
type InquiryFields struct {
	ServiceType      *string `json:"service_type"`
	Channel          *string `json:"channel"`
	ProblemSummary   *string `json:"problem_summary"`
	CommunicationLog *string `json:"communication_log"`
	Resolution       *string `json:"resolution"`
}

// RepairFields groups RMA and dealer-repair fields.
type RepairFields struct {
	IssueType           *string `json:"issue_type"`
	IssueCategory       *string `json:"issue_category"`
	Severity            int     `json:"severity"`
	ProblemDescription  *string `json:"problem_description"`
	ProblemAnalysis     *string `json:"problem_analysis"`
	SolutionForCustomer *string `json:"solution_for_customer"`
	RepairContent       *string `json:"repair_content"`
	IsWarranty          bool    `json:"is_warranty"`
}

// ActivityResponse is one ledger entry.
type ActivityResponse struct {
	ID         string              `json:"id"`
	Type       domain.ActivityType `json:"type"`
	Content    string              `json:"content"`
	Visibility domain.Visibility   `json:"visibility"`
	ActorID    string              `json:"actor_id"`
	ActorName  string              `json:"actor_name"`
	ActorRole  string              `json:"actor_role"`
	Metadata   map[string]any      `json:"metadata,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

// ParticipantResponse is one participant row.
type ParticipantResponse struct {
	UserID      string                 `json:"user_id"`
	Role        domain.ParticipantRole `json:"role"`
	JoinMethod  domain.JoinMethod      `json:"join_method"`
	NotifyLevel domain.NotifyLevel     `json:"notify_level"`
	JoinedAt    time.Time              `json:"joined_at"`
}

// SearchEntryResponse is one search projection row.
type SearchEntryResponse struct {
	TicketType   domain.TicketType       `json:"ticket_type"`
	TicketID     string                  `json:"ticket_id"`
	TicketNumber string                  `json:"ticket_number"`
	Title        string                  `json:"title"`
	Description  string                  `json:"description"`
	Resolution   string                  `json:"resolution"`
	Tags         []string                `json:"tags"`
	ProductModel string                  `json:"product_model"`
	SerialNumber string                  `json:"serial_number"`
	Category     string                  `json:"category"`
	Status       string                  `json:"status"`
	Visibility   domain.SearchVisibility `json:"visibility"`
	ClosedAt     *time.Time              `json:"closed_at"`
	IndexedAt    time.Time               `json:"indexed_at"`
}
