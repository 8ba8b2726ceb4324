package domain

import "time"

// TicketType discriminates the three ticket domains sharing the tickets table.
type TicketType string

const (
	TicketTypeInquiry      TicketType = "inquiry"
	TicketTypeRMA          TicketType = "rma"
	TicketTypeDealerRepair TicketType = "dealer_repair"
)

// Status is a canonical, type-scoped lifecycle status. The set of valid
// values per type lives in the workflow tables.
type Status string

// Inquiry statuses.
const (
	StatusDraft            Status = "Draft"
	StatusInProgress       Status = "InProgress"
	StatusAwaitingFeedback Status = "AwaitingFeedback"
	StatusResolved         Status = "Resolved"
	StatusAutoClosed       Status = "AutoClosed"
	StatusUpgraded         Status = "Upgraded"
)

// RMA and dealer-repair statuses. Diagnosing/QA/Receiving are shared labels
// but route to different nodes per type.
const (
	StatusPending    Status = "Pending"
	StatusMSReview   Status = "MSReview"
	StatusReceiving  Status = "Receiving"
	StatusDiagnosing Status = "Diagnosing"
	StatusRepairing  Status = "Repairing"
	StatusQA         Status = "QA"
	StatusMSClosing  Status = "MSClosing"
	StatusClosing    Status = "Closing"
	StatusCompleted  Status = "Completed"
	StatusClosed     Status = "Closed"
	StatusCancelled  Status = "Cancelled"
)

// Node is a coarse workflow stage drawn from a vocabulary shared across
// ticket types. It is always derived from (type, status), never set directly.
type Node string

const (
	NodeDraft           Node = "draft"
	NodeInProgress      Node = "in_progress"
	NodeWaitingCustomer Node = "waiting_customer"
	NodeResolved        Node = "resolved"
	NodeAutoClosed      Node = "auto_closed"
	NodeConverted       Node = "converted"

	NodeSubmitted    Node = "submitted"
	NodeMSReview     Node = "ms_review"
	NodeOpReceiving  Node = "op_receiving"
	NodeOpDiagnosing Node = "op_diagnosing"
	NodeOpRepairing  Node = "op_repairing"
	NodeOpQA         Node = "op_qa"
	NodeMSClosing    Node = "ms_closing"

	NodeGEReview    Node = "ge_review"
	NodeDlReceiving Node = "dl_receiving"
	NodeDlRepairing Node = "dl_repairing"
	NodeDlQA        Node = "dl_qa"
	NodeGEClosing   Node = "ge_closing"

	NodeClosed    Node = "closed"
	NodeCancelled Node = "cancelled"
)

// Priority enumerates SLA urgency tiers.
type Priority string

const (
	PriorityP0 Priority = "P0"
	PriorityP1 Priority = "P1"
	PriorityP2 Priority = "P2"
)

// SlaStatus tracks due-state severity.
type SlaStatus string

const (
	SlaNormal   SlaStatus = "normal"
	SlaWarning  SlaStatus = "warning"
	SlaBreached SlaStatus = "breached"
)

// Ticket is the polymorphic aggregate for all three ticket domains.
// Type-specific field groups are pointers and populated per TicketType.
type Ticket struct {
	ID           string
	TicketNumber string
	Type         TicketType
	ChannelCode  string

	Status      Status
	CurrentNode Node
	Priority    Priority

	SlaDueAt  *time.Time
	SlaStatus SlaStatus

	AccountID    *string
	DealerID     *string
	ProductID    *string
	SerialNumber *string
	ReporterName *string

	AssignedTo  *string
	SubmittedBy string
	CreatedBy   string

	// Inquiry fields.
	ServiceType      *string
	Channel          *string
	ProblemSummary   *string
	CommunicationLog *string
	Resolution       *string

	// RMA / dealer-repair fields.
	IssueType           *string
	IssueCategory       *string
	Severity            int
	ProblemDescription  *string
	ProblemAnalysis     *string
	SolutionForCustomer *string
	RepairContent       *string
	IsWarranty          bool

	ParentTicketID *string

	NodeEnteredAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ClosedAt      *time.Time
}

// TicketStats aggregates dashboard counts.
type TicketStats struct {
	Total      int64
	ByStatus   map[Status]int64
	ByPriority map[Priority]int64
	BySla      map[SlaStatus]int64
	ByType     map[TicketType]int64
}
