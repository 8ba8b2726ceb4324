package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/lumis/servicedesk/internal/domain"
	"github.com/lumis/servicedesk/internal/events"
	"github.com/lumis/servicedesk/internal/repository"
	"github.com/lumis/servicedesk/internal/workflow"
	"github.com/lumis/servicedesk/pkg/util"
)

// ProjectionService flattens closed tickets into the search index. One row
// per (ticket_type, ticket_id); rebuilding an already indexed ticket
// overwrites the row, so the operation is idempotent.
type ProjectionService struct {
	store  repository.Store
	logger *zap.Logger
}

// NewProjectionService constructs the service.
func NewProjectionService(store repository.Store, logger *zap.Logger) *ProjectionService {
	return &ProjectionService{store: store, logger: logger}
}

// RegisterHandlers subscribes the projection to terminal status changes so
// closed tickets get indexed without a manual call.
func (s *ProjectionService) RegisterHandlers(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventTicketStatusChanged, func(ctx context.Context, event events.Event) error {
		payload, ok := event.Payload.(events.TicketStatusChangedPayload)
		if !ok || !payload.Terminal {
			return nil
		}
		if _, err := s.Build(ctx, payload.TicketType, event.TicketID); err != nil {
			s.logger.Warn("search projection build failed",
				zap.String("ticket_id", event.TicketID), zap.Error(err))
		}
		return nil
	})
}

// Build projects the ticket into the search index. Only terminal tickets
// are indexable; earlier calls fail with a precondition error.
func (s *ProjectionService) Build(ctx context.Context, ticketType domain.TicketType, ticketID string) (*domain.SearchIndexEntry, error) {
	ticket, err := s.store.Tickets().GetByID(ctx, ticketID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, err
	}
	if ticket.Type != ticketType {
		return nil, util.NewValidationError("ticket type mismatch", map[string]any{
			"expected": string(ticketType),
			"actual":   string(ticket.Type),
		})
	}
	if !workflow.IsTerminal(ticket.Type, ticket.Status) {
		return nil, util.NewPreconditionFailed("ticket is not closed yet", map[string]any{
			"ticket_id": ticket.ID,
			"status":    string(ticket.Status),
		})
	}

	entry := buildEntry(ticket)
	if err := s.store.SearchIndex().Upsert(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Get returns the indexed row for a ticket.
func (s *ProjectionService) Get(ctx context.Context, ticketType domain.TicketType, ticketID string) (*domain.SearchIndexEntry, error) {
	entry, err := s.store.SearchIndex().Get(ctx, ticketType, ticketID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.NewNotFound("search entry", map[string]any{"ticket_id": ticketID})
		}
		return nil, err
	}
	return entry, nil
}

// Search queries the index. Dealer callers only see dealer-visible rows
// for their own dealer.
func (s *ProjectionService) Search(ctx context.Context, keyword string, dealerID *string, limit int) ([]domain.SearchIndexEntry, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, util.NewValidationError("keyword is required", nil)
	}
	var visibility *domain.SearchVisibility
	if dealerID != nil {
		v := domain.SearchVisibilityDealer
		visibility = &v
	}
	return s.store.SearchIndex().Search(ctx, keyword, visibility, dealerID, limit)
}

// buildEntry assembles the flattened row from the ticket's type-specific
// field groups.
func buildEntry(ticket *domain.Ticket) *domain.SearchIndexEntry {
	entry := &domain.SearchIndexEntry{
		TicketType:   ticket.Type,
		TicketID:     ticket.ID,
		TicketNumber: ticket.TicketNumber,
		Status:       string(ticket.Status),
		SerialNumber: deref(ticket.SerialNumber),
		ProductModel: deref(ticket.ProductID),
		DealerID:     ticket.DealerID,
		Visibility:   domain.SearchVisibilityInternal,
		ClosedAt:     ticket.ClosedAt,
	}
	if ticket.DealerID != nil {
		entry.Visibility = domain.SearchVisibilityDealer
	}

	switch ticket.Type {
	case domain.TicketTypeInquiry:
		entry.Title = deref(ticket.ProblemSummary)
		entry.Description = deref(ticket.CommunicationLog)
		entry.Resolution = deref(ticket.Resolution)
		entry.Category = deref(ticket.ServiceType)
		entry.Tags = nonEmpty(deref(ticket.ServiceType), deref(ticket.Channel))
	case domain.TicketTypeRMA:
		entry.Title = truncate(deref(ticket.ProblemDescription), 100)
		entry.Description = joinNonEmpty(deref(ticket.ProblemDescription), deref(ticket.ProblemAnalysis), deref(ticket.SolutionForCustomer))
		entry.Resolution = deref(ticket.RepairContent)
		entry.Category = deref(ticket.IssueCategory)
		entry.Tags = nonEmpty(deref(ticket.IssueType), deref(ticket.IssueCategory), ticket.ChannelCode)
	case domain.TicketTypeDealerRepair:
		entry.Title = truncate(deref(ticket.ProblemDescription), 100)
		entry.Description = deref(ticket.ProblemDescription)
		entry.Resolution = deref(ticket.RepairContent)
		entry.Category = deref(ticket.IssueCategory)
		entry.Tags = nonEmpty(deref(ticket.IssueType), deref(ticket.IssueCategory))
	}
	return entry
}

// truncate cuts s to at most max runes, never splitting a multi-byte
// character.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func joinNonEmpty(parts ...string) string {
	return strings.Join(nonEmpty(parts...), "\n")
}

func nonEmpty(parts ...string) []string {
	var out []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
