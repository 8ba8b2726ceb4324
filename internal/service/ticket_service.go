package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lumis/servicedesk/internal/assign"
	"github.com/lumis/servicedesk/internal/directory"
	"github.com/lumis/servicedesk/internal/domain"
	"github.com/lumis/servicedesk/internal/events"
	"github.com/lumis/servicedesk/internal/repository"
	"github.com/lumis/servicedesk/internal/sla"
	"github.com/lumis/servicedesk/internal/workflow"
	"github.com/lumis/servicedesk/pkg/util"
)

// TicketService coordinates the ticket lifecycle: numbering, workflow
// transitions, SLA tracking, routing and the activity ledger.
type TicketService struct {
	store      repository.Store
	dir        *directory.Directory
	router     *assign.Router
	sla        sla.Config
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	Store      repository.Store
	Directory  *directory.Directory
	Router     *assign.Router
	Sla        sla.Config
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		store:      deps.Store,
		dir:        deps.Directory,
		router:     deps.Router,
		sla:        deps.Sla,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		now:        time.Now,
	}
}

// CreateTicketInput describes ticket creation payload. Raw status strings
// are accepted and normalized; an empty status takes the type's initial.
type CreateTicketInput struct {
	Type        domain.TicketType
	ChannelCode string
	Status      string
	Priority    domain.Priority

	AccountID    *string
	DealerID     *string
	ProductID    *string
	SerialNumber *string
	ReporterName *string
	AssignedTo   *string

	ServiceType      *string
	Channel          *string
	ProblemSummary   *string
	CommunicationLog *string

	IssueType          *string
	IssueCategory      *string
	Severity           int
	ProblemDescription *string
	IsWarranty         bool

	ParentTicketID *string
}

func (in CreateTicketInput) validate() error {
	switch in.Type {
	case domain.TicketTypeInquiry, domain.TicketTypeRMA, domain.TicketTypeDealerRepair:
	default:
		return util.NewValidationError("unknown ticket type", map[string]any{"type": string(in.Type)})
	}
	if in.Type == domain.TicketTypeRMA && strings.TrimSpace(in.ChannelCode) == "" {
		return util.NewValidationError("channel code is required for rma tickets", nil)
	}
	switch in.Priority {
	case "", domain.PriorityP0, domain.PriorityP1, domain.PriorityP2:
	default:
		return util.NewValidationError("unknown priority", map[string]any{"priority": string(in.Priority)})
	}
	return nil
}

// channelCode returns the sequence bucket for the input. Inquiry and
// dealer-repair tickets do not carry a channel; they share one bucket per
// type and month.
func (in CreateTicketInput) channelCode() string {
	if in.Type == domain.TicketTypeRMA {
		return strings.ToUpper(strings.TrimSpace(in.ChannelCode))
	}
	return "-"
}

// Create allocates a ticket number, normalizes the initial status, computes
// the SLA deadline, routes an assignee and seeds the participant set, all
// under one transaction.
func (s *TicketService) Create(ctx context.Context, actorID string, input CreateTicketInput) (*domain.Ticket, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	status := workflow.InitialStatus(input.Type)
	if strings.TrimSpace(input.Status) != "" {
		status = workflow.NormalizeLogged(s.logger, input.Type, input.Status)
	}
	node, err := workflow.NodeFor(input.Type, status)
	if err != nil {
		return nil, util.NewInternalError(err)
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityP2
	}

	dueAt := s.sla.DueAt(input.Type, now)

	ticket := &domain.Ticket{
		Type:               input.Type,
		ChannelCode:        input.channelCode(),
		Status:             status,
		CurrentNode:        node,
		Priority:           priority,
		SlaDueAt:           &dueAt,
		SlaStatus:          domain.SlaNormal,
		AccountID:          input.AccountID,
		DealerID:           input.DealerID,
		ProductID:          input.ProductID,
		SerialNumber:       input.SerialNumber,
		ReporterName:       input.ReporterName,
		AssignedTo:         input.AssignedTo,
		SubmittedBy:        actorID,
		CreatedBy:          actorID,
		ServiceType:        input.ServiceType,
		Channel:            input.Channel,
		ProblemSummary:     input.ProblemSummary,
		CommunicationLog:   input.CommunicationLog,
		IssueType:          input.IssueType,
		IssueCategory:      input.IssueCategory,
		Severity:           input.Severity,
		ProblemDescription: input.ProblemDescription,
		IsWarranty:         input.IsWarranty,
		ParentTicketID:     input.ParentTicketID,
		NodeEnteredAt:      now,
	}

	s.resolveReferences(ctx, ticket)

	if ticket.AssignedTo == nil && s.router != nil && s.router.HasPool(node) {
		picked, err := s.router.Pick(node, input.Type)
		if err != nil {
			return nil, util.NewInternalError(err)
		}
		ticket.AssignedTo = &picked
	}

	err = s.store.InTx(ctx, func(tx repository.Store) error {
		seq, err := tx.Sequences().Next(ctx, ticket.Type, ticket.ChannelCode, yearMonth(now))
		if err != nil {
			return fmt.Errorf("allocate sequence: %w", err)
		}
		ticket.TicketNumber = FormatTicketNumber(ticket.Type, ticket.ChannelCode, yearMonth(now), seq)

		if err := tx.Tickets().Create(ctx, ticket); err != nil {
			return fmt.Errorf("insert ticket: %w", err)
		}

		if _, err := tx.Participants().Add(ctx, &domain.TicketParticipant{
			TicketID:    ticket.ID,
			UserID:      actorID,
			Role:        domain.RoleOwner,
			JoinMethod:  domain.JoinAuto,
			NotifyLevel: domain.NotifyAll,
			AddedBy:     actorID,
		}); err != nil {
			return err
		}
		if ticket.AssignedTo != nil && *ticket.AssignedTo != actorID {
			if _, err := tx.Participants().Add(ctx, &domain.TicketParticipant{
				TicketID:    ticket.ID,
				UserID:      *ticket.AssignedTo,
				Role:        domain.RoleAssignee,
				JoinMethod:  domain.JoinAuto,
				NotifyLevel: domain.NotifyAll,
				AddedBy:     actorID,
			}); err != nil {
				return err
			}
		}

		return tx.Activities().Append(ctx, &domain.TicketActivity{
			TicketID:   ticket.ID,
			Type:       domain.ActivityStatusChange,
			Content:    fmt.Sprintf("ticket %s created", ticket.TicketNumber),
			Visibility: domain.VisibilityExternal,
			ActorID:    actor.ID,
			ActorName:  actor.Name,
			ActorRole:  actor.Role,
			Metadata: map[string]any{
				"ticket_number": ticket.TicketNumber,
				"to_status":     string(ticket.Status),
				"to_node":       string(ticket.CurrentNode),
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketCreated,
		TicketID:  ticket.ID,
		Actor:     actor.eventActor(),
		Timestamp: now,
		Payload: events.TicketCreatedPayload{
			TicketNumber: ticket.TicketNumber,
			TicketType:   ticket.Type,
			Status:       ticket.Status,
			Node:         ticket.CurrentNode,
			Priority:     ticket.Priority,
			AssignedTo:   ticket.AssignedTo,
		},
	})

	return ticket, nil
}

// resolveReferences drops account/product ids that do not resolve against
// their owning systems. A dangling reference is a data-quality issue, not
// an error: the ticket is still created, with the id nulled and a warning
// logged for the import pipeline to pick up.
func (s *TicketService) resolveReferences(ctx context.Context, ticket *domain.Ticket) {
	refs := s.store.References()
	if ticket.AccountID != nil {
		switch ok, err := refs.AccountExists(ctx, *ticket.AccountID); {
		case err != nil:
			s.logger.Warn("account reference check failed",
				zap.String("account_id", *ticket.AccountID), zap.Error(err))
		case !ok:
			s.logger.Warn("dropping unknown account reference",
				zap.String("account_id", *ticket.AccountID))
			ticket.AccountID = nil
		}
	}
	if ticket.ProductID != nil {
		switch ok, err := refs.ProductExists(ctx, *ticket.ProductID); {
		case err != nil:
			s.logger.Warn("product reference check failed",
				zap.String("product_id", *ticket.ProductID), zap.Error(err))
		case !ok:
			s.logger.Warn("dropping unknown product reference",
				zap.String("product_id", *ticket.ProductID))
			ticket.ProductID = nil
		}
	}
}

// ChangeStatus moves a ticket along its workflow. The raw status is
// normalized against the ticket's type; transitions outside the table are
// rejected before any write happens.
func (s *TicketService) ChangeStatus(ctx context.Context, actorID, ticketID, rawStatus, comment string) (*domain.Ticket, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	ticket, err := s.getForActor(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}

	target, ok := workflow.Normalize(ticket.Type, rawStatus)
	if !ok {
		return nil, util.NewValidationError("unknown status", map[string]any{
			"ticket_type": string(ticket.Type),
			"status":      rawStatus,
		})
	}
	if !workflow.CanTransition(ticket.Type, ticket.Status, target) {
		return nil, util.NewInvalidTransition(string(ticket.Type), string(ticket.Status), string(target))
	}

	node, err := workflow.NodeFor(ticket.Type, target)
	if err != nil {
		return nil, util.NewInternalError(err)
	}

	now := s.now().UTC()
	oldStatus, oldNode := ticket.Status, ticket.CurrentNode
	terminal := workflow.IsTerminal(ticket.Type, target)

	ticket.Status = target
	ticket.CurrentNode = node
	ticket.NodeEnteredAt = now
	if terminal {
		ticket.ClosedAt = &now
		// One last recompute against the clock: a breach that happened
		// after the previous sweep must not freeze at a stale value.
		// Severity never decreases at close.
		ticket.SlaStatus = sla.Worse(ticket.SlaStatus, sla.Evaluate(ticket, now, false))
	} else {
		dueAt := s.sla.DueAt(ticket.Type, now)
		ticket.SlaDueAt = &dueAt
		ticket.SlaStatus = sla.Evaluate(ticket, now, false)
	}

	err = s.store.InTx(ctx, func(tx repository.Store) error {
		if err := tx.Tickets().Update(ctx, ticket); err != nil {
			return err
		}
		content := fmt.Sprintf("status changed from %s to %s", oldStatus, target)
		if comment != "" {
			content = comment
		}
		return tx.Activities().Append(ctx, &domain.TicketActivity{
			TicketID:   ticket.ID,
			Type:       domain.ActivityStatusChange,
			Content:    content,
			Visibility: domain.VisibilityExternal,
			ActorID:    actor.ID,
			ActorName:  actor.Name,
			ActorRole:  actor.Role,
			Metadata: map[string]any{
				"from_status": string(oldStatus),
				"to_status":   string(target),
				"from_node":   string(oldNode),
				"to_node":     string(node),
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketStatusChanged,
		TicketID:  ticket.ID,
		Actor:     actor.eventActor(),
		Timestamp: now,
		Payload: events.TicketStatusChangedPayload{
			TicketType: ticket.Type,
			OldStatus:  oldStatus,
			NewStatus:  target,
			OldNode:    oldNode,
			NewNode:    node,
			Terminal:   terminal,
			Comment:    comment,
		},
	})

	return ticket, nil
}

// Assign hands the ticket to a new assignee. The previous assignee stays on
// the ticket as a watcher so they keep receiving updates.
func (s *TicketService) Assign(ctx context.Context, actorID, ticketID, assigneeID string) (*domain.Ticket, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	ticket, err := s.getForActor(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}
	if workflow.IsTerminal(ticket.Type, ticket.Status) {
		return nil, util.NewPreconditionFailed("cannot assign a closed ticket", map[string]any{
			"ticket_id": ticket.ID,
			"status":    string(ticket.Status),
		})
	}

	assignee, err := s.dir.Lookup(ctx, assigneeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.NewNotFound("assignee", map[string]any{"user_id": assigneeID})
		}
		return nil, err
	}

	now := s.now().UTC()
	oldAssignee := ticket.AssignedTo
	ticket.AssignedTo = &assignee.ID

	err = s.store.InTx(ctx, func(tx repository.Store) error {
		if err := tx.Tickets().Update(ctx, ticket); err != nil {
			return err
		}
		if oldAssignee != nil && *oldAssignee != assignee.ID {
			if _, err := tx.Participants().Add(ctx, &domain.TicketParticipant{
				TicketID:    ticket.ID,
				UserID:      *oldAssignee,
				Role:        domain.RoleWatcher,
				JoinMethod:  domain.JoinAuto,
				NotifyLevel: domain.NotifyAll,
				AddedBy:     actorID,
			}); err != nil {
				return err
			}
		}
		if _, err := tx.Participants().Add(ctx, &domain.TicketParticipant{
			TicketID:    ticket.ID,
			UserID:      assignee.ID,
			Role:        domain.RoleAssignee,
			JoinMethod:  domain.JoinAuto,
			NotifyLevel: domain.NotifyAll,
			AddedBy:     actorID,
		}); err != nil {
			return err
		}

		metadata := map[string]any{"new_assignee": assignee.ID}
		if oldAssignee != nil {
			metadata["old_assignee"] = *oldAssignee
		}
		return tx.Activities().Append(ctx, &domain.TicketActivity{
			TicketID:   ticket.ID,
			Type:       domain.ActivityAssignment,
			Content:    fmt.Sprintf("assigned to %s", assignee.Name),
			Visibility: domain.VisibilityInternal,
			ActorID:    actor.ID,
			ActorName:  actor.Name,
			ActorRole:  actor.Role,
			Metadata:   metadata,
		})
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketAssigned,
		TicketID:  ticket.ID,
		Actor:     actor.eventActor(),
		Timestamp: now,
		Payload: events.TicketAssignedPayload{
			OldAssignee: oldAssignee,
			NewAssignee: assignee.ID,
			Node:        ticket.CurrentNode,
		},
	})

	return ticket, nil
}

// AddComment appends a comment to the ledger, pulling @-mentioned users
// onto the ticket as participants.
func (s *TicketService) AddComment(ctx context.Context, actorID, ticketID, body string, visibility domain.Visibility) (*domain.TicketActivity, error) {
	if strings.TrimSpace(body) == "" {
		return nil, util.NewValidationError("comment body is required", nil)
	}
	switch visibility {
	case "":
		visibility = domain.VisibilityInternal
	case domain.VisibilityInternal, domain.VisibilityExternal:
	default:
		return nil, util.NewValidationError("unknown visibility", map[string]any{"visibility": string(visibility)})
	}

	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.IsDealer {
		// Dealer comments always land on the external ledger.
		visibility = domain.VisibilityExternal
	}

	ticket, err := s.getForActor(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}

	mentioned := extractMentions(ctx, s.dir, body)

	activity := &domain.TicketActivity{
		TicketID:   ticket.ID,
		Type:       domain.ActivityComment,
		Content:    body,
		Visibility: visibility,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
		ActorRole:  actor.Role,
	}
	if len(mentioned) > 0 {
		activity.Metadata = map[string]any{"mentioned_users": mentioned}
	}

	err = s.store.InTx(ctx, func(tx repository.Store) error {
		if err := tx.Activities().Append(ctx, activity); err != nil {
			return err
		}
		for _, mention := range mentioned {
			if _, err := tx.Participants().Add(ctx, &domain.TicketParticipant{
				TicketID:    ticket.ID,
				UserID:      mention.UserID,
				Role:        domain.RoleMentioned,
				JoinMethod:  domain.JoinMention,
				NotifyLevel: domain.NotifyAll,
				AddedBy:     actorID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketCommentAdded,
		TicketID:  ticket.ID,
		Actor:     actor.eventActor(),
		Timestamp: activity.CreatedAt,
		Payload: events.TicketCommentAddedPayload{
			ActivityID:     activity.ID,
			Visibility:     activity.Visibility,
			MentionedUsers: mentioned,
			BodyPreview:    preview(body),
		},
	})

	return activity, nil
}

// ConvertInput describes upgrading an inquiry into a repair ticket.
type ConvertInput struct {
	TargetType  domain.TicketType
	ChannelCode string
	IssueType   *string
	Severity    int
}

// Convert closes an inquiry as Upgraded and opens a linked repair ticket
// that inherits the account, product and reporter context.
func (s *TicketService) Convert(ctx context.Context, actorID, ticketID string, input ConvertInput) (*domain.Ticket, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	source, err := s.getForActor(ctx, actor, ticketID)
	if err != nil {
		return nil, err
	}
	if source.Type != domain.TicketTypeInquiry {
		return nil, util.NewPreconditionFailed("only inquiries can be converted", map[string]any{
			"ticket_type": string(source.Type),
		})
	}
	if workflow.IsTerminal(source.Type, source.Status) {
		return nil, util.NewPreconditionFailed("inquiry already closed", map[string]any{
			"status": string(source.Status),
		})
	}
	switch input.TargetType {
	case domain.TicketTypeRMA, domain.TicketTypeDealerRepair:
	default:
		return nil, util.NewValidationError("conversion target must be a repair type", map[string]any{
			"target_type": string(input.TargetType),
		})
	}

	child, err := s.Create(ctx, actorID, CreateTicketInput{
		Type:               input.TargetType,
		ChannelCode:        input.ChannelCode,
		Priority:           source.Priority,
		AccountID:          source.AccountID,
		DealerID:           source.DealerID,
		ProductID:          source.ProductID,
		SerialNumber:       source.SerialNumber,
		ReporterName:       source.ReporterName,
		IssueType:          input.IssueType,
		Severity:           input.Severity,
		ProblemDescription: source.ProblemSummary,
		ParentTicketID:     &source.ID,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.ChangeStatus(ctx, actorID, source.ID, string(domain.StatusUpgraded),
		fmt.Sprintf("upgraded to %s", child.TicketNumber)); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventTicketConverted,
		TicketID:  source.ID,
		Actor:     actor.eventActor(),
		Timestamp: s.now().UTC(),
		Payload: events.TicketConvertedPayload{
			SourceTicketID:   source.ID,
			SourceNumber:     source.TicketNumber,
			TargetTicketID:   child.ID,
			TargetNumber:     child.TicketNumber,
			TargetTicketType: child.Type,
		},
	})

	return child, nil
}

// Get fetches a ticket, enforcing dealer scoping.
func (s *TicketService) Get(ctx context.Context, actorID, ticketID string) (*domain.Ticket, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return s.getForActor(ctx, actor, ticketID)
}

// GetByNumber fetches a ticket by its human-facing number.
func (s *TicketService) GetByNumber(ctx context.Context, actorID, number string) (*domain.Ticket, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	ticket, err := s.store.Tickets().GetByNumber(ctx, number)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.NewNotFound("ticket", map[string]any{"ticket_number": number})
		}
		return nil, err
	}
	if err := actor.mayView(ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

// List returns tickets matching the filter. Dealer actors are pinned to
// their own dealer's tickets regardless of the requested filter.
func (s *TicketService) List(ctx context.Context, actorID string, filter repository.TicketFilter) ([]domain.Ticket, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.IsDealer {
		filter.DealerID = actor.DealerID
	}
	return s.store.Tickets().ListWithFilter(ctx, filter)
}

// ListActivities returns the ticket's ledger. Dealer actors only see the
// external entries.
func (s *TicketService) ListActivities(ctx context.Context, actorID, ticketID string) ([]domain.TicketActivity, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.getForActor(ctx, actor, ticketID); err != nil {
		return nil, err
	}
	return s.store.Activities().ListByTicket(ctx, ticketID, !actor.IsDealer)
}

// ListParticipants returns the ticket's participant set.
func (s *TicketService) ListParticipants(ctx context.Context, actorID, ticketID string) ([]domain.TicketParticipant, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.getForActor(ctx, actor, ticketID); err != nil {
		return nil, err
	}
	return s.store.Participants().ListByTicket(ctx, ticketID)
}

// Stats aggregates dashboard counts. Dealer actors see their own slice.
func (s *TicketService) Stats(ctx context.Context, actorID string, filter repository.TicketFilter) (*domain.TicketStats, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.IsDealer {
		filter.DealerID = actor.DealerID
	}
	return s.store.Tickets().Stats(ctx, filter)
}

// SweepSla recomputes the due-state of every open ticket and persists the
// ones whose severity moved. Returns how many tickets changed.
func (s *TicketService) SweepSla(ctx context.Context) (int, error) {
	tickets, err := s.store.Tickets().ListOpenWithDue(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now().UTC()
	changed := 0
	for i := range tickets {
		ticket := &tickets[i]
		next := sla.Evaluate(ticket, now, workflow.IsTerminal(ticket.Type, ticket.Status))
		if next == ticket.SlaStatus {
			continue
		}
		ticket.SlaStatus = next
		if err := s.store.Tickets().Update(ctx, ticket); err != nil {
			s.logger.Error("sla sweep update failed",
				zap.String("ticket_id", ticket.ID), zap.Error(err))
			continue
		}
		changed++
	}

	if changed > 0 {
		s.logger.Info("sla sweep finished",
			zap.Int("scanned", len(tickets)), zap.Int("changed", changed))
	}
	return changed, nil
}

// actorInfo is the resolved acting user in ledger/event terms.
type actorInfo struct {
	ID       string
	Name     string
	Role     string
	IsDealer bool
	DealerID *string
}

func (a actorInfo) eventActor() events.Actor {
	return events.Actor{UserID: a.ID, Name: a.Name, Role: a.Role}
}

func (a actorInfo) mayView(ticket *domain.Ticket) error {
	if !a.IsDealer {
		return nil
	}
	if ticket.DealerID != nil && a.DealerID != nil && *ticket.DealerID == *a.DealerID {
		return nil
	}
	return util.NewForbidden("ticket belongs to another dealer")
}

func (s *TicketService) actor(ctx context.Context, actorID string) (actorInfo, error) {
	user, err := s.dir.Lookup(ctx, actorID)
	if err != nil {
		if repository.IsNotFound(err) {
			return actorInfo{}, util.NewUnauthorized("unknown actor")
		}
		return actorInfo{}, err
	}
	return actorInfo{
		ID:       user.ID,
		Name:     user.Name,
		Role:     user.Department.ActorRole(),
		IsDealer: user.IsDealer(),
		DealerID: user.DealerID,
	}, nil
}

func (s *TicketService) getForActor(ctx context.Context, actor actorInfo, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.store.Tickets().GetByID(ctx, ticketID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, util.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, err
	}
	if err := actor.mayView(ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed", zap.String("event", string(event.Type)), zap.Error(err))
	}
}

// preview shortens a comment body for event payloads, cutting on rune
// boundaries so CJK text stays valid UTF-8.
func preview(body string) string {
	const max = 120
	return truncate(strings.TrimSpace(body), max)
}
