package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/lumis/servicedesk/internal/directory"
	"github.com/lumis/servicedesk/internal/domain"
	"github.com/lumis/servicedesk/internal/events"
	"github.com/lumis/servicedesk/internal/repository"
)

// NotificationService fans ticket events out to participants. Delivery is
// a log line per recipient; an outbound channel can hook in later.
type NotificationService struct {
	store  repository.Store
	dir    *directory.Directory
	logger *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(store repository.Store, dir *directory.Directory, logger *zap.Logger) *NotificationService {
	return &NotificationService{store: store, dir: dir, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	dispatcher.Subscribe(events.EventTicketStatusChanged, n.notifyParticipants)
	dispatcher.Subscribe(events.EventTicketAssigned, n.handleTicketAssigned)
	dispatcher.Subscribe(events.EventTicketCommentAdded, n.handleCommentAdded)
}

func (n *NotificationService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("ticket created",
		zap.String("ticket_id", event.TicketID),
		zap.String("ticket_number", payload.TicketNumber),
		zap.String("ticket_type", string(payload.TicketType)))
	return n.notifyParticipants(ctx, event)
}

func (n *NotificationService) handleTicketAssigned(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketAssignedPayload)
	if !ok {
		return nil
	}
	name, err := n.dir.DisplayName(ctx, payload.NewAssignee)
	if err != nil {
		name = payload.NewAssignee
	}
	n.logger.Info("ticket assigned",
		zap.String("ticket_id", event.TicketID),
		zap.String("assignee", name))
	return n.notifyParticipants(ctx, event)
}

// handleCommentAdded notifies mentioned users directly, then the general
// participant set. Mentioned users are notified even at the "mentions"
// notify level.
func (n *NotificationService) handleCommentAdded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCommentAddedPayload)
	if !ok {
		return nil
	}
	for _, mention := range payload.MentionedUsers {
		n.logger.Info("mention notification",
			zap.String("ticket_id", event.TicketID),
			zap.String("user_id", mention.UserID),
			zap.String("user", mention.Name),
			zap.String("preview", payload.BodyPreview))
	}
	return n.notifyParticipants(ctx, event)
}

func (n *NotificationService) notifyParticipants(ctx context.Context, event events.Event) error {
	participants, err := n.store.Participants().ListByTicket(ctx, event.TicketID)
	if err != nil {
		n.logger.Warn("participant lookup failed",
			zap.String("ticket_id", event.TicketID), zap.Error(err))
		return nil
	}
	for _, p := range participants {
		if p.NotifyLevel != domain.NotifyAll {
			continue
		}
		if p.UserID == event.Actor.UserID {
			continue
		}
		n.logger.Debug("participant notification",
			zap.String("ticket_id", event.TicketID),
			zap.String("user_id", p.UserID),
			zap.String("event_type", string(event.Type)))
	}
	return nil
}
