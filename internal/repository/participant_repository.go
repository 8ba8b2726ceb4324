package repository

import (
	"context"

	"github.com/lumis/servicedesk/internal/domain"
)

// ParticipantRepository stores the set of users attached to a ticket.
type ParticipantRepository interface {
	// Add inserts the participant if absent. It reports whether a row
	// was actually created; an existing membership is left untouched.
	Add(ctx context.Context, participant *domain.TicketParticipant) (bool, error)
	ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketParticipant, error)
	SetNotifyLevel(ctx context.Context, ticketID, userID string, level domain.NotifyLevel) error
}

type participantRepository struct {
	db Querier
}

// NewParticipantRepository instantiates the repository.
func NewParticipantRepository(db Querier) ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) Add(ctx context.Context, participant *domain.TicketParticipant) (bool, error) {
	const query = `
        INSERT INTO ticket_participants (ticket_id, user_id, role, join_method, notify_level, added_by)
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT (ticket_id, user_id) DO NOTHING`

	cmd, err := r.db.Exec(ctx, query,
		participant.TicketID,
		participant.UserID,
		participant.Role,
		participant.JoinMethod,
		participant.NotifyLevel,
		participant.AddedBy,
	)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *participantRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.TicketParticipant, error) {
	const query = `
        SELECT ticket_id, user_id, role, join_method, notify_level, added_by, joined_at
        FROM ticket_participants WHERE ticket_id=$1 ORDER BY joined_at ASC`

	rows, err := r.db.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketParticipant
	for rows.Next() {
		var p domain.TicketParticipant
		if err := rows.Scan(&p.TicketID, &p.UserID, &p.Role, &p.JoinMethod, &p.NotifyLevel, &p.AddedBy, &p.JoinedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (r *participantRepository) SetNotifyLevel(ctx context.Context, ticketID, userID string, level domain.NotifyLevel) error {
	const query = `UPDATE ticket_participants SET notify_level=$1 WHERE ticket_id=$2 AND user_id=$3`
	_, err := r.db.Exec(ctx, query, level, ticketID, userID)
	return err
}
