package repository

import (
	"context"

	"github.com/lumis/servicedesk/internal/domain"
)

// ActivityRepository stores the append-only ticket activity ledger.
type ActivityRepository interface {
	Append(ctx context.Context, activity *domain.TicketActivity) error
	ListByTicket(ctx context.Context, ticketID string, includeInternal bool) ([]domain.TicketActivity, error)
}

type activityRepository struct {
	db Querier
}

// NewActivityRepository instantiates the repository.
func NewActivityRepository(db Querier) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Append(ctx context.Context, activity *domain.TicketActivity) error {
	const query = `
        INSERT INTO ticket_activities (ticket_id, activity_type, content, visibility, actor_id, actor_name, actor_role, metadata)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		activity.TicketID,
		activity.Type,
		activity.Content,
		activity.Visibility,
		activity.ActorID,
		activity.ActorName,
		activity.ActorRole,
		activity.Metadata,
	).Scan(&activity.ID, &activity.CreatedAt)
}

func (r *activityRepository) ListByTicket(ctx context.Context, ticketID string, includeInternal bool) ([]domain.TicketActivity, error) {
	query := `
        SELECT id, ticket_id, activity_type, content, visibility, actor_id, actor_name, actor_role, metadata, created_at
        FROM ticket_activities WHERE ticket_id=$1`
	if !includeInternal {
		query += ` AND visibility='external'`
	}
	query += ` ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketActivity
	for rows.Next() {
		var activity domain.TicketActivity
		if err := rows.Scan(
			&activity.ID,
			&activity.TicketID,
			&activity.Type,
			&activity.Content,
			&activity.Visibility,
			&activity.ActorID,
			&activity.ActorName,
			&activity.ActorRole,
			&activity.Metadata,
			&activity.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, activity)
	}
	return result, rows.Err()
}
