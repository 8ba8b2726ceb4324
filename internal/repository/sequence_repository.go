package repository

import (
	"context"

	"github.com/lumis/servicedesk/internal/domain"
)

// SequenceRepository issues monotonic sequence numbers per
// (ticket_type, channel, year_month) scope.
type SequenceRepository interface {
	// Next atomically increments and returns the sequence for the scope,
	// creating the row at 1 on first use. The increment is a single
	// statement, so concurrent callers for the same scope serialize on the
	// row and can never observe the same value.
	Next(ctx context.Context, ticketType domain.TicketType, channelCode, yearMonth string) (int64, error)
}

type sequenceRepository struct {
	db Querier
}

// NewSequenceRepository returns a Postgres-backed implementation.
func NewSequenceRepository(db Querier) SequenceRepository {
	return &sequenceRepository{db: db}
}

func (r *sequenceRepository) Next(ctx context.Context, ticketType domain.TicketType, channelCode, yearMonth string) (int64, error) {
	const query = `
        INSERT INTO ticket_sequences (ticket_type, channel_code, year_month, last_sequence)
        VALUES ($1, $2, $3, 1)
        ON CONFLICT (ticket_type, channel_code, year_month)
        DO UPDATE SET last_sequence = ticket_sequences.last_sequence + 1, updated_at = NOW()
        RETURNING last_sequence`

	var seq int64
	if err := r.db.QueryRow(ctx, query, ticketType, channelCode, yearMonth).Scan(&seq); err != nil {
		return 0, err
	}
	return seq, nil
}
