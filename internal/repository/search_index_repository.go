package repository

import (
	"context"
	"fmt"

	"github.com/lumis/servicedesk/internal/domain"
)

// SearchIndexRepository stores the flattened per-ticket search rows.
type SearchIndexRepository interface {
	Upsert(ctx context.Context, entry *domain.SearchIndexEntry) error
	Get(ctx context.Context, ticketType domain.TicketType, ticketID string) (*domain.SearchIndexEntry, error)
	Search(ctx context.Context, keyword string, visibility *domain.SearchVisibility, dealerID *string, limit int) ([]domain.SearchIndexEntry, error)
}

type searchIndexRepository struct {
	db Querier
}

// NewSearchIndexRepository instantiates the repository.
func NewSearchIndexRepository(db Querier) SearchIndexRepository {
	return &searchIndexRepository{db: db}
}

func (r *searchIndexRepository) Upsert(ctx context.Context, entry *domain.SearchIndexEntry) error {
	const query = `
        INSERT INTO ticket_search_index (
            ticket_type, ticket_id, ticket_number, title, description, resolution, tags,
            product_model, serial_number, category, status, dealer_id, visibility, closed_at, indexed_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,NOW())
        ON CONFLICT (ticket_type, ticket_id) DO UPDATE SET
            ticket_number=EXCLUDED.ticket_number,
            title=EXCLUDED.title,
            description=EXCLUDED.description,
            resolution=EXCLUDED.resolution,
            tags=EXCLUDED.tags,
            product_model=EXCLUDED.product_model,
            serial_number=EXCLUDED.serial_number,
            category=EXCLUDED.category,
            status=EXCLUDED.status,
            dealer_id=EXCLUDED.dealer_id,
            visibility=EXCLUDED.visibility,
            closed_at=EXCLUDED.closed_at,
            indexed_at=NOW()
        RETURNING indexed_at`

	return r.db.QueryRow(ctx, query,
		entry.TicketType,
		entry.TicketID,
		entry.TicketNumber,
		entry.Title,
		entry.Description,
		entry.Resolution,
		entry.Tags,
		entry.ProductModel,
		entry.SerialNumber,
		entry.Category,
		entry.Status,
		entry.DealerID,
		entry.Visibility,
		entry.ClosedAt,
	).Scan(&entry.IndexedAt)
}

const searchIndexColumns = `ticket_type, ticket_id, ticket_number, title, description, resolution, tags,
            product_model, serial_number, category, status, dealer_id, visibility, closed_at, indexed_at`

func (r *searchIndexRepository) Get(ctx context.Context, ticketType domain.TicketType, ticketID string) (*domain.SearchIndexEntry, error) {
	query := `SELECT ` + searchIndexColumns + ` FROM ticket_search_index WHERE ticket_type=$1 AND ticket_id=$2`

	var entry domain.SearchIndexEntry
	err := r.db.QueryRow(ctx, query, ticketType, ticketID).Scan(
		&entry.TicketType,
		&entry.TicketID,
		&entry.TicketNumber,
		&entry.Title,
		&entry.Description,
		&entry.Resolution,
		&entry.Tags,
		&entry.ProductModel,
		&entry.SerialNumber,
		&entry.Category,
		&entry.Status,
		&entry.DealerID,
		&entry.Visibility,
		&entry.ClosedAt,
		&entry.IndexedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *searchIndexRepository) Search(ctx context.Context, keyword string, visibility *domain.SearchVisibility, dealerID *string, limit int) ([]domain.SearchIndexEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + searchIndexColumns + ` FROM ticket_search_index
        WHERE (ticket_number ILIKE $1 OR title ILIKE $1 OR description ILIKE $1 OR resolution ILIKE $1 OR serial_number ILIKE $1)`
	args := []any{"%" + keyword + "%"}
	if visibility != nil {
		args = append(args, *visibility)
		query += fmt.Sprintf(" AND visibility=$%d", len(args))
	}
	if dealerID != nil {
		args = append(args, *dealerID)
		query += fmt.Sprintf(" AND dealer_id=$%d", len(args))
	}
	query += fmt.Sprintf(" ORDER BY indexed_at DESC LIMIT %d", limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SearchIndexEntry
	for rows.Next() {
		var entry domain.SearchIndexEntry
		if err := rows.Scan(
			&entry.TicketType,
			&entry.TicketID,
			&entry.TicketNumber,
			&entry.Title,
			&entry.Description,
			&entry.Resolution,
			&entry.Tags,
			&entry.ProductModel,
			&entry.SerialNumber,
			&entry.Category,
			&entry.Status,
			&entry.DealerID,
			&entry.Visibility,
			&entry.ClosedAt,
			&entry.IndexedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
