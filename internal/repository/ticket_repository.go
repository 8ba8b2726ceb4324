package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/lumis/servicedesk/internal/domain"
)

// TicketFilter captures listing parameters.
type TicketFilter struct {
	Type         *domain.TicketType
	Statuses     []domain.Status
	Nodes        []domain.Node
	Priorities   []domain.Priority
	SlaStatuses  []domain.SlaStatus
	AssignedTo   *string
	SubmittedBy  *string
	AccountID    *string
	DealerID     *string
	SerialNumber *string
	Keyword      *string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	Limit        int
	Offset       int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	GetByNumber(ctx context.Context, number string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	ListOpenWithDue(ctx context.Context) ([]domain.Ticket, error)
	Stats(ctx context.Context, filter TicketFilter) (*domain.TicketStats, error)
}

type ticketRepository struct {
	db Querier
}

// NewTicketRepository instantiates the repository.
func NewTicketRepository(db Querier) TicketRepository {
	return &ticketRepository{db: db}
}

const ticketColumns = `id, ticket_number, ticket_type, channel_code, status, current_node, priority,
               sla_due_at, sla_status, account_id, dealer_id, product_id, serial_number, reporter_name,
               assigned_to, submitted_by, created_by,
               service_type, channel, problem_summary, communication_log, resolution,
               issue_type, issue_category, severity, problem_description, problem_analysis,
               solution_for_customer, repair_content, is_warranty, parent_ticket_id,
               node_entered_at, created_at, updated_at, closed_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (
            ticket_number, ticket_type, channel_code, status, current_node, priority,
            sla_due_at, sla_status, account_id, dealer_id, product_id, serial_number, reporter_name,
            assigned_to, submitted_by, created_by,
            service_type, channel, problem_summary, communication_log, resolution,
            issue_type, issue_category, severity, problem_description, problem_analysis,
            solution_for_customer, repair_content, is_warranty, parent_ticket_id, node_entered_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		ticket.TicketNumber,
		ticket.Type,
		ticket.ChannelCode,
		ticket.Status,
		ticket.CurrentNode,
		ticket.Priority,
		ticket.SlaDueAt,
		ticket.SlaStatus,
		ticket.AccountID,
		ticket.DealerID,
		ticket.ProductID,
		ticket.SerialNumber,
		ticket.ReporterName,
		ticket.AssignedTo,
		ticket.SubmittedBy,
		ticket.CreatedBy,
		ticket.ServiceType,
		ticket.Channel,
		ticket.ProblemSummary,
		ticket.CommunicationLog,
		ticket.Resolution,
		ticket.IssueType,
		ticket.IssueCategory,
		ticket.Severity,
		ticket.ProblemDescription,
		ticket.ProblemAnalysis,
		ticket.SolutionForCustomer,
		ticket.RepairContent,
		ticket.IsWarranty,
		ticket.ParentTicketID,
		ticket.NodeEnteredAt,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET status=$1, current_node=$2, priority=$3, sla_due_at=$4, sla_status=$5,
            account_id=$6, dealer_id=$7, product_id=$8, serial_number=$9, reporter_name=$10,
            assigned_to=$11,
            service_type=$12, channel=$13, problem_summary=$14, communication_log=$15, resolution=$16,
            issue_type=$17, issue_category=$18, severity=$19, problem_description=$20,
            problem_analysis=$21, solution_for_customer=$22, repair_content=$23, is_warranty=$24,
            node_entered_at=$25, closed_at=$26, updated_at=NOW()
        WHERE id=$27`

	cmd, err := r.db.Exec(ctx, query,
		ticket.Status,
		ticket.CurrentNode,
		ticket.Priority,
		ticket.SlaDueAt,
		ticket.SlaStatus,
		ticket.AccountID,
		ticket.DealerID,
		ticket.ProductID,
		ticket.SerialNumber,
		ticket.ReporterName,
		ticket.AssignedTo,
		ticket.ServiceType,
		ticket.Channel,
		ticket.ProblemSummary,
		ticket.CommunicationLog,
		ticket.Resolution,
		ticket.IssueType,
		ticket.IssueCategory,
		ticket.Severity,
		ticket.ProblemDescription,
		ticket.ProblemAnalysis,
		ticket.SolutionForCustomer,
		ticket.RepairContent,
		ticket.IsWarranty,
		ticket.NodeEnteredAt,
		ticket.ClosedAt,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE id=$1`, ticketColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *ticketRepository) GetByNumber(ctx context.Context, number string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE ticket_number=$1`, ticketColumns)
	return r.fetchSingle(ctx, query, number)
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := scanTicket(r.db.QueryRow(ctx, query, arg), &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, fmt.Sprintf("ticket_type=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Nodes) > 0 {
		placeholders := make([]string, len(filter.Nodes))
		for i, node := range filter.Nodes {
			args = append(args, node)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("current_node IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, pr := range filter.Priorities {
			args = append(args, pr)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.SlaStatuses) > 0 {
		placeholders := make([]string, len(filter.SlaStatuses))
		for i, s := range filter.SlaStatuses {
			args = append(args, s)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("sla_status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.AssignedTo != nil {
		args = append(args, *filter.AssignedTo)
		clauses = append(clauses, fmt.Sprintf("assigned_to=$%d", len(args)))
	}
	if filter.SubmittedBy != nil {
		args = append(args, *filter.SubmittedBy)
		clauses = append(clauses, fmt.Sprintf("submitted_by=$%d", len(args)))
	}
	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		clauses = append(clauses, fmt.Sprintf("account_id=$%d", len(args)))
	}
	if filter.DealerID != nil {
		args = append(args, *filter.DealerID)
		clauses = append(clauses, fmt.Sprintf("dealer_id=$%d", len(args)))
	}
	if filter.SerialNumber != nil {
		args = append(args, "%"+*filter.SerialNumber+"%")
		clauses = append(clauses, fmt.Sprintf("serial_number LIKE $%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.Keyword != nil && strings.TrimSpace(*filter.Keyword) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.Keyword)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(ticket_number) LIKE %s OR LOWER(COALESCE(problem_summary,'')) LIKE %s OR LOWER(COALESCE(problem_description,'')) LIKE %s OR LOWER(COALESCE(serial_number,'')) LIKE %s)",
			placeholder, placeholder, placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		ticketColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

// ListOpenWithDue returns non-terminal tickets that carry a deadline,
// for the periodic SLA sweep.
func (r *ticketRepository) ListOpenWithDue(ctx context.Context) ([]domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE closed_at IS NULL AND sla_due_at IS NOT NULL`, ticketColumns)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) Stats(ctx context.Context, filter TicketFilter) (*domain.TicketStats, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		clauses = append(clauses, fmt.Sprintf("ticket_type=$%d", len(args)))
	}
	if filter.DealerID != nil {
		args = append(args, *filter.DealerID)
		clauses = append(clauses, fmt.Sprintf("dealer_id=$%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	where := strings.Join(clauses, " AND ")

	stats := &domain.TicketStats{
		ByStatus:   map[domain.Status]int64{},
		ByPriority: map[domain.Priority]int64{},
		BySla:      map[domain.SlaStatus]int64{},
		ByType:     map[domain.TicketType]int64{},
	}

	query := fmt.Sprintf(`SELECT status, priority, sla_status, ticket_type, COUNT(*)
        FROM tickets WHERE %s GROUP BY status, priority, sla_status, ticket_type`, where)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			status     domain.Status
			priority   domain.Priority
			slaStatus  domain.SlaStatus
			ticketType domain.TicketType
			count      int64
		)
		if err := rows.Scan(&status, &priority, &slaStatus, &ticketType, &count); err != nil {
			return nil, err
		}
		stats.Total += count
		stats.ByStatus[status] += count
		stats.ByPriority[priority] += count
		stats.BySla[slaStatus] += count
		stats.ByType[ticketType] += count
	}
	return stats, rows.Err()
}

func scanTicket(row pgx.Row, ticket *domain.Ticket) error {
	return row.Scan(
		&ticket.ID,
		&ticket.TicketNumber,
		&ticket.Type,
		&ticket.ChannelCode,
		&ticket.Status,
		&ticket.CurrentNode,
		&ticket.Priority,
		&ticket.SlaDueAt,
		&ticket.SlaStatus,
		&ticket.AccountID,
		&ticket.DealerID,
		&ticket.ProductID,
		&ticket.SerialNumber,
		&ticket.ReporterName,
		&ticket.AssignedTo,
		&ticket.SubmittedBy,
		&ticket.CreatedBy,
		&ticket.ServiceType,
		&ticket.Channel,
		&ticket.ProblemSummary,
		&ticket.CommunicationLog,
		&ticket.Resolution,
		&ticket.IssueType,
		&ticket.IssueCategory,
		&ticket.Severity,
		&ticket.ProblemDescription,
		&ticket.ProblemAnalysis,
		&ticket.SolutionForCustomer,
		&ticket.RepairContent,
		&ticket.IsWarranty,
		&ticket.ParentTicketID,
		&ticket.NodeEnteredAt,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.ClosedAt,
	)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := scanTicket(rows, &ticket); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
