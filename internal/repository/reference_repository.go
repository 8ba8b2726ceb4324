package repository

import "context"

// ReferenceRepository checks records owned by outside systems (CRM
// accounts, the product catalog). The engine only needs existence; a
// missing reference is tolerated upstream, not rejected.
type ReferenceRepository interface {
	AccountExists(ctx context.Context, id string) (bool, error)
	ProductExists(ctx context.Context, id string) (bool, error)
}

type referenceRepository struct {
	db Querier
}

// NewReferenceRepository builds a Postgres-backed reference checker.
func NewReferenceRepository(db Querier) ReferenceRepository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) AccountExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE id = $1)`, id)
}

func (r *referenceRepository) ProductExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id)
}

func (r *referenceRepository) exists(ctx context.Context, query, id string) (bool, error) {
	var ok bool
	if err := r.db.QueryRow(ctx, query, id).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
