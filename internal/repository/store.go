package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx satisfied by both *pgxpool.Pool and pgx.Tx,
// so repositories work identically inside and outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store bundles the engine's repositories behind one transactional
// boundary. InTx yields a Store whose repositories share a transaction;
// the ticket-creation flow runs sequence allocation and the ticket insert
// under one commit so a rollback also returns the allocated number.
type Store interface {
	Tickets() TicketRepository
	Sequences() SequenceRepository
	Activities() ActivityRepository
	Participants() ParticipantRepository
	SearchIndex() SearchIndexRepository
	Users() UserRepository
	References() ReferenceRepository
	InTx(ctx context.Context, fn func(Store) error) error
}

type pgStore struct {
	db   Querier
	pool *pgxpool.Pool
}

// NewStore builds a Postgres-backed store.
func NewStore(pool *pgxpool.Pool) Store {
	return &pgStore{db: pool, pool: pool}
}

func (s *pgStore) Tickets() TicketRepository           { return &ticketRepository{db: s.db} }
func (s *pgStore) Sequences() SequenceRepository       { return &sequenceRepository{db: s.db} }
func (s *pgStore) Activities() ActivityRepository      { return &activityRepository{db: s.db} }
func (s *pgStore) Participants() ParticipantRepository { return &participantRepository{db: s.db} }
func (s *pgStore) SearchIndex() SearchIndexRepository  { return &searchIndexRepository{db: s.db} }
func (s *pgStore) Users() UserRepository               { return &userRepository{db: s.db} }
func (s *pgStore) References() ReferenceRepository     { return &referenceRepository{db: s.db} }

func (s *pgStore) InTx(ctx context.Context, fn func(Store) error) error {
	if s.pool == nil {
		// Already inside a transaction; reuse it.
		return fn(s)
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if err := fn(&pgStore{db: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ErrNotFound is returned when a row lookup finds nothing.
var ErrNotFound = pgx.ErrNoRows

// IsNotFound reports whether err is a missing-row error.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
