package visitorpg

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/guestpass/pkg/visitor"
)

const recordColumns = `id, email, scope, sessions_left, is_active, valid_from, valid_until, created_at, updated_at`

// Store is a pgx-backed visitor store.
type Store struct {
	db *pgxpool.Pool
}

// New creates a visitor store on the given connection pool.
func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// FindByID retrieves a record by identifier.
func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*visitor.Record, error) {
	rows, err := s.db.Query(ctx, `SELECT `+recordColumns+` FROM visitors WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rec, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[visitor.Record])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, visitor.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// Save upserts the record. created_at is kept from the record; updated_at is
// always set by the database.
func (s *Store) Save(ctx context.Context, rec *visitor.Record) error {
	if rec == nil || rec.ID == uuid.Nil {
		return visitor.ErrNilRecord
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO visitors (id, email, scope, sessions_left, is_active, valid_from, valid_until, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			scope = EXCLUDED.scope,
			sessions_left = EXCLUDED.sessions_left,
			is_active = EXCLUDED.is_active,
			valid_from = EXCLUDED.valid_from,
			valid_until = EXCLUDED.valid_until,
			updated_at = now()
	`, rec.ID, rec.Email, rec.Scope, rec.SessionsLeft, rec.IsActive, rec.ValidFrom, rec.ValidUntil, rec.CreatedAt)
	return err
}

// Decrement consumes one unit of quota with a conditional UPDATE so the
// decrement-and-check is atomic at the database. Unlimited and exhausted
// records match no row and are returned unchanged via the fallback read.
func (s *Store) Decrement(ctx context.Context, id uuid.UUID) (*visitor.Record, error) {
	rows, err := s.db.Query(ctx, `
		UPDATE visitors
		SET sessions_left = sessions_left - 1, updated_at = now()
		WHERE id = $1 AND sessions_left > 0
		RETURNING `+recordColumns,
		id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rec, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[visitor.Record])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return s.FindByID(ctx, id)
		}
		return nil, err
	}
	return &rec, nil
}
