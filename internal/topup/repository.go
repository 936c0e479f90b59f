package topup

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates the requested top-up does not exist.
	ErrNotFound = errors.New("top-up not found")

	// ErrStatusFinal indicates the top-up already left the pending state.
	ErrStatusFinal = errors.New("top-up status already final")
)

// Repository persists top-ups.
type Repository interface {
	Create(ctx context.Context, t TopUp) error
	ForUser(ctx context.Context, userID string) ([]TopUp, error)
	FindByOrderID(ctx context.Context, orderID string) (TopUp, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed top-up repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const topupColumns = `id, order_id, user_id, amount, method, status, created_at, updated_at`

// Create inserts a top-up record.
func (r *PostgresRepository) Create(ctx context.Context, t TopUp) error {
	id, err := uuid.Parse(t.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO topups (id, order_id, user_id, amount, method, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, t.OrderID, t.UserID, t.Amount, t.Method, t.Status, t.CreatedAt.UTC(), t.UpdatedAt.UTC())
	return err
}

// ForUser returns the user's top-ups, newest first.
func (r *PostgresRepository) ForUser(ctx context.Context, userID string) ([]TopUp, error) {
	rows, err := r.db.Query(ctx, `SELECT `+topupColumns+` FROM topups
        WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TopUp
	for rows.Next() {
		t, err := scanTopUp(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// FindByOrderID fetches a top-up by its gateway order identifier.
func (r *PostgresRepository) FindByOrderID(ctx context.Context, orderID string) (TopUp, error) {
	row := r.db.QueryRow(ctx, `SELECT `+topupColumns+` FROM topups WHERE order_id = $1`, orderID)
	t, err := scanTopUp(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return TopUp{}, ErrNotFound
	}
	return t, err
}

// UpdateStatus transitions a pending top-up to a final status exactly once.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, status string) error {
	topupID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE topups SET status = $1, updated_at = $2
        WHERE id = $3 AND status = $4`, status, time.Now().UTC(), topupID, StatusPending)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM topups WHERE id = $1)`, topupID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrStatusFinal
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTopUp(row rowScanner) (TopUp, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
		updatedAt time.Time
		t         TopUp
	)
	if err := row.Scan(&id, &t.OrderID, &t.UserID, &t.Amount, &t.Method, &t.Status, &createdAt, &updatedAt); err != nil {
		return TopUp{}, err
	}
	t.ID = id.String()
	t.CreatedAt = createdAt.UTC()
	t.UpdatedAt = updatedAt.UTC()
	return t, nil
}
