package transfer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates the requested transfer does not exist.
	ErrNotFound = errors.New("transfer not found")

	// ErrStatusFinal indicates the transfer already left the pending state and
	// cannot transition again.
	ErrStatusFinal = errors.New("transfer status already final")
)

// Repository persists transfers.
type Repository interface {
	Create(ctx context.Context, t Transfer) error
	ForUser(ctx context.Context, userID string) ([]Transfer, error)
	FindByOrderID(ctx context.Context, orderID string) (Transfer, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed transfer repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const transferColumns = `id, order_id, sender_id, recipient_id, amount, note, status, created_at, updated_at`

// Create inserts a transfer record.
func (r *PostgresRepository) Create(ctx context.Context, t Transfer) error {
	id, err := uuid.Parse(t.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO transfers (id, order_id, sender_id, recipient_id, amount, note, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, t.OrderID, t.SenderID, t.RecipientID, t.Amount, t.Note, t.Status, t.CreatedAt.UTC(), t.UpdatedAt.UTC())
	return err
}

// ForUser returns transfers where the user is sender or recipient, newest
// first. Records without a creation time sort last.
func (r *PostgresRepository) ForUser(ctx context.Context, userID string) ([]Transfer, error) {
	rows, err := r.db.Query(ctx, `SELECT `+transferColumns+` FROM transfers
        WHERE sender_id = $1 OR recipient_id = $1
        ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

// FindByOrderID fetches a transfer by its gateway order identifier.
func (r *PostgresRepository) FindByOrderID(ctx context.Context, orderID string) (Transfer, error) {
	row := r.db.QueryRow(ctx, `SELECT `+transferColumns+` FROM transfers WHERE order_id = $1`, orderID)
	t, err := scanTransfer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Transfer{}, ErrNotFound
	}
	return t, err
}

// UpdateStatus transitions a pending transfer to a final status. The WHERE
// clause restricts the write to pending rows so the transition happens at most
// once.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id, status string) error {
	transferID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE transfers SET status = $1, updated_at = $2
        WHERE id = $3 AND status = $4`, status, time.Now().UTC(), transferID, StatusPending)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM transfers WHERE id = $1)`, transferID).Scan(&exists); err != nil {
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

func collect(rows pgx.Rows) ([]Transfer, error) {
	var out []Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTransfer(row rowScanner) (Transfer, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
		updatedAt time.Time
		t         Transfer
	)
	if err := row.Scan(&id, &t.OrderID, &t.SenderID, &t.RecipientID, &t.Amount, &t.Note, &t.Status, &createdAt, &updatedAt); err != nil {
		return Transfer{}, err
	}
	t.ID = id.String()
	t.CreatedAt = createdAt.UTC()
	t.UpdatedAt = updatedAt.UTC()
	return t, nil
}
