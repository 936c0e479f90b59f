package splitbill

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists split bills.
type Repository interface {
	Create(ctx context.Context, bill SplitBill) error
	ForUser(ctx context.Context, userID string) ([]SplitBill, error)
}

// PostgresRepository implements Repository using PostgreSQL. Shares are stored
// as jsonb, participants as a text array.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed split bill repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a split bill record.
func (r *PostgresRepository) Create(ctx context.Context, bill SplitBill) error {
	id, err := uuid.Parse(bill.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO split_bills (id, bill_name, total_amount, category, created_by, participants, shares, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, bill.BillName, bill.TotalAmount, bill.Category, bill.CreatedBy, bill.Participants, bill.Shares, bill.Status, bill.CreatedAt.UTC())
	return err
}

// ForUser returns bills the user created or participates in, newest first.
func (r *PostgresRepository) ForUser(ctx context.Context, userID string) ([]SplitBill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, bill_name, total_amount, category, created_by, participants, shares, status, created_at
        FROM split_bills
        WHERE created_by = $1 OR $1 = ANY(participants)
        ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SplitBill
	for rows.Next() {
		bill, err := scanSplitBill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, bill)
	}
	return out, rows.Err()
}

func scanSplitBill(rows pgx.Rows) (SplitBill, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
		bill      SplitBill
	)
	if err := rows.Scan(&id, &bill.BillName, &bill.TotalAmount, &bill.Category, &bill.CreatedBy, &bill.Participants, &bill.Shares, &bill.Status, &createdAt); err != nil {
		return SplitBill{}, err
	}
	bill.ID = id.String()
	bill.CreatedAt = createdAt.UTC()
	return bill, nil
}
