package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/cfarhan/shopping/internal/entity"
	"github.com/cfarhan/shopping/internal/usecase"
)

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

func (r *MySQLOrderRepo) Create(ctx context.Context, o *usecase.OrderRecord) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO orders (id,user_id,status,amount_cents,currency,items_json,intent_id,created_at,updated_at)
VALUES (?,?,?,?,?,?,?,NOW(),NOW())
`, o.ID, o.UserID, o.Status, o.AmountCents, o.Currency, o.ItemsJSON, o.IntentID)
	return err
}

func (r *MySQLOrderRepo) GetByID(ctx context.Context, id string) (*usecase.OrderRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,user_id,status,amount_cents,currency,items_json,intent_id
FROM orders WHERE id=?`, id)
	return scanOrder(row)
}

func (r *MySQLOrderRepo) GetByIntentID(ctx context.Context, intentID string) (*usecase.OrderRecord, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,user_id,status,amount_cents,currency,items_json,intent_id
FROM orders WHERE intent_id=?`, intentID)
	return scanOrder(row)
}

// UpdateStatusIf flips status only when the current status matches.
// rows == 0 means not found or status mismatch; the caller decides which.
func (r *MySQLOrderRepo) UpdateStatusIf(ctx context.Context, id, fromStatus, toStatus string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
        UPDATE orders
        SET status = ?, updated_at = NOW()
        WHERE id = ? AND status = ?`,
		toStatus, id, fromStatus,
	)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func scanOrder(row *sql.Row) (*usecase.OrderRecord, error) {
	var rec usecase.OrderRecord
	var intentID sql.NullString
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Status, &rec.AmountCents, &rec.Currency, &rec.ItemsJSON, &intentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	rec.IntentID = intentID.String
	return &rec, nil
}

var _ usecase.OrderRepo = (*MySQLOrderRepo)(nil)
