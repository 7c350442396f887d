package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mjade/warehouse-inventory/internal/domain/errs"
	"github.com/mjade/warehouse-inventory/internal/domain/inventory"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Log appends one entry; userID is nil for actions with no signed-in user.
func (r *Repo) Log(ctx context.Context, itemName string, action Action, userID *int64, details string) (int64, error) {
	if itemName == "" || action == "" {
		return 0, fmt.Errorf("item name and action are required: %w", errs.ErrValidation)
	}
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO activity_logs (item_name, action, user_id, details)
		VALUES ($1,$2,$3,$4)
		RETURNING id
	`, itemName, string(action), userID, details).Scan(&id)
	return id, err
}

// Report lists entries newest-first, optionally narrowed by action and month/year.
func (r *Repo) Report(ctx context.Context, f Filter) ([]Entry, error) {
	q := `
		SELECT a.id, a.item_name, a.action, a.user_id, COALESCE(u.name,''), COALESCE(u.role,''), a.timestamp, a.details
		FROM activity_logs a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE 1=1
	`
	var args []any
	if f.Action != "" {
		args = append(args, string(f.Action))
		q += fmt.Sprintf(" AND a.action = $%d", len(args))
	}
	if f.Month != 0 {
		args = append(args, f.Month)
		q += fmt.Sprintf(" AND EXTRACT(MONTH FROM a.timestamp) = $%d", len(args))
	}
	if f.Year != 0 {
		args = append(args, f.Year)
		q += fmt.Sprintf(" AND EXTRACT(YEAR FROM a.timestamp) = $%d", len(args))
	}
	q += " ORDER BY a.timestamp DESC"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var ts time.Time
		if err := rows.Scan(&e.ID, &e.ItemName, &e.Action, &e.UserID, &e.UserName, &e.UserRole, &ts, &e.Details); err != nil {
			return nil, err
		}
		e.Timestamp = ts.Format(inventory.TimestampLayout)
		out = append(out, e)
	}
	return out, rows.Err()
}
