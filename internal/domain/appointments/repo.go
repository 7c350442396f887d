package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mjade/warehouse-inventory/internal/domain/errs"
	"github.com/mjade/warehouse-inventory/internal/domain/inventory"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) List(ctx context.Context) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.supplier_id, s.supplier_name, a.date, a.time::text, a.status, a.notes,
		       COALESCE(u.name,''), a.scheduled_date, a.last_updated
		FROM appointments a
		JOIN suppliers s ON s.id = a.supplier_id
		LEFT JOIN users u ON u.id = a.scheduled_by_user_id
		ORDER BY a.date, a.time
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Appointment
	for rows.Next() {
		var a Appointment
		var date, scheduled, updated time.Time
		var at string
		if err := rows.Scan(
			&a.ID, &a.SupplierID, &a.SupplierName, &date, &at, &a.Status, &a.Notes,
			&a.ScheduledBy, &scheduled, &updated,
		); err != nil {
			return nil, err
		}
		a.Date = date.Format("2006-01-02")
		a.Time = at
		a.ScheduledDate = scheduled.Format(inventory.TimestampLayout)
		a.LastUpdated = updated.Format(inventory.TimestampLayout)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		lines, err := r.lines(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = lines
	}
	return out, nil
}

func (r *Repo) lines(ctx context.Context, appointmentID int64) ([]Line, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ai.item_id, i.item_name, ai.quantity
		FROM appointment_items ai
		JOIN inventory_items i ON i.id = ai.item_id
		WHERE ai.appointment_id = $1
		ORDER BY ai.id
	`, appointmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ItemID, &l.ItemName, &l.Quantity); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id int64) (*Appointment, error) {
	var a Appointment
	var date, scheduled, updated time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT a.id, a.supplier_id, s.supplier_name, a.date, a.time::text, a.status, a.notes,
		       COALESCE(u.name,''), a.scheduled_date, a.last_updated
		FROM appointments a
		JOIN suppliers s ON s.id = a.supplier_id
		LEFT JOIN users u ON u.id = a.scheduled_by_user_id
		WHERE a.id = $1
	`, id).Scan(&a.ID, &a.SupplierID, &a.SupplierName, &date, &a.Time, &a.Status, &a.Notes,
		&a.ScheduledBy, &scheduled, &updated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("appointment %d: %w", id, errs.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	a.Date = date.Format("2006-01-02")
	a.ScheduledDate = scheduled.Format(inventory.TimestampLayout)
	a.LastUpdated = updated.Format(inventory.TimestampLayout)

	lines, err := r.lines(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Items = lines
	return &a, nil
}

// Create inserts the appointment and all of its lines in one transaction.
func (r *Repo) Create(ctx context.Context, in Input) (int64, error) {
	if in.SupplierID == 0 || in.Date == "" || in.Time == "" {
		return 0, fmt.Errorf("supplier, date and time are required: %w", errs.ErrValidation)
	}
	status := in.Status
	if status == "" {
		status = StatusPending
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO appointments (supplier_id, date, time, status, notes, scheduled_by_user_id)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`, in.SupplierID, in.Date, in.Time, string(status), in.Notes, in.ScheduledByUserID).Scan(&id)
	if err != nil {
		return 0, err
	}

	for _, l := range in.Items {
		if _, err = tx.Exec(ctx, `
			INSERT INTO appointment_items (appointment_id, item_id, quantity) VALUES ($1,$2,$3)
		`, id, l.ItemID, l.Quantity); err != nil {
			return 0, err
		}
	}

	return id, tx.Commit(ctx)
}

// Update edits an appointment with replace-on-edit line semantics: all prior lines
// are discarded and the submitted set is inserted, atomically. Terminal
// appointments cannot be edited; reopening a completed one would let a second
// Complete re-apply its lines.
func (r *Repo) Update(ctx context.Context, id int64, in Input) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var current Status
	err = tx.QueryRow(ctx, `SELECT status FROM appointments WHERE id=$1 FOR UPDATE`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("appointment %d: %w", id, errs.ErrNotFound)
	}
	if err != nil {
		return err
	}
	if err := GuardTransition(current); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE appointments
		SET supplier_id=$2, date=$3, time=$4, status=$5, notes=$6, last_updated=now()
		WHERE id=$1
	`, id, in.SupplierID, in.Date, in.Time, string(in.Status), in.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("appointment %d: %w", id, errs.ErrNotFound)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM appointment_items WHERE appointment_id=$1`, id); err != nil {
		return err
	}
	for _, l := range in.Items {
		if _, err = tx.Exec(ctx, `
			INSERT INTO appointment_items (appointment_id, item_id, quantity) VALUES ($1,$2,$3)
		`, id, l.ItemID, l.Quantity); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Complete applies every line of the appointment to the inventory ledger and flips
// the status, all inside one transaction: per line the item row is locked, its
// quantity raised by the planned amount, its supplier reassigned to the appointment's
// supplier, and an IN ledger row written. A missing item fails the whole call with
// nothing applied and the status untouched.
func (r *Repo) Complete(ctx context.Context, id int64, userID *int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var supplierID int64
	var status Status
	err = tx.QueryRow(ctx, `
		SELECT supplier_id, status FROM appointments WHERE id=$1 FOR UPDATE
	`, id).Scan(&supplierID, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("appointment %d: %w", id, errs.ErrNotFound)
	}
	if err != nil {
		return err
	}
	if err := GuardTransition(status); err != nil {
		return err
	}

	rows, err := tx.Query(ctx, `
		SELECT item_id, quantity FROM appointment_items WHERE appointment_id=$1 ORDER BY id
	`, id)
	if err != nil {
		return err
	}
	type line struct {
		itemID int64
		qty    int
	}
	var lines []line
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.itemID, &l.qty); err != nil {
			rows.Close()
			return err
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, l := range lines {
		var current, reorderLevel int
		err = tx.QueryRow(ctx, `
			SELECT quantity, reorder_level FROM inventory_items WHERE id=$1 FOR UPDATE
		`, l.itemID).Scan(&current, &reorderLevel)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("item %d referenced by appointment %d: %w", l.itemID, id, errs.ErrNotFound)
		}
		if err != nil {
			return err
		}

		next := current + l.qty

		// Restocking from this supplier reassigns ownership of the item.
		if _, err = tx.Exec(ctx, `
			UPDATE inventory_items SET quantity=$2, supplier_id=$3 WHERE id=$1
		`, l.itemID, next, supplierID); err != nil {
			return err
		}

		if _, err = tx.Exec(ctx, `
			INSERT INTO stock_transactions (item_id, transaction_type, quantity, reason, user_id, stock_before, stock_after)
			VALUES ($1,'IN',$2,$3,$4,$5,$6)
		`, l.itemID, l.qty, inventory.RestockReason, userID, current, next); err != nil {
			return err
		}

		if !inventory.BelowReorder(next, reorderLevel) {
			if _, err = tx.Exec(ctx, `
				DELETE FROM low_stock_alerts WHERE item_id=$1
			`, l.itemID); err != nil {
				return err
			}
		}
	}

	if _, err = tx.Exec(ctx, `
		UPDATE appointments SET status='completed', last_updated=now() WHERE id=$1
	`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Cancel is a pure status transition: no inventory or ledger effect.
func (r *Repo) Cancel(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var status Status
	err = tx.QueryRow(ctx, `SELECT status FROM appointments WHERE id=$1 FOR UPDATE`, id).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("appointment %d: %w", id, errs.ErrNotFound)
	}
	if err != nil {
		return err
	}
	if err := GuardTransition(status); err != nil {
		return err
	}

	if _, err = tx.Exec(ctx, `
		UPDATE appointments SET status='cancelled', last_updated=now() WHERE id=$1
	`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
