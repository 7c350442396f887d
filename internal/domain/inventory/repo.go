package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mjade/warehouse-inventory/internal/domain/errs"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const itemColumns = `
	i.id, i.item_name, i.category_id, COALESCE(c.category_name,''), i.quantity,
	i.location_id, COALESCE(l.location_name,''), i.reorder_level, i.price,
	i.supplier_id, COALESCE(s.supplier_name,''), i.damaged_status, i.date_added
`

const itemJoins = `
	FROM inventory_items i
	LEFT JOIN categories c ON c.id = i.category_id
	LEFT JOIN locations l ON l.id = i.location_id
	LEFT JOIN suppliers s ON s.id = i.supplier_id
`

func scanItem(row pgx.Row) (*Item, error) {
	var it Item
	var dateAdded time.Time
	if err := row.Scan(
		&it.ID, &it.ItemName, &it.CategoryID, &it.Category, &it.Quantity,
		&it.LocationID, &it.Location, &it.ReorderLevel, &it.Price,
		&it.SupplierID, &it.Supplier, &it.DamagedStatus, &dateAdded,
	); err != nil {
		return nil, err
	}
	it.DateAdded = formatDate(dateAdded)
	return &it, nil
}

func (r *Repo) List(ctx context.Context) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+itemColumns+itemJoins+` ORDER BY i.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Item, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+itemColumns+itemJoins+` WHERE i.id = $1`, id)
	it, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("item %d: %w", id, errs.ErrNotFound)
	}
	return it, err
}

func (r *Repo) Create(ctx context.Context, in ItemInput) (int64, error) {
	if in.ItemName == "" {
		return 0, fmt.Errorf("item name is required: %w", errs.ErrValidation)
	}
	dateAdded := in.DateAdded
	if dateAdded == "" {
		dateAdded = time.Now().Format("2006-01-02")
	}
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO inventory_items (item_name, category_id, quantity, location_id, reorder_level, price, supplier_id, date_added)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id
	`, in.ItemName, in.CategoryID, in.Quantity, in.LocationID, in.ReorderLevel, in.Price, in.SupplierID, dateAdded).Scan(&id)
	return id, err
}

func (r *Repo) Update(ctx context.Context, id int64, in ItemInput) error {
	status := in.DamagedStatus
	if status == "" {
		status = ConditionGood
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE inventory_items
		SET item_name=$2, category_id=$3, quantity=$4, location_id=$5,
		    reorder_level=$6, price=$7, supplier_id=$8, damaged_status=$9
		WHERE id=$1
	`, id, in.ItemName, in.CategoryID, in.Quantity, in.LocationID, in.ReorderLevel, in.Price, in.SupplierID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("item %d: %w", id, errs.ErrNotFound)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM inventory_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("item %d: %w", id, errs.ErrNotFound)
	}
	return nil
}

// RecordTransaction applies one stock movement as a single database transaction:
// ledger insert, quantity overwrite, damaged-item classification, alert upkeep.
// The item row is locked first and the new quantity computed from the locked value;
// a stockBefore that no longer matches the row is rejected so two racing callers
// cannot silently overwrite each other's movement.
func (r *Repo) RecordTransaction(ctx context.Context, in TransactionInput) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var current, reorderLevel int
	err = tx.QueryRow(ctx, `
		SELECT quantity, reorder_level FROM inventory_items WHERE id=$1 FOR UPDATE
	`, in.ItemID).Scan(&current, &reorderLevel)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("item %d: %w", in.ItemID, errs.ErrNotFound)
	}
	if err != nil {
		return 0, err
	}

	next, err := NextQuantity(current, in.TransactionType, in.Quantity)
	if err != nil {
		return 0, err
	}
	if in.StockBefore != current {
		return 0, fmt.Errorf("expected stock %d but item has %d: %w", in.StockBefore, current, errs.ErrStaleSnapshot)
	}
	if in.StockAfter != next {
		return 0, fmt.Errorf("stock_after %d does not match %d %s %d: %w",
			in.StockAfter, current, in.TransactionType, in.Quantity, errs.ErrValidation)
	}

	var txID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO stock_transactions (item_id, transaction_type, quantity, reason, user_id, stock_before, stock_after)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`, in.ItemID, string(in.TransactionType), in.Quantity, in.Reason, in.UserID, current, next).Scan(&txID)
	if err != nil {
		return 0, err
	}

	if _, err = tx.Exec(ctx, `
		UPDATE inventory_items SET quantity=$2 WHERE id=$1
	`, in.ItemID, next); err != nil {
		return 0, err
	}

	if IsDamageWriteOff(in.TransactionType, in.Reason) {
		if _, err = tx.Exec(ctx, `
			INSERT INTO damaged_items (item_id, quantity, reason, status, date_damaged)
			VALUES ($1,$2,$3,'Standby',CURRENT_DATE)
		`, in.ItemID, in.Quantity, in.Reason); err != nil {
			return 0, err
		}
	}

	// Rising back above the threshold clears the pending alert so the notifier
	// re-alerts on the next breach.
	if !BelowReorder(next, reorderLevel) {
		if _, err = tx.Exec(ctx, `
			DELETE FROM low_stock_alerts WHERE item_id=$1
		`, in.ItemID); err != nil {
			return 0, err
		}
	}

	return txID, tx.Commit(ctx)
}

func (r *Repo) ListTransactions(ctx context.Context) ([]Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.item_id, i.item_name, t.transaction_type, t.quantity, t.reason,
		       t.user_id, COALESCE(u.name,''), COALESCE(u.role,''), t.stock_before, t.stock_after, t.timestamp
		FROM stock_transactions t
		JOIN inventory_items i ON i.id = t.item_id
		LEFT JOIN users u ON u.id = t.user_id
		ORDER BY t.timestamp DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var t Transaction
		var ts time.Time
		if err := rows.Scan(
			&t.ID, &t.ItemID, &t.ItemName, &t.TransactionType, &t.Quantity, &t.Reason,
			&t.UserID, &t.UserName, &t.UserRole, &t.StockBefore, &t.StockAfter, &ts,
		); err != nil {
			return nil, err
		}
		t.Timestamp = formatTimestamp(ts)
		out = append(out, t)
	}
	return out, rows.Err()
}

/* Low-stock query boundary */

func (r *Repo) ListLowStock(ctx context.Context) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+itemColumns+itemJoins+`
		WHERE i.quantity <= i.reorder_level
		ORDER BY i.quantity ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

// ListPendingAlerts returns threshold breaches that have not yet been emailed:
// items at or below reorder level with no low_stock_alerts row.
func (r *Repo) ListPendingAlerts(ctx context.Context) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+itemColumns+itemJoins+`
		LEFT JOIN low_stock_alerts lsa ON lsa.item_id = i.id
		WHERE i.quantity <= i.reorder_level AND lsa.id IS NULL
		ORDER BY i.quantity ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

func (r *Repo) MarkAlertSent(ctx context.Context, itemID int64) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO low_stock_alerts (item_id) VALUES ($1)
		ON CONFLICT (item_id) DO UPDATE SET sent_at = now()
	`, itemID)
	return err
}

func (r *Repo) ClearAlert(ctx context.Context, itemID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM low_stock_alerts WHERE item_id=$1`, itemID)
	return err
}

func collectItems(rows pgx.Rows) ([]Item, error) {
	var out []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

/* Damaged items */

func (r *Repo) ListDamaged(ctx context.Context) ([]DamagedItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT d.id, d.item_id, i.item_name, COALESCE(l.location_name,''), i.price,
		       d.quantity, d.reason, d.status, d.notes, d.date_damaged, d.last_updated
		FROM damaged_items d
		JOIN inventory_items i ON i.id = d.item_id
		LEFT JOIN locations l ON l.id = i.location_id
		ORDER BY d.date_damaged DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DamagedItem
	for rows.Next() {
		var d DamagedItem
		var dateDamaged, lastUpdated time.Time
		if err := rows.Scan(
			&d.ID, &d.ItemID, &d.ItemName, &d.Location, &d.Price,
			&d.Quantity, &d.Reason, &d.Status, &d.Notes, &dateDamaged, &lastUpdated,
		); err != nil {
			return nil, err
		}
		d.DateDamaged = formatDate(dateDamaged)
		d.LastUpdated = formatTimestamp(lastUpdated)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateDamaged(ctx context.Context, id int64, status, notes string) error {
	if status != DamagedStandby && status != DamagedThrown {
		return fmt.Errorf("unknown damaged status %q: %w", status, errs.ErrValidation)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE damaged_items SET status=$2, notes=$3, last_updated=now() WHERE id=$1
	`, id, status, notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("damaged item %d: %w", id, errs.ErrNotFound)
	}
	return nil
}

func (r *Repo) DeleteDamaged(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM damaged_items WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("damaged item %d: %w", id, errs.ErrNotFound)
	}
	return nil
}
