package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mjade/warehouse-inventory/internal/domain/inventory"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var s DashboardStats
	err := r.pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM inventory_items),
			(SELECT COUNT(*) FROM inventory_items WHERE quantity <= reorder_level),
			(SELECT COUNT(*) FROM inventory_items WHERE damaged_status = 'Damaged'),
			(SELECT COALESCE(SUM(quantity * price), 0) FROM inventory_items),
			(SELECT COALESCE(SUM(quantity), 0) FROM stock_transactions WHERE transaction_type = 'IN'),
			(SELECT COALESCE(SUM(quantity), 0) FROM stock_transactions WHERE transaction_type = 'OUT'),
			(SELECT COUNT(*) FROM appointments WHERE date >= CURRENT_DATE AND status IN ('pending','confirmed'))
	`).Scan(&s.TotalItems, &s.LowStockItems, &s.DamagedItems, &s.TotalValue, &s.TotalIn, &s.TotalOut, &s.UpcomingAppointments)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repo) Inventory(ctx context.Context) ([]InventoryRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT i.id, i.item_name, i.category_id, COALESCE(c.category_name,''), i.quantity,
		       i.location_id, COALESCE(l.location_name,''), i.reorder_level, i.price,
		       i.supplier_id, COALESCE(s.supplier_name,''), i.damaged_status, i.date_added,
		       (i.quantity * i.price)
		FROM inventory_items i
		LEFT JOIN categories c ON c.id = i.category_id
		LEFT JOIN locations l ON l.id = i.location_id
		LEFT JOIN suppliers s ON s.id = i.supplier_id
		ORDER BY i.item_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []InventoryRow
	for rows.Next() {
		var row InventoryRow
		var dateAdded time.Time
		if err := rows.Scan(
			&row.ID, &row.ItemName, &row.CategoryID, &row.Category, &row.Quantity,
			&row.LocationID, &row.Location, &row.ReorderLevel, &row.Price,
			&row.SupplierID, &row.Supplier, &row.DamagedStatus, &dateAdded,
			&row.TotalValue,
		); err != nil {
			return nil, err
		}
		row.DateAdded = dateAdded.Format("01/02/2006")
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *Repo) Transactions(ctx context.Context, f TransactionFilter) ([]inventory.Transaction, error) {
	q := `
		SELECT t.id, t.item_id, i.item_name, t.transaction_type, t.quantity, t.reason,
		       t.user_id, COALESCE(u.name,''), COALESCE(u.role,''), t.stock_before, t.stock_after, t.timestamp
		FROM stock_transactions t
		JOIN inventory_items i ON i.id = t.item_id
		LEFT JOIN users u ON u.id = t.user_id
		WHERE 1=1
	`
	var args []any
	if f.StartDate != "" {
		args = append(args, f.StartDate)
		q += fmt.Sprintf(" AND t.timestamp::date >= $%d", len(args))
	}
	if f.EndDate != "" {
		args = append(args, f.EndDate)
		q += fmt.Sprintf(" AND t.timestamp::date <= $%d", len(args))
	}
	if f.Type != "" {
		args = append(args, string(f.Type))
		q += fmt.Sprintf(" AND t.transaction_type = $%d", len(args))
	}
	q += " ORDER BY t.timestamp DESC"

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []inventory.Transaction
	for rows.Next() {
		var t inventory.Transaction
		var ts time.Time
		if err := rows.Scan(
			&t.ID, &t.ItemID, &t.ItemName, &t.TransactionType, &t.Quantity, &t.Reason,
			&t.UserID, &t.UserName, &t.UserRole, &t.StockBefore, &t.StockAfter, &ts,
		); err != nil {
			return nil, err
		}
		t.Timestamp = ts.Format(inventory.TimestampLayout)
		out = append(out, t)
	}
	return out, rows.Err()
}
