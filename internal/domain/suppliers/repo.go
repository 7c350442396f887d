package suppliers

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

func (r *Repo) List(ctx context.Context) ([]Supplier, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, supplier_name, contact_person, COALESCE(contact_email,''),
		       COALESCE(contact_phone,''), COALESCE(address,''), is_active, date_added
		FROM suppliers ORDER BY supplier_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Supplier
	for rows.Next() {
		var s Supplier
		var dateAdded time.Time
		if err := rows.Scan(&s.ID, &s.SupplierName, &s.ContactPerson, &s.ContactEmail,
			&s.ContactPhone, &s.Address, &s.IsActive, &dateAdded); err != nil {
			return nil, err
		}
		s.DateAdded = dateAdded.Format("01/02/2006")
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Supplier, error) {
	var s Supplier
	var dateAdded time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT id, supplier_name, contact_person, COALESCE(contact_email,''),
		       COALESCE(contact_phone,''), COALESCE(address,''), is_active, date_added
		FROM suppliers WHERE id=$1
	`, id).Scan(&s.ID, &s.SupplierName, &s.ContactPerson, &s.ContactEmail,
		&s.ContactPhone, &s.Address, &s.IsActive, &dateAdded)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("supplier %d: %w", id, errs.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	s.DateAdded = dateAdded.Format("01/02/2006")
	return &s, nil
}

func (r *Repo) Create(ctx context.Context, in Input) (int64, error) {
	if in.SupplierName == "" || in.ContactPerson == "" {
		return 0, fmt.Errorf("supplier name and contact person are required: %w", errs.ErrValidation)
	}
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO suppliers (supplier_name, contact_person, contact_email, contact_phone, address, is_active)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`, in.SupplierName, in.ContactPerson, in.ContactEmail, in.ContactPhone, in.Address, in.IsActive).Scan(&id)
	return id, err
}

func (r *Repo) Update(ctx context.Context, id int64, in Input) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE suppliers
		SET supplier_name=$2, contact_person=$3, contact_email=$4, contact_phone=$5, address=$6, is_active=$7
		WHERE id=$1
	`, id, in.SupplierName, in.ContactPerson, in.ContactEmail, in.ContactPhone, in.Address, in.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("supplier %d: %w", id, errs.ErrNotFound)
	}
	return nil
}

// Delete removes the supplier and reports how many items referenced it; those
// items keep existing with supplier_id nulled by the schema.
func (r *Repo) Delete(ctx context.Context, id int64) (int, error) {
	var affected int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM inventory_items WHERE supplier_id=$1`, id).Scan(&affected); err != nil {
		return 0, err
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM suppliers WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() == 0 {
		return 0, fmt.Errorf("supplier %d: %w", id, errs.ErrNotFound)
	}
	return affected, nil
}
