// Package catalog owns the two simple reference tables the dashboard manages:
// item categories and storage locations. Both are uniquely named and cannot be
// deleted while inventory items still point at them.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mjade/warehouse-inventory/internal/domain/errs"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

/* Categories */

func (r *Repo) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, category_name, description, date_added
		FROM categories ORDER BY category_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		var dateAdded time.Time
		if err := rows.Scan(&c.ID, &c.CategoryName, &c.Description, &dateAdded); err != nil {
			return nil, err
		}
		c.DateAdded = dateAdded.Format("01/02/2006")
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) CreateCategory(ctx context.Context, name, description string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("category name is required: %w", errs.ErrValidation)
	}
	if err := r.ensureUniqueName(ctx, "categories", "category_name", name, 0); err != nil {
		return 0, err
	}
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO categories (category_name, description) VALUES ($1,$2) RETURNING id
	`, name, description).Scan(&id)
	return id, err
}

func (r *Repo) UpdateCategory(ctx context.Context, id int64, name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("category name is required: %w", errs.ErrValidation)
	}
	if err := r.ensureUniqueName(ctx, "categories", "category_name", name, id); err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE categories SET category_name=$2, description=$3 WHERE id=$1
	`, id, name, description)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("category %d: %w", id, errs.ErrNotFound)
	}
	return nil
}

func (r *Repo) DeleteCategory(ctx context.Context, id int64) error {
	return r.deleteGuarded(ctx, "categories", "category_id", "category", id)
}

/* Locations */

func (r *Repo) ListLocations(ctx context.Context) ([]Location, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, location_name, description, date_added
		FROM locations ORDER BY location_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Location
	for rows.Next() {
		var l Location
		var dateAdded time.Time
		if err := rows.Scan(&l.ID, &l.LocationName, &l.Description, &dateAdded); err != nil {
			return nil, err
		}
		l.DateAdded = dateAdded.Format("01/02/2006")
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *Repo) CreateLocation(ctx context.Context, name, description string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("location name is required: %w", errs.ErrValidation)
	}
	if err := r.ensureUniqueName(ctx, "locations", "location_name", name, 0); err != nil {
		return 0, err
	}
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO locations (location_name, description) VALUES ($1,$2) RETURNING id
	`, name, description).Scan(&id)
	return id, err
}

func (r *Repo) UpdateLocation(ctx context.Context, id int64, name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("location name is required: %w", errs.ErrValidation)
	}
	if err := r.ensureUniqueName(ctx, "locations", "location_name", name, id); err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE locations SET location_name=$2, description=$3 WHERE id=$1
	`, id, name, description)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("location %d: %w", id, errs.ErrNotFound)
	}
	return nil
}

func (r *Repo) DeleteLocation(ctx context.Context, id int64) error {
	return r.deleteGuarded(ctx, "locations", "location_id", "location", id)
}

func (r *Repo) ensureUniqueName(ctx context.Context, table, column, name string, excludeID int64) error {
	var existing int64
	err := r.pool.QueryRow(ctx,
		`SELECT id FROM `+table+` WHERE `+column+` = $1 AND id != $2`,
		name, excludeID).Scan(&existing)
	if err == nil {
		return fmt.Errorf("%s already exists: %w", name, errs.ErrConflict)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	return err
}

func (r *Repo) deleteGuarded(ctx context.Context, table, fkColumn, label string, id int64) error {
	var inUse int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM inventory_items WHERE `+fkColumn+` = $1`, id).Scan(&inUse); err != nil {
		return err
	}
	if inUse > 0 {
		return fmt.Errorf("cannot delete %s, %d item(s) are using it: %w", label, inUse, errs.ErrConflict)
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM `+table+` WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %d: %w", label, id, errs.ErrNotFound)
	}
	return nil
}
