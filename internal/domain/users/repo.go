package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mjade/warehouse-inventory/internal/domain/errs"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Authenticate checks a username-or-email plus password pair against approved
// accounts. Passwords are stored and compared as plain text, which is the wire
// contract the dashboard was built against.
func (r *Repo) Authenticate(ctx context.Context, usernameOrEmail, password string) (*User, error) {
	var u User
	var stored string
	var status Status
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, email, password, name, role, status
		FROM users
		WHERE username = $1 OR email = $1
	`, usernameOrEmail).Scan(&u.ID, &u.Username, &u.Email, &stored, &u.Name, &u.Role, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if status == StatusPending {
		return nil, ErrPendingApproval
	}
	if status != StatusApproved || stored != password {
		return nil, ErrInvalidCredentials
	}
	u.Status = status
	return &u, nil
}

func (r *Repo) Signup(ctx context.Context, in SignupInput) (int64, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" || in.Name == "" {
		return 0, fmt.Errorf("all signup fields are required: %w", errs.ErrValidation)
	}

	var existingUsername, existingEmail string
	err := r.pool.QueryRow(ctx, `
		SELECT username, email FROM users WHERE username = $1 OR email = $2
	`, in.Username, in.Email).Scan(&existingUsername, &existingEmail)
	if err == nil {
		if existingUsername == in.Username {
			return 0, fmt.Errorf("username already exists: %w", errs.ErrConflict)
		}
		return 0, fmt.Errorf("email already registered: %w", errs.ErrConflict)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	var id int64
	err = r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password, name, role, status)
		VALUES ($1,$2,$3,$4,'Staff','pending')
		RETURNING id
	`, in.Username, in.Email, in.Password, in.Name).Scan(&id)
	if conflict := signupConflict(err); conflict != nil {
		return 0, conflict
	}
	return id, err
}

// signupConflict translates a unique-constraint violation into the duplicate
// signup message. The pre-check above races with concurrent signups, so the
// insert itself can still land on users_username_key or users_email_key.
func signupConflict(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}
	if strings.Contains(pgErr.ConstraintName, "email") {
		return fmt.Errorf("email already registered: %w", errs.ErrConflict)
	}
	return fmt.Errorf("username already exists: %w", errs.ErrConflict)
}

func (r *Repo) ListPending(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, username, email, name, role, status, signup_date
		FROM users WHERE status = 'pending'
		ORDER BY signup_date DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		var signedUp time.Time
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Name, &u.Role, &u.Status, &signedUp); err != nil {
			return nil, err
		}
		u.SignupDate = signedUp.Format("01/02/2006")
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repo) ListApprovedStaff(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, username, email, name, role, status
		FROM users WHERE status = 'approved' AND role = 'Staff'
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Name, &u.Role, &u.Status); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *Repo) Approve(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET status='approved' WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", id, errs.ErrNotFound)
	}
	return nil
}

// Reject removes a signup that is still pending.
func (r *Repo) Reject(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1 AND status='pending'`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pending user %d: %w", id, errs.ErrNotFound)
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id int64) (*User, error) {
	var u User
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, role FROM users WHERE id=$1
	`, id).Scan(&u.ID, &u.Username, &u.Role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, errs.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if u.Role == RoleAdmin {
		return nil, ErrAdminUndeletable
	}

	if _, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1 AND role != 'Admin'`, id); err != nil {
		return nil, err
	}
	return &u, nil
}
