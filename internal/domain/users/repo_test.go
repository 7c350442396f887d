package users

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mjade/warehouse-inventory/internal/domain/errs"
)

func TestSignupConflict(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		conflict bool
		contains string
	}{
		{
			name:     "duplicate username",
			err:      &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"},
			conflict: true,
			contains: "username already exists",
		},
		{
			name:     "duplicate email",
			err:      &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"},
			conflict: true,
			contains: "email already registered",
		},
		{
			name: "wrapped unique violation",
			err: fmt.Errorf("insert user: %w",
				&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}),
			conflict: true,
			contains: "email already registered",
		},
		{
			name: "other pg error passes through",
			err:  &pgconn.PgError{Code: "23503", ConstraintName: "stock_transactions_user_id_fkey"},
		},
		{
			name: "plain error passes through",
			err:  errors.New("connection reset"),
		},
		{
			name: "nil error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := signupConflict(tt.err)
			if !tt.conflict {
				if got != nil {
					t.Fatalf("signupConflict(%v) = %v, want nil", tt.err, got)
				}
				return
			}
			if !errors.Is(got, errs.ErrConflict) {
				t.Fatalf("signupConflict(%v) = %v, want ErrConflict", tt.err, got)
			}
			if !strings.Contains(got.Error(), tt.contains) {
				t.Errorf("message = %q, want it to mention %q", got, tt.contains)
			}
		})
	}
}
