package httpapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mjade/warehouse-inventory/internal/domain/appointments"
	"github.com/mjade/warehouse-inventory/internal/domain/errs"
	"github.com/mjade/warehouse-inventory/internal/domain/inventory"
	"github.com/mjade/warehouse-inventory/internal/domain/users"
)

type stubInventory struct {
	recordErr error
	recorded  []inventory.TransactionInput
	pending   []inventory.Item
	cleared   []int64
}

func (s *stubInventory) List(context.Context) ([]inventory.Item, error)          { return nil, nil }
func (s *stubInventory) GetByID(context.Context, int64) (*inventory.Item, error) { return nil, nil }
func (s *stubInventory) Create(context.Context, inventory.ItemInput) (int64, error) {
	return 0, nil
}
func (s *stubInventory) Update(context.Context, int64, inventory.ItemInput) error { return nil }
func (s *stubInventory) Delete(context.Context, int64) error                      { return nil }

func (s *stubInventory) RecordTransaction(_ context.Context, in inventory.TransactionInput) (int64, error) {
	if s.recordErr != nil {
		return 0, s.recordErr
	}
	s.recorded = append(s.recorded, in)
	return 1, nil
}

func (s *stubInventory) ListTransactions(context.Context) ([]inventory.Transaction, error) {
	return nil, nil
}
func (s *stubInventory) ListLowStock(context.Context) ([]inventory.Item, error) { return nil, nil }
func (s *stubInventory) ListPendingAlerts(context.Context) ([]inventory.Item, error) {
	return s.pending, nil
}
func (s *stubInventory) MarkAlertSent(context.Context, int64) error { return nil }
func (s *stubInventory) ClearAlert(_ context.Context, itemID int64) error {
	s.cleared = append(s.cleared, itemID)
	return nil
}
func (s *stubInventory) ListDamaged(context.Context) ([]inventory.DamagedItem, error) {
	return nil, nil
}
func (s *stubInventory) UpdateDamaged(context.Context, int64, string, string) error { return nil }
func (s *stubInventory) DeleteDamaged(context.Context, int64) error                 { return nil }

type stubAppointments struct {
	updateErr   error
	completeErr error
	cancelErr   error
	updated     []int64
	completed   []int64
	cancelled   []int64
}

func (s *stubAppointments) List(context.Context) ([]appointments.Appointment, error) {
	return nil, nil
}
func (s *stubAppointments) Get(context.Context, int64) (*appointments.Appointment, error) {
	return nil, fmt.Errorf("no appointment: %w", errs.ErrNotFound)
}
func (s *stubAppointments) Create(context.Context, appointments.Input) (int64, error) {
	return 1, nil
}
func (s *stubAppointments) Update(_ context.Context, id int64, _ appointments.Input) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updated = append(s.updated, id)
	return nil
}

func (s *stubAppointments) Complete(_ context.Context, id int64, _ *int64) error {
	if s.completeErr != nil {
		return s.completeErr
	}
	s.completed = append(s.completed, id)
	return nil
}

func (s *stubAppointments) Cancel(_ context.Context, id int64) error {
	if s.cancelErr != nil {
		return s.cancelErr
	}
	s.cancelled = append(s.cancelled, id)
	return nil
}

type stubUsers struct {
	authErr  error
	authUser *users.User
}

func (s *stubUsers) Authenticate(context.Context, string, string) (*users.User, error) {
	return s.authUser, s.authErr
}
func (s *stubUsers) Signup(context.Context, users.SignupInput) (int64, error) { return 0, nil }
func (s *stubUsers) ListPending(context.Context) ([]users.User, error)        { return nil, nil }
func (s *stubUsers) ListApprovedStaff(context.Context) ([]users.User, error)  { return nil, nil }
func (s *stubUsers) Approve(context.Context, int64) error                     { return nil }
func (s *stubUsers) Reject(context.Context, int64) error                      { return nil }
func (s *stubUsers) Delete(context.Context, int64) (*users.User, error)       { return nil, nil }

func newTestRouter(inv *stubInventory, appt *stubAppointments, u *stubUsers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	api := New(log, u, nil, nil, inv, appt, nil, nil, nil)
	router := gin.New()
	api.Register(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRecordTransaction(t *testing.T) {
	inv := &stubInventory{}
	router := newTestRouter(inv, &stubAppointments{}, &stubUsers{})

	w := doJSON(t, router, http.MethodPost, "/api/transactions",
		`{"itemId":3,"transactionType":"IN","quantity":20,"reason":"Restock","userId":1,"stockBefore":5,"stockAfter":25}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if len(inv.recorded) != 1 {
		t.Fatalf("recorded %d transactions, want 1", len(inv.recorded))
	}
	in := inv.recorded[0]
	if in.ItemID != 3 || in.TransactionType != inventory.TxIn || in.Quantity != 20 || in.StockBefore != 5 || in.StockAfter != 25 {
		t.Errorf("bound input = %+v", in)
	}
	if in.UserID == nil || *in.UserID != 1 {
		t.Errorf("userId = %v, want 1", in.UserID)
	}
	if !strings.Contains(w.Body.String(), "Transaction recorded successfully") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestRecordTransactionWithoutUser(t *testing.T) {
	inv := &stubInventory{}
	router := newTestRouter(inv, &stubAppointments{}, &stubUsers{})

	// A missing userId must stay NULL rather than becoming a dangling user 0.
	w := doJSON(t, router, http.MethodPost, "/api/transactions",
		`{"itemId":3,"transactionType":"OUT","quantity":2,"reason":"Sold","stockBefore":5,"stockAfter":3}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if len(inv.recorded) != 1 {
		t.Fatalf("recorded %d transactions, want 1", len(inv.recorded))
	}
	if inv.recorded[0].UserID != nil {
		t.Errorf("userId = %v, want nil", *inv.recorded[0].UserID)
	}
}

func TestRecordTransactionErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"missing item", fmt.Errorf("item 9: %w", errs.ErrNotFound), http.StatusNotFound},
		{"bad quantity", fmt.Errorf("quantity must be positive: %w", errs.ErrValidation), http.StatusBadRequest},
		{"stale snapshot", fmt.Errorf("expected stock 5 but item has 3: %w", errs.ErrStaleSnapshot), http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&stubInventory{recordErr: tt.err}, &stubAppointments{}, &stubUsers{})
			w := doJSON(t, router, http.MethodPost, "/api/transactions",
				`{"itemId":9,"transactionType":"OUT","quantity":2,"reason":"Sold","userId":1,"stockBefore":5,"stockAfter":3}`)
			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantCode, w.Body.String())
			}
		})
	}
}

func TestCompleteAppointment(t *testing.T) {
	appt := &stubAppointments{}
	router := newTestRouter(&stubInventory{}, appt, &stubUsers{})

	w := doJSON(t, router, http.MethodPost, "/api/appointments/12/complete", `{"userId":4}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if len(appt.completed) != 1 || appt.completed[0] != 12 {
		t.Errorf("completed = %v", appt.completed)
	}
}

func TestCompleteAppointmentTerminalRejected(t *testing.T) {
	appt := &stubAppointments{completeErr: fmt.Errorf("appointment is already completed: %w", errs.ErrConflict)}
	router := newTestRouter(&stubInventory{}, appt, &stubUsers{})

	w := doJSON(t, router, http.MethodPost, "/api/appointments/12/complete", `{"userId":4}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestUpdateCompletedAppointmentRejected(t *testing.T) {
	appt := &stubAppointments{updateErr: appointments.GuardTransition(appointments.StatusCompleted)}
	router := newTestRouter(&stubInventory{}, appt, &stubUsers{})

	// Flipping a completed appointment back to pending would let a second
	// complete re-apply its lines.
	w := doJSON(t, router, http.MethodPut, "/api/appointments/12",
		`{"supplierId":2,"date":"2026-09-01","time":"10:00","status":"pending","items":[{"itemId":3,"quantity":5}]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 (body %s)", w.Code, w.Body.String())
	}
	if len(appt.updated) != 0 {
		t.Errorf("update applied to terminal appointment: %v", appt.updated)
	}
}

func TestCancelAppointment(t *testing.T) {
	appt := &stubAppointments{}
	router := newTestRouter(&stubInventory{}, appt, &stubUsers{})

	w := doJSON(t, router, http.MethodPost, "/api/appointments/7/cancel", ``)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if len(appt.cancelled) != 1 || appt.cancelled[0] != 7 {
		t.Errorf("cancelled = %v", appt.cancelled)
	}
}

func TestLoginPendingAccount(t *testing.T) {
	router := newTestRouter(&stubInventory{}, &stubAppointments{}, &stubUsers{authErr: users.ErrPendingApproval})

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", `{"usernameOrEmail":"new.staff","password":"pw"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Account pending approval") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestLoginSuccess(t *testing.T) {
	router := newTestRouter(&stubInventory{}, &stubAppointments{}, &stubUsers{
		authUser: &users.User{ID: 1, Username: "admin", Email: "a@b.c", Name: "Admin", Role: users.RoleAdmin},
	})

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", `{"usernameOrEmail":"admin","password":"pw"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"role":"Admin"`) || strings.Contains(body, "password") {
		t.Errorf("body = %s", body)
	}
}

func TestPendingAlertsEmptyList(t *testing.T) {
	router := newTestRouter(&stubInventory{}, &stubAppointments{}, &stubUsers{})

	w := doJSON(t, router, http.MethodGet, "/api/low-stock-alerts/pending", ``)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Errorf("empty pending set must render as [], got %s", w.Body.String())
	}
}

func TestClearAlert(t *testing.T) {
	inv := &stubInventory{}
	router := newTestRouter(inv, &stubAppointments{}, &stubUsers{})

	w := doJSON(t, router, http.MethodDelete, "/api/low-stock-alerts/42", ``)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if len(inv.cleared) != 1 || inv.cleared[0] != 42 {
		t.Errorf("cleared = %v", inv.cleared)
	}
}

func TestInvalidIDRejected(t *testing.T) {
	router := newTestRouter(&stubInventory{}, &stubAppointments{}, &stubUsers{})

	w := doJSON(t, router, http.MethodPost, "/api/appointments/abc/complete", `{"userId":1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
