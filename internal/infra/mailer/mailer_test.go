package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mjade/warehouse-inventory/internal/config"
	"github.com/mjade/warehouse-inventory/internal/domain/appointments"
	"github.com/mjade/warehouse-inventory/internal/domain/inventory"
	"github.com/mjade/warehouse-inventory/internal/domain/suppliers"
)

func newTestService(t *testing.T, handler http.HandlerFunc) (*Service, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	var cfg config.Config
	cfg.Mail.BaseURL = srv.URL
	cfg.Mail.ServiceID = "svc_test"
	cfg.Mail.PublicKey = "pk_test"
	cfg.Mail.LowStockTemplate = "tpl_low"
	cfg.Mail.AppointmentTemplate = "tpl_appt"
	cfg.Mail.CancellationTemplate = "tpl_cancel"
	return NewService(cfg), srv
}

func TestSendLowStockAlert(t *testing.T) {
	var got relayRequest
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1.0/email/send" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatal(err)
		}
		w.WriteHeader(http.StatusOK)
	})

	item := inventory.Item{
		ID:           7,
		ItemName:     "A4 Bond Paper",
		Quantity:     4,
		ReorderLevel: 20,
		Location:     "Warehouse A, Shelf 1",
		Category:     "Office Supplies",
	}
	if err := svc.SendLowStockAlert(context.Background(), item, "admin@example.com"); err != nil {
		t.Fatalf("SendLowStockAlert: %v", err)
	}

	if got.ServiceID != "svc_test" || got.TemplateID != "tpl_low" || got.UserID != "pk_test" {
		t.Errorf("relay envelope = %+v", got)
	}
	if got.TemplateParams["item_name"] != "A4 Bond Paper" {
		t.Errorf("item_name = %q", got.TemplateParams["item_name"])
	}
	if got.TemplateParams["current_quantity"] != "4" || got.TemplateParams["reorder_level"] != "20" {
		t.Errorf("quantities = %q / %q", got.TemplateParams["current_quantity"], got.TemplateParams["reorder_level"])
	}
	if got.TemplateParams["supplier"] != "No supplier assigned" {
		t.Errorf("missing supplier should be spelled out, got %q", got.TemplateParams["supplier"])
	}
}

func TestSendAppointmentScheduled(t *testing.T) {
	var got relayRequest
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatal(err)
		}
		w.WriteHeader(http.StatusOK)
	})

	appt := appointments.Appointment{
		Date: "2026-09-01",
		Time: "09:30:00",
		Items: []appointments.Line{
			{ItemName: "HP Printer", Quantity: 5},
			{ItemName: "Office Desk", Quantity: 2},
		},
	}
	sup := suppliers.Supplier{
		SupplierName:  "Tech Supplies Inc.",
		ContactPerson: "Pedro Reyes",
		ContactEmail:  "pedro@example.com",
	}
	if err := svc.SendAppointmentScheduled(context.Background(), appt, sup); err != nil {
		t.Fatalf("SendAppointmentScheduled: %v", err)
	}
	if got.TemplateID != "tpl_appt" {
		t.Errorf("template = %q", got.TemplateID)
	}
	if got.TemplateParams["items_list"] != "HP Printer x5, Office Desk x2" {
		t.Errorf("items_list = %q", got.TemplateParams["items_list"])
	}
}

func TestSendAppointmentMissingEmail(t *testing.T) {
	called := false
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	sup := suppliers.Supplier{SupplierName: "COSCO SHIPPING", ContactEmail: "  "}
	if err := svc.SendAppointmentScheduled(context.Background(), appointments.Appointment{}, sup); err == nil {
		t.Fatal("expected error for supplier without email")
	}
	if called {
		t.Error("relay must not be called when the supplier has no email")
	}
}

func TestSendRelayFailure(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	err := svc.SendLowStockAlert(context.Background(), inventory.Item{ItemName: "Ballpen"}, "admin@example.com")
	if err == nil {
		t.Fatal("expected error on non-2xx relay response")
	}
}
