// Package mailer is a thin client for the hosted email relay the dashboard's
// notification templates live on. Every send is one JSON POST carrying a
// template ID plus its parameters; the relay owns rendering and delivery.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mjade/warehouse-inventory/internal/config"
	"github.com/mjade/warehouse-inventory/internal/domain/appointments"
	"github.com/mjade/warehouse-inventory/internal/domain/inventory"
	"github.com/mjade/warehouse-inventory/internal/domain/suppliers"
)

type Service struct {
	baseURL              string
	serviceID            string
	publicKey            string
	lowStockTemplate     string
	appointmentTemplate  string
	cancellationTemplate string
	client               *http.Client
}

func NewService(cfg config.Config) *Service {
	return &Service{
		baseURL:              strings.TrimRight(cfg.Mail.BaseURL, "/"),
		serviceID:            cfg.Mail.ServiceID,
		publicKey:            cfg.Mail.PublicKey,
		lowStockTemplate:     cfg.Mail.LowStockTemplate,
		appointmentTemplate:  cfg.Mail.AppointmentTemplate,
		cancellationTemplate: cfg.Mail.CancellationTemplate,
		client:               &http.Client{Timeout: 10 * time.Second},
	}
}

type relayRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

func (s *Service) send(ctx context.Context, templateID string, params map[string]string) error {
	body, err := json.Marshal(relayRequest{
		ServiceID:      s.serviceID,
		TemplateID:     templateID,
		UserID:         s.publicKey,
		TemplateParams: params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/v1.0/email/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("email relay returned %s", resp.Status)
	}
	return nil
}

// SendLowStockAlert emails the admin that an item has hit its reorder threshold.
func (s *Service) SendLowStockAlert(ctx context.Context, item inventory.Item, adminEmail string) error {
	supplier := item.Supplier
	if supplier == "" {
		supplier = "No supplier assigned"
	}
	return s.send(ctx, s.lowStockTemplate, map[string]string{
		"to_name":          "Admin",
		"to_email":         adminEmail,
		"item_name":        item.ItemName,
		"current_quantity": strconv.Itoa(item.Quantity),
		"reorder_level":    strconv.Itoa(item.ReorderLevel),
		"location":         item.Location,
		"category":         item.Category,
		"supplier":         supplier,
		"alert_date":       time.Now().Format("January 2, 2006 03:04 PM"),
	})
}

// SendAppointmentScheduled notifies the supplier contact of a new restock appointment.
func (s *Service) SendAppointmentScheduled(ctx context.Context, appt appointments.Appointment, sup suppliers.Supplier) error {
	if strings.TrimSpace(sup.ContactEmail) == "" {
		return fmt.Errorf("supplier %q has no email address configured", sup.SupplierName)
	}

	var items []string
	for _, l := range appt.Items {
		items = append(items, fmt.Sprintf("%s x%d", l.ItemName, l.Quantity))
	}
	return s.send(ctx, s.appointmentTemplate, map[string]string{
		"to_name":       sup.ContactPerson,
		"to_email":      sup.ContactEmail,
		"supplier_name": sup.SupplierName,
		"date":          appt.Date,
		"time":          appt.Time,
		"notes":         appt.Notes,
		"items_list":    strings.Join(items, ", "),
	})
}

// SendAppointmentCancelled notifies the supplier contact that an appointment was called off.
func (s *Service) SendAppointmentCancelled(ctx context.Context, appt appointments.Appointment, sup suppliers.Supplier) error {
	if strings.TrimSpace(sup.ContactEmail) == "" {
		return fmt.Errorf("supplier %q has no email address configured", sup.SupplierName)
	}
	return s.send(ctx, s.cancellationTemplate, map[string]string{
		"to_name":       sup.ContactPerson,
		"to_email":      sup.ContactEmail,
		"supplier_name": sup.SupplierName,
		"date":          appt.Date,
		"time":          appt.Time,
	})
}
