package appointments

import (
	"fmt"

	"github.com/mjade/warehouse-inventory/internal/domain/errs"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// IsTerminal reports whether a status admits no further transitions.
func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// GuardTransition rejects any transition out of a terminal status. Completing an
// already-completed appointment would double-apply its restock, so both terminal
// states are hard stops.
func GuardTransition(from Status) error {
	if IsTerminal(from) {
		return fmt.Errorf("appointment is already %s: %w", from, errs.ErrConflict)
	}
	return nil
}

type Line struct {
	ItemID   int64  `json:"itemId"`
	ItemName string `json:"itemName"`
	Quantity int    `json:"quantity"`
}

type Appointment struct {
	ID            int64  `json:"id"`
	SupplierID    int64  `json:"supplierId"`
	SupplierName  string `json:"supplierName"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Status        Status `json:"status"`
	Notes         string `json:"notes"`
	ScheduledBy   string `json:"scheduledBy"`
	ScheduledDate string `json:"scheduledDate"`
	LastUpdated   string `json:"lastUpdated"`
	Items         []Line `json:"items"`
}

type Input struct {
	SupplierID        int64  `json:"supplierId"`
	Date              string `json:"date"`
	Time              string `json:"time"`
	Status            Status `json:"status"`
	Notes             string `json:"notes"`
	ScheduledByUserID int64  `json:"scheduledByUserId"`
	Items             []Line `json:"items"`
}
