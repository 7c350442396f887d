// Package httpapi exposes the dashboard's REST surface over gin. Handlers hold
// the small store interfaces they actually call; the concrete pgx repositories
// satisfy them in cmd/server.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mjade/warehouse-inventory/internal/domain/activity"
	"github.com/mjade/warehouse-inventory/internal/domain/appointments"
	"github.com/mjade/warehouse-inventory/internal/domain/catalog"
	"github.com/mjade/warehouse-inventory/internal/domain/errs"
	"github.com/mjade/warehouse-inventory/internal/domain/inventory"
	"github.com/mjade/warehouse-inventory/internal/domain/reports"
	"github.com/mjade/warehouse-inventory/internal/domain/suppliers"
	"github.com/mjade/warehouse-inventory/internal/domain/users"
)

type UserStore interface {
	Authenticate(ctx context.Context, usernameOrEmail, password string) (*users.User, error)
	Signup(ctx context.Context, in users.SignupInput) (int64, error)
	ListPending(ctx context.Context) ([]users.User, error)
	ListApprovedStaff(ctx context.Context) ([]users.User, error)
	Approve(ctx context.Context, id int64) error
	Reject(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) (*users.User, error)
}

type CatalogStore interface {
	ListCategories(ctx context.Context) ([]catalog.Category, error)
	CreateCategory(ctx context.Context, name, description string) (int64, error)
	UpdateCategory(ctx context.Context, id int64, name, description string) error
	DeleteCategory(ctx context.Context, id int64) error
	ListLocations(ctx context.Context) ([]catalog.Location, error)
	CreateLocation(ctx context.Context, name, description string) (int64, error)
	UpdateLocation(ctx context.Context, id int64, name, description string) error
	DeleteLocation(ctx context.Context, id int64) error
}

type SupplierStore interface {
	List(ctx context.Context) ([]suppliers.Supplier, error)
	GetByID(ctx context.Context, id int64) (*suppliers.Supplier, error)
	Create(ctx context.Context, in suppliers.Input) (int64, error)
	Update(ctx context.Context, id int64, in suppliers.Input) error
	Delete(ctx context.Context, id int64) (int, error)
}

type InventoryStore interface {
	List(ctx context.Context) ([]inventory.Item, error)
	GetByID(ctx context.Context, id int64) (*inventory.Item, error)
	Create(ctx context.Context, in inventory.ItemInput) (int64, error)
	Update(ctx context.Context, id int64, in inventory.ItemInput) error
	Delete(ctx context.Context, id int64) error
	RecordTransaction(ctx context.Context, in inventory.TransactionInput) (int64, error)
	ListTransactions(ctx context.Context) ([]inventory.Transaction, error)
	ListLowStock(ctx context.Context) ([]inventory.Item, error)
	ListPendingAlerts(ctx context.Context) ([]inventory.Item, error)
	MarkAlertSent(ctx context.Context, itemID int64) error
	ClearAlert(ctx context.Context, itemID int64) error
	ListDamaged(ctx context.Context) ([]inventory.DamagedItem, error)
	UpdateDamaged(ctx context.Context, id int64, status, notes string) error
	DeleteDamaged(ctx context.Context, id int64) error
}

type AppointmentStore interface {
	List(ctx context.Context) ([]appointments.Appointment, error)
	Get(ctx context.Context, id int64) (*appointments.Appointment, error)
	Create(ctx context.Context, in appointments.Input) (int64, error)
	Update(ctx context.Context, id int64, in appointments.Input) error
	Complete(ctx context.Context, id int64, userID *int64) error
	Cancel(ctx context.Context, id int64) error
}

type ActivityStore interface {
	Log(ctx context.Context, itemName string, action activity.Action, userID *int64, details string) (int64, error)
	Report(ctx context.Context, f activity.Filter) ([]activity.Entry, error)
}

type ReportStore interface {
	DashboardStats(ctx context.Context) (*reports.DashboardStats, error)
	Inventory(ctx context.Context) ([]reports.InventoryRow, error)
	Transactions(ctx context.Context, f reports.TransactionFilter) ([]inventory.Transaction, error)
}

// Mailer sends the supplier-facing appointment notifications. Delivery failures
// never fail the request; they are logged and the state change stands.
type Mailer interface {
	SendAppointmentScheduled(ctx context.Context, appt appointments.Appointment, sup suppliers.Supplier) error
	SendAppointmentCancelled(ctx context.Context, appt appointments.Appointment, sup suppliers.Supplier) error
}

type API struct {
	log          *slog.Logger
	users        UserStore
	catalog      CatalogStore
	suppliers    SupplierStore
	inventory    InventoryStore
	appointments AppointmentStore
	activity     ActivityStore
	reports      ReportStore
	mailer       Mailer
}

func New(log *slog.Logger, users UserStore, cat CatalogStore, sup SupplierStore,
	inv InventoryStore, appt AppointmentStore, act ActivityStore, rep ReportStore, m Mailer) *API {
	return &API{
		log:          log,
		users:        users,
		catalog:      cat,
		suppliers:    sup,
		inventory:    inv,
		appointments: appt,
		activity:     act,
		reports:      rep,
		mailer:       m,
	}
}

func (a *API) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrStaleSnapshot):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, users.ErrAdminUndeletable):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		a.log.Error("request failed", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := parseID(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
