package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mjade/warehouse-inventory/internal/domain/appointments"
	"github.com/mjade/warehouse-inventory/internal/infra/metrics"
)

func (a *API) listAppointments(c *gin.Context) {
	out, err := a.appointments.List(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(out))
}

func (a *API) createAppointment(c *gin.Context) {
	var in appointments.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	id, err := a.appointments.Create(c.Request.Context(), in)
	if err != nil {
		a.fail(c, err)
		return
	}

	a.notifySupplier(c, id, false)
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "Appointment scheduled successfully"})
}

func (a *API) updateAppointment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in appointments.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := a.appointments.Update(c.Request.Context(), id, in); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment updated successfully"})
}

func (a *API) completeAppointment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		UserID *int64 `json:"userId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := a.appointments.Complete(c.Request.Context(), id, req.UserID); err != nil {
		a.fail(c, err)
		return
	}
	metrics.AppointmentsCompleted.Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Appointment completed and inventory updated"})
}

func (a *API) cancelAppointment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := a.appointments.Cancel(c.Request.Context(), id); err != nil {
		a.fail(c, err)
		return
	}

	a.notifySupplier(c, id, true)
	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled"})
}

// notifySupplier emails the supplier contact about a scheduled or cancelled
// appointment. Delivery is best effort: the appointment state already changed,
// so a relay failure is only logged.
func (a *API) notifySupplier(c *gin.Context, appointmentID int64, cancelled bool) {
	if a.mailer == nil {
		return
	}
	ctx := c.Request.Context()

	appt, err := a.appointments.Get(ctx, appointmentID)
	if err != nil {
		a.log.Error("loading appointment for supplier email failed", "appointment_id", appointmentID, "err", err)
		return
	}
	sup, err := a.suppliers.GetByID(ctx, appt.SupplierID)
	if err != nil {
		a.log.Error("loading supplier for appointment email failed", "supplier_id", appt.SupplierID, "err", err)
		return
	}

	if cancelled {
		err = a.mailer.SendAppointmentCancelled(ctx, *appt, *sup)
	} else {
		err = a.mailer.SendAppointmentScheduled(ctx, *appt, *sup)
	}
	if err != nil {
		a.log.Error("supplier appointment email failed", "appointment_id", appointmentID, "err", err)
	}
}
