package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mjade/warehouse-inventory/internal/domain/inventory"
	"github.com/mjade/warehouse-inventory/internal/infra/metrics"
)

func (a *API) listItems(c *gin.Context) {
	out, err := a.inventory.List(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(out))
}

func (a *API) getItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	it, err := a.inventory.GetByID(c.Request.Context(), id)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, it)
}

func (a *API) createItem(c *gin.Context) {
	var in inventory.ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	id, err := a.inventory.Create(c.Request.Context(), in)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "Item added successfully"})
}

func (a *API) updateItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in inventory.ItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := a.inventory.Update(c.Request.Context(), id, in); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item updated successfully"})
}

func (a *API) deleteItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := a.inventory.Delete(c.Request.Context(), id); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

/* Stock transactions */

func (a *API) listTransactions(c *gin.Context) {
	out, err := a.inventory.ListTransactions(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(out))
}

func (a *API) recordTransaction(c *gin.Context) {
	var in inventory.TransactionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if _, err := a.inventory.RecordTransaction(c.Request.Context(), in); err != nil {
		a.fail(c, err)
		return
	}
	metrics.TransactionsRecorded.WithLabelValues(string(in.TransactionType)).Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Transaction recorded successfully"})
}

/* Damaged items */

func (a *API) listDamagedItems(c *gin.Context) {
	out, err := a.inventory.ListDamaged(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(out))
}

func (a *API) updateDamagedItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := a.inventory.UpdateDamaged(c.Request.Context(), id, req.Status, req.Notes); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Damaged item updated successfully"})
}

func (a *API) deleteDamagedItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := a.inventory.DeleteDamaged(c.Request.Context(), id); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Damaged item removed successfully"})
}

/* Low-stock boundary */

func (a *API) listLowStock(c *gin.Context) {
	out, err := a.inventory.ListLowStock(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(out))
}

func (a *API) listPendingAlerts(c *gin.Context) {
	out, err := a.inventory.ListPendingAlerts(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(out))
}

func (a *API) markAlertSent(c *gin.Context) {
	id, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	if err := a.inventory.MarkAlertSent(c.Request.Context(), id); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Low stock alert marked as sent"})
}

func (a *API) clearAlert(c *gin.Context) {
	id, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	if err := a.inventory.ClearAlert(c.Request.Context(), id); err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Low stock alert cleared"})
}
