package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/mjade/warehouse-inventory/internal/domain/activity"
	"github.com/mjade/warehouse-inventory/internal/domain/inventory"
	"github.com/mjade/warehouse-inventory/internal/domain/reports"
)

func (a *API) listActivityLogs(c *gin.Context) {
	out, err := a.activity.Report(c.Request.Context(), activity.Filter{})
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(out))
}

func (a *API) addActivityLog(c *gin.Context) {
	var req struct {
		ItemName string          `json:"itemName"`
		Action   activity.Action `json:"action"`
		UserID   *int64          `json:"userId"`
		Details  string          `json:"details"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	id, err := a.activity.Log(c.Request.Context(), req.ItemName, req.Action, req.UserID, req.Details)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "Activity logged successfully"})
}

func (a *API) dashboardStats(c *gin.Context) {
	stats, err := a.reports.DashboardStats(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (a *API) activityReport(c *gin.Context) {
	var f activity.Filter
	if v := c.Query("action"); v != "" && v != "all" {
		f.Action = activity.Action(v)
	}
	if v := c.Query("month"); v != "" && v != "all" {
		f.Month, _ = strconv.Atoi(v)
	}
	if v := c.Query("year"); v != "" && v != "all" {
		f.Year, _ = strconv.Atoi(v)
	}

	out, err := a.activity.Report(c.Request.Context(), f)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(out))
}

func (a *API) inventoryReport(c *gin.Context) {
	out, err := a.reports.Inventory(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(out))
}

func (a *API) transactionsReport(c *gin.Context) {
	out, err := a.reports.Transactions(c.Request.Context(), transactionFilter(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orEmpty(out))
}

func (a *API) inventoryReportXLSX(c *gin.Context) {
	rows, err := a.reports.Inventory(c.Request.Context())
	if err != nil {
		a.fail(c, err)
		return
	}
	f, err := reports.InventoryWorkbook(rows)
	if err != nil {
		a.fail(c, err)
		return
	}
	writeWorkbook(c, f, "inventory-report.xlsx")
}

func (a *API) transactionsReportXLSX(c *gin.Context) {
	txs, err := a.reports.Transactions(c.Request.Context(), transactionFilter(c))
	if err != nil {
		a.fail(c, err)
		return
	}
	f, err := reports.TransactionsWorkbook(txs)
	if err != nil {
		a.fail(c, err)
		return
	}
	writeWorkbook(c, f, "transactions-report.xlsx")
}

func transactionFilter(c *gin.Context) reports.TransactionFilter {
	f := reports.TransactionFilter{
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}
	if v := c.Query("type"); v != "" && v != "all" {
		f.Type = inventory.TxType(v)
	}
	return f
}

func writeWorkbook(c *gin.Context, f *excelize.File, filename string) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if _, err := f.WriteTo(c.Writer); err != nil {
		_ = c.Error(err)
	}
}
