package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	srv *http.Server
}

func NewServer(addr string, api *API, env string, exposeMetrics bool) *Server {
	if env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), cors())

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if exposeMetrics {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	api.Register(router)

	return &Server{srv: &http.Server{Addr: addr, Handler: router}}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Origin, Cache-Control, X-Requested-With")
		h.Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Register mounts every dashboard route under /api.
func (a *API) Register(router *gin.Engine) {
	api := router.Group("/api")

	api.POST("/auth/login", a.login)
	api.POST("/auth/signup", a.signup)

	api.GET("/users/pending", a.listPendingUsers)
	api.GET("/users/approved", a.listApprovedUsers)
	api.POST("/users/:id/approve", a.approveUser)
	api.DELETE("/users/:id/reject", a.rejectUser)
	api.DELETE("/users/:id", a.deleteUser)

	api.GET("/inventory", a.listItems)
	api.GET("/inventory/:id", a.getItem)
	api.POST("/inventory", a.createItem)
	api.PUT("/inventory/:id", a.updateItem)
	api.DELETE("/inventory/:id", a.deleteItem)

	api.GET("/categories", a.listCategories)
	api.POST("/categories", a.createCategory)
	api.PUT("/categories/:id", a.updateCategory)
	api.DELETE("/categories/:id", a.deleteCategory)

	api.GET("/locations", a.listLocations)
	api.POST("/locations", a.createLocation)
	api.PUT("/locations/:id", a.updateLocation)
	api.DELETE("/locations/:id", a.deleteLocation)

	api.GET("/suppliers", a.listSuppliers)
	api.POST("/suppliers", a.createSupplier)
	api.PUT("/suppliers/:id", a.updateSupplier)
	api.DELETE("/suppliers/:id", a.deleteSupplier)

	api.GET("/transactions", a.listTransactions)
	api.POST("/transactions", a.recordTransaction)

	api.GET("/appointments", a.listAppointments)
	api.POST("/appointments", a.createAppointment)
	api.PUT("/appointments/:id", a.updateAppointment)
	api.POST("/appointments/:id/complete", a.completeAppointment)
	api.POST("/appointments/:id/cancel", a.cancelAppointment)

	api.GET("/damaged-items", a.listDamagedItems)
	api.PUT("/damaged-items/:id", a.updateDamagedItem)
	api.DELETE("/damaged-items/:id", a.deleteDamagedItem)

	api.GET("/activity-logs", a.listActivityLogs)
	api.POST("/activity-logs", a.addActivityLog)

	api.GET("/low-stock-items", a.listLowStock)
	api.GET("/low-stock-alerts/pending", a.listPendingAlerts)
	api.POST("/low-stock-alerts/:itemId", a.markAlertSent)
	api.DELETE("/low-stock-alerts/:itemId", a.clearAlert)

	api.GET("/dashboard/stats", a.dashboardStats)
	api.GET("/reports/activity-logs", a.activityReport)
	api.GET("/reports/inventory", a.inventoryReport)
	api.GET("/reports/inventory/export", a.inventoryReportXLSX)
	api.GET("/reports/transactions", a.transactionsReport)
	api.GET("/reports/transactions/export", a.transactionsReportXLSX)
}

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// orEmpty keeps empty collections rendering as [] instead of null.
func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
