package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TransactionsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warehouse_stock_transactions_total",
		Help: "Recorded stock transactions by type.",
	}, []string{"type"})

	AppointmentsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warehouse_appointments_completed_total",
		Help: "Appointments completed and applied to inventory.",
	})

	LowStockEmailsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "warehouse_low_stock_emails_total",
		Help: "Low stock alert emails sent to the admin.",
	})
)
