// Package notify runs the low-stock email loop: poll the pending-alert set,
// email the admin once per breached item, remember what was sent so a breach
// is only announced once until stock recovers.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/mjade/warehouse-inventory/internal/domain/inventory"
	"github.com/mjade/warehouse-inventory/internal/infra/metrics"
)

type AlertStore interface {
	ListPendingAlerts(ctx context.Context) ([]inventory.Item, error)
	MarkAlertSent(ctx context.Context, itemID int64) error
}

type AlertSender interface {
	SendLowStockAlert(ctx context.Context, item inventory.Item, adminEmail string) error
}

type Worker struct {
	log        *slog.Logger
	store      AlertStore
	sender     AlertSender
	adminEmail string
	interval   time.Duration
}

func NewWorker(log *slog.Logger, store AlertStore, sender AlertSender, adminEmail string, interval time.Duration) *Worker {
	return &Worker{
		log:        log,
		store:      store,
		sender:     sender,
		adminEmail: adminEmail,
		interval:   interval,
	}
}

// Run polls until the context is cancelled. Errors are logged and retried on the
// next tick; an item is only marked sent after its email went out.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("low-stock notifier started", "interval", w.interval)
	for {
		select {
		case <-ctx.Done():
			w.log.Info("low-stock notifier stopped")
			return
		case <-ticker.C:
			w.Poll(ctx)
		}
	}
}

// Poll processes one round of pending alerts.
func (w *Worker) Poll(ctx context.Context) {
	items, err := w.store.ListPendingAlerts(ctx)
	if err != nil {
		w.log.Error("listing pending low-stock alerts failed", "err", err)
		return
	}

	for _, item := range items {
		if err := w.sender.SendLowStockAlert(ctx, item, w.adminEmail); err != nil {
			w.log.Error("low-stock email failed", "item_id", item.ID, "err", err)
			continue
		}
		if err := w.store.MarkAlertSent(ctx, item.ID); err != nil {
			w.log.Error("marking alert sent failed", "item_id", item.ID, "err", err)
			continue
		}
		metrics.LowStockEmailsSent.Inc()
		w.log.Info("low-stock alert sent", "item_id", item.ID, "item", item.ItemName, "quantity", item.Quantity)
	}
}
