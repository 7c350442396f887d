package reports

import "github.com/mjade/warehouse-inventory/internal/domain/inventory"

type DashboardStats struct {
	TotalItems           int     `json:"totalItems"`
	LowStockItems        int     `json:"lowStockItems"`
	DamagedItems         int     `json:"damagedItems"`
	TotalValue           float64 `json:"totalValue"`
	TotalIn              int     `json:"totalIn"`
	TotalOut             int     `json:"totalOut"`
	UpcomingAppointments int     `json:"upcomingAppointments"`
}

type InventoryRow struct {
	inventory.Item
	TotalValue float64 `json:"totalValue"`
}

// TransactionFilter narrows the transaction report; empty values mean "all".
type TransactionFilter struct {
	StartDate string
	EndDate   string
	Type      inventory.TxType
}
