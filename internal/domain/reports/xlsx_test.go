package reports

import (
	"testing"

	"github.com/mjade/warehouse-inventory/internal/domain/inventory"
)

func TestInventoryWorkbook(t *testing.T) {
	rows := []InventoryRow{
		{
			Item: inventory.Item{
				ID: 1, ItemName: "HP Printer", Category: "Electronics", Location: "Warehouse A",
				Supplier: "TechSource", Quantity: 12, ReorderLevel: 5, Price: 249.99,
				DamagedStatus: "Good", DateAdded: "07/14/2026",
			},
			TotalValue: 2999.88,
		},
		{
			Item: inventory.Item{
				ID: 2, ItemName: "Office Desk", Quantity: 3, ReorderLevel: 4, Price: 120,
				DamagedStatus: "Good", DateAdded: "08/02/2026",
			},
			TotalValue: 360,
		},
	}

	f, err := InventoryWorkbook(rows)
	if err != nil {
		t.Fatalf("InventoryWorkbook: %v", err)
	}
	defer f.Close()

	got, err := f.GetCellValue("Inventory", "A1")
	if err != nil {
		t.Fatal(err)
	}
	if got != "ID" {
		t.Errorf("A1 = %q, want ID", got)
	}
	got, _ = f.GetCellValue("Inventory", "B2")
	if got != "HP Printer" {
		t.Errorf("B2 = %q, want HP Printer", got)
	}
	got, _ = f.GetCellValue("Inventory", "I3")
	if got != "360" {
		t.Errorf("I3 = %q, want 360", got)
	}
}

func TestTransactionsWorkbook(t *testing.T) {
	txs := []inventory.Transaction{
		{
			ID: 7, ItemName: "HP Printer", TransactionType: inventory.TxOut, Quantity: 2,
			Reason: "Sold", UserName: "Admin", StockBefore: 12, StockAfter: 10,
			Timestamp: "08/20/2026 02:15 PM",
		},
	}

	f, err := TransactionsWorkbook(txs)
	if err != nil {
		t.Fatalf("TransactionsWorkbook: %v", err)
	}
	defer f.Close()

	got, _ := f.GetCellValue("Transactions", "C2")
	if got != "OUT" {
		t.Errorf("C2 = %q, want OUT", got)
	}
	got, _ = f.GetCellValue("Transactions", "H2")
	if got != "10" {
		t.Errorf("H2 = %q, want 10", got)
	}
}
