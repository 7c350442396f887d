package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mjade/warehouse-inventory/internal/domain/inventory"
)

// InventoryWorkbook renders the inventory report as a spreadsheet for download.
func InventoryWorkbook(rows []InventoryRow) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Inventory"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"ID", "Item", "Category", "Location", "Supplier", "Quantity", "Reorder Level", "Price", "Total Value", "Condition", "Date Added"}
	if err := writeRow(f, sheet, 1, headers); err != nil {
		return nil, err
	}
	for i, r := range rows {
		cells := []any{r.ID, r.ItemName, r.Category, r.Location, r.Supplier, r.Quantity, r.ReorderLevel, r.Price, r.TotalValue, r.DamagedStatus, r.DateAdded}
		if err := writeRow(f, sheet, i+2, cells); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// TransactionsWorkbook renders the stock transaction ledger as a spreadsheet.
func TransactionsWorkbook(txs []inventory.Transaction) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Transactions"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"ID", "Item", "Type", "Quantity", "Reason", "User", "Stock Before", "Stock After", "Timestamp"}
	if err := writeRow(f, sheet, 1, headers); err != nil {
		return nil, err
	}
	for i, t := range txs {
		cells := []any{t.ID, t.ItemName, string(t.TransactionType), t.Quantity, t.Reason, t.UserName, t.StockBefore, t.StockAfter, t.Timestamp}
		if err := writeRow(f, sheet, i+2, cells); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func writeRow[T any](f *excelize.File, sheet string, row int, cells []T) error {
	for col, v := range cells {
		name, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, name, v); err != nil {
			return fmt.Errorf("cell %s: %w", name, err)
		}
	}
	return nil
}
