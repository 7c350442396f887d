package inventory

import (
	"fmt"
	"time"

	"github.com/mjade/warehouse-inventory/internal/domain/errs"
)

type TxType string

const (
	TxIn  TxType = "IN"
	TxOut TxType = "OUT"
)

const (
	ConditionGood    = "Good"
	ConditionDamaged = "Damaged"

	DamagedStandby = "Standby"
	DamagedThrown  = "Thrown"
)

// DamagedReason is the sentinel OUT reason that spawns a damaged_items record.
const DamagedReason = "Damaged/Discarded"

// RestockReason is written on every ledger row created by appointment completion.
const RestockReason = "Restock from appointment"

// TimestampLayout matches the dashboard's display format.
const TimestampLayout = "01/02/2006 03:04 PM"

type Item struct {
	ID            int64   `json:"id"`
	ItemName      string  `json:"itemName"`
	CategoryID    *int64  `json:"categoryId"`
	Category      string  `json:"category"`
	Quantity      int     `json:"quantity"`
	LocationID    *int64  `json:"locationId"`
	Location      string  `json:"location"`
	ReorderLevel  int     `json:"reorderLevel"`
	Price         float64 `json:"price"`
	SupplierID    *int64  `json:"supplierId"`
	Supplier      string  `json:"supplier"`
	DamagedStatus string  `json:"damagedStatus"`
	DateAdded     string  `json:"dateAdded"`
}

type Transaction struct {
	ID              int64  `json:"id"`
	ItemID          int64  `json:"itemId"`
	ItemName        string `json:"itemName"`
	TransactionType TxType `json:"transactionType"`
	Quantity        int    `json:"quantity"`
	Reason          string `json:"reason"`
	UserID          *int64 `json:"userId"`
	UserName        string `json:"userName"`
	UserRole        string `json:"userRole"`
	StockBefore     int    `json:"stockBefore"`
	StockAfter      int    `json:"stockAfter"`
	Timestamp       string `json:"timestamp"`
}

type DamagedItem struct {
	ID          int64   `json:"id"`
	ItemID      int64   `json:"itemId"`
	ItemName    string  `json:"itemName"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Reason      string  `json:"reason"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes"`
	DateDamaged string  `json:"dateDamaged"`
	LastUpdated string  `json:"lastUpdated"`
}

type ItemInput struct {
	ItemName      string  `json:"itemName"`
	CategoryID    *int64  `json:"categoryId"`
	Quantity      int     `json:"quantity"`
	LocationID    *int64  `json:"locationId"`
	ReorderLevel  int     `json:"reorderLevel"`
	Price         float64 `json:"price"`
	SupplierID    *int64  `json:"supplierId"`
	DamagedStatus string  `json:"damagedStatus"`
	DateAdded     string  `json:"dateAdded"`
}

type TransactionInput struct {
	ItemID          int64  `json:"itemId"`
	TransactionType TxType `json:"transactionType"`
	Quantity        int    `json:"quantity"`
	Reason          string `json:"reason"`
	UserID          *int64 `json:"userId"`
	StockBefore     int    `json:"stockBefore"`
	StockAfter      int    `json:"stockAfter"`
}

// NextQuantity computes the post-transaction stock level from the current row value.
// The quantity must move in whole positive steps and OUT may never drive stock negative.
func NextQuantity(current int, ttype TxType, qty int) (int, error) {
	if qty <= 0 {
		return 0, fmt.Errorf("quantity must be positive: %w", errs.ErrValidation)
	}
	switch ttype {
	case TxIn:
		return current + qty, nil
	case TxOut:
		next := current - qty
		if next < 0 {
			return 0, fmt.Errorf("stock cannot go below zero (have %d, removing %d): %w", current, qty, errs.ErrValidation)
		}
		return next, nil
	default:
		return 0, fmt.Errorf("unknown transaction type %q: %w", ttype, errs.ErrValidation)
	}
}

// IsDamageWriteOff reports whether a transaction must spawn a damaged-item record.
func IsDamageWriteOff(ttype TxType, reason string) bool {
	return ttype == TxOut && reason == DamagedReason
}

// BelowReorder reports whether an item is at or below its reorder threshold.
func BelowReorder(quantity, reorderLevel int) bool {
	return quantity <= reorderLevel
}

func formatDate(t time.Time) string      { return t.Format("01/02/2006") }
func formatTimestamp(t time.Time) string { return t.Format(TimestampLayout) }
