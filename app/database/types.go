package database

import (
	"database/sql"
	"time"
)

type DB struct {
	*sql.DB
}

// InventoryItem is one tracked stock record. Profit fields are derived from
// cost and sale price on every write.
type InventoryItem struct {
	ID            int64
	ItemName      string
	Barcode       string
	Quantity      int
	Location      string
	Category      string
	Supplier      string
	Cost          float64
	SalePrice     float64
	Profit        float64
	ProfitPercent float64
	Notes         string
	DateOfInput   time.Time
	LastUpdated   time.Time
}
