package database

import "errors"

var (
	ErrNotFound          = errors.New("inventory item not found")
	ErrInsufficientStock = errors.New("not enough quantity in stock")
)

// InventoryItemInput carries the writable fields for creating a record.
// Profit fields are always derived, never written directly.
type InventoryItemInput struct {
	ItemName  string
	Barcode   string
	Quantity  int
	Location  string
	Category  string
	Supplier  string
	Cost      float64
	SalePrice float64
	Notes     string
}

// InventoryItemPatch carries a partial update; nil fields are left unchanged.
type InventoryItemPatch struct {
	ItemName  *string
	Quantity  *int
	Location  *string
	Category  *string
	Supplier  *string
	Cost      *float64
	SalePrice *float64
	Notes     *string
}

type InventoryRepository interface {
	GetAll() ([]InventoryItem, error)
	GetByID(id int64) (*InventoryItem, error)
	GetByBarcode(barcode string) (*InventoryItem, error)
	GetCount() (int, error)

	Create(input InventoryItemInput) (*InventoryItem, error)
	Update(id int64, patch InventoryItemPatch) (*InventoryItem, error)
	Delete(id int64) error

	AdjustQuantity(barcode string, delta int) (*InventoryItem, error)
}
