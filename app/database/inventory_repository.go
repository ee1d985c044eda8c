package database

import (
	"database/sql"
	"fmt"
	"math/rand"
	"time"
)

var _ InventoryRepository = (*SQLInventoryRepository)(nil)

// SQLInventoryRepository handles database operations for inventory records
type SQLInventoryRepository struct {
	db *DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *DB) *SQLInventoryRepository {
	return &SQLInventoryRepository{db: db}
}

const inventoryColumns = `id, item_name, COALESCE(barcode, ''), quantity, location, category,
	supplier, cost, sale_price, profit, profit_percent, notes, date_of_input, last_updated`

func (r *SQLInventoryRepository) GetAll() ([]InventoryItem, error) {
	rows, err := r.db.Query(fmt.Sprintf(`SELECT %s FROM inventory ORDER BY id`, inventoryColumns))
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}
	defer rows.Close()

	var items []InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory rows: %w", err)
	}

	return items, nil
}

func (r *SQLInventoryRepository) GetByID(id int64) (*InventoryItem, error) {
	row := r.db.QueryRow(fmt.Sprintf(`SELECT %s FROM inventory WHERE id = ?`, inventoryColumns), id)

	item, err := scanInventoryItem(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}

	return item, nil
}

func (r *SQLInventoryRepository) GetByBarcode(barcode string) (*InventoryItem, error) {
	row := r.db.QueryRow(fmt.Sprintf(`SELECT %s FROM inventory WHERE barcode = ?`, inventoryColumns), barcode)

	item, err := scanInventoryItem(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item by barcode: %w", err)
	}

	return item, nil
}

func (r *SQLInventoryRepository) GetCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM inventory`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count inventory: %w", err)
	}
	return count, nil
}

func (r *SQLInventoryRepository) Create(input InventoryItemInput) (*InventoryItem, error) {
	barcode := input.Barcode
	if barcode == "" {
		barcode = generateBarcode()
	}

	profit, profitPercent := calculateProfit(input.Cost, input.SalePrice)
	now := time.Now().UTC()

	result, err := r.db.Exec(`
		INSERT INTO inventory (
			item_name, barcode, quantity, location, category, supplier,
			cost, sale_price, profit, profit_percent, notes, date_of_input, last_updated
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, input.ItemName, barcode, input.Quantity, input.Location, input.Category,
		input.Supplier, input.Cost, input.SalePrice, profit, profitPercent,
		input.Notes, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inserted id: %w", err)
	}

	return r.GetByID(id)
}

func (r *SQLInventoryRepository) Update(id int64, patch InventoryItemPatch) (*InventoryItem, error) {
	item, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	if patch.ItemName != nil {
		item.ItemName = *patch.ItemName
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.Location != nil {
		item.Location = *patch.Location
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Supplier != nil {
		item.Supplier = *patch.Supplier
	}
	if patch.Cost != nil {
		item.Cost = *patch.Cost
	}
	if patch.SalePrice != nil {
		item.SalePrice = *patch.SalePrice
	}
	if patch.Notes != nil {
		item.Notes = *patch.Notes
	}

	item.Profit, item.ProfitPercent = calculateProfit(item.Cost, item.SalePrice)

	_, err = r.db.Exec(`
		UPDATE inventory
		SET item_name = ?, quantity = ?, location = ?, category = ?, supplier = ?,
		    cost = ?, sale_price = ?, profit = ?, profit_percent = ?, notes = ?,
		    last_updated = ?
		WHERE id = ?
	`, item.ItemName, item.Quantity, item.Location, item.Category, item.Supplier,
		item.Cost, item.SalePrice, item.Profit, item.ProfitPercent, item.Notes,
		time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}

	return r.GetByID(id)
}

func (r *SQLInventoryRepository) Delete(id int64) error {
	result, err := r.db.Exec(`DELETE FROM inventory WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// AdjustQuantity applies a stock movement to the item with the given barcode.
// A negative delta larger than the current stock fails with
// ErrInsufficientStock and leaves the record unchanged.
func (r *SQLInventoryRepository) AdjustQuantity(barcode string, delta int) (*InventoryItem, error) {
	item, err := r.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}

	newQuantity := item.Quantity + delta
	if newQuantity < 0 {
		return nil, ErrInsufficientStock
	}

	_, err = r.db.Exec(`
		UPDATE inventory SET quantity = ?, last_updated = ? WHERE id = ?
	`, newQuantity, time.Now().UTC(), item.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust quantity: %w", err)
	}

	return r.GetByID(item.ID)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInventoryItem(row rowScanner) (*InventoryItem, error) {
	var item InventoryItem
	err := row.Scan(
		&item.ID, &item.ItemName, &item.Barcode, &item.Quantity, &item.Location,
		&item.Category, &item.Supplier, &item.Cost, &item.SalePrice,
		&item.Profit, &item.ProfitPercent, &item.Notes,
		&item.DateOfInput, &item.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func calculateProfit(cost, salePrice float64) (profit, profitPercent float64) {
	profit = salePrice - cost
	if cost != 0 {
		profitPercent = profit / cost * 100
	}
	return profit, profitPercent
}

func generateBarcode() string {
	digits := make([]byte, 12)
	for i := range digits {
		digits[i] = byte('0' + rand.Intn(10))
	}
	return string(digits)
}
