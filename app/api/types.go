package api

import (
	"github.com/lysyi3m/market-comb/app/database"
	"github.com/lysyi3m/market-comb/app/listing"
	"github.com/lysyi3m/market-comb/app/marketplace"
	"github.com/lysyi3m/market-comb/app/watch"
)

type Handler struct {
	inventoryRepo database.InventoryRepository
	client        marketplace.Client
	normalizer    *listing.Normalizer
	store         *listing.Store
	hub           *watch.Hub
	configCache   *watch.ConfigCache
}

// inventoryItemResponse is the JSON shape of one inventory record.
type inventoryItemResponse struct {
	ID            int64   `json:"id"`
	ItemName      string  `json:"item_name"`
	Barcode       string  `json:"barcode"`
	Quantity      int     `json:"quantity"`
	Location      string  `json:"location,omitempty"`
	Category      string  `json:"category,omitempty"`
	Supplier      string  `json:"supplier,omitempty"`
	Cost          float64 `json:"cost"`
	SalePrice     float64 `json:"sale_price"`
	Profit        float64 `json:"profit"`
	ProfitPercent float64 `json:"profit_percent"`
	Notes         string  `json:"notes,omitempty"`
	DateOfInput   string  `json:"date_of_input"`
	LastUpdated   string  `json:"last_updated"`
}

type createInventoryRequest struct {
	ItemName  string  `json:"item_name" binding:"required"`
	Barcode   string  `json:"barcode"`
	Quantity  int     `json:"quantity"`
	Location  string  `json:"location"`
	Category  string  `json:"category"`
	Supplier  string  `json:"supplier"`
	Cost      float64 `json:"cost"`
	SalePrice float64 `json:"sale_price"`
	Notes     string  `json:"notes"`
}

type updateInventoryRequest struct {
	ItemName  *string  `json:"item_name"`
	Quantity  *int     `json:"quantity"`
	Location  *string  `json:"location"`
	Category  *string  `json:"category"`
	Supplier  *string  `json:"supplier"`
	Cost      *float64 `json:"cost"`
	SalePrice *float64 `json:"sale_price"`
	Notes     *string  `json:"notes"`
}

type scanRequest struct {
	Barcode  string `json:"barcode" binding:"required"`
	Quantity int    `json:"quantity"`
	Mode     string `json:"mode" binding:"required"`
}
