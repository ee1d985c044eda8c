package api

import (
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/market-comb/app/cfg"
	"github.com/lysyi3m/market-comb/app/database"
	"github.com/lysyi3m/market-comb/app/listing"
	"github.com/lysyi3m/market-comb/app/marketplace"
	"github.com/lysyi3m/market-comb/app/watch"
)

func NewHandler(inventoryRepo database.InventoryRepository, client marketplace.Client,
	normalizer *listing.Normalizer, store *listing.Store, hub *watch.Hub,
	configCache *watch.ConfigCache) *Handler {
	return &Handler{
		inventoryRepo: inventoryRepo,
		client:        client,
		normalizer:    normalizer,
		store:         store,
		hub:           hub,
		configCache:   configCache,
	}
}

// SearchProducts runs an on-demand marketplace search. A transient search
// failure degrades to an empty, valid result set rather than an error page.
func (h *Handler) SearchProducts(c *gin.Context) {
	keywords := c.Query("keywords")
	if keywords == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing keywords parameter"})
		return
	}

	minPrice, ok := parseOptionalFloat(c, "min_price")
	if !ok {
		return
	}
	maxPrice, ok := parseOptionalFloat(c, "max_price")
	if !ok {
		return
	}
	sortKey := listing.ParseSortKey(c.Query("sort"))

	query := marketplace.SearchQuery{Keywords: keywords, MaxPrice: maxPrice}

	rawListings, err := h.client.Search(c.Request.Context(), query)
	if err != nil {
		slog.Error("On-demand search failed", "keywords", keywords, "error", err)
		c.JSON(http.StatusOK, gin.H{"products": []listing.Listing{}})
		return
	}

	products := h.normalizer.RunBatch(c.Request.Context(), rawListings)
	products = listing.FilterByPrice(products, minPrice, maxPrice)
	listing.Sort(products, sortKey)

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetCachedProducts serves the current snapshot of the scraped products store.
func (h *Handler) GetCachedProducts(c *gin.Context) {
	sortKey := listing.ParseSortKey(c.Query("sort"))

	products := h.store.Snapshot()
	listing.Sort(products, sortKey)

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    len(products),
	})
}

// ListWatches returns every configured watch, including ones whose monitor
// has never been started.
func (h *Handler) ListWatches(c *gin.Context) {
	statuses := h.hub.Statuses()

	known := make(map[string]struct{}, len(statuses))
	for _, status := range statuses {
		known[status.Name] = struct{}{}
	}

	for name, watchConfig := range h.configCache.GetConfigs() {
		if _, ok := known[name]; ok {
			continue
		}
		statuses = append(statuses, watch.IdleStatus(watchConfig))
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Name < statuses[j].Name
	})

	c.JSON(http.StatusOK, gin.H{
		"watches": statuses,
		"total":   len(statuses),
	})
}

func (h *Handler) StartWatch(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing watch name parameter"})
		return
	}

	watchConfig, err := h.configCache.GetConfig(name)
	if err != nil {
		slog.Error("Watch configuration not found", "watch", name, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Watch configuration not found"})
		return
	}

	if err := h.hub.Start(watchConfig); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Watch started",
		"watch":   name,
	})
}

func (h *Handler) StopWatch(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing watch name parameter"})
		return
	}

	if err := h.hub.Stop(name); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Watch stopped",
		"watch":   name,
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   cfg.Get().Version,
	}

	if count, err := h.inventoryRepo.GetCount(); err == nil {
		health["inventory_items"] = count
	}

	health["cached_products"] = h.store.Len()
	health["monitors"] = h.hub.Count()
	health["loaded_watches"] = h.configCache.GetConfigCount()

	c.JSON(http.StatusOK, health)
}

func (h *Handler) ListInventory(c *gin.Context) {
	items, err := h.inventoryRepo.GetAll()
	if err != nil {
		slog.Error("Database error", "operation", "list_inventory", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	response := make([]inventoryItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toInventoryResponse(item))
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) CreateInventory(c *gin.Context) {
	var req createInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be non-negative"})
		return
	}

	item, err := h.inventoryRepo.Create(database.InventoryItemInput{
		ItemName:  req.ItemName,
		Barcode:   req.Barcode,
		Quantity:  req.Quantity,
		Location:  req.Location,
		Category:  req.Category,
		Supplier:  req.Supplier,
		Cost:      req.Cost,
		SalePrice: req.SalePrice,
		Notes:     req.Notes,
	})
	if err != nil {
		slog.Error("Database error", "operation", "create_inventory", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create inventory item"})
		return
	}

	c.JSON(http.StatusOK, toInventoryResponse(*item))
}

func (h *Handler) UpdateInventory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	var req updateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Quantity != nil && *req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be non-negative"})
		return
	}

	item, err := h.inventoryRepo.Update(id, database.InventoryItemPatch{
		ItemName:  req.ItemName,
		Quantity:  req.Quantity,
		Location:  req.Location,
		Category:  req.Category,
		Supplier:  req.Supplier,
		Cost:      req.Cost,
		SalePrice: req.SalePrice,
		Notes:     req.Notes,
	})
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	if err != nil {
		slog.Error("Database error", "operation", "update_inventory", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update inventory item"})
		return
	}

	c.JSON(http.StatusOK, toInventoryResponse(*item))
}

func (h *Handler) DeleteInventory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item id"})
		return
	}

	err = h.inventoryRepo.Delete(id)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	if err != nil {
		slog.Error("Database error", "operation", "delete_inventory", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete inventory item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) GetInventoryByBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	if barcode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing barcode parameter"})
		return
	}

	item, err := h.inventoryRepo.GetByBarcode(barcode)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	if err != nil {
		slog.Error("Database error", "operation", "get_by_barcode", "barcode", barcode, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, toInventoryResponse(*item))
}

// ScanInventory applies a stock movement ("in" or "out") to a barcode.
func (h *Handler) ScanInventory(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be positive"})
		return
	}

	var delta int
	switch req.Mode {
	case "in":
		delta = quantity
	case "out":
		delta = -quantity
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mode. Use 'in' or 'out'"})
		return
	}

	item, err := h.inventoryRepo.AdjustQuantity(req.Barcode, delta)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}
	if errors.Is(err, database.ErrInsufficientStock) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Not enough quantity in stock"})
		return
	}
	if err != nil {
		slog.Error("Database error", "operation", "scan_inventory", "barcode", req.Barcode, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to adjust quantity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item":     toInventoryResponse(*item),
		"quantity": item.Quantity,
		"mode":     req.Mode,
	})
}

func toInventoryResponse(item database.InventoryItem) inventoryItemResponse {
	return inventoryItemResponse{
		ID:            item.ID,
		ItemName:      item.ItemName,
		Barcode:       item.Barcode,
		Quantity:      item.Quantity,
		Location:      item.Location,
		Category:      item.Category,
		Supplier:      item.Supplier,
		Cost:          item.Cost,
		SalePrice:     item.SalePrice,
		Profit:        item.Profit,
		ProfitPercent: item.ProfitPercent,
		Notes:         item.Notes,
		DateOfInput:   item.DateOfInput.Format(time.RFC3339),
		LastUpdated:   item.LastUpdated.Format(time.RFC3339),
	}
}

// parseOptionalFloat reads an optional float query parameter. On a malformed
// value it writes a 400 response and returns ok=false.
func parseOptionalFloat(c *gin.Context, name string) (*float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
		return nil, false
	}
	return &value, true
}
