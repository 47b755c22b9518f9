package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dispatch_tracker/internal/services"
)

type InventoryController struct {
	inventory *services.InventoryLedger
}

func NewInventoryController(inventory *services.InventoryLedger) *InventoryController {
	return &InventoryController{inventory: inventory}
}

func (ic *InventoryController) ListItems(c *gin.Context) {
	items, err := ic.inventory.ListItems()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inventory": items})
}

func (ic *InventoryController) CreateItem(c *gin.Context) {
	var input struct {
		Name        string  `json:"name" binding:"required"`
		Quantity    int     `json:"quantity"`
		Cost        float64 `json:"cost"`
		PriceSingle float64 `json:"price_single"`
		PriceBundle float64 `json:"price_bundle"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := ic.inventory.CreateItem(input.Name, input.Cost, input.PriceSingle, input.PriceBundle, input.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

func (ic *InventoryController) Restock(c *gin.Context) {
	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}
	var input struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := ic.inventory.Restock(itemID, input.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

func (ic *InventoryController) SetQuantity(c *gin.Context) {
	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}
	var input struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := ic.inventory.SetQuantity(itemID, *input.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// Distribute moves stock from the catalogue onto a route stop.
func (ic *InventoryController) Distribute(c *gin.Context) {
	var input struct {
		RouteID   uint `json:"route_id" binding:"required"`
		StopIndex *int `json:"stop_index" binding:"required"`
		ItemID    uint `json:"item_id" binding:"required"`
		Qty       int  `json:"qty" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allocation, err := ic.inventory.Distribute(input.RouteID, *input.StopIndex, input.ItemID, input.Qty)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"allocation": allocation})
}
