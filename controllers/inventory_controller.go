package controllers

import (
	"github.com/punkyalice/Foodprep/config"
	"github.com/punkyalice/Foodprep/services"

	"github.com/gin-gonic/gin"
)

// GET /api/inventory?view=meals|single|ingredient&q=&veggie=1&expiring=1
func ListInventory(c *gin.Context) {
	view := c.DefaultQuery("view", "single")
	limit, offset := pagination(c, 20)

	svc := services.NewInventoryService(config.DB)
	items, err := svc.List(view, collectFilters(c), limit, offset)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"items": items})
}

// POST /api/inventory
func CreateInventoryItem(c *gin.Context) {
	var body services.CreateItemInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewInventoryService(config.DB)
	item, err := svc.CreateItem(body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, gin.H{"id": item.ID, "id_code": item.IDCode, "name": item.Name})
}

// POST /api/inventory/takeout  {"item_ids": [1,2]}
func TakeOutInventory(c *gin.Context) {
	var body struct {
		ItemIDs []uint `json:"item_ids"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if len(body.ItemIDs) == 0 {
		c.JSON(422, gin.H{"error": services.ErrNoItemsSelected.Error()})
		return
	}

	svc := services.NewInventoryService(config.DB)
	changed, err := svc.TakeOutItems(body.ItemIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"ok": true, "item_ids": changed})
}
