package controllers

import (
	"github.com/punkyalice/Foodprep/config"
	"github.com/punkyalice/Foodprep/services"

	"github.com/gin-gonic/gin"
)

// GET /api/meal_sets?q=&veggie=1&expiring=1
func ListMealSets(c *gin.Context) {
	limit, offset := pagination(c, 20)

	svc := services.NewMealSetService(config.DB)
	items, err := svc.ListSets(collectFilters(c), limit, offset)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"items": items})
}

// GET /api/meal_sets/:id
func GetMealSet(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	svc := services.NewMealSetService(config.DB)
	set, err := svc.GetSet(id, collectFilters(c))
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	if set == nil {
		c.JSON(404, gin.H{"error": "not_found"})
		return
	}
	c.JSON(200, set)
}

// POST /api/meal_sets/:id/takeout — body may name explicit item ids;
// otherwise the FIFO pick for one complete meal is used.
func TakeOutMealSet(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var body struct {
		ItemIDs []uint `json:"item_ids"`
	}
	_ = c.ShouldBindJSON(&body)

	mealSvc := services.NewMealSetService(config.DB)
	itemIDs := body.ItemIDs
	if len(itemIDs) == 0 {
		var err error
		itemIDs, err = mealSvc.ChooseFifoItems(id)
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
	}
	if len(itemIDs) == 0 {
		c.JSON(404, gin.H{"error": services.ErrNoItemsAvailable.Error()})
		return
	}

	invSvc := services.NewInventoryService(config.DB)
	changed, err := invSvc.TakeOutItems(itemIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"ok": true, "item_ids": changed})
}
