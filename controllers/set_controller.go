package controllers

import (
	"github.com/punkyalice/Foodprep/config"
	"github.com/punkyalice/Foodprep/services"

	"github.com/gin-gonic/gin"
)

// GET /api/sets
func ListSets(c *gin.Context) {
	limit, offset := pagination(c, 50)

	svc := services.NewSetService(config.DB)
	items, err := svc.ListSets(limit, offset)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"ok": true, "items": items})
}

// POST /api/sets
func CreateSet(c *gin.Context) {
	var body services.SetInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewSetService(config.DB)
	set, err := svc.CreateSet(body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, gin.H{"ok": true, "data": set})
}

// GET /api/sets/:id
func GetSet(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	svc := services.NewSetService(config.DB)
	set, err := svc.GetSet(id)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	if set == nil {
		c.JSON(404, gin.H{"error": "not_found"})
		return
	}
	c.JSON(200, gin.H{"ok": true, "data": set})
}

// PATCH /api/sets/:id
func UpdateSet(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var body services.UpdateSetInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewSetService(config.DB)
	set, err := svc.UpdateSet(id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"ok": true, "data": set})
}

// POST /api/sets/:id/boxes — the packing transaction.
func AddSetBoxes(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var body []services.BoxInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewSetService(config.DB)
	created, err := svc.AddBoxes(id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, gin.H{"ok": true, "boxes": created})
}
