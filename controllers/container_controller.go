package controllers

import (
	"github.com/punkyalice/Foodprep/config"
	"github.com/punkyalice/Foodprep/services"

	"github.com/gin-gonic/gin"
)

// GET /api/containers?active=1|0|all&free=1
func ListContainers(c *gin.Context) {
	active := c.DefaultQuery("active", "1")
	if active != "1" && active != "0" && active != "all" {
		active = "1"
	}

	svc := services.NewContainerService(config.DB)
	var (
		items []services.ContainerRow
		err   error
	)
	if c.Query("free") == "1" {
		items, err = svc.ListFree()
	} else {
		items, err = svc.List(active)
	}
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"ok": true, "items": items})
}

// POST /api/containers
func CreateContainer(c *gin.Context) {
	var body services.ContainerInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewContainerService(config.DB)
	id, err := svc.Create(body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, gin.H{"ok": true, "id": id})
}

// PATCH /api/containers/:id
func UpdateContainer(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var body services.ContainerInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewContainerService(config.DB)
	if err := svc.Update(id, body); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"ok": true})
}
