package controllers

import (
	"github.com/punkyalice/Foodprep/config"
	"github.com/punkyalice/Foodprep/models"
	"github.com/punkyalice/Foodprep/utils"

	"github.com/gin-gonic/gin"
)

// GET /api/item-type-defaults
func ListItemTypeDefaults(c *gin.Context) {
	var defaults []models.ItemTypeDefault
	if err := config.DB.Order("item_type ASC").Find(&defaults).Error; err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	items := make([]gin.H, 0, len(defaults))
	for _, d := range defaults {
		boxType, ok := utils.ItemTypeBoxType[d.ItemType]
		if !ok {
			continue
		}
		items = append(items, gin.H{
			"item_type":        d.ItemType,
			"box_type":         boxType,
			"note":             d.Note,
			"best_before_days": d.BestBeforeDays,
			"thaw_method":      d.ThawMethod,
			"reheat_minutes":   d.ReheatMinutes,
		})
	}
	c.JSON(200, gin.H{"ok": true, "items": items})
}

// GET /api/storage-standards
func ListStorageStandards(c *gin.Context) {
	c.JSON(200, gin.H{"ok": true, "items": []string{
		models.StorageFree,
		models.StorageFreezerBag,
		models.StorageVacuumBag,
	}})
}
