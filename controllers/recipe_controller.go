package controllers

import (
	"strings"

	"github.com/punkyalice/Foodprep/config"
	"github.com/punkyalice/Foodprep/services"

	"github.com/gin-gonic/gin"
)

// GET /api/recipes?q=&type=&veggie=1&vegan=1&sort=name|newest
func ListRecipes(c *gin.Context) {
	limit, offset := pagination(c, 50)
	filters := services.RecipeFilters{
		Q:          strings.TrimSpace(c.Query("q")),
		RecipeType: c.Query("type"),
		Veggie:     boolQuery(c, "veggie"),
		Vegan:      boolQuery(c, "vegan"),
		Sort:       c.DefaultQuery("sort", "name"),
	}

	svc := services.NewRecipeService(config.DB)
	recipes, total, err := svc.List(filters, limit, offset)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"ok": true, "items": recipes, "total": total})
}

// GET /api/recipes/:id
func GetRecipe(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	svc := services.NewRecipeService(config.DB)
	recipe, err := svc.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"ok": true, "data": recipe})
}

// POST /api/recipes
func CreateRecipe(c *gin.Context) {
	var body services.RecipeInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewRecipeService(config.DB)
	recipe, err := svc.Create(body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, gin.H{"ok": true, "data": recipe})
}

// PATCH /api/recipes/:id
func UpdateRecipe(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var body services.RecipeInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewRecipeService(config.DB)
	recipe, err := svc.Update(id, body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"ok": true, "data": recipe})
}
