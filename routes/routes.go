package routes

import (
	"github.com/punkyalice/Foodprep/controllers"
	"github.com/punkyalice/Foodprep/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter(hub *services.RealtimeHub) *gin.Engine {
	r := gin.Default()

	r.GET("/health", controllers.Health)

	api := r.Group("/api")
	{
		api.GET("/meal_sets", controllers.ListMealSets)
		api.GET("/meal_sets/:id", controllers.GetMealSet)
		api.POST("/meal_sets/:id/takeout", controllers.TakeOutMealSet)

		api.GET("/inventory", controllers.ListInventory)
		api.POST("/inventory", controllers.CreateInventoryItem)
		api.POST("/inventory/takeout", controllers.TakeOutInventory)

		api.GET("/containers", controllers.ListContainers)
		api.POST("/containers", controllers.CreateContainer)
		api.PATCH("/containers/:id", controllers.UpdateContainer)

		api.GET("/item-type-defaults", controllers.ListItemTypeDefaults)
		api.GET("/storage-standards", controllers.ListStorageStandards)

		api.GET("/sets", controllers.ListSets)
		api.POST("/sets", controllers.CreateSet)
		api.GET("/sets/:id", controllers.GetSet)
		api.PATCH("/sets/:id", controllers.UpdateSet)
		api.POST("/sets/:id/boxes", controllers.AddSetBoxes)

		api.GET("/recipes", controllers.ListRecipes)
		api.POST("/recipes", controllers.CreateRecipe)
		api.GET("/recipes/:id", controllers.GetRecipe)
		api.PATCH("/recipes/:id", controllers.UpdateRecipe)
	}

	rc := controllers.NewRealtimeController(hub)
	r.GET("/ws/events", rc.EventsWS)

	return r
}
