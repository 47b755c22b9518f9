package routes

import (
	"github.com/gin-gonic/gin"

	"dispatch_tracker/internal/controllers"
	"dispatch_tracker/internal/middleware"
)

func InventoryRoutes(r *gin.Engine, ic *controllers.InventoryController) {
	inventory := r.Group("/inventory")
	inventory.Use(middleware.RequireAuth())
	{
		inventory.GET("", ic.ListItems)
		inventory.POST("", ic.CreateItem)
		inventory.POST("/:id/restock", ic.Restock)
		inventory.PUT("/:id/quantity", ic.SetQuantity)
		inventory.POST("/distribute", ic.Distribute)
	}
}
