package routes

import (
	"github.com/gin-gonic/gin"

	"dispatch_tracker/internal/controllers"
	"dispatch_tracker/internal/middleware"
)

func RouteRoutes(r *gin.Engine, rc *controllers.RouteController) {
	routes := r.Group("/routes")
	routes.Use(middleware.RequireAuth())
	{
		routes.GET("", rc.ListRoutes)
		routes.POST("", rc.CreateRoute)
		routes.GET("/:id", rc.GetRoute)
		routes.GET("/:id/geometry", rc.GetGeometry)
		routes.POST("/:id/optimize", rc.OptimizeRoute)
		routes.POST("/:id/stops", rc.AddStop)
		routes.DELETE("/:id/stops/:index", rc.DeleteStop)
		routes.POST("/:id/stops/:index/reorder", rc.ReorderStop)
		routes.POST("/:id/stops/:index/arrive", rc.ArriveStop)
		routes.PUT("/:id/stops/:index/completion", rc.SetCompletion)
		routes.PUT("/:id/stops/:index/money", rc.UpdateMoney)
		routes.PUT("/:id/stops/:index/photo", rc.AttachPhoto)
		routes.PUT("/:id/stops/:index/notes", rc.UpdateNotes)
	}
}
