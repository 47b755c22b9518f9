package routes

import (
	"github.com/gin-gonic/gin"

	"dispatch_tracker/internal/controllers"
	"dispatch_tracker/internal/middleware"
)

func AdminRoutes(r *gin.Engine, ac *controllers.AuthController, ec *controllers.ExportController) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAuthWithRole("admin"))
	{
		admin.GET("/users", ac.ListUsers)
		admin.GET("/export", ec.Export)
	}
}
