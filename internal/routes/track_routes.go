package routes

import (
	"github.com/gin-gonic/gin"

	"dispatch_tracker/internal/controllers"
)

func TrackRoutes(r *gin.Engine, tc *controllers.TrackController) {
	ws := r.Group("/ws")
	{
		ws.GET("/track", tc.HandleTrackSocket)
	}
}
