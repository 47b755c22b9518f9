package routes

import (
	"github.com/gin-gonic/gin"

	"dispatch_tracker/internal/controllers"
	"dispatch_tracker/internal/middleware"
)

func FinanceRoutes(r *gin.Engine, fc *controllers.FinanceController) {
	finance := r.Group("/finance")
	finance.Use(middleware.RequireAuth())
	{
		finance.GET("", fc.ListFinance)
		finance.POST("", fc.RecordFinance)
	}

	gas := r.Group("/gas")
	gas.Use(middleware.RequireAuth())
	{
		gas.GET("", fc.ListGas)
		gas.POST("", fc.RecordGas)
	}
}
