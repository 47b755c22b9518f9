package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"dispatch_tracker/internal/controllers"
	"dispatch_tracker/internal/services"
	"dispatch_tracker/internal/store"
)

// SetupRouter wires services and controllers around the injected store handle
// and registers every route group.
func SetupRouter(st *store.Store) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger())

	routeRepo := services.NewRouteRepository(st)
	inventory := services.NewInventoryLedger(st)
	finance := services.NewFinanceLedger(st, routeRepo)
	fuel := services.NewFuelLedger(st)
	auth := services.NewAuthService(st)
	exporter := services.NewExporter(st)
	geofence := services.NewGeofenceTracker(routeRepo)

	authCtrl := controllers.NewAuthController(auth)
	routeCtrl := controllers.NewRouteController(routeRepo)
	invCtrl := controllers.NewInventoryController(inventory)
	finCtrl := controllers.NewFinanceController(finance, fuel)
	exportCtrl := controllers.NewExportController(exporter)
	trackCtrl := controllers.NewTrackController(geofence)

	AuthRoutes(r, authCtrl)
	RouteRoutes(r, routeCtrl)
	InventoryRoutes(r, invCtrl)
	FinanceRoutes(r, finCtrl)
	AdminRoutes(r, authCtrl, exportCtrl)
	TrackRoutes(r, trackCtrl)

	return r
}
