package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"dispatch_tracker/internal/services"
)

type RouteController struct {
	routes *services.RouteRepository
}

func NewRouteController(routes *services.RouteRepository) *RouteController {
	return &RouteController{routes: routes}
}

func (rc *RouteController) ListRoutes(c *gin.Context) {
	routes, err := rc.routes.ListRoutes()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes})
}

func (rc *RouteController) CreateRoute(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		logrus.WithError(err).Warn("CreateRoute: invalid input payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	route, err := rc.routes.CreateRoute(input.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"route": route})
}

func (rc *RouteController) GetRoute(c *gin.Context) {
	routeID, ok := routeIDParam(c)
	if !ok {
		return
	}
	route, err := rc.routes.GetRoute(routeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

// GetGeometry renders the route's stop sequence as a GeoJSON LineString for
// the map collaborator.
func (rc *RouteController) GetGeometry(c *gin.Context) {
	routeID, ok := routeIDParam(c)
	if !ok {
		return
	}
	route, err := rc.routes.GetRoute(routeID)
	if err != nil {
		respondError(c, err)
		return
	}
	geometry, err := services.RouteGeometry(route)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"geometry": geometry})
}

func (rc *RouteController) AddStop(c *gin.Context) {
	routeID, ok := routeIDParam(c)
	if !ok {
		return
	}
	var input struct {
		Name    string  `json:"name" binding:"required"`
		Address string  `json:"address"`
		Lat     float64 `json:"lat"`
		Lng     float64 `json:"lng"`
		Notes   string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route, err := rc.routes.AddStop(routeID, input.Name, input.Address, input.Lat, input.Lng, input.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"route": route})
}

func (rc *RouteController) DeleteStop(c *gin.Context) {
	routeID, ok := routeIDParam(c)
	if !ok {
		return
	}
	index, ok := stopIndexParam(c)
	if !ok {
		return
	}
	route, err := rc.routes.DeleteStop(routeID, index)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

func (rc *RouteController) ReorderStop(c *gin.Context) {
	routeID, ok := routeIDParam(c)
	if !ok {
		return
	}
	index, ok := stopIndexParam(c)
	if !ok {
		return
	}
	var input struct {
		Direction int `json:"direction" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route, err := rc.routes.Reorder(routeID, index, input.Direction)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

func (rc *RouteController) OptimizeRoute(c *gin.Context) {
	routeID, ok := routeIDParam(c)
	if !ok {
		return
	}
	route, err := rc.routes.Optimize(routeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

func (rc *RouteController) ArriveStop(c *gin.Context) {
	routeID, ok := routeIDParam(c)
	if !ok {
		return
	}
	index, ok := stopIndexParam(c)
	if !ok {
		return
	}
	route, newlyArrived, err := rc.routes.SetArrival(routeID, index)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route, "newly_arrived": newlyArrived})
}

func (rc *RouteController) SetCompletion(c *gin.Context) {
	routeID, ok := routeIDParam(c)
	if !ok {
		return
	}
	index, ok := stopIndexParam(c)
	if !ok {
		return
	}
	var input struct {
		Completed *bool `json:"completed" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route, err := rc.routes.SetCompletion(routeID, index, *input.Completed)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

func (rc *RouteController) UpdateMoney(c *gin.Context) {
	routeID, ok := routeIDParam(c)
	if !ok {
		return
	}
	index, ok := stopIndexParam(c)
	if !ok {
		return
	}
	var input struct {
		HonorBoxCash float64 `json:"honor_box_cash"`
		SlotsSold    float64 `json:"slots_sold"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route, err := rc.routes.UpdateMoney(routeID, index, input.HonorBoxCash, input.SlotsSold)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

// AttachPhoto stores the stop's proof photo. The blob arrives base64-encoded
// in the JSON body, as produced by the client's file picker.
func (rc *RouteController) AttachPhoto(c *gin.Context) {
	routeID, ok := routeIDParam(c)
	if !ok {
		return
	}
	index, ok := stopIndexParam(c)
	if !ok {
		return
	}
	var input struct {
		Photo []byte `json:"photo" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route, err := rc.routes.AttachPhoto(routeID, index, input.Photo)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}

func (rc *RouteController) UpdateNotes(c *gin.Context) {
	routeID, ok := routeIDParam(c)
	if !ok {
		return
	}
	index, ok := stopIndexParam(c)
	if !ok {
		return
	}
	var input struct {
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route, err := rc.routes.UpdateNotes(routeID, index, input.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route})
}
