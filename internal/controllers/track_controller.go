package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"dispatch_tracker/internal/middleware"
	"dispatch_tracker/internal/services"
)

// upgrader configures the WebSocket connection.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all for development (restrict in production!)
	},
}

// ArrivalHub fans arrival notifications out to monitoring clients. The UI not
// reading a notification never stalls geofence tracking: sends to the hub are
// buffered and broadcast asynchronously.
type ArrivalHub struct {
	clients   map[*websocket.Conn]bool
	broadcast chan services.ArrivalEvent
	mu        sync.Mutex
}

func NewArrivalHub() *ArrivalHub {
	hub := &ArrivalHub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan services.ArrivalEvent, 100),
	}
	go hub.run()
	return hub
}

func (h *ArrivalHub) run() {
	for event := range h.broadcast {
		h.mu.Lock()
		for conn := range h.clients {
			if err := conn.WriteJSON(gin.H{"type": "arrived", "event": event}); err != nil {
				logrus.WithError(err).WithField("conn_ptr", fmt.Sprintf("%p", conn)).
					Warn("Failed to send arrival notification, unregistering client")
				delete(h.clients, conn)
			}
		}
		h.mu.Unlock()
	}
}

func (h *ArrivalHub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
}

func (h *ArrivalHub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}

// Publish queues an arrival event for broadcast without blocking the caller.
func (h *ArrivalHub) Publish(event services.ArrivalEvent) {
	select {
	case h.broadcast <- event:
	default:
		logrus.Warn("Arrival broadcast channel full, dropping notification")
	}
}

// TrackController is the websocket boundary for live position tracking.
// Drivers stream position samples in; monitoring clients receive arrival
// notifications out.
type TrackController struct {
	geofence *services.GeofenceTracker
	hub      *ArrivalHub
}

func NewTrackController(geofence *services.GeofenceTracker) *TrackController {
	tc := &TrackController{
		geofence: geofence,
		hub:      NewArrivalHub(),
	}
	go tc.pumpEvents()
	return tc
}

// pumpEvents forwards geofence arrival events into the hub.
func (tc *TrackController) pumpEvents() {
	for event := range tc.geofence.Events() {
		tc.hub.Publish(event)
	}
}

// HandleTrackSocket authenticates the client via a token query parameter and
// delegates: drivers stream samples for a route, everyone else monitors.
func (tc *TrackController) HandleTrackSocket(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authentication token"})
		return
	}
	claims, err := middleware.ValidateToken(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var routeID uint
	if claims.Role == "driver" || claims.Role == "admin" {
		parsed, err := strconv.ParseUint(c.Query("route_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "driver connections require a route_id query parameter"})
			return
		}
		routeID = uint(parsed)
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Error("Failed to upgrade WebSocket connection")
		return
	}
	defer conn.Close()

	if claims.Role == "driver" || claims.Role == "admin" {
		tc.handleDriverSocket(conn, routeID)
	} else {
		tc.handleMonitorSocket(conn)
	}
}

// handleDriverSocket feeds incoming position samples to the geofence tracker
// for the driver's active route. Closing the socket cancels tracking; no
// arrival may trigger after that.
func (tc *TrackController) handleDriverSocket(conn *websocket.Conn, routeID uint) {
	logrus.WithField("route_id", routeID).Info("Driver tracking WebSocket established")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	samples := make(chan services.Position)
	done := make(chan error, 1)
	go func() {
		done <- tc.geofence.Track(ctx, routeID, samples)
	}()

	for {
		messageType, p, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithField("route_id", routeID).Info("Driver tracking WebSocket closed")
			} else {
				logrus.WithError(err).WithField("route_id", routeID).Error("Error reading tracking WebSocket message")
			}
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var pos services.Position
		if err := json.Unmarshal(p, &pos); err != nil {
			logrus.WithError(err).WithField("payload", string(p)).Error("Invalid position sample")
			conn.WriteJSON(gin.H{"error": "Invalid position sample format"})
			continue
		}

		select {
		case samples <- pos:
		case trackErr := <-done:
			tc.reportTrackError(conn, routeID, trackErr)
			return
		}
	}

	cancel()
	close(samples)
	if trackErr := <-done; trackErr != nil && !errors.Is(trackErr, context.Canceled) {
		tc.reportTrackError(conn, routeID, trackErr)
	}
}

func (tc *TrackController) reportTrackError(conn *websocket.Conn, routeID uint, err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	logrus.WithError(err).WithField("route_id", routeID).Error("Geofence tracking stopped")
	conn.WriteJSON(gin.H{"error": err.Error()})
}

// handleMonitorSocket registers a client for arrival notifications until it
// disconnects.
func (tc *TrackController) handleMonitorSocket(conn *websocket.Conn) {
	logrus.WithField("conn_ptr", fmt.Sprintf("%p", conn)).Info("Monitoring WebSocket established")

	tc.hub.Register(conn)
	defer tc.hub.Unregister(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.Info("Monitoring WebSocket closed")
			} else {
				logrus.WithError(err).Error("Error reading monitoring WebSocket message")
			}
			return
		}
	}
}
