package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// ArrivalRadiusMiles is the geofence threshold for auto-detecting arrival.
const ArrivalRadiusMiles = 0.03

// Position is one sample from the external geolocation stream.
type Position struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Timestamp time.Time `json:"timestamp"`
}

// ArrivalEvent is emitted once when a stop is first detected as reached.
type ArrivalEvent struct {
	RouteID   uint      `json:"route_id"`
	StopIndex int       `json:"stop_index"`
	StopName  string    `json:"stop_name"`
	At        time.Time `json:"at"`
}

// GeofenceTracker watches a stream of position samples for the active route
// and flags stops as arrived when a sample lands inside the geofence.
// SetArrival's set-once rule guarantees a stop triggers at most once even
// across restarts; events are delivered without blocking the tracking loop.
type GeofenceTracker struct {
	routes *RouteRepository
	events chan ArrivalEvent
}

func NewGeofenceTracker(routes *RouteRepository) *GeofenceTracker {
	return &GeofenceTracker{
		routes: routes,
		events: make(chan ArrivalEvent, 32),
	}
}

// Events delivers arrival notifications for the UI collaborator. Tracking
// continues whether or not anyone reads them.
func (g *GeofenceTracker) Events() <-chan ArrivalEvent {
	return g.events
}

// Track consumes samples until the channel closes or ctx is cancelled.
// Cancellation halts arrival triggering immediately, including for a sample
// already being processed.
func (g *GeofenceTracker) Track(ctx context.Context, routeID uint, samples <-chan Position) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case pos, ok := <-samples:
			if !ok {
				return nil
			}
			if err := g.handleSample(ctx, routeID, pos); err != nil {
				return err
			}
		}
	}
}

func (g *GeofenceTracker) handleSample(ctx context.Context, routeID uint, pos Position) error {
	route, err := g.routes.GetRoute(routeID)
	if err != nil {
		return err
	}

	for i, stop := range route.Pins {
		if stop.ArrivalTime != nil {
			continue
		}
		if stop.Lat == 0 && stop.Lng == 0 {
			continue
		}
		if haversineMiles(pos.Lat, pos.Lng, stop.Lat, stop.Lng) >= ArrivalRadiusMiles {
			continue
		}

		// A cancelled tracker must not fire even mid-sample.
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, newlyArrived, err := g.routes.SetArrival(routeID, i)
		if err != nil {
			return err
		}
		if !newlyArrived {
			continue
		}

		event := ArrivalEvent{
			RouteID:   routeID,
			StopIndex: i,
			StopName:  stop.Name,
			At:        time.Now(),
		}
		select {
		case g.events <- event:
		default:
			logrus.WithFields(logrus.Fields{
				"route_id":  routeID,
				"stop_name": stop.Name,
			}).Warn("Arrival event channel full, dropping notification")
		}
	}
	return nil
}
