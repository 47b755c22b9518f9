package services

import (
	"errors"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"dispatch_tracker/internal/models"
	"dispatch_tracker/internal/store"
)

// RouteRepository owns the Route aggregate. Every mutation re-reads the route,
// changes it in memory and writes the whole record back, serialized per route
// id so concurrent callers can never lose each other's updates.
type RouteRepository struct {
	store *store.Store
}

func NewRouteRepository(st *store.Store) *RouteRepository {
	return &RouteRepository{store: st}
}

func (r *RouteRepository) CreateRoute(name string) (*models.Route, error) {
	if name == "" {
		return nil, validationf("route name is required")
	}
	route := models.Route{Name: name, Pins: models.Pins{}}
	if err := store.Add(r.store, &route); err != nil {
		return nil, storef("create route", err)
	}
	return &route, nil
}

func (r *RouteRepository) ListRoutes() ([]models.Route, error) {
	routes, err := store.GetAll[models.Route](r.store)
	if err != nil {
		return nil, storef("list routes", err)
	}
	return routes, nil
}

func (r *RouteRepository) GetRoute(routeID uint) (*models.Route, error) {
	route, err := store.Get[models.Route](r.store, routeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("route %d", routeID)
	}
	if err != nil {
		return nil, storef("load route", err)
	}
	return route, nil
}

// mutate runs fn on a freshly loaded route under the route's lock and writes
// the record back when fn reports a change.
func (r *RouteRepository) mutate(routeID uint, fn func(route *models.Route) (bool, error)) (*models.Route, error) {
	var result *models.Route
	err := r.store.WithRouteLock(routeID, func() error {
		route, err := store.Get[models.Route](r.store, routeID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("route %d", routeID)
		}
		if err != nil {
			return storef("load route", err)
		}
		dirty, err := fn(route)
		if err != nil {
			return err
		}
		if dirty {
			if err := store.Update(r.store, route); err != nil {
				return storef("save route", err)
			}
		}
		result = route
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func stopAt(route *models.Route, index int) (*models.Stop, error) {
	if index < 0 || index >= len(route.Pins) {
		return nil, validationf("stop index %d out of range for route %q", index, route.Name)
	}
	return &route.Pins[index], nil
}

// AddStop appends a stop with all lifecycle fields zeroed. When no coordinates
// are supplied the offline geocode table is consulted by stop name.
func (r *RouteRepository) AddStop(routeID uint, name, address string, lat, lng float64, notes string) (*models.Route, error) {
	if name == "" {
		return nil, validationf("stop name is required")
	}
	if lat == 0 && lng == 0 {
		if pos, ok := LookupCoordinates(name); ok {
			lat, lng = pos.Lat, pos.Lng
		}
	}
	return r.mutate(routeID, func(route *models.Route) (bool, error) {
		route.Pins = append(route.Pins, models.Stop{
			Name:          name,
			Address:       address,
			Lat:           lat,
			Lng:           lng,
			Notes:         notes,
			StockAssigned: []models.StockAllocation{},
		})
		return true, nil
	})
}

// DeleteStop removes the stop at index. Stock already distributed to the stop
// is not returned to the catalogue.
func (r *RouteRepository) DeleteStop(routeID uint, index int) (*models.Route, error) {
	return r.mutate(routeID, func(route *models.Route) (bool, error) {
		if _, err := stopAt(route, index); err != nil {
			return false, err
		}
		route.Pins = append(route.Pins[:index], route.Pins[index+1:]...)
		return true, nil
	})
}

// Reorder swaps the stop at index with its neighbour in the given direction
// (-1 or +1). A neighbour outside the list is a no-op, not an error.
func (r *RouteRepository) Reorder(routeID uint, index, direction int) (*models.Route, error) {
	if direction != -1 && direction != 1 {
		return nil, validationf("direction must be -1 or +1")
	}
	return r.mutate(routeID, func(route *models.Route) (bool, error) {
		if _, err := stopAt(route, index); err != nil {
			return false, err
		}
		target := index + direction
		if target < 0 || target >= len(route.Pins) {
			return false, nil
		}
		route.Pins[index], route.Pins[target] = route.Pins[target], route.Pins[index]
		return true, nil
	})
}

// Optimize reorders the stops by a greedy nearest-neighbour walk from the
// current first stop. Heuristic only; ties keep their original order.
func (r *RouteRepository) Optimize(routeID uint) (*models.Route, error) {
	return r.mutate(routeID, func(route *models.Route) (bool, error) {
		if len(route.Pins) < 3 {
			return false, nil
		}
		ordered := make(models.Pins, 0, len(route.Pins))
		remaining := make(models.Pins, len(route.Pins))
		copy(remaining, route.Pins)

		ordered = append(ordered, remaining[0])
		remaining = remaining[1:]

		for len(remaining) > 0 {
			last := ordered[len(ordered)-1]
			best := 0
			bestDist := haversineMiles(last.Lat, last.Lng, remaining[0].Lat, remaining[0].Lng)
			for i := 1; i < len(remaining); i++ {
				d := haversineMiles(last.Lat, last.Lng, remaining[i].Lat, remaining[i].Lng)
				if d < bestDist {
					best = i
					bestDist = d
				}
			}
			ordered = append(ordered, remaining[best])
			remaining = append(remaining[:best], remaining[best+1:]...)
		}

		route.Pins = ordered
		return true, nil
	})
}

// SetArrival stamps the stop's arrival time if it is not already set. The
// second return reports whether this call did the stamping, so the geofence
// can notify exactly once.
func (r *RouteRepository) SetArrival(routeID uint, index int) (*models.Route, bool, error) {
	arrived := false
	route, err := r.mutate(routeID, func(route *models.Route) (bool, error) {
		stop, err := stopAt(route, index)
		if err != nil {
			return false, err
		}
		if stop.ArrivalTime != nil {
			return false, nil
		}
		now := time.Now()
		stop.ArrivalTime = &now
		stop.Arrived = true
		arrived = true
		return true, nil
	})
	if err != nil {
		return nil, false, err
	}
	if arrived {
		logrus.WithFields(logrus.Fields{
			"route_id":   routeID,
			"stop_index": index,
		}).Info("Stop marked as arrived")
	}
	return route, arrived, nil
}

// SetCompletion transitions the stop's completed flag. Completing requires a
// prior arrival and an attached photo and stamps the departure time.
// Un-completing is unconditional and leaves departure time and arrival intact.
func (r *RouteRepository) SetCompletion(routeID uint, index int, completed bool) (*models.Route, error) {
	return r.mutate(routeID, func(route *models.Route) (bool, error) {
		stop, err := stopAt(route, index)
		if err != nil {
			return false, err
		}
		if !completed {
			stop.Completed = false
			return true, nil
		}
		if !stop.Arrived {
			return false, preconditionf("must arrive first")
		}
		if stop.Photo == nil {
			return false, preconditionf("photo required")
		}
		now := time.Now()
		stop.Completed = true
		stop.DepartureTime = &now
		return true, nil
	})
}

// UpdateMoney sets the money fields and recomputes revenue. No other path
// writes revenue.
func (r *RouteRepository) UpdateMoney(routeID uint, index int, honorBoxCash, slotsSold float64) (*models.Route, error) {
	if !isFinite(honorBoxCash) || !isFinite(slotsSold) {
		return nil, validationf("money amounts must be finite numbers")
	}
	return r.mutate(routeID, func(route *models.Route) (bool, error) {
		stop, err := stopAt(route, index)
		if err != nil {
			return false, err
		}
		stop.HonorBoxCash = honorBoxCash
		stop.SlotsSold = slotsSold
		stop.Revenue = honorBoxCash + slotsSold
		return true, nil
	})
}

// AttachPhoto stores the on-site proof photo used by the completion rule.
func (r *RouteRepository) AttachPhoto(routeID uint, index int, photo []byte) (*models.Route, error) {
	if len(photo) == 0 {
		return nil, validationf("photo is empty")
	}
	return r.mutate(routeID, func(route *models.Route) (bool, error) {
		stop, err := stopAt(route, index)
		if err != nil {
			return false, err
		}
		stop.Photo = photo
		return true, nil
	})
}

// UpdateNotes replaces the free-form notes on a stop.
func (r *RouteRepository) UpdateNotes(routeID uint, index int, notes string) (*models.Route, error) {
	return r.mutate(routeID, func(route *models.Route) (bool, error) {
		stop, err := stopAt(route, index)
		if err != nil {
			return false, err
		}
		stop.Notes = notes
		return true, nil
	})
}

// earthRadiusMiles matches the radius the arrival geofence is defined against.
const earthRadiusMiles = 3958.8

// haversineMiles computes the great-circle distance between two points.
func haversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMiles * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
