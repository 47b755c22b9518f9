package services

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func TestCreateRouteRequiresName(t *testing.T) {
	repo := NewRouteRepository(newTestStore(t))
	if _, err := repo.CreateRoute(""); !errors.Is(err, ErrValidation) {
		t.Fatalf("CreateRoute(\"\") error = %v, want ErrValidation", err)
	}
}

func TestAddStopZeroesLifecycleFields(t *testing.T) {
	repo := NewRouteRepository(newTestStore(t))
	route := newRouteWithStops(t, repo, "R", [2]float64{30.5, -90.1})

	stop := route.Pins[0]
	if stop.Completed || stop.Arrived || stop.ArrivalTime != nil || stop.DepartureTime != nil {
		t.Fatalf("new stop has non-zero lifecycle fields: %+v", stop)
	}
	if stop.Revenue != 0 || stop.Photo != nil || len(stop.StockAssigned) != 0 {
		t.Fatalf("new stop not zeroed: %+v", stop)
	}
}

func TestAddStopResolvesOfflineCoordinates(t *testing.T) {
	repo := NewRouteRepository(newTestStore(t))
	route, err := repo.CreateRoute("R")
	if err != nil {
		t.Fatalf("CreateRoute: %v", err)
	}

	got, err := repo.AddStop(route.ID, "Covington A", "", 0, 0, "")
	if err != nil {
		t.Fatalf("AddStop: %v", err)
	}
	stop := got.Pins[0]
	if stop.Lat == 0 && stop.Lng == 0 {
		t.Fatal("stop name in the offline geocode table should resolve coordinates")
	}
}

func TestAddStopToMissingRoute(t *testing.T) {
	repo := NewRouteRepository(newTestStore(t))
	if _, err := repo.AddStop(999, "S", "", 0, 0, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("AddStop to missing route error = %v, want ErrNotFound", err)
	}
}

func TestReorderBoundariesAreNoOps(t *testing.T) {
	repo := NewRouteRepository(newTestStore(t))
	route := newRouteWithStops(t, repo, "R",
		[2]float64{1, 1}, [2]float64{2, 2}, [2]float64{3, 3})
	original := stopNames(route)

	got, err := repo.Reorder(route.ID, 0, -1)
	if err != nil {
		t.Fatalf("Reorder(0,-1): %v", err)
	}
	if !sameNames(stopNames(got), original) {
		t.Fatalf("Reorder(0,-1) changed order: %v", stopNames(got))
	}

	got, err = repo.Reorder(route.ID, len(original)-1, 1)
	if err != nil {
		t.Fatalf("Reorder(last,+1): %v", err)
	}
	if !sameNames(stopNames(got), original) {
		t.Fatalf("Reorder(last,+1) changed order: %v", stopNames(got))
	}
}

func TestReorderRoundTripRestoresOrder(t *testing.T) {
	repo := NewRouteRepository(newTestStore(t))
	route := newRouteWithStops(t, repo, "R",
		[2]float64{1, 1}, [2]float64{2, 2}, [2]float64{3, 3})
	original := stopNames(route)

	if _, err := repo.Reorder(route.ID, 0, 1); err != nil {
		t.Fatalf("Reorder(0,+1): %v", err)
	}
	got, err := repo.Reorder(route.ID, 1, -1)
	if err != nil {
		t.Fatalf("Reorder(1,-1): %v", err)
	}
	if !sameNames(stopNames(got), original) {
		t.Fatalf("round trip did not restore order: %v", stopNames(got))
	}
}

func TestReorderRejectsBadDirection(t *testing.T) {
	repo := NewRouteRepository(newTestStore(t))
	route := newRouteWithStops(t, repo, "R", [2]float64{1, 1}, [2]float64{2, 2})

	if _, err := repo.Reorder(route.ID, 0, 2); !errors.Is(err, ErrValidation) {
		t.Fatalf("Reorder direction 2 error = %v, want ErrValidation", err)
	}
}

func TestOptimizeGreedyNearestNeighbour(t *testing.T) {
	repo := NewRouteRepository(newTestStore(t))
	// Stops at (0,0), (0,2), (0,1): the greedy walk from (0,0) must visit
	// (0,1) before (0,2).
	route := newRouteWithStops(t, repo, "R",
		[2]float64{0, 0}, [2]float64{0, 2}, [2]float64{0, 1})

	got, err := repo.Optimize(route.ID)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	want := []string{"R-A", "R-C", "R-B"}
	if !sameNames(stopNames(got), want) {
		t.Fatalf("optimized order = %v, want %v", stopNames(got), want)
	}
}

func TestSetArrivalIsIdempotent(t *testing.T) {
	repo := NewRouteRepository(newTestStore(t))
	route := newRouteWithStops(t, repo, "R", [2]float64{1, 1})

	first, newly, err := repo.SetArrival(route.ID, 0)
	if err != nil {
		t.Fatalf("SetArrival: %v", err)
	}
	if !newly || first.Pins[0].ArrivalTime == nil {
		t.Fatal("first SetArrival should stamp arrival time")
	}
	stamped := *first.Pins[0].ArrivalTime

	second, newly, err := repo.SetArrival(route.ID, 0)
	if err != nil {
		t.Fatalf("second SetArrival: %v", err)
	}
	if newly {
		t.Fatal("second SetArrival reported a new arrival")
	}
	if !second.Pins[0].ArrivalTime.Equal(stamped) {
		t.Fatalf("arrival time changed: %v -> %v", stamped, second.Pins[0].ArrivalTime)
	}
}

func TestCompletionRequiresArrivalAndPhoto(t *testing.T) {
	repo := NewRouteRepository(newTestStore(t))
	route := newRouteWithStops(t, repo, "R", [2]float64{1, 1})

	if _, err := repo.SetCompletion(route.ID, 0, true); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("completion before arrival error = %v, want ErrPrecondition", err)
	}

	if _, _, err := repo.SetArrival(route.ID, 0); err != nil {
		t.Fatalf("SetArrival: %v", err)
	}
	if _, err := repo.SetCompletion(route.ID, 0, true); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("completion without photo error = %v, want ErrPrecondition", err)
	}

	if _, err := repo.AttachPhoto(route.ID, 0, []byte("jpeg-bytes")); err != nil {
		t.Fatalf("AttachPhoto: %v", err)
	}
	got, err := repo.SetCompletion(route.ID, 0, true)
	if err != nil {
		t.Fatalf("SetCompletion: %v", err)
	}
	if !got.Pins[0].Completed || got.Pins[0].DepartureTime == nil {
		t.Fatalf("completion did not stamp departure: %+v", got.Pins[0])
	}
}

func TestUncompleteKeepsDepartureAndArrival(t *testing.T) {
	repo := NewRouteRepository(newTestStore(t))
	route := newRouteWithStops(t, repo, "R", [2]float64{1, 1})

	if _, _, err := repo.SetArrival(route.ID, 0); err != nil {
		t.Fatalf("SetArrival: %v", err)
	}
	if _, err := repo.AttachPhoto(route.ID, 0, []byte("jpeg-bytes")); err != nil {
		t.Fatalf("AttachPhoto: %v", err)
	}
	if _, err := repo.SetCompletion(route.ID, 0, true); err != nil {
		t.Fatalf("SetCompletion(true): %v", err)
	}

	got, err := repo.SetCompletion(route.ID, 0, false)
	if err != nil {
		t.Fatalf("SetCompletion(false): %v", err)
	}
	stop := got.Pins[0]
	if stop.Completed {
		t.Fatal("stop still completed after uncheck")
	}
	if stop.DepartureTime == nil || !stop.Arrived {
		t.Fatalf("uncompleting cleared departure or arrival: %+v", stop)
	}
}

func TestUpdateMoneyRecomputesRevenue(t *testing.T) {
	repo := NewRouteRepository(newTestStore(t))
	route := newRouteWithStops(t, repo, "R", [2]float64{1, 1})

	got, err := repo.UpdateMoney(route.ID, 0, 12.5, 7.25)
	if err != nil {
		t.Fatalf("UpdateMoney: %v", err)
	}
	if got.Pins[0].Revenue != 19.75 {
		t.Fatalf("revenue = %v, want 19.75", got.Pins[0].Revenue)
	}
}

func TestUpdateMoneyRejectsNonFinite(t *testing.T) {
	repo := NewRouteRepository(newTestStore(t))
	route := newRouteWithStops(t, repo, "R", [2]float64{1, 1})

	if _, err := repo.UpdateMoney(route.ID, 0, math.NaN(), 1); !errors.Is(err, ErrValidation) {
		t.Fatalf("UpdateMoney(NaN) error = %v, want ErrValidation", err)
	}
}

func TestDeleteStopRemovesByIndex(t *testing.T) {
	repo := NewRouteRepository(newTestStore(t))
	route := newRouteWithStops(t, repo, "R",
		[2]float64{1, 1}, [2]float64{2, 2}, [2]float64{3, 3})

	got, err := repo.DeleteStop(route.ID, 1)
	if err != nil {
		t.Fatalf("DeleteStop: %v", err)
	}
	want := []string{"R-A", "R-C"}
	if !sameNames(stopNames(got), want) {
		t.Fatalf("stops after delete = %v, want %v", stopNames(got), want)
	}

	if _, err := repo.DeleteStop(route.ID, 5); !errors.Is(err, ErrValidation) {
		t.Fatalf("DeleteStop out of range error = %v, want ErrValidation", err)
	}
}

func TestConcurrentAddStopKeepsBothStops(t *testing.T) {
	repo := NewRouteRepository(newTestStore(t))
	route, err := repo.CreateRoute("R")
	if err != nil {
		t.Fatalf("CreateRoute: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, name := range []string{"S1", "S2"} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			if _, err := repo.AddStop(route.ID, name, "", 1, 1, ""); err != nil {
				errs <- err
			}
		}(name)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent AddStop: %v", err)
	}

	got, err := repo.GetRoute(route.ID)
	if err != nil {
		t.Fatalf("GetRoute: %v", err)
	}
	if len(got.Pins) != 2 {
		t.Fatalf("lost update: route has %d stops, want 2", len(got.Pins))
	}
}
