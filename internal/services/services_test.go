package services

import (
	"path/filepath"
	"testing"

	"dispatch_tracker/internal/models"
	"dispatch_tracker/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.OpenPath(filepath.Join(t.TempDir(), "dispatch.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("close test store: %v", err)
		}
	})
	return st
}

// newRouteWithStops creates a route and appends one stop per coordinate pair.
func newRouteWithStops(t *testing.T, repo *RouteRepository, name string, coords ...[2]float64) *models.Route {
	t.Helper()
	route, err := repo.CreateRoute(name)
	if err != nil {
		t.Fatalf("CreateRoute: %v", err)
	}
	for i, c := range coords {
		stopName := name + "-" + string(rune('A'+i))
		if _, err := repo.AddStop(route.ID, stopName, "", c[0], c[1], ""); err != nil {
			t.Fatalf("AddStop %d: %v", i, err)
		}
	}
	got, err := repo.GetRoute(route.ID)
	if err != nil {
		t.Fatalf("GetRoute: %v", err)
	}
	return got
}

func stopNames(route *models.Route) []string {
	names := make([]string, len(route.Pins))
	for i, p := range route.Pins {
		names[i] = p.Name
	}
	return names
}

func sameNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
