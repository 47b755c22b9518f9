package store

import (
	"path/filepath"
	"testing"

	"dispatch_tracker/internal/models"
)

func TestSeedDefaultsPopulatesEmptyStore(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "dispatch.db"))
	defer st.Close()

	if err := st.SeedDefaults(); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}

	users, err := GetAll[models.User](st)
	if err != nil {
		t.Fatalf("GetAll users: %v", err)
	}
	if len(users) != 1 || users[0].Username != "admin" || users[0].Role != "admin" {
		t.Fatalf("unexpected seeded users: %+v", users)
	}

	items, err := GetAll[models.Item](st)
	if err != nil {
		t.Fatalf("GetAll items: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("seeded %d items, want 3", len(items))
	}

	routes, err := GetAll[models.Route](st)
	if err != nil {
		t.Fatalf("GetAll routes: %v", err)
	}
	if len(routes) != len(defaultRouteNames) {
		t.Fatalf("seeded %d routes, want %d", len(routes), len(defaultRouteNames))
	}
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "dispatch.db"))
	defer st.Close()

	if err := st.SeedDefaults(); err != nil {
		t.Fatalf("first SeedDefaults: %v", err)
	}
	if err := st.SeedDefaults(); err != nil {
		t.Fatalf("second SeedDefaults: %v", err)
	}

	routes, err := GetAll[models.Route](st)
	if err != nil {
		t.Fatalf("GetAll routes: %v", err)
	}
	if len(routes) != len(defaultRouteNames) {
		t.Fatalf("re-seeding duplicated routes: got %d", len(routes))
	}
}

func TestSeedDefaultsLeavesExistingDataAlone(t *testing.T) {
	st := openTestStore(t, filepath.Join(t.TempDir(), "dispatch.db"))
	defer st.Close()

	custom := models.Route{Name: "Custom Run", Pins: models.Pins{}}
	if err := Add(st, &custom); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := st.SeedDefaults(); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}

	routes, err := GetAll[models.Route](st)
	if err != nil {
		t.Fatalf("GetAll routes: %v", err)
	}
	if len(routes) != 1 || routes[0].Name != "Custom Run" {
		t.Fatalf("seeding touched a non-empty routes collection: %+v", routes)
	}
}
