package services

import (
	"encoding/json"
	"testing"

	"dispatch_tracker/internal/store"
)

func TestSnapshotCarriesAllCollections(t *testing.T) {
	st := newTestStore(t)
	repo := NewRouteRepository(st)
	inventory := NewInventoryLedger(st)
	finance := NewFinanceLedger(st, repo)
	fuel := NewFuelLedger(st)
	auth := NewAuthService(st)

	route := newRouteWithStops(t, repo, "R", [2]float64{1, 1})
	if _, err := inventory.CreateItem("Soda", 0.25, 1.5, 15, 10); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if _, err := finance.Record(route.ID, 20, ""); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := fuel.RecordGas(30, 100); err != nil {
		t.Fatalf("RecordGas: %v", err)
	}
	if _, err := auth.Register("mikey", "hunter2", "admin"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	snap, err := NewExporter(st).Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.SchemaVersion != store.SchemaVersion {
		t.Fatalf("schema version = %d, want %d", snap.SchemaVersion, store.SchemaVersion)
	}
	if snap.ExportedAt.IsZero() {
		t.Fatal("export timestamp not stamped")
	}
	if len(snap.Routes) != 1 || len(snap.Inventory) != 1 || len(snap.Users) != 1 {
		t.Fatalf("snapshot counts: routes=%d inventory=%d users=%d",
			len(snap.Routes), len(snap.Inventory), len(snap.Users))
	}
	if len(snap.Finance) != 1 || len(snap.Gas) != 1 {
		t.Fatalf("snapshot counts: finance=%d gas=%d", len(snap.Finance), len(snap.Gas))
	}

	b, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	var roundTrip map[string]json.RawMessage
	if err := json.Unmarshal(b, &roundTrip); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}
	for _, key := range []string{"schema_version", "routes", "inventory", "users", "finance", "gas"} {
		if _, ok := roundTrip[key]; !ok {
			t.Fatalf("snapshot JSON missing %q", key)
		}
	}
}

func TestRouteGeometryLineString(t *testing.T) {
	st := newTestStore(t)
	repo := NewRouteRepository(st)

	route := newRouteWithStops(t, repo, "R",
		[2]float64{30.47, -90.1}, [2]float64{0, 0}, [2]float64{30.5, -90.2})

	geometry, err := RouteGeometry(route)
	if err != nil {
		t.Fatalf("RouteGeometry: %v", err)
	}
	var parsed struct {
		Type        string      `json:"type"`
		Coordinates [][]float64 `json:"coordinates"`
	}
	if err := json.Unmarshal([]byte(geometry), &parsed); err != nil {
		t.Fatalf("geometry is not JSON: %v", err)
	}
	if parsed.Type != "LineString" {
		t.Fatalf("geometry type = %q, want LineString", parsed.Type)
	}
	if len(parsed.Coordinates) != 2 {
		t.Fatalf("coordinate count = %d, want 2 (unlocated stop skipped)", len(parsed.Coordinates))
	}
	// GeoJSON order is lng, lat.
	if parsed.Coordinates[0][0] != -90.1 || parsed.Coordinates[0][1] != 30.47 {
		t.Fatalf("first coordinate = %v", parsed.Coordinates[0])
	}
}

func TestRouteGeometryNeedsTwoLocatedStops(t *testing.T) {
	st := newTestStore(t)
	repo := NewRouteRepository(st)

	route := newRouteWithStops(t, repo, "R", [2]float64{30.47, -90.1})
	geometry, err := RouteGeometry(route)
	if err != nil {
		t.Fatalf("RouteGeometry: %v", err)
	}
	if geometry != "" {
		t.Fatalf("single-stop geometry = %q, want empty", geometry)
	}
}
