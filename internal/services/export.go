package services

import (
	"time"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"

	"dispatch_tracker/internal/models"
	"dispatch_tracker/internal/store"
)

// Snapshot is a one-shot JSON dump of every collection, for manual backup.
// There is no restore path.
type Snapshot struct {
	SchemaVersion int                    `json:"schema_version"`
	ExportedAt    time.Time              `json:"exported_at"`
	Routes        []models.Route         `json:"routes"`
	Inventory     []models.Item          `json:"inventory"`
	Users         []models.User          `json:"users"`
	Finance       []models.FinanceRecord `json:"finance"`
	Gas           []models.GasRecord     `json:"gas"`
}

type Exporter struct {
	store *store.Store
}

func NewExporter(st *store.Store) *Exporter {
	return &Exporter{store: st}
}

func (e *Exporter) Snapshot() (*Snapshot, error) {
	version, err := e.store.StoredSchemaVersion()
	if err != nil {
		return nil, storef("read schema version", err)
	}
	routes, err := store.GetAll[models.Route](e.store)
	if err != nil {
		return nil, storef("dump routes", err)
	}
	items, err := store.GetAll[models.Item](e.store)
	if err != nil {
		return nil, storef("dump inventory", err)
	}
	users, err := store.GetAll[models.User](e.store)
	if err != nil {
		return nil, storef("dump users", err)
	}
	finance, err := store.GetAll[models.FinanceRecord](e.store)
	if err != nil {
		return nil, storef("dump finance", err)
	}
	gas, err := store.GetAll[models.GasRecord](e.store)
	if err != nil {
		return nil, storef("dump gas", err)
	}

	return &Snapshot{
		SchemaVersion: version,
		ExportedAt:    time.Now(),
		Routes:        routes,
		Inventory:     items,
		Users:         users,
		Finance:       finance,
		Gas:           gas,
	}, nil
}

// RouteGeometry renders a route's stop sequence as a GeoJSON LineString for
// the map collaborator. Stops without coordinates are skipped; fewer than two
// located stops yield an empty string.
func RouteGeometry(route *models.Route) (string, error) {
	coords := make([]geom.Coord, 0, len(route.Pins))
	for _, p := range route.Pins {
		if p.Lat == 0 && p.Lng == 0 {
			continue
		}
		coords = append(coords, geom.Coord{p.Lng, p.Lat})
	}
	if len(coords) < 2 {
		return "", nil
	}
	line := geom.NewLineString(geom.XY)
	if _, err := line.SetCoords(coords); err != nil {
		return "", err
	}
	b, err := gjson.Marshal(line)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
