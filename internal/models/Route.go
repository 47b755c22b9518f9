package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Route is the unit of read-modify-write: its stops are owned by value and the
// whole record is rewritten on every stop mutation.
type Route struct {
	gorm.Model

	Name string `json:"name" binding:"required"`

	// Ordered stops, persisted as a single JSON document so the route record
	// stays the aggregate boundary.
	Pins Pins `json:"pins" gorm:"type:text"`
}

// StockAllocation records inventory moved from the catalogue onto a stop.
type StockAllocation struct {
	ItemID uint   `json:"item_id"`
	Name   string `json:"name"`
	Qty    int    `json:"qty"`
}

// Stop is a delivery location within a route. Its identity is its position in
// Route.Pins; it has no record id of its own.
type Stop struct {
	Name          string            `json:"name"`
	Address       string            `json:"address"`
	Lat           float64           `json:"lat"`
	Lng           float64           `json:"lng"`
	Notes         string            `json:"notes"`
	Completed     bool              `json:"completed"`
	Arrived       bool              `json:"arrived"`
	ArrivalTime   *time.Time        `json:"arrival_time,omitempty"`
	DepartureTime *time.Time        `json:"departure_time,omitempty"`
	HonorBoxCash  float64           `json:"honor_box_cash"`
	SlotsSold     float64           `json:"slots_sold"`
	Revenue       float64           `json:"revenue"`
	Photo         []byte            `json:"photo,omitempty"`
	StockAssigned []StockAllocation `json:"stock_assigned"`
}

// Pins serializes the stop list into one column.
type Pins []Stop

func (p Pins) Value() (driver.Value, error) {
	if p == nil {
		p = Pins{}
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (p *Pins) Scan(value interface{}) error {
	if value == nil {
		*p = Pins{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return errors.New("unsupported column type for pins")
	}
}
