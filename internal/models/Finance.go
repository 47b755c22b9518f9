package models

import (
	"time"

	"gorm.io/gorm"
)

// FinanceRecord is an append-only money entry. RouteName is a snapshot of the
// route's name at recording time; later renames do not touch it.
type FinanceRecord struct {
	gorm.Model
	RouteID   uint      `json:"route_id" gorm:"index"`
	RouteName string    `json:"route"`
	Total     float64   `json:"total"`
	Date      time.Time `json:"date"`
	Notes     string    `json:"notes"`
}

// GasRecord is an append-only fuel entry.
type GasRecord struct {
	gorm.Model
	Amount float64   `json:"amount"`
	Miles  float64   `json:"miles"`
	Date   time.Time `json:"date"`
}
