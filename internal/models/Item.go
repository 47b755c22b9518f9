package models

import (
	"gorm.io/gorm"
)

// Item is a catalogue entry in the inventory collection.
// Quantity never goes negative; only the inventory ledger mutates it.
type Item struct {
	gorm.Model

	Name        string  `json:"name" binding:"required"`
	Quantity    int     `json:"quantity"`
	Cost        float64 `json:"cost"`
	PriceSingle float64 `json:"price_single"`
	PriceBundle float64 `json:"price_bundle"`
}
