package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"dispatch_tracker/internal/models"
	"dispatch_tracker/internal/store"
)

// InventoryLedger owns item stock counts. All quantity mutations funnel
// through it, serialized by a single ledger mutex so a decrement can never
// act on a stale count.
type InventoryLedger struct {
	store *store.Store
	mu    sync.Mutex
}

func NewInventoryLedger(st *store.Store) *InventoryLedger {
	return &InventoryLedger{store: st}
}

// CreateItem adds a catalogue entry.
func (l *InventoryLedger) CreateItem(name string, cost, priceSingle, priceBundle float64, quantity int) (*models.Item, error) {
	if name == "" {
		return nil, validationf("item name is required")
	}
	if quantity < 0 {
		return nil, validationf("quantity must not be negative")
	}
	if !isFinite(cost) || !isFinite(priceSingle) || !isFinite(priceBundle) {
		return nil, validationf("cost and prices must be finite numbers")
	}
	item := models.Item{
		Name:        name,
		Quantity:    quantity,
		Cost:        cost,
		PriceSingle: priceSingle,
		PriceBundle: priceBundle,
	}
	if err := store.Add(l.store, &item); err != nil {
		return nil, storef("create item", err)
	}
	return &item, nil
}

func (l *InventoryLedger) ListItems() ([]models.Item, error) {
	items, err := store.GetAll[models.Item](l.store)
	if err != nil {
		return nil, storef("list inventory", err)
	}
	return items, nil
}

func (l *InventoryLedger) getItem(itemID uint) (*models.Item, error) {
	item, err := store.Get[models.Item](l.store, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFoundf("item %d", itemID)
	}
	if err != nil {
		return nil, storef("load item", err)
	}
	return item, nil
}

// Restock increases an item's quantity.
func (l *InventoryLedger) Restock(itemID uint, delta int) (*models.Item, error) {
	if delta <= 0 {
		return nil, validationf("restock delta must be positive")
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	item, err := l.getItem(itemID)
	if err != nil {
		return nil, err
	}
	item.Quantity += delta
	if err := store.Update(l.store, item); err != nil {
		return nil, storef("save item", err)
	}
	return item, nil
}

// SetQuantity overwrites an item's count, for manual stock corrections.
func (l *InventoryLedger) SetQuantity(itemID uint, quantity int) (*models.Item, error) {
	if quantity < 0 {
		return nil, validationf("quantity must not be negative")
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	item, err := l.getItem(itemID)
	if err != nil {
		return nil, err
	}
	item.Quantity = quantity
	if err := store.Update(l.store, item); err != nil {
		return nil, storef("save item", err)
	}
	return item, nil
}

// Distribute moves qty units of an item onto a stop: the catalogue decrement
// and the stop's allocation append commit in one transaction under the
// destination route's lock, so stock can neither double-spend nor leak if one
// half fails.
func (l *InventoryLedger) Distribute(routeID uint, stopIndex int, itemID uint, qty int) (*models.StockAllocation, error) {
	if qty <= 0 {
		return nil, validationf("distribution quantity must be positive")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var allocation models.StockAllocation
	err := l.store.WithRouteLock(routeID, func() error {
		return l.store.Transaction(func(tx *gorm.DB) error {
			var item models.Item
			if err := tx.First(&item, itemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFoundf("item %d", itemID)
				}
				return storef("load item", err)
			}
			if qty > item.Quantity {
				return fmt.Errorf("%w: requested %d of %q, %d available",
					ErrInsufficientStock, qty, item.Name, item.Quantity)
			}

			var route models.Route
			if err := tx.First(&route, routeID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFoundf("route %d", routeID)
				}
				return storef("load route", err)
			}
			if stopIndex < 0 || stopIndex >= len(route.Pins) {
				return validationf("stop index %d out of range for route %q", stopIndex, route.Name)
			}

			allocation = models.StockAllocation{ItemID: item.ID, Name: item.Name, Qty: qty}
			route.Pins[stopIndex].StockAssigned = append(route.Pins[stopIndex].StockAssigned, allocation)
			item.Quantity -= qty

			if err := tx.Save(&route).Error; err != nil {
				return storef("save route", err)
			}
			if err := tx.Save(&item).Error; err != nil {
				return storef("save item", err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"item_id":    itemID,
		"route_id":   routeID,
		"stop_index": stopIndex,
		"qty":        qty,
	}).Info("Distributed stock to stop")
	return &allocation, nil
}
