package services

import (
	"time"

	"dispatch_tracker/internal/models"
	"dispatch_tracker/internal/store"
)

// FinanceLedger appends money entries keyed to a route. Records are immutable
// once written.
type FinanceLedger struct {
	store  *store.Store
	routes *RouteRepository
}

func NewFinanceLedger(st *store.Store, routes *RouteRepository) *FinanceLedger {
	return &FinanceLedger{store: st, routes: routes}
}

func (l *FinanceLedger) Record(routeID uint, total float64, notes string) (*models.FinanceRecord, error) {
	if !isFinite(total) || total <= 0 {
		return nil, validationf("total must be a positive finite number")
	}
	route, err := l.routes.GetRoute(routeID)
	if err != nil {
		return nil, err
	}
	rec := models.FinanceRecord{
		RouteID:   route.ID,
		RouteName: route.Name,
		Total:     total,
		Date:      time.Now(),
		Notes:     notes,
	}
	if err := store.Add(l.store, &rec); err != nil {
		return nil, storef("record finance entry", err)
	}
	return &rec, nil
}

func (l *FinanceLedger) List() ([]models.FinanceRecord, error) {
	recs, err := store.GetAll[models.FinanceRecord](l.store)
	if err != nil {
		return nil, storef("list finance entries", err)
	}
	return recs, nil
}

// FuelLedger appends gas fill-up entries.
type FuelLedger struct {
	store *store.Store
}

func NewFuelLedger(st *store.Store) *FuelLedger {
	return &FuelLedger{store: st}
}

func (l *FuelLedger) RecordGas(amount, miles float64) (*models.GasRecord, error) {
	if !isFinite(amount) || amount <= 0 {
		return nil, validationf("amount must be a positive finite number")
	}
	if !isFinite(miles) || miles < 0 {
		return nil, validationf("miles must be a non-negative finite number")
	}
	rec := models.GasRecord{
		Amount: amount,
		Miles:  miles,
		Date:   time.Now(),
	}
	if err := store.Add(l.store, &rec); err != nil {
		return nil, storef("record gas entry", err)
	}
	return &rec, nil
}

func (l *FuelLedger) ListGas() ([]models.GasRecord, error) {
	recs, err := store.GetAll[models.GasRecord](l.store)
	if err != nil {
		return nil, storef("list gas entries", err)
	}
	return recs, nil
}
