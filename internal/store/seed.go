package store

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"dispatch_tracker/internal/models"
)

// defaultRouteNames is the stock route list loaded into an empty store.
var defaultRouteNames = []string{
	"Covington A", "Covington B", "Covington C",
	"Mandeville A", "Mandeville B",
	"Madisonville A", "Madisonville B",
	"Hammond A", "Hammond B",
	"Baton Rouge A", "Baton Rouge B", "Baton Rouge C",
	"Slidell A", "Slidell B", "Slidell C",
	"Gulfport A", "Gulfport B", "Gulfport C",
	"Biloxi A", "Biloxi B", "Biloxi C",
}

// SeedDefaults populates empty collections on first run: one admin account, a
// starter catalogue and the default route list. Non-empty collections are left
// untouched.
func (s *Store) SeedDefaults() error {
	var userCount int64
	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if userCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash default admin password: %w", err)
		}
		admin := models.User{Username: "admin", Password: string(hash), Role: "admin"}
		if err := s.db.Create(&admin).Error; err != nil {
			return fmt.Errorf("seed admin user: %w", err)
		}
		logrus.Info("Seeded default admin user")
	}

	var itemCount int64
	if err := s.db.Model(&models.Item{}).Count(&itemCount).Error; err != nil {
		return fmt.Errorf("count inventory: %w", err)
	}
	if itemCount == 0 {
		items := []models.Item{
			{Name: "Dumb Dumbs", Quantity: 1000, Cost: 0.04, PriceSingle: 0.5, PriceBundle: 5.0},
			{Name: "Candy Bar", Quantity: 500, Cost: 0.2, PriceSingle: 1.0, PriceBundle: 10.0},
			{Name: "Soda", Quantity: 300, Cost: 0.25, PriceSingle: 1.5, PriceBundle: 15.0},
		}
		if err := s.db.Create(&items).Error; err != nil {
			return fmt.Errorf("seed inventory: %w", err)
		}
		logrus.WithField("items", len(items)).Info("Seeded starter inventory catalogue")
	}

	var routeCount int64
	if err := s.db.Model(&models.Route{}).Count(&routeCount).Error; err != nil {
		return fmt.Errorf("count routes: %w", err)
	}
	if routeCount == 0 {
		for _, name := range defaultRouteNames {
			route := models.Route{Name: name, Pins: models.Pins{}}
			if err := s.db.Create(&route).Error; err != nil {
				return fmt.Errorf("seed route %q: %w", name, err)
			}
		}
		logrus.WithField("routes", len(defaultRouteNames)).Info("Seeded default route list")
	}

	return nil
}
