package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"dispatch_tracker/internal/models"
)

// SchemaVersion is the schema this build writes. Upgrades are additive only:
// migrating never drops or rewrites existing collections or records.
const SchemaVersion = 5

// collections returns every model the schema declares, in migration order.
func collections() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Route{},
		&models.Item{},
		&models.FinanceRecord{},
		&models.GasRecord{},
	}
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.SchemaMeta{}); err != nil {
		return fmt.Errorf("migrate schema metadata: %w", err)
	}

	var meta models.SchemaMeta
	err := db.First(&meta).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// Fresh store; version row is created below.
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case meta.Version > SchemaVersion:
		return fmt.Errorf(
			"store schema version %d is newer than supported version %d: upgrade required",
			meta.Version, SchemaVersion,
		)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(collections()...); err != nil {
			return fmt.Errorf("automigrate collections: %w", err)
		}
		meta.Version = SchemaVersion
		if meta.ID == 0 {
			return tx.Create(&meta).Error
		}
		return tx.Save(&meta).Error
	})
}

// StoredSchemaVersion reports the version recorded in the store.
func (s *Store) StoredSchemaVersion() (int, error) {
	var meta models.SchemaMeta
	if err := s.db.First(&meta).Error; err != nil {
		return 0, err
	}
	return meta.Version, nil
}
