package models

import "gorm.io/gorm"

// SchemaMeta holds the store's schema version. A single row, created on first
// open and bumped after each additive migration.
type SchemaMeta struct {
	gorm.Model
	Version int `json:"version"`
}
