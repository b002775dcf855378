package persistence

import (
	"github.com/tradegate/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// saveVersioned persists an aggregate with an optimistic version guard.
// Inserts are taken as-is; updates only apply when the stored version still
// matches the one the aggregate was loaded with, otherwise
// shared.ErrConcurrencyConflict is returned and the in-memory version is
// left untouched.
func saveVersioned(tx *gorm.DB, root *shared.BaseAggregateRoot, model any) error {
	loaded := root.Version

	var current int
	lookup := tx.Model(model).
		Select("version").
		Where("id = ?", root.ID).
		Limit(1).
		Scan(&current)
	if lookup.Error != nil {
		return lookup.Error
	}
	if lookup.RowsAffected == 0 {
		return tx.Omit(clause.Associations).Create(model).Error
	}
	if current != loaded {
		return shared.ErrConcurrencyConflict
	}

	root.Version = loaded + 1
	result := tx.Model(model).
		Omit(clause.Associations).
		Where("id = ? AND version = ?", root.ID, loaded).
		Select("*").
		Updates(model)
	if result.Error != nil {
		root.Version = loaded
		return result.Error
	}
	if result.RowsAffected == 0 {
		root.Version = loaded
		return shared.ErrConcurrencyConflict
	}
	return nil
}
