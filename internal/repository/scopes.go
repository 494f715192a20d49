package repository

import "gorm.io/gorm"

// Active restricts a query to non-soft-deleted rows. Every listing and
// aggregate goes through this scope so the is_active filter lives in one
// place.
func Active(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// ForProfile restricts a query to one profile when profileID is set.
func ForProfile(profileID *uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if profileID == nil {
			return db
		}
		return db.Where("profile_id = ?", *profileID)
	}
}
