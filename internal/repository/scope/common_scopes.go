package scope

import "gorm.io/gorm"

// OrderByCreatedDesc is the default ordering for library listings:
// newest generations first.
func OrderByCreatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}
