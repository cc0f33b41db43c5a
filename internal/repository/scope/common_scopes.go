package scope

import "gorm.io/gorm"

func OrderByIdAsc(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
