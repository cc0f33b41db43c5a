// FILE: internal/model/feature_model.go
// GORM model for the features table
package model

// Feature mirrors the features table. Flags are stored as 0/1 smallints.
type Feature struct {
	Id          uint    `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"type:varchar(255);not null"`
	Label       *string `gorm:"type:varchar(255)"`
	ShowInLists int16   `gorm:"type:smallint;not null;check:show_in_lists IN (0,1)"`
	IsTracked   int16   `gorm:"type:smallint;not null;check:is_tracked IN (0,1)"`
}

func (Feature) TableName() string {
	return "features"
}
