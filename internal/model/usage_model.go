// FILE: internal/model/usage_model.go
// GORM model for the usage history table
package model

import "time"

// Usage is one sample of checked-out licenses for a feature on a server.
// Rows disappear with their feature or server through ON DELETE CASCADE.
type Usage struct {
	Id        uint      `gorm:"primaryKey;autoIncrement"`
	FeatureId uint      `gorm:"not null;index"`
	ServerId  uint      `gorm:"not null;index"`
	NumUsers  int       `gorm:"not null"`
	Time      time.Time `gorm:"not null"`

	Feature Feature `gorm:"constraint:OnDelete:CASCADE"`
	Server  Server  `gorm:"constraint:OnDelete:CASCADE"`
}

func (Usage) TableName() string {
	return "usage"
}

// Models lists every table the catalog reads or writes, in dependency order.
func Models() []interface{} {
	return []interface{}{&Feature{}, &Server{}, &Usage{}}
}
