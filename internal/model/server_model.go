// FILE: internal/model/server_model.go
// GORM model for the servers table
package model

import "time"

// Server mirrors the servers table. Status, LmgrdVersion and LastUpdated are
// written by the license poller, never by the admin catalog.
type Server struct {
	Id           uint       `gorm:"primaryKey;autoIncrement"`
	Name         string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	Label        string     `gorm:"type:varchar(255);not null"`
	IsActive     int16      `gorm:"type:smallint;not null;check:is_active IN (0,1)"`
	Status       *string    `gorm:"type:varchar(25)"`
	LmgrdVersion *string    `gorm:"column:lmgrd_version;type:varchar(25)"`
	LastUpdated  *time.Time `gorm:"column:last_updated"`
}

func (Server) TableName() string {
	return "servers"
}
