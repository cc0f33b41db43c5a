// FILE: internal/entity/server_entity.go
// Domain entity for license servers
package entity

import "time"

// Server is a license daemon addressed as port@domain.tld
type Server struct {
	Id           uint
	Name         string
	Label        string
	IsActive     bool
	Status       string // Last polled status, "" when never polled
	LmgrdVersion string
	LastUpdated  *time.Time
}
