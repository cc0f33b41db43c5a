// FILE: internal/dto/server_dto.go
// DTOs for license server administration
package dto

import "time"

type ServerLookupRequest struct {
	Id string `validate:"number"`
}

type SaveServerRequest struct {
	Id       string   `json:"id" form:"id" validate:"number|eq=new"`
	Name     string   `json:"name" form:"name" validate:"server_name"`
	Label    string   `json:"label" form:"label" validate:"required"`
	IsActive Checkbox `json:"is_active" form:"is_active"`
}

type DeleteServerRequest struct {
	Id string `json:"id" form:"id" validate:"number"`
}

type ServerResponse struct {
	Id           uint       `json:"id"`
	Name         string     `json:"name"`
	Label        string     `json:"label"`
	IsActive     bool       `json:"is_active"`
	Status       string     `json:"status"`
	LmgrdVersion string     `json:"lmgrd_version"`
	LastUpdated  *time.Time `json:"last_updated,omitempty"`
}

type ServerListResponse struct {
	Servers []*ServerResponse `json:"servers"`
	Message string            `json:"message"`
}

type ServerLookupResult struct {
	Server  *ServerResponse `json:"server,omitempty"`
	Message string          `json:"message,omitempty"`
}

// ServerActionResult is the rendered outcome of a server add, edit or delete.
type ServerActionResult struct {
	Message string `json:"message"`
}
