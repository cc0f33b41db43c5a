// FILE: internal/dto/feature_dto.go
// DTOs for the feature catalog
package dto

// --- Requests ---
// Fields arrive as raw text (form posts or JSON strings) and are validated
// by the catalog before any query is built.

type FeatureListRequest struct {
	Page   string `query:"page"`
	Search string `query:"search"`
}

type FeatureLookupRequest struct {
	Id string `validate:"number"`
}

type SaveFeatureRequest struct {
	Id          string   `json:"id" form:"id" validate:"number|eq=new"`
	Name        string   `json:"name" form:"name" validate:"required"`
	Label       string   `json:"label" form:"label"`
	ShowInLists Checkbox `json:"show_in_lists" form:"show_in_lists"`
	IsTracked   Checkbox `json:"is_tracked" form:"is_tracked"`
	Page        string   `json:"page" form:"page"`
}

type DeleteFeatureRequest struct {
	Name *string `json:"name" form:"name" validate:"required"`
	Id   string  `json:"id" form:"id" validate:"number"`
	Page string  `json:"page" form:"page" validate:"number"`
}

type ToggleFeatureRequest struct {
	Id    string `json:"id" form:"id" validate:"number"`
	Col   string `json:"col" form:"col" validate:"oneof=show_in_lists is_tracked"`
	State string `json:"state" form:"state" validate:"oneof=0 1"`
}

type TogglePageRequest struct {
	Val    string  `json:"val" form:"val" validate:"oneof=0 1"`
	Col    string  `json:"col" form:"col" validate:"oneof=show_in_lists is_tracked"`
	Page   string  `json:"page" form:"page" validate:"number"`
	Search *string `json:"search" form:"search" validate:"required"`
}

// --- Responses ---

type FeatureResponse struct {
	Id          uint   `json:"id"`
	Name        string `json:"name"`
	Label       string `json:"label"`
	ShowInLists bool   `json:"show_in_lists"`
	IsTracked   bool   `json:"is_tracked"`
}

// FeatureLookupResult carries either the feature or a rendered error message.
type FeatureLookupResult struct {
	Feature *FeatureResponse `json:"feature,omitempty"`
	Message string           `json:"message,omitempty"`
}

type FeaturePageResponse struct {
	Features []*FeatureResponse `json:"features"`
	Message  string             `json:"message"`
	LastPage int                `json:"last_page"`
}

// ActionResult is the outcome of add, edit and delete: a rendered message and
// the listing page the caller should return to.
type ActionResult struct {
	Message string `json:"message"`
	Page    int    `json:"page"`
}

// ToggleResult is "OK" on success, otherwise a plain error string.
type ToggleResult struct {
	Message string `json:"message"`
}
