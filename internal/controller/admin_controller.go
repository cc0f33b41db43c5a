// FILE: internal/controller/admin_controller.go
package controller

import (
	"licensewatch-admin/internal/dto"
	"licensewatch-admin/internal/pkg/serverutils"
	"licensewatch-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)

	// Feature Catalog
	ListFeatures(ctx *fiber.Ctx) error
	GetFeature(ctx *fiber.Ctx) error
	SaveFeature(ctx *fiber.Ctx) error
	DeleteFeature(ctx *fiber.Ctx) error
	ToggleFeature(ctx *fiber.Ctx) error
	ToggleFeaturePage(ctx *fiber.Ctx) error

	// License Servers
	ListServers(ctx *fiber.Ctx) error
	GetServer(ctx *fiber.Ctx) error
	SaveServer(ctx *fiber.Ctx) error
	DeleteServer(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.IAdminService
}

func NewAdminController(service service.IAdminService) IAdminController {
	return &adminController{service: service}
}

// RegisterRoutes mounts the admin catalog. Authentication is left to the
// hosting environment.
func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")

	// Features
	h.Get("/features", c.ListFeatures)
	h.Get("/features/:id", c.GetFeature)
	h.Post("/features", c.SaveFeature)
	h.Post("/features/delete", c.DeleteFeature)
	h.Post("/features/toggle", c.ToggleFeature)
	h.Post("/features/toggle-page", c.ToggleFeaturePage)

	// Servers
	h.Get("/servers", c.ListServers)
	h.Get("/servers/:id", c.GetServer)
	h.Post("/servers", c.SaveServer)
	h.Post("/servers/delete", c.DeleteServer)
}

// ============================================================================
// Feature Catalog
// ============================================================================

func (c *adminController) ListFeatures(ctx *fiber.Ctx) error {
	var req dto.FeatureListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid query parameters"))
	}

	res := c.service.ListFeatures(ctx.UserContext(), req)
	return ctx.JSON(serverutils.SuccessResponse("Feature page", res))
}

func (c *adminController) GetFeature(ctx *fiber.Ctx) error {
	res := c.service.GetFeature(ctx.UserContext(), ctx.Params("id"))
	if res.Feature == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, res.Message))
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature details", res))
}

func (c *adminController) SaveFeature(ctx *fiber.Ctx) error {
	var req dto.SaveFeatureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	res := c.service.SaveFeature(ctx.UserContext(), req)
	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}

func (c *adminController) DeleteFeature(ctx *fiber.Ctx) error {
	var req dto.DeleteFeatureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	res := c.service.DeleteFeature(ctx.UserContext(), req)
	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}

func (c *adminController) ToggleFeature(ctx *fiber.Ctx) error {
	var req dto.ToggleFeatureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	res := c.service.ToggleFeature(ctx.UserContext(), req)
	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}

func (c *adminController) ToggleFeaturePage(ctx *fiber.Ctx) error {
	var req dto.TogglePageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	res := c.service.ToggleFeaturePage(ctx.UserContext(), req)
	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}

// ============================================================================
// License Servers
// ============================================================================

func (c *adminController) ListServers(ctx *fiber.Ctx) error {
	res := c.service.ListServers(ctx.UserContext())
	return ctx.JSON(serverutils.SuccessResponse("Server list", res))
}

func (c *adminController) GetServer(ctx *fiber.Ctx) error {
	res := c.service.GetServer(ctx.UserContext(), ctx.Params("id"))
	if res.Server == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, res.Message))
	}
	return ctx.JSON(serverutils.SuccessResponse("Server details", res))
}

func (c *adminController) SaveServer(ctx *fiber.Ctx) error {
	var req dto.SaveServerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	res := c.service.SaveServer(ctx.UserContext(), req)
	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}

func (c *adminController) DeleteServer(ctx *fiber.Ctx) error {
	var req dto.DeleteServerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	res := c.service.DeleteServer(ctx.UserContext(), req)
	return ctx.JSON(serverutils.SuccessResponse(res.Message, res))
}
