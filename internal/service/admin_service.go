package service

import (
	"context"

	"licensewatch-admin/internal/dto"
	"licensewatch-admin/internal/pkg/logger"
	"licensewatch-admin/internal/repository/unitofwork"
	"licensewatch-admin/pkg/admin/feature"
	"licensewatch-admin/pkg/admin/server"
)

type IAdminService interface {
	// Feature Catalog
	GetFeature(ctx context.Context, rawId string) dto.FeatureLookupResult
	ListFeatures(ctx context.Context, req dto.FeatureListRequest) dto.FeaturePageResponse
	SaveFeature(ctx context.Context, req dto.SaveFeatureRequest) dto.ActionResult
	DeleteFeature(ctx context.Context, req dto.DeleteFeatureRequest) dto.ActionResult
	ToggleFeature(ctx context.Context, req dto.ToggleFeatureRequest) dto.ToggleResult
	ToggleFeaturePage(ctx context.Context, req dto.TogglePageRequest) dto.ToggleResult

	// License Servers
	ListServers(ctx context.Context) dto.ServerListResponse
	GetServer(ctx context.Context, rawId string) dto.ServerLookupResult
	SaveServer(ctx context.Context, req dto.SaveServerRequest) dto.ServerActionResult
	DeleteServer(ctx context.Context, req dto.DeleteServerRequest) dto.ServerActionResult
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger

	// Domain Components
	featureManager *feature.Manager
	serverManager  *server.Manager
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
	featureManager *feature.Manager,
	serverManager *server.Manager,
) IAdminService {
	return &adminService{
		uowFactory:     uowFactory,
		logger:         logger,
		featureManager: featureManager,
		serverManager:  serverManager,
	}
}

// ============================================================================
// Feature Catalog
// ============================================================================

func (s *adminService) GetFeature(ctx context.Context, rawId string) dto.FeatureLookupResult {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.featureManager.GetByID(ctx, uow, rawId)
}

func (s *adminService) ListFeatures(ctx context.Context, req dto.FeatureListRequest) dto.FeaturePageResponse {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.featureManager.List(ctx, uow, req)
}

func (s *adminService) SaveFeature(ctx context.Context, req dto.SaveFeatureRequest) dto.ActionResult {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.featureManager.AddOrEdit(ctx, uow, req)
}

func (s *adminService) DeleteFeature(ctx context.Context, req dto.DeleteFeatureRequest) dto.ActionResult {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.featureManager.Delete(ctx, uow, req)
}

func (s *adminService) ToggleFeature(ctx context.Context, req dto.ToggleFeatureRequest) dto.ToggleResult {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.featureManager.ToggleSingle(ctx, uow, req)
}

func (s *adminService) ToggleFeaturePage(ctx context.Context, req dto.TogglePageRequest) dto.ToggleResult {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.featureManager.ToggleBulk(ctx, uow, req)
}

// ============================================================================
// License Servers
// ============================================================================

func (s *adminService) ListServers(ctx context.Context) dto.ServerListResponse {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.serverManager.List(ctx, uow)
}

func (s *adminService) GetServer(ctx context.Context, rawId string) dto.ServerLookupResult {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.serverManager.GetByID(ctx, uow, rawId)
}

func (s *adminService) SaveServer(ctx context.Context, req dto.SaveServerRequest) dto.ServerActionResult {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.serverManager.AddOrEdit(ctx, uow, req)
}

func (s *adminService) DeleteServer(ctx context.Context, req dto.DeleteServerRequest) dto.ServerActionResult {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.serverManager.Delete(ctx, uow, req)
}
