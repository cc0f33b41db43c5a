package mapper

import (
	"licensewatch-admin/internal/dto"
	"licensewatch-admin/internal/entity"
)

// FeatureToResponse converts entity to response DTO
func FeatureToResponse(f *entity.Feature) *dto.FeatureResponse {
	if f == nil {
		return nil
	}
	return &dto.FeatureResponse{
		Id:          f.Id,
		Name:        f.Name,
		Label:       f.Label,
		ShowInLists: f.ShowInLists,
		IsTracked:   f.IsTracked,
	}
}

// FeaturesToResponse never returns nil, so an empty page encodes as [].
func FeaturesToResponse(features []*entity.Feature) []*dto.FeatureResponse {
	res := make([]*dto.FeatureResponse, 0, len(features))
	for _, f := range features {
		res = append(res, FeatureToResponse(f))
	}
	return res
}

// ServerToResponse converts entity to response DTO
func ServerToResponse(s *entity.Server) *dto.ServerResponse {
	if s == nil {
		return nil
	}
	return &dto.ServerResponse{
		Id:           s.Id,
		Name:         s.Name,
		Label:        s.Label,
		IsActive:     s.IsActive,
		Status:       s.Status,
		LmgrdVersion: s.LmgrdVersion,
		LastUpdated:  s.LastUpdated,
	}
}

func ServersToResponse(servers []*entity.Server) []*dto.ServerResponse {
	res := make([]*dto.ServerResponse, 0, len(servers))
	for _, s := range servers {
		res = append(res, ServerToResponse(s))
	}
	return res
}
