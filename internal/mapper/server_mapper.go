// FILE: internal/mapper/server_mapper.go
// Mapper for Server entity <-> model conversion
package mapper

import (
	"licensewatch-admin/internal/entity"
	"licensewatch-admin/internal/model"
)

type ServerMapper struct{}

func NewServerMapper() *ServerMapper {
	return &ServerMapper{}
}

func (m *ServerMapper) ToEntity(model *model.Server) *entity.Server {
	if model == nil {
		return nil
	}
	return &entity.Server{
		Id:           model.Id,
		Name:         model.Name,
		Label:        model.Label,
		IsActive:     model.IsActive == 1,
		Status:       derefString(model.Status),
		LmgrdVersion: derefString(model.LmgrdVersion),
		LastUpdated:  model.LastUpdated,
	}
}

// ToModel only carries the admin-editable columns; poller columns stay untouched.
func (m *ServerMapper) ToModel(entity *entity.Server) *model.Server {
	if entity == nil {
		return nil
	}
	return &model.Server{
		Id:       entity.Id,
		Name:     entity.Name,
		Label:    entity.Label,
		IsActive: FlagValue(entity.IsActive),
	}
}

func (m *ServerMapper) ToEntities(models []*model.Server) []*entity.Server {
	entities := make([]*entity.Server, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}
