// FILE: internal/mapper/feature_mapper.go
// Mapper for Feature entity <-> model conversion
package mapper

import (
	"licensewatch-admin/internal/entity"
	"licensewatch-admin/internal/model"
)

type FeatureMapper struct{}

func NewFeatureMapper() *FeatureMapper {
	return &FeatureMapper{}
}

func (m *FeatureMapper) ToEntity(model *model.Feature) *entity.Feature {
	if model == nil {
		return nil
	}
	return &entity.Feature{
		Id:          model.Id,
		Name:        model.Name,
		Label:       derefString(model.Label),
		ShowInLists: model.ShowInLists == 1,
		IsTracked:   model.IsTracked == 1,
	}
}

func (m *FeatureMapper) ToModel(entity *entity.Feature) *model.Feature {
	if entity == nil {
		return nil
	}
	return &model.Feature{
		Id:          entity.Id,
		Name:        entity.Name,
		Label:       nullableString(entity.Label),
		ShowInLists: FlagValue(entity.ShowInLists),
		IsTracked:   FlagValue(entity.IsTracked),
	}
}

func (m *FeatureMapper) ToEntities(models []*model.Feature) []*entity.Feature {
	entities := make([]*entity.Feature, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}

// FlagValue converts a boolean flag into its stored 0/1 form.
func FlagValue(b bool) int16 {
	if b {
		return 1
	}
	return 0
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nullableString stores blank text as NULL.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
