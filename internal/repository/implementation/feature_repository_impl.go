// FILE: internal/repository/implementation/feature_repository_impl.go
// Implementation of FeatureRepository
package implementation

import (
	"context"
	"errors"
	"fmt"

	"licensewatch-admin/internal/entity"
	"licensewatch-admin/internal/mapper"
	"licensewatch-admin/internal/model"
	"licensewatch-admin/internal/repository/contract"
	"licensewatch-admin/internal/repository/specification"

	"gorm.io/gorm"
)

type FeatureRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FeatureMapper
}

func NewFeatureRepository(db *gorm.DB) contract.FeatureRepository {
	return &FeatureRepositoryImpl{
		db:     db,
		mapper: mapper.NewFeatureMapper(),
	}
}

func (r *FeatureRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// flagColumnName is the only place a column name enters SQL text for flag writes.
func flagColumnName(column entity.FlagColumn) (string, error) {
	switch column {
	case entity.ShowInListsColumn:
		return "show_in_lists", nil
	case entity.IsTrackedColumn:
		return "is_tracked", nil
	default:
		return "", fmt.Errorf("unknown flag column %d", column)
	}
}

func (r *FeatureRepositoryImpl) Create(ctx context.Context, feature *entity.Feature) error {
	m := r.mapper.ToModel(feature)
	m.Id = 0
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*feature = *r.mapper.ToEntity(m)
	return nil
}

// Update overwrites the editable columns of the feature with feature.Id.
// Updating an id that does not exist is not an error.
func (r *FeatureRepositoryImpl) Update(ctx context.Context, feature *entity.Feature) error {
	m := r.mapper.ToModel(feature)
	return r.db.WithContext(ctx).
		Model(&model.Feature{}).
		Where("id = ?", feature.Id).
		Select("name", "label", "show_in_lists", "is_tracked").
		Updates(m).Error
}

func (r *FeatureRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Feature{}).Error
}

func (r *FeatureRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Feature, error) {
	var m model.Feature
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FeatureRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Feature, error) {
	var models []*model.Feature
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FeatureRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Feature{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *FeatureRepositoryImpl) UpdateFlag(ctx context.Context, id uint, column entity.FlagColumn, value int16) error {
	name, err := flagColumnName(column)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&model.Feature{}).
		Where("id = ?", id).
		Update(name, value).Error
}

func (r *FeatureRepositoryImpl) UpdateFlagWhere(ctx context.Context, column entity.FlagColumn, value int16, specs ...specification.Specification) (int64, error) {
	name, err := flagColumnName(column)
	if err != nil {
		return 0, err
	}

	ids := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Feature{}).Select("id"), specs...)

	result := r.db.WithContext(ctx).
		Model(&model.Feature{}).
		Where("id IN (?)", ids).
		Update(name, value)
	return result.RowsAffected, result.Error
}
