// FILE: internal/repository/implementation/server_repository_impl.go
// Implementation of ServerRepository
package implementation

import (
	"context"
	"errors"

	"licensewatch-admin/internal/entity"
	"licensewatch-admin/internal/mapper"
	"licensewatch-admin/internal/model"
	"licensewatch-admin/internal/repository/contract"
	"licensewatch-admin/internal/repository/scope"
	"licensewatch-admin/internal/repository/specification"

	"gorm.io/gorm"
)

type ServerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ServerMapper
}

func NewServerRepository(db *gorm.DB) contract.ServerRepository {
	return &ServerRepositoryImpl{
		db:     db,
		mapper: mapper.NewServerMapper(),
	}
}

func (r *ServerRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ServerRepositoryImpl) Create(ctx context.Context, server *entity.Server) error {
	m := r.mapper.ToModel(server)
	m.Id = 0
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	server.Id = m.Id
	return nil
}

func (r *ServerRepositoryImpl) Update(ctx context.Context, server *entity.Server) error {
	m := r.mapper.ToModel(server)
	return r.db.WithContext(ctx).
		Model(&model.Server{}).
		Where("id = ?", server.Id).
		Select("name", "label", "is_active").
		Updates(m).Error
}

func (r *ServerRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Server{}).Error
}

func (r *ServerRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Server, error) {
	var m model.Server
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ServerRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Server, error) {
	var models []*model.Server
	query := r.applySpecifications(r.db.WithContext(ctx).Scopes(scope.OrderByIdAsc), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
