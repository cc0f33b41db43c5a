// FILE: internal/repository/contract/feature_repository.go
// Repository interface for Feature
package contract

import (
	"context"

	"licensewatch-admin/internal/entity"
	"licensewatch-admin/internal/repository/specification"
)

type FeatureRepository interface {
	Create(ctx context.Context, feature *entity.Feature) error
	Update(ctx context.Context, feature *entity.Feature) error
	Delete(ctx context.Context, id uint) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Feature, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Feature, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// UpdateFlag writes one flag column of a single feature.
	UpdateFlag(ctx context.Context, id uint, column entity.FlagColumn, value int16) error
	// UpdateFlagWhere writes one flag column on every feature selected by specs,
	// as a single statement. Returns the number of rows written.
	UpdateFlagWhere(ctx context.Context, column entity.FlagColumn, value int16, specs ...specification.Specification) (int64, error)
}
