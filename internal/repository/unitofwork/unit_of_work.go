package unitofwork

import (
	"context"

	"licensewatch-admin/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	FeatureRepository() contract.FeatureRepository
	ServerRepository() contract.ServerRepository
}
