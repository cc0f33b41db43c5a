// FILE: internal/repository/contract/server_repository.go
// Repository interface for Server
package contract

import (
	"context"

	"licensewatch-admin/internal/entity"
	"licensewatch-admin/internal/repository/specification"
)

type ServerRepository interface {
	Create(ctx context.Context, server *entity.Server) error
	Update(ctx context.Context, server *entity.Server) error
	Delete(ctx context.Context, id uint) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Server, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Server, error)
}
