package server

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"licensewatch-admin/internal/dto"
	"licensewatch-admin/internal/entity"
	"licensewatch-admin/internal/pkg/logger"
	"licensewatch-admin/internal/repository/specification"
	"licensewatch-admin/internal/repository/unitofwork"
	"licensewatch-admin/pkg/admin/dberror"
	"licensewatch-admin/pkg/admin/events"
	"licensewatch-admin/pkg/admin/mapper"
	"licensewatch-admin/pkg/admin/markup"
	"licensewatch-admin/pkg/admin/validation"
	"licensewatch-admin/pkg/metrics"
)

const (
	module      = "SERVER"
	entityName  = "server"
	newServerId = "new"
)

// Manager handles license server administration
type Manager struct {
	validator *validation.Validator
	publisher events.Publisher
	metrics   *metrics.Collector
	logger    logger.ILogger
}

func NewManager(validator *validation.Validator, publisher events.Publisher, collector *metrics.Collector, logger logger.ILogger) *Manager {
	return &Manager{
		validator: validator,
		publisher: publisher,
		metrics:   collector,
		logger:    logger,
	}
}

// List returns every server ordered by id.
func (m *Manager) List(ctx context.Context, uow unitofwork.UnitOfWork) dto.ServerListResponse {
	servers, err := uow.ServerRepository().FindAll(ctx)
	if err != nil {
		m.failed("list", dberror.Wrap("select servers", err), nil)
		return dto.ServerListResponse{
			Servers: mapper.ServersToResponse(nil),
			Message: markup.Failure("DB Error: %s.", err),
		}
	}

	m.metrics.Observe(entityName, "list", metrics.OutcomeOK)
	return dto.ServerListResponse{Servers: mapper.ServersToResponse(servers)}
}

func (m *Manager) GetByID(ctx context.Context, uow unitofwork.UnitOfWork, rawId string) dto.ServerLookupResult {
	rejection := dto.ServerLookupResult{Message: markup.Failure("Validation failed when requesting form to edit an existing server.")}

	id, err := m.parseId(dto.ServerLookupRequest{Id: rawId}, rawId)
	if err != nil {
		m.rejected("lookup", err)
		return rejection
	}

	server, err := uow.ServerRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		m.failed("lookup", dberror.Wrap("select server", err), map[string]interface{}{"id": id})
		return dto.ServerLookupResult{Message: markup.Failure("DB Error: %s.", err)}
	}
	if server == nil {
		m.metrics.Observe(entityName, "lookup", metrics.OutcomeRejected)
		return rejection
	}

	m.metrics.Observe(entityName, "lookup", metrics.OutcomeOK)
	return dto.ServerLookupResult{Server: mapper.ServerToResponse(server)}
}

// AddOrEdit inserts a server when Id is "new", otherwise updates name, label and is_active.
func (m *Manager) AddOrEdit(ctx context.Context, uow unitofwork.UnitOfWork, req dto.SaveServerRequest) dto.ServerActionResult {
	req.Name = strings.TrimSpace(req.Name)
	req.Label = strings.TrimSpace(req.Label)

	if err := m.validator.Check(req); err != nil {
		m.rejected("save", err)
		return dto.ServerActionResult{Message: saveRejection(err, req.Id)}
	}

	server := &entity.Server{
		Name:     req.Name,
		Label:    req.Label,
		IsActive: req.IsActive.Bool(),
	}

	repo := uow.ServerRepository()
	var (
		action string
		err    error
	)
	if req.Id == newServerId {
		action = "added"
		err = dberror.Wrap("insert server", repo.Create(ctx, server))
	} else {
		id, parseErr := strconv.ParseUint(req.Id, 10, 0)
		if parseErr != nil {
			m.rejected("save", &validation.ValidationError{Field: "Id", Rule: "range"})
			return dto.ServerActionResult{Message: markup.Failure("Invalid server ID \"%s\"", req.Id)}
		}
		server.Id = uint(id)
		action = "updated"
		err = dberror.Wrap("update server", repo.Update(ctx, server))
	}

	if err != nil {
		m.failed("save", err, map[string]interface{}{"id": req.Id, "name": server.Name})
		return dto.ServerActionResult{Message: markup.Failure("(%s) DB Error: %s.", server.Name, err)}
	}

	m.logger.Info(module, "Server "+action, map[string]interface{}{"id": server.Id, "name": server.Name})
	m.metrics.Observe(entityName, "save", metrics.OutcomeOK)
	m.publisher.PublishServerSaved(ctx, server, action)

	return dto.ServerActionResult{Message: markup.Success("%s (%s) successfully %s.", server.Name, server.Label, action)}
}

// Delete removes a server and, through the foreign keys, its usage history.
// The name and label for the message are read in the same transaction.
func (m *Manager) Delete(ctx context.Context, uow unitofwork.UnitOfWork, req dto.DeleteServerRequest) dto.ServerActionResult {
	id, err := m.parseId(req, req.Id)
	if err != nil {
		m.rejected("delete", err)
		return dto.ServerActionResult{Message: markup.Failure("Validation failed when attempting to remove a server from DB.")}
	}

	if err := uow.Begin(ctx); err != nil {
		err = dberror.Wrap("begin", err)
		m.failed("delete", err, map[string]interface{}{"id": id})
		return dto.ServerActionResult{Message: markup.Failure("ID %d: DB Error: \"%s\"", id, err)}
	}

	server, err := uow.ServerRepository().FindOne(ctx, specification.ByID{ID: id})
	if err == nil && server == nil {
		_ = uow.Rollback()
		m.metrics.Observe(entityName, "delete", metrics.OutcomeRejected)
		return dto.ServerActionResult{Message: markup.Failure("ID %d: no such server.", id)}
	}
	if err == nil {
		err = uow.ServerRepository().Delete(ctx, id)
	}
	if err == nil {
		err = uow.Commit()
	} else {
		_ = uow.Rollback()
	}

	name, label := "", ""
	if server != nil {
		name, label = server.Name, server.Label
	}

	if err != nil {
		err = dberror.Wrap("delete server", err)
		m.failed("delete", err, map[string]interface{}{"id": id})
		return dto.ServerActionResult{Message: markup.Failure("ID %d: \"%s\" (%s), DB Error: \"%s\"", id, name, label, err)}
	}

	m.logger.Info(module, "Server deleted", map[string]interface{}{"id": id, "name": name})
	m.metrics.Observe(entityName, "delete", metrics.OutcomeOK)
	m.publisher.PublishServerDeleted(ctx, id, name, label)

	return dto.ServerActionResult{Message: markup.Success("Successfully deleted ID %d: \"%s\" (%s)", id, name, label)}
}

func (m *Manager) parseId(req interface{}, raw string) (uint, error) {
	if err := m.validator.Check(req); err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return 0, &validation.ValidationError{Field: "Id", Rule: "range"}
	}
	return uint(id), nil
}

func (m *Manager) rejected(operation string, err error) {
	details := map[string]interface{}{"operation": operation}
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		details["field"] = verr.Field
		details["rule"] = verr.Rule
	} else {
		details["error"] = err.Error()
	}
	m.logger.Warn(module, "Request failed validation", details)
	m.metrics.Observe(entityName, operation, metrics.OutcomeRejected)
}

func (m *Manager) failed(operation string, err error, extra map[string]interface{}) {
	details := dberror.Details(err, extra)
	details["operation"] = operation
	m.logger.Error(module, "Store error", details)
	m.metrics.Observe(entityName, operation, metrics.OutcomeStoreErr)
}

func saveRejection(err error, rawId string) string {
	var verr *validation.ValidationError
	if errors.As(err, &verr) {
		switch verr.Field {
		case "Name":
			return markup.Failure("Server name MUST be in form <code>port@domain.tld</code>")
		case "Label":
			return markup.Failure("Server's label cannot be blank")
		}
	}
	return markup.Failure("Invalid server ID \"%s\"", rawId)
}
