package feature

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"licensewatch-admin/internal/dto"
	"licensewatch-admin/internal/entity"
	"licensewatch-admin/internal/mapper"
	"licensewatch-admin/internal/pkg/logger"
	"licensewatch-admin/internal/repository/specification"
	"licensewatch-admin/internal/repository/unitofwork"
	"licensewatch-admin/pkg/admin/dberror"
	"licensewatch-admin/pkg/admin/events"
	adminMapper "licensewatch-admin/pkg/admin/mapper"
	"licensewatch-admin/pkg/admin/markup"
	"licensewatch-admin/pkg/admin/validation"
	"licensewatch-admin/pkg/metrics"
)

const (
	module     = "FEATURE"
	entityName = "feature"

	newFeatureId = "new"
	toggleOK     = "OK"
)

// Manager is the feature catalog engine. Every public operation is total:
// validation and store failures come back as messages, never as errors.
type Manager struct {
	rowsPerPage int
	validator   *validation.Validator
	publisher   events.Publisher
	metrics     *metrics.Collector
	logger      logger.ILogger
}

// NewManager creates a new feature manager
func NewManager(rowsPerPage int, validator *validation.Validator, publisher events.Publisher, collector *metrics.Collector, logger logger.ILogger) *Manager {
	return &Manager{
		rowsPerPage: rowsPerPage,
		validator:   validator,
		publisher:   publisher,
		metrics:     collector,
		logger:      logger,
	}
}

// RowsPerPage is the fixed listing page size.
func (m *Manager) RowsPerPage() int {
	return m.rowsPerPage
}

// GetByID looks up one feature. A row whose fields are all blank is reported
// the same way as a missing row.
func (m *Manager) GetByID(ctx context.Context, uow unitofwork.UnitOfWork, rawId string) dto.FeatureLookupResult {
	id, err := m.parseId(dto.FeatureLookupRequest{Id: rawId}, rawId)
	if err != nil {
		m.rejected("lookup", err)
		return dto.FeatureLookupResult{Message: markup.Failure("Invalid feature ID \"%s\"", rawId)}
	}

	feature, err := uow.FeatureRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		m.failed("lookup", dberror.Wrap("select feature", err), map[string]interface{}{"id": id})
		return dto.FeatureLookupResult{Message: markup.Failure("DB Error: %s.", err)}
	}
	if feature == nil || feature.IsBlank() {
		m.metrics.Observe(entityName, "lookup", metrics.OutcomeRejected)
		return dto.FeatureLookupResult{Message: markup.Failure("DB returned empty set during feature lookup.")}
	}

	m.metrics.Observe(entityName, "lookup", metrics.OutcomeOK)
	return dto.FeatureLookupResult{Feature: adminMapper.FeatureToResponse(feature)}
}

// List returns one page of features under the search token. The list and the
// count are always both executed with the same predicate.
func (m *Manager) List(ctx context.Context, uow unitofwork.UnitOfWork, req dto.FeatureListRequest) dto.FeaturePageResponse {
	page := pageOrDefault(req.Page)
	search := specification.NameSearch(req.Search)
	repo := uow.FeatureRepository()

	features, listErr := repo.FindAll(ctx, append([]specification.Specification{search}, specification.PageOf(FirstRow(page, m.rowsPerPage), m.rowsPerPage)...)...)
	total, countErr := repo.Count(ctx, search)

	res := dto.FeaturePageResponse{
		Features: adminMapper.FeaturesToResponse(features),
		LastPage: LastPage(total, m.rowsPerPage),
	}

	if err := errors.Join(listErr, countErr); err != nil {
		m.failed("list", dberror.Wrap("select features", err), map[string]interface{}{"page": page, "search": req.Search})
		res.Features = adminMapper.FeaturesToResponse(nil)
		res.Message = markup.Failure("DB Error: %s.", firstError(listErr, countErr))
		return res
	}

	m.metrics.Observe(entityName, "list", metrics.OutcomeOK)
	return res
}

// AddOrEdit inserts a feature when Id is "new", otherwise overwrites the feature with that id.
func (m *Manager) AddOrEdit(ctx context.Context, uow unitofwork.UnitOfWork, req dto.SaveFeatureRequest) dto.ActionResult {
	page := pageOrDefault(req.Page)
	req.Name = strings.TrimSpace(req.Name)
	req.Label = strings.TrimSpace(req.Label)

	if err := m.validator.Check(req); err != nil {
		m.rejected("save", err)
		return dto.ActionResult{Message: saveRejection(err, req.Id), Page: page}
	}

	feature := &entity.Feature{
		Name:        req.Name,
		Label:       req.Label,
		ShowInLists: req.ShowInLists.Bool(),
		IsTracked:   req.IsTracked.Bool(),
	}

	repo := uow.FeatureRepository()
	var (
		action string
		err    error
	)
	if req.Id == newFeatureId {
		action = "added"
		err = dberror.Wrap("insert feature", repo.Create(ctx, feature))
	} else {
		id, parseErr := strconv.ParseUint(req.Id, 10, 0)
		if parseErr != nil {
			m.rejected("save", &validation.ValidationError{Field: "Id", Rule: "range"})
			return dto.ActionResult{Message: markup.Failure("Invalid feature ID \"%s\"", req.Id), Page: page}
		}
		feature.Id = uint(id)
		action = "updated"
		err = dberror.Wrap("update feature", repo.Update(ctx, feature))
	}

	if err != nil {
		m.failed("save", err, map[string]interface{}{"id": req.Id, "name": feature.Name})
		return dto.ActionResult{Message: markup.Failure("(%s) DB Error: %s.", feature.Name, err), Page: page}
	}

	labelSuffix := ""
	if feature.Label != "" {
		labelSuffix = " (" + feature.Label + ")"
	}

	m.logger.Info(module, "Feature "+action, map[string]interface{}{"id": feature.Id, "name": feature.Name})
	m.metrics.Observe(entityName, "save", metrics.OutcomeOK)
	m.publisher.PublishFeatureSaved(ctx, feature, action)

	return dto.ActionResult{Message: markup.Success("%s%s successfully %s.", feature.Name, labelSuffix, action), Page: page}
}

// Delete removes a feature by id. Name is only echoed in the message.
// Usage history for the feature goes with it.
func (m *Manager) Delete(ctx context.Context, uow unitofwork.UnitOfWork, req dto.DeleteFeatureRequest) dto.ActionResult {
	rejection := dto.ActionResult{Message: markup.Failure("Request to delete a feature has failed validation."), Page: 1}

	if err := m.validator.Check(req); err != nil {
		m.rejected("delete", err)
		return rejection
	}
	id, err := strconv.ParseUint(req.Id, 10, 0)
	if err != nil {
		m.rejected("delete", &validation.ValidationError{Field: "Id", Rule: "range"})
		return rejection
	}

	page := pageOrDefault(req.Page)
	name := strings.TrimSpace(*req.Name)

	if err := dberror.Wrap("delete feature", uow.FeatureRepository().Delete(ctx, uint(id))); err != nil {
		m.failed("delete", err, map[string]interface{}{"id": id})
		return dto.ActionResult{Message: markup.Failure("ID %d: %s, DB Error: %s.", id, name, err), Page: page}
	}

	m.logger.Info(module, "Feature deleted", map[string]interface{}{"id": id, "name": name})
	m.metrics.Observe(entityName, "delete", metrics.OutcomeOK)
	m.publisher.PublishFeatureDeleted(ctx, uint(id), name)

	return dto.ActionResult{Message: markup.Success("Successfully deleted ID %d: %s", id, name), Page: page}
}

// ToggleSingle writes one flag column of one feature.
func (m *Manager) ToggleSingle(ctx context.Context, uow unitofwork.UnitOfWork, req dto.ToggleFeatureRequest) dto.ToggleResult {
	const rejection = "Validation failed for checkbox toggle."

	if err := m.validator.Check(req); err != nil {
		m.rejected("toggle", err)
		return dto.ToggleResult{Message: rejection}
	}
	id, err := strconv.ParseUint(req.Id, 10, 0)
	if err != nil {
		m.rejected("toggle", &validation.ValidationError{Field: "Id", Rule: "range"})
		return dto.ToggleResult{Message: rejection}
	}
	column, _ := entity.ParseFlagColumn(req.Col)
	value := req.State == "1"

	if err := dberror.Wrap("update feature flag", uow.FeatureRepository().UpdateFlag(ctx, uint(id), column, mapper.FlagValue(value))); err != nil {
		m.failed("toggle", err, map[string]interface{}{"id": id, "column": column.String()})
		return dto.ToggleResult{Message: "DB Error: " + err.Error() + "."}
	}

	m.logger.Info(module, "Feature flag toggled", map[string]interface{}{"id": id, "column": column.String(), "value": value})
	m.metrics.Observe(entityName, "toggle", metrics.OutcomeOK)
	m.publisher.PublishFeatureFlagToggled(ctx, uint(id), column, value)

	return dto.ToggleResult{Message: toggleOK}
}

// ToggleBulk writes one flag column on exactly the rows listed on the given
// page under the given search, in a single statement. Page must be a
// positive int; unlike List it is never coerced.
func (m *Manager) ToggleBulk(ctx context.Context, uow unitofwork.UnitOfWork, req dto.TogglePageRequest) dto.ToggleResult {
	const rejection = "Validation failed for check/uncheck column"

	if err := m.validator.Check(req); err != nil {
		m.rejected("toggle_page", err)
		return dto.ToggleResult{Message: rejection}
	}
	page, err := strconv.Atoi(req.Page)
	if err != nil || page < 1 {
		m.rejected("toggle_page", &validation.ValidationError{Field: "Page", Rule: "range"})
		return dto.ToggleResult{Message: rejection}
	}
	column, _ := entity.ParseFlagColumn(req.Col)
	value := req.Val == "1"
	search := *req.Search

	specs := append(
		[]specification.Specification{specification.NameSearch(search)},
		specification.PageOf(FirstRow(page, m.rowsPerPage), m.rowsPerPage)...,
	)

	rows, err := uow.FeatureRepository().UpdateFlagWhere(ctx, column, mapper.FlagValue(value), specs...)
	if err != nil {
		err = dberror.Wrap("update feature page", err)
		m.failed("toggle_page", err, map[string]interface{}{"column": column.String(), "page": page, "search": search})
		return dto.ToggleResult{Message: "DB Error: " + err.Error() + "."}
	}

	m.logger.Info(module, "Feature page toggled", map[string]interface{}{
		"column": column.String(),
		"value":  value,
		"page":   page,
		"search": search,
		"rows":   rows,
	})
	m.metrics.Observe(entityName, "toggle_page", metrics.OutcomeOK)
	m.metrics.RowsToggled(column.String(), rows)
	m.publisher.PublishFeaturePageToggled(ctx, column, value, page, search, rows)

	return dto.ToggleResult{Message: toggleOK}
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
	if errors.As(err, &verr) && verr.Field == "Name" {
		return markup.Failure("Feature name cannot be blank")
	}
	return markup.Failure("Invalid feature ID \"%s\"", rawId)
}

// pageOrDefault parses a page number, falling back to 1 for anything that is
// not a positive run of digits. Digit runs too large for int become maxPage.
func pageOrDefault(raw string) int {
	if !validation.IsDigits(raw) {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return maxPage
	}
	if page < 1 {
		return 1
	}
	return page
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
