package events

import (
	"context"

	"licensewatch-admin/internal/entity"
	"licensewatch-admin/internal/pkg/logger"
	pkgEvents "licensewatch-admin/pkg/events"
	pktNats "licensewatch-admin/pkg/nats"
)

const (
	FeatureSaved       = "FEATURE_SAVED"
	FeatureDeleted     = "FEATURE_DELETED"
	FeatureFlagToggled = "FEATURE_FLAG_TOGGLED"
	FeaturePageToggled = "FEATURE_PAGE_TOGGLED"
	ServerSaved        = "SERVER_SAVED"
	ServerDeleted      = "SERVER_DELETED"
)

// EventTypes lists every audit event the catalog emits.
var EventTypes = []string{
	FeatureSaved,
	FeatureDeleted,
	FeatureFlagToggled,
	FeaturePageToggled,
	ServerSaved,
	ServerDeleted,
}

// Publisher abstracts audit event publishing for admin operations.
// Failures are logged and never reported to the caller.
type Publisher interface {
	PublishFeatureSaved(ctx context.Context, feature *entity.Feature, action string)
	PublishFeatureDeleted(ctx context.Context, id uint, name string)
	PublishFeatureFlagToggled(ctx context.Context, id uint, column entity.FlagColumn, value bool)
	PublishFeaturePageToggled(ctx context.Context, column entity.FlagColumn, value bool, page int, search string, rows int64)
	PublishServerSaved(ctx context.Context, server *entity.Server, action string)
	PublishServerDeleted(ctx context.Context, id uint, name, label string)
}

// Sink is a transport able to carry an event: the NATS publisher or the in-process channel bus.
type Sink interface {
	Publish(ctx context.Context, event pkgEvents.Event) error
}

// AuditPublisher implements Publisher on top of a Sink.
type AuditPublisher struct {
	sink   Sink
	logger logger.ILogger
}

func NewAuditPublisher(sink Sink, logger logger.ILogger) *AuditPublisher {
	return &AuditPublisher{
		sink:   sink,
		logger: logger,
	}
}

// NewNatsPublisher creates a NATS-backed publisher. A nil NATS publisher disables publishing.
func NewNatsPublisher(publisher *pktNats.Publisher, logger logger.ILogger) *AuditPublisher {
	if publisher == nil {
		return NewAuditPublisher(nil, logger)
	}
	return NewAuditPublisher(publisher, logger)
}

func (p *AuditPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.sink == nil {
		return
	}

	if err := p.sink.Publish(ctx, pkgEvents.NewEvent(eventType, data)); err != nil {
		p.logger.Error("ADMIN", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}

// PublishFeatureSaved emits FEATURE_SAVED; action is "added" or "updated".
func (p *AuditPublisher) PublishFeatureSaved(ctx context.Context, feature *entity.Feature, action string) {
	p.publish(ctx, FeatureSaved, map[string]interface{}{
		"feature_id":    feature.Id,
		"name":          feature.Name,
		"label":         feature.Label,
		"show_in_lists": feature.ShowInLists,
		"is_tracked":    feature.IsTracked,
		"action":        action,
		"entity_type":   "feature",
	})
}

func (p *AuditPublisher) PublishFeatureDeleted(ctx context.Context, id uint, name string) {
	p.publish(ctx, FeatureDeleted, map[string]interface{}{
		"feature_id":  id,
		"name":        name,
		"entity_type": "feature",
	})
}

func (p *AuditPublisher) PublishFeatureFlagToggled(ctx context.Context, id uint, column entity.FlagColumn, value bool) {
	p.publish(ctx, FeatureFlagToggled, map[string]interface{}{
		"feature_id":  id,
		"column":      column.String(),
		"value":       value,
		"entity_type": "feature",
	})
}

func (p *AuditPublisher) PublishFeaturePageToggled(ctx context.Context, column entity.FlagColumn, value bool, page int, search string, rows int64) {
	p.publish(ctx, FeaturePageToggled, map[string]interface{}{
		"column":        column.String(),
		"value":         value,
		"page":          page,
		"search":        search,
		"rows_affected": rows,
		"entity_type":   "feature",
	})
}

func (p *AuditPublisher) PublishServerSaved(ctx context.Context, server *entity.Server, action string) {
	p.publish(ctx, ServerSaved, map[string]interface{}{
		"server_id":   server.Id,
		"name":        server.Name,
		"label":       server.Label,
		"is_active":   server.IsActive,
		"action":      action,
		"entity_type": "server",
	})
}

func (p *AuditPublisher) PublishServerDeleted(ctx context.Context, id uint, name, label string) {
	p.publish(ctx, ServerDeleted, map[string]interface{}{
		"server_id":   id,
		"name":        name,
		"label":       label,
		"entity_type": "server",
	})
}
