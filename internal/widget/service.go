// Package widget wraps the backend widget API and provides the typed
// extraction and formatting helpers used to render widget cards. There is
// deliberately no client-side cache or validation here: cached/expires_at
// are server-reported hints and config rules live server-side.
package widget

import (
	"context"

	"go.uber.org/zap"

	"github.com/dyike/widgetchat/internal/api"
	"github.com/dyike/widgetchat/internal/models"
)

// Service is a passthrough to the widget endpoints.
type Service struct {
	client *api.Client
	userID string
	logger *zap.Logger
}

func NewService(client *api.Client, userID string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{client: client, userID: userID, logger: logger}
}

// ListTypes returns the advertised widget types.
func (s *Service) ListTypes(ctx context.Context) ([]string, error) {
	return s.client.ListWidgetTypes(ctx)
}

// DefaultConfig returns the server default config for a widget type.
func (s *Service) DefaultConfig(ctx context.Context, widgetType string) (*models.WidgetConfig, error) {
	return s.client.GetDefaultConfig(ctx, widgetType)
}

// ValidateConfig asks the server whether cfg is valid for widgetType.
func (s *Service) ValidateConfig(ctx context.Context, widgetType string, cfg models.WidgetConfig) (bool, error) {
	return s.client.ValidateConfig(ctx, widgetType, cfg)
}

// CreateConfig stores a configuration under the service's user.
func (s *Service) CreateConfig(ctx context.Context, widgetType string, cfg models.WidgetConfig) (*models.WidgetConfigRecord, error) {
	return s.client.CreateConfig(ctx, models.WidgetConfigCreateRequest{
		WidgetType: widgetType,
		UserID:     s.userID,
		Config:     cfg,
	})
}

// ListConfigs fetches stored configurations, optionally filtered by type.
// Passing mine restricts to the service's user.
func (s *Service) ListConfigs(ctx context.Context, widgetType string, mine bool) ([]models.WidgetConfigRecord, error) {
	userID := ""
	if mine {
		userID = s.userID
	}
	return s.client.ListConfigs(ctx, userID, widgetType)
}

// GetConfig fetches one stored configuration.
func (s *Service) GetConfig(ctx context.Context, configID int) (*models.WidgetConfigRecord, error) {
	return s.client.GetConfig(ctx, configID)
}

// UpdateConfig replaces a stored configuration.
func (s *Service) UpdateConfig(ctx context.Context, configID int, cfg models.WidgetConfig) (*models.WidgetConfigRecord, error) {
	return s.client.UpdateConfig(ctx, configID, cfg)
}

// DeleteConfig removes a stored configuration.
func (s *Service) DeleteConfig(ctx context.Context, configID int) error {
	return s.client.DeleteConfig(ctx, configID)
}

// FetchData requests widget data for a type and params.
func (s *Service) FetchData(ctx context.Context, widgetType string, params map[string]any) (*models.WidgetDataResponse, error) {
	if params == nil {
		params = map[string]any{}
	}
	return s.client.FetchWidgetData(ctx, models.WidgetDataRequest{
		WidgetType: widgetType,
		Params:     params,
	})
}

// Refresh requests server-side recomputation of a widget. Ack-only: the
// caller re-fetches the owning session to see updated content.
func (s *Service) Refresh(ctx context.Context, widgetID string, force bool) error {
	s.logger.Debug("widget refresh", zap.String("widget_id", widgetID), zap.Bool("force", force))
	return s.client.RefreshWidget(ctx, widgetID, force)
}

// ClearCache clears the server widget cache, optionally for one type.
func (s *Service) ClearCache(ctx context.Context, widgetType string) error {
	return s.client.ClearWidgetCache(ctx, widgetType)
}
