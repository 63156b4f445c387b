package api

import (
	"context"
	"fmt"

	"github.com/dyike/widgetchat/internal/models"
)

// ListWidgetTypes returns the widget types the backend registry advertises.
// The list is advisory: assistant messages may carry types beyond it
// (banking widgets, top stocks).
func (c *Client) ListWidgetTypes(ctx context.Context) ([]string, error) {
	var types []string
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&types).
		Get("/widgets/types")
	if err != nil {
		return nil, fmt.Errorf("list widget types: %w", err)
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return types, nil
}

// GetDefaultConfig returns the server-side default config for a widget type.
func (c *Client) GetDefaultConfig(ctx context.Context, widgetType string) (*models.WidgetConfig, error) {
	var cfg models.WidgetConfig
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&cfg).
		Get(fmt.Sprintf("/widgets/types/%s/config", widgetType))
	if err != nil {
		return nil, fmt.Errorf("default config for %s: %w", widgetType, err)
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidateConfig asks the server whether cfg is acceptable for widgetType.
// Validation logic lives server-side only.
func (c *Client) ValidateConfig(ctx context.Context, widgetType string, cfg models.WidgetConfig) (bool, error) {
	var result models.ValidateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(cfg).
		SetResult(&result).
		Post(fmt.Sprintf("/widgets/types/%s/validate", widgetType))
	if err != nil {
		return false, fmt.Errorf("validate config for %s: %w", widgetType, err)
	}
	if err := checkResponse(resp); err != nil {
		return false, err
	}
	return result.Valid, nil
}

// CreateConfig stores a widget configuration on the server.
func (c *Client) CreateConfig(ctx context.Context, req models.WidgetConfigCreateRequest) (*models.WidgetConfigRecord, error) {
	var record models.WidgetConfigRecord
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&record).
		Post("/widgets/config")
	if err != nil {
		return nil, fmt.Errorf("create widget config: %w", err)
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return &record, nil
}

// ListConfigs fetches stored configurations, optionally filtered by user
// and/or widget type. Empty strings mean no filter.
func (c *Client) ListConfigs(ctx context.Context, userID, widgetType string) ([]models.WidgetConfigRecord, error) {
	req := c.http.R().SetContext(ctx)
	if userID != "" {
		req.SetQueryParam("user_id", userID)
	}
	if widgetType != "" {
		req.SetQueryParam("widget_type", widgetType)
	}

	var records []models.WidgetConfigRecord
	resp, err := req.SetResult(&records).Get("/widgets/config")
	if err != nil {
		return nil, fmt.Errorf("list widget configs: %w", err)
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return records, nil
}

// GetConfig fetches one stored configuration by id.
func (c *Client) GetConfig(ctx context.Context, configID int) (*models.WidgetConfigRecord, error) {
	var record models.WidgetConfigRecord
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&record).
		Get(fmt.Sprintf("/widgets/config/%d", configID))
	if err != nil {
		return nil, fmt.Errorf("get widget config %d: %w", configID, err)
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateConfig replaces a stored configuration.
func (c *Client) UpdateConfig(ctx context.Context, configID int, cfg models.WidgetConfig) (*models.WidgetConfigRecord, error) {
	var record models.WidgetConfigRecord
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(cfg).
		SetResult(&record).
		Put(fmt.Sprintf("/widgets/config/%d", configID))
	if err != nil {
		return nil, fmt.Errorf("update widget config %d: %w", configID, err)
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteConfig removes a stored configuration.
func (c *Client) DeleteConfig(ctx context.Context, configID int) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete(fmt.Sprintf("/widgets/config/%d", configID))
	if err != nil {
		return fmt.Errorf("delete widget config %d: %w", configID, err)
	}
	return checkResponse(resp)
}

// FetchWidgetData requests fresh widget data. Cached/ExpiresAt on the
// response are server hints; the client does not cache.
func (c *Client) FetchWidgetData(ctx context.Context, req models.WidgetDataRequest) (*models.WidgetDataResponse, error) {
	var data models.WidgetDataResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&data).
		Post("/widgets/data")
	if err != nil {
		return nil, fmt.Errorf("fetch widget data: %w", err)
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}
	return &data, nil
}

// RefreshWidget asks the server to recompute a widget. It is ack-only; the
// caller must re-fetch the owning message or session to see new content.
func (c *Client) RefreshWidget(ctx context.Context, widgetID string, force bool) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(models.WidgetRefreshRequest{WidgetID: widgetID, ForceRefresh: force}).
		Post("/widgets/refresh")
	if err != nil {
		return fmt.Errorf("refresh widget %s: %w", widgetID, err)
	}
	return checkResponse(resp)
}

// ClearWidgetCache clears the server-side widget cache, optionally scoped to
// one widget type.
func (c *Client) ClearWidgetCache(ctx context.Context, widgetType string) error {
	req := c.http.R().SetContext(ctx)
	if widgetType != "" {
		req.SetQueryParam("widget_type", widgetType)
	}
	resp, err := req.Delete("/widgets/cache")
	if err != nil {
		return fmt.Errorf("clear widget cache: %w", err)
	}
	return checkResponse(resp)
}
