package models

import (
	"encoding/json"
	"time"
)

// Widget type tags as emitted by the backend widget registry.
const (
	WidgetTypeWeather             = "weather"
	WidgetTypeStock               = "stock"
	WidgetTypeNews                = "news"
	WidgetTypeClock               = "clock"
	WidgetTypeTopStocks           = "top_stocks"
	WidgetTypeCustom              = "custom"
	WidgetTypeBankingAccounts     = "banking_accounts"
	WidgetTypeBankingTransactions = "banking_transactions"
	WidgetTypeBankingPayments     = "banking_payments"
	WidgetTypeBankingOffers       = "banking_offers"
	WidgetTypeBankingBanker       = "banking_banker"
)

// Widget sizes and themes accepted by the backend validators.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"

	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeAuto  = "auto"
)

// Widget is a typed data card attached to an assistant message. Data stays
// raw here; the type tag decides which payload struct it decodes into (see
// the widget package extraction helpers). The client never mutates a widget,
// refresh and configure produce a fresh server response instead.
type Widget struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Title    string          `json:"title"`
	Data     json.RawMessage `json:"data"`
	Config   WidgetConfig    `json:"config"`
	Actions  []WidgetAction  `json:"actions,omitempty"`
	Metadata *WidgetMetadata `json:"metadata,omitempty"`
}

// WidgetAction is a user-invocable action advertised by the server.
type WidgetAction struct {
	Type        string `json:"type"`
	Label       string `json:"label,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
}

// WidgetMetadata carries provenance for a rendered widget.
type WidgetMetadata struct {
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
	Source    string `json:"source,omitempty"`
	Version   string `json:"version,omitempty"`
}

// WidgetConfig is the typed portion of a widget configuration plus an open
// extras map for type-specific keys the client does not interpret
// (showForecast, chartType, limit, ...). The server validates; the client
// round-trips extras untouched.
type WidgetConfig struct {
	Size            string `json:"size,omitempty"`
	Theme           string `json:"theme,omitempty"`
	RefreshInterval int    `json:"refreshInterval,omitempty"`

	Extra map[string]any `json:"-"`
}

type widgetConfigKnown struct {
	Size            string `json:"size,omitempty"`
	Theme           string `json:"theme,omitempty"`
	RefreshInterval int    `json:"refreshInterval,omitempty"`
}

func (c *WidgetConfig) UnmarshalJSON(data []byte) error {
	var known widgetConfigKnown
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	delete(all, "size")
	delete(all, "theme")
	delete(all, "refreshInterval")

	c.Size = known.Size
	c.Theme = known.Theme
	c.RefreshInterval = known.RefreshInterval
	if len(all) > 0 {
		c.Extra = all
	} else {
		c.Extra = nil
	}
	return nil
}

func (c WidgetConfig) MarshalJSON() ([]byte, error) {
	merged := make(map[string]any, len(c.Extra)+3)
	for k, v := range c.Extra {
		merged[k] = v
	}
	if c.Size != "" {
		merged["size"] = c.Size
	}
	if c.Theme != "" {
		merged["theme"] = c.Theme
	}
	if c.RefreshInterval != 0 {
		merged["refreshInterval"] = c.RefreshInterval
	}
	return json.Marshal(merged)
}

// WidgetConfigRecord is a stored configuration row from the server CRUD
// endpoints, distinct from the inline config on a rendered widget.
type WidgetConfigRecord struct {
	ID         int          `json:"id"`
	WidgetType string       `json:"widget_type"`
	UserID     string       `json:"user_id,omitempty"`
	Config     WidgetConfig `json:"config"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// WidgetConfigCreateRequest is the body of POST /widgets/config.
type WidgetConfigCreateRequest struct {
	WidgetType string       `json:"widget_type"`
	UserID     string       `json:"user_id,omitempty"`
	Config     WidgetConfig `json:"config"`
}

// WidgetDataRequest is the body of POST /widgets/data.
type WidgetDataRequest struct {
	WidgetType string         `json:"widget_type"`
	Params     map[string]any `json:"params"`
}

// WidgetDataResponse wraps a freshly generated (or server-cached) widget.
// Cached and ExpiresAt are server-reported hints; the client keeps no cache
// of its own.
type WidgetDataResponse struct {
	WidgetData json.RawMessage `json:"widget_data"`
	Cached     bool            `json:"cached"`
	ExpiresAt  *time.Time      `json:"expires_at,omitempty"`
}

// WidgetRefreshRequest is the body of POST /widgets/refresh.
type WidgetRefreshRequest struct {
	WidgetID     string `json:"widget_id"`
	ForceRefresh bool   `json:"force_refresh"`
}

// ValidateResponse is the body returned by POST /widgets/types/{type}/validate.
type ValidateResponse struct {
	Valid bool `json:"valid"`
}

// AckResponse is the generic {"message": ...} acknowledgment the backend
// returns for deletes, refreshes and cache clears.
type AckResponse struct {
	Message string `json:"message"`
}
