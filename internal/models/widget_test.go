package models

import (
	"encoding/json"
	"testing"
)

func TestWidgetConfigKeepsUnknownKeys(t *testing.T) {
	raw := []byte(`{"size": "large", "theme": "dark", "refreshInterval": 300, "showForecast": true, "limit": 5}`)

	var cfg WidgetConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Size != "large" || cfg.Theme != "dark" || cfg.RefreshInterval != 300 {
		t.Fatalf("known keys misparsed: %+v", cfg)
	}
	if cfg.Extra["showForecast"] != true {
		t.Errorf("type-specific key lost: %v", cfg.Extra)
	}
	if cfg.Extra["limit"] != float64(5) {
		t.Errorf("numeric extra lost: %v", cfg.Extra)
	}

	out, err := json.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	var roundTripped map[string]any
	if err := json.Unmarshal(out, &roundTripped); err != nil {
		t.Fatal(err)
	}
	if roundTripped["size"] != "large" || roundTripped["showForecast"] != true {
		t.Errorf("round trip dropped keys: %v", roundTripped)
	}
}

func TestWidgetConfigOmitsZeroKnownKeys(t *testing.T) {
	out, err := json.Marshal(WidgetConfig{Extra: map[string]any{"chartType": "line"}})
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["size"]; ok {
		t.Error("empty size must be omitted")
	}
	if _, ok := m["refreshInterval"]; ok {
		t.Error("zero refreshInterval must be omitted")
	}
	if m["chartType"] != "line" {
		t.Errorf("extra key lost: %v", m)
	}
}

func TestWidgetDecodesWithRawPayload(t *testing.T) {
	raw := []byte(`{
		"id": "w-1",
		"type": "weather",
		"title": "Weather in Paris",
		"data": {"location": {"name": "Paris"}},
		"config": {"size": "medium"},
		"metadata": {"source": "mock"}
	}`)

	var w Widget
	if err := json.Unmarshal(raw, &w); err != nil {
		t.Fatal(err)
	}
	if w.Type != WidgetTypeWeather || w.Config.Size != SizeMedium {
		t.Fatalf("widget misparsed: %+v", w)
	}
	if w.Metadata == nil || w.Metadata.Source != "mock" {
		t.Errorf("metadata misparsed: %+v", w.Metadata)
	}
	// Payload stays raw until an extraction helper decodes it.
	var payload struct {
		Location struct {
			Name string `json:"name"`
		} `json:"location"`
	}
	if err := json.Unmarshal(w.Data, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Location.Name != "Paris" {
		t.Errorf("raw payload corrupted: %s", w.Data)
	}
}
