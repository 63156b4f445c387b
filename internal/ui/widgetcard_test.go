package ui

import (
	"encoding/json"
	"testing"
	"unicode/utf8"

	"github.com/dyike/widgetchat/internal/models"
)

func TestTruncateKeepsRunesIntact(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"abcdefgh", 5, "abcd…"},
		{"übersicht für alle", 6, "übers…"},
		{"今日の東京の天気", 4, "今日の…"},
	}
	for _, tt := range tests {
		got := truncate(tt.in, tt.n)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8: %q", tt.in, tt.n, got)
		}
	}
}

func TestIsMockFromMetadata(t *testing.T) {
	card := &cardState{widget: models.Widget{
		ID:       "w-1",
		Type:     models.WidgetTypeWeather,
		Metadata: &models.WidgetMetadata{Source: "mock"},
	}}
	if !isMock(card) {
		t.Error("metadata source mock must mark the card")
	}
}

func TestIsMockFromPayloadFlag(t *testing.T) {
	data, err := json.Marshal(map[string]any{
		"location": map[string]any{"name": "Paris"},
		"mock":     true,
	})
	if err != nil {
		t.Fatal(err)
	}
	card := &cardState{widget: models.Widget{
		ID:   "w-2",
		Type: models.WidgetTypeWeather,
		Data: data,
	}}
	if !isMock(card) {
		t.Error("payload mock flag must mark the card even without metadata")
	}
}

func TestIsMockFalseForLiveData(t *testing.T) {
	data, err := json.Marshal(map[string]any{
		"location": map[string]any{"name": "Paris"},
		"mock":     false,
	})
	if err != nil {
		t.Fatal(err)
	}
	tests := []*cardState{
		{widget: models.Widget{ID: "w-3", Type: models.WidgetTypeWeather, Data: data}},
		{widget: models.Widget{ID: "w-4", Type: models.WidgetTypeWeather, Metadata: &models.WidgetMetadata{Source: "live"}, Data: data}},
		{widget: models.Widget{ID: "w-5", Type: models.WidgetTypeWeather}},
	}
	for _, card := range tests {
		if isMock(card) {
			t.Errorf("card %s wrongly marked as mock", card.widget.ID)
		}
	}
}
