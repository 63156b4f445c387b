package widget

import (
	"testing"
	"time"
)

func TestFormatTemperature(t *testing.T) {
	tests := []struct {
		celsius float64
		unit    string
		want    string
	}{
		{20, UnitCelsius, "20.0°C"},
		{20, UnitFahrenheit, "68.0°F"},
		{-5.55, UnitCelsius, "-5.5°C"},
		{0, UnitFahrenheit, "32.0°F"},
		{18.5, "kelvin", "18.5°C"},
	}
	for _, tt := range tests {
		if got := FormatTemperature(tt.celsius, tt.unit); got != tt.want {
			t.Errorf("FormatTemperature(%v, %q) = %q, want %q", tt.celsius, tt.unit, got, tt.want)
		}
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   float64
		currency string
		want     string
	}{
		{1234.56, "USD", "$1,234.56"},
		{1234567.891, "USD", "$1,234,567.89"},
		{-42.5, "USD", "-$42.50"},
		{0, "EUR", "€0.00"},
		{999, "GBP", "£999.00"},
		{100, "SEK", "SEK 100.00"},
		{5, "", "$5.00"},
	}
	for _, tt := range tests {
		if got := FormatCurrency(tt.amount, tt.currency); got != tt.want {
			t.Errorf("FormatCurrency(%v, %q) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{1.25, "+1.25%"},
		{-0.4, "-0.40%"},
		{0, "+0.00%"},
		{12.345, "+12.35%"},
	}
	for _, tt := range tests {
		if got := FormatPercent(tt.value); got != tt.want {
			t.Errorf("FormatPercent(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		elapsed time.Duration
		want    string
	}{
		{59 * time.Second, "Just now"},
		{61 * time.Second, "1m ago"},
		{45 * time.Minute, "45m ago"},
		{time.Hour + time.Minute, "1h ago"},
		{23 * time.Hour, "23h ago"},
		{26 * time.Hour, "1d ago"},
		{72 * time.Hour, "3d ago"},
	}
	for _, tt := range tests {
		if got := FormatRelativeTime(now.Add(-tt.elapsed), now); got != tt.want {
			t.Errorf("FormatRelativeTime(-%v) = %q, want %q", tt.elapsed, got, tt.want)
		}
	}
}

func TestWeatherIconURL(t *testing.T) {
	if got := WeatherIconURL("10n"); got != "https://openweathermap.org/img/wn/10n@2x.png" {
		t.Errorf("unexpected icon url %q", got)
	}
	if got := WeatherIconURL(""); got != "https://openweathermap.org/img/wn/01d@2x.png" {
		t.Errorf("empty code should fall back to 01d, got %q", got)
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text stays", "plain text stays"},
		{"<p>Hello <b>world</b></p>", "Hello world"},
		{"<div>line one</div><div>line two</div>", "line one line two"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripHTML(tt.in); got != tt.want {
			t.Errorf("StripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
