package widget

import (
	"encoding/json"
	"testing"

	"github.com/dyike/widgetchat/internal/models"
)

func weatherWidget(t *testing.T) *models.Widget {
	t.Helper()
	data, err := json.Marshal(map[string]any{
		"location": map[string]any{"name": "Paris", "country": "FR"},
		"current":  map[string]any{"temperature": 18.5, "feels_like": 17.0, "description": "light rain", "icon": "10d"},
		"details":  map[string]any{"humidity": 80, "pressure": 1012, "wind_speed": 4.2},
		"mock":     true,
	})
	if err != nil {
		t.Fatal(err)
	}
	return &models.Widget{ID: "w-1", Type: models.WidgetTypeWeather, Title: "Weather in Paris", Data: data}
}

func TestExtractWeather(t *testing.T) {
	data, ok := ExtractWeather(weatherWidget(t))
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if data.Location.Name != "Paris" || data.Location.Country != "FR" {
		t.Errorf("unexpected location %+v", data.Location)
	}
	if data.Current.Temperature != 18.5 {
		t.Errorf("unexpected temperature %v", data.Current.Temperature)
	}
	if !data.Mock {
		t.Error("mock flag lost in extraction")
	}
}

func TestExtractRejectsTypeMismatch(t *testing.T) {
	w := weatherWidget(t)
	if _, ok := ExtractStock(w); ok {
		t.Error("stock extraction must fail on a weather widget")
	}
	if _, ok := ExtractClock(w); ok {
		t.Error("clock extraction must fail on a weather widget")
	}
}

func TestExtractRejectsNilAndEmpty(t *testing.T) {
	if _, ok := ExtractWeather(nil); ok {
		t.Error("nil widget must not extract")
	}
	empty := &models.Widget{ID: "w-2", Type: models.WidgetTypeWeather}
	if _, ok := ExtractWeather(empty); ok {
		t.Error("widget without data must not extract")
	}
}

func TestExtractRejectsUndecodablePayload(t *testing.T) {
	w := &models.Widget{
		ID:   "w-3",
		Type: models.WidgetTypeWeather,
		Data: json.RawMessage(`"not an object`),
	}
	if _, ok := ExtractWeather(w); ok {
		t.Error("malformed payload must not extract")
	}
}

func TestExtractStock(t *testing.T) {
	data, err := json.Marshal(map[string]any{
		"symbol":       "AAPL",
		"company_name": "Apple Inc.",
		"price":        map[string]any{"current": 231.5, "open": 229.0, "previous_close": 228.6},
		"change":       map[string]any{"amount": 2.9, "percentage": 1.27, "is_positive": true, "formatted": "+2.90 (+1.27%)"},
		"range":        map[string]any{"high": 232.1, "low": 228.4},
		"volume":       51234567,
	})
	if err != nil {
		t.Fatal(err)
	}
	w := &models.Widget{ID: "w-4", Type: models.WidgetTypeStock, Data: data}

	stock, ok := ExtractStock(w)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if stock.Symbol != "AAPL" || stock.Price.Current != 231.5 {
		t.Errorf("unexpected stock %+v", stock)
	}
	if !stock.Change.IsPositive || stock.Change.Percentage != 1.27 {
		t.Errorf("unexpected change %+v", stock.Change)
	}
	if stock.Volume != 51234567 {
		t.Errorf("unexpected volume %d", stock.Volume)
	}
}

func TestExtractBankingAccounts(t *testing.T) {
	data, err := json.Marshal(map[string]any{
		"accounts": []map[string]any{
			{"name": "Everyday Checking", "type": "checking", "balance": 2500.75, "currency": "USD", "is_positive": true},
		},
		"summary": map[string]any{"total_balance": 2500.75, "total_accounts": 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	w := &models.Widget{ID: "w-5", Type: models.WidgetTypeBankingAccounts, Data: data}

	banking, ok := ExtractBankingAccounts(w)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if len(banking.Accounts) != 1 || banking.Accounts[0].Name != "Everyday Checking" {
		t.Errorf("unexpected accounts %+v", banking.Accounts)
	}
	if banking.Summary.TotalAccounts != 1 {
		t.Errorf("unexpected summary %+v", banking.Summary)
	}

	// Same payload under the wrong banking tag must not extract.
	w.Type = models.WidgetTypeBankingTransactions
	if _, ok := ExtractBankingAccounts(w); ok {
		t.Error("accounts extraction must fail on a transactions widget")
	}
}
