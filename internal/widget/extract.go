package widget

import (
	"encoding/json"

	"github.com/dyike/widgetchat/internal/models"
)

// Extraction helpers decode a widget's raw payload into its typed shape.
// Each returns false when the widget's type tag does not match or the
// payload does not decode, guarding against tag/payload mismatch instead of
// trusting the tag blindly.

func extract[T any](w *models.Widget, widgetType string) (*T, bool) {
	if w == nil || w.Type != widgetType || len(w.Data) == 0 {
		return nil, false
	}
	var payload T
	if err := json.Unmarshal(w.Data, &payload); err != nil {
		return nil, false
	}
	return &payload, true
}

func ExtractWeather(w *models.Widget) (*models.WeatherData, bool) {
	return extract[models.WeatherData](w, models.WidgetTypeWeather)
}

func ExtractStock(w *models.Widget) (*models.StockData, bool) {
	return extract[models.StockData](w, models.WidgetTypeStock)
}

func ExtractNews(w *models.Widget) (*models.NewsData, bool) {
	return extract[models.NewsData](w, models.WidgetTypeNews)
}

func ExtractClock(w *models.Widget) (*models.ClockData, bool) {
	return extract[models.ClockData](w, models.WidgetTypeClock)
}

func ExtractTopStocks(w *models.Widget) (*models.TopStocksData, bool) {
	return extract[models.TopStocksData](w, models.WidgetTypeTopStocks)
}

func ExtractBankingAccounts(w *models.Widget) (*models.BankingAccountsData, bool) {
	return extract[models.BankingAccountsData](w, models.WidgetTypeBankingAccounts)
}

func ExtractBankingTransactions(w *models.Widget) (*models.BankingTransactionsData, bool) {
	return extract[models.BankingTransactionsData](w, models.WidgetTypeBankingTransactions)
}

func ExtractBankingPayments(w *models.Widget) (*models.BankingPaymentsData, bool) {
	return extract[models.BankingPaymentsData](w, models.WidgetTypeBankingPayments)
}

func ExtractBankingOffers(w *models.Widget) (*models.BankingOffersData, bool) {
	return extract[models.BankingOffersData](w, models.WidgetTypeBankingOffers)
}

func ExtractBankingBanker(w *models.Widget) (*models.BankingBankerData, bool) {
	return extract[models.BankingBankerData](w, models.WidgetTypeBankingBanker)
}
