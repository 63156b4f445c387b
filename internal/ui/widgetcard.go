package ui

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dyike/widgetchat/internal/models"
	"github.com/dyike/widgetchat/internal/widget"
)

// renderCard draws one widget card with its border, title row and the
// type-specific body, overlaid with the card's loading/error state.
func (m *Model) renderCard(card *cardState, selected bool, now time.Time) string {
	style := cardStyle
	if selected {
		style = cardSelectedStyle
	}
	width := m.viewport.Width - 8
	if width < 24 {
		width = 24
	}

	title := cardTitleStyle.Render(typeIcon(card.widget.Type) + " " + card.widget.Title)
	if isMock(card) {
		title += " " + mockBadgeStyle.Render("mock")
	}

	var body string
	switch card.status {
	case cardLoading:
		body = m.spinner.View() + " refreshing..."
	case cardError:
		body = cardErrorStyle.Render("refresh failed: "+card.errMsg) + "\n" +
			cardDimStyle.Render("press r to retry")
	default:
		body = m.cardBody(card, now)
	}

	return style.Width(width).Render(title + "\n" + body)
}

// cardBody is the closed dispatch over widget types. Types we do not
// recognize render a generic fallback card.
func (m *Model) cardBody(card *cardState, now time.Time) string {
	w := &card.widget
	switch w.Type {
	case models.WidgetTypeWeather:
		if data, ok := widget.ExtractWeather(w); ok {
			return renderWeather(data)
		}
	case models.WidgetTypeStock:
		if data, ok := widget.ExtractStock(w); ok {
			return renderStock(data, now)
		}
	case models.WidgetTypeNews:
		if data, ok := widget.ExtractNews(w); ok {
			return renderNews(data, now)
		}
	case models.WidgetTypeClock:
		if data, ok := widget.ExtractClock(w); ok {
			return renderClock(data)
		}
	case models.WidgetTypeTopStocks:
		if data, ok := widget.ExtractTopStocks(w); ok {
			return renderTopStocks(data)
		}
	case models.WidgetTypeBankingAccounts:
		if data, ok := widget.ExtractBankingAccounts(w); ok {
			return renderBankingAccounts(data)
		}
	case models.WidgetTypeBankingTransactions:
		if data, ok := widget.ExtractBankingTransactions(w); ok {
			return renderBankingTransactions(data)
		}
	case models.WidgetTypeBankingPayments:
		if data, ok := widget.ExtractBankingPayments(w); ok {
			return renderBankingPayments(data)
		}
	case models.WidgetTypeBankingOffers:
		if data, ok := widget.ExtractBankingOffers(w); ok {
			return renderBankingOffers(data)
		}
	case models.WidgetTypeBankingBanker:
		if data, ok := widget.ExtractBankingBanker(w); ok {
			return renderBankingBanker(data)
		}
	}
	return renderGeneric(w)
}

func typeIcon(widgetType string) string {
	switch widgetType {
	case models.WidgetTypeWeather:
		return "☀"
	case models.WidgetTypeStock, models.WidgetTypeTopStocks:
		return "▲"
	case models.WidgetTypeNews:
		return "■"
	case models.WidgetTypeClock:
		return "◷"
	case models.WidgetTypeBankingAccounts,
		models.WidgetTypeBankingTransactions,
		models.WidgetTypeBankingPayments,
		models.WidgetTypeBankingOffers,
		models.WidgetTypeBankingBanker:
		return "🏦"
	default:
		return "▣"
	}
}

// isMock reports whether the card shows synthetic data, signalled either by
// the widget metadata or by the payload's own mock flag.
func isMock(card *cardState) bool {
	if card.widget.Metadata != nil && card.widget.Metadata.Source == "mock" {
		return true
	}
	if len(card.widget.Data) == 0 {
		return false
	}
	var flag struct {
		Mock bool `json:"mock"`
	}
	if err := json.Unmarshal(card.widget.Data, &flag); err != nil {
		return false
	}
	return flag.Mock
}

func renderWeather(data *models.WeatherData) string {
	unit := widget.UnitCelsius
	loc := data.Location.Name
	if data.Location.Country != "" {
		loc += ", " + data.Location.Country
	}
	return fmt.Sprintf("%s  %s\n%s, feels like %s\nhumidity %.0f%% · wind %.1f m/s · pressure %.0f hPa",
		loc,
		data.Current.Description,
		widget.FormatTemperature(data.Current.Temperature, unit),
		widget.FormatTemperature(data.Current.FeelsLike, unit),
		data.Details.Humidity,
		data.Details.WindSpeed,
		data.Details.Pressure,
	)
}

func renderStock(data *models.StockData, now time.Time) string {
	change := changeStyle(data.Change.IsPositive).Render(
		widget.FormatCurrency(data.Change.Amount, "USD") + " (" + widget.FormatPercent(data.Change.Percentage) + ")",
	)
	line := fmt.Sprintf("%s  %s  %s",
		data.Symbol,
		widget.FormatCurrency(data.Price.Current, "USD"),
		change,
	)
	detail := fmt.Sprintf("open %s · high %s · low %s · vol %d",
		widget.FormatCurrency(data.Price.Open, "USD"),
		widget.FormatCurrency(data.Range.High, "USD"),
		widget.FormatCurrency(data.Range.Low, "USD"),
		data.Volume,
	)
	return line + "\n" + cardDimStyle.Render(detail) + "\n" + cardDimStyle.Render(updatedLine(data.Timestamp, now))
}

func renderNews(data *models.NewsData, now time.Time) string {
	var b strings.Builder
	limit := 5
	for i, article := range data.Articles {
		if i >= limit {
			break
		}
		b.WriteString("• " + article.Title + "\n")
		if desc := widget.StripHTML(article.Description); desc != "" {
			b.WriteString("  " + cardDimStyle.Render(truncate(desc, 100)) + "\n")
		}
		meta := article.Source
		if when, err := time.Parse(time.RFC3339, article.PublishedAt); err == nil {
			meta += " · " + widget.FormatRelativeTime(when, now)
		}
		b.WriteString("  " + cardDimStyle.Render(meta) + "\n")
	}
	if len(data.Articles) > limit {
		b.WriteString(cardDimStyle.Render(fmt.Sprintf("… %d more", len(data.Articles)-limit)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderClock(data *models.ClockData) string {
	return fmt.Sprintf("%s %s\n%s, %s (%s)",
		data.Time.Formatted12H,
		data.Time.AMPM,
		data.Date.DayOfWeek,
		data.Date.Full,
		data.Timezone,
	)
}

func renderTopStocks(data *models.TopStocksData) string {
	var b strings.Builder
	for _, entry := range data.Stocks {
		change := changeStyle(entry.Change.IsPositive).Render(widget.FormatPercent(entry.Change.Percentage))
		b.WriteString(fmt.Sprintf("%2d. %-6s %12s  %s\n",
			entry.Rank,
			entry.Symbol,
			widget.FormatCurrency(entry.Price.Current, "USD"),
			change,
		))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderBankingAccounts(data *models.BankingAccountsData) string {
	var b strings.Builder
	for _, account := range data.Accounts {
		balance := changeStyle(account.IsPositive).Render(widget.FormatCurrency(account.Balance, account.Currency))
		b.WriteString(fmt.Sprintf("%-20s %-10s %s\n", account.Name, account.Type, balance))
	}
	b.WriteString(cardDimStyle.Render(fmt.Sprintf("total %s across %d accounts",
		widget.FormatCurrency(data.Summary.TotalBalance, "USD"),
		data.Summary.TotalAccounts,
	)))
	return b.String()
}

func renderBankingTransactions(data *models.BankingTransactionsData) string {
	var b strings.Builder
	for _, tx := range data.Transactions {
		sign := "+"
		if tx.IsDebit {
			sign = "-"
		}
		amount := changeStyle(!tx.IsDebit).Render(sign + widget.FormatCurrency(abs(tx.Amount), "USD"))
		b.WriteString(fmt.Sprintf("%s  %-28s %s\n", tx.Date, truncate(tx.Description, 28), amount))
	}
	b.WriteString(cardDimStyle.Render(fmt.Sprintf("balance %s · debits %s · credits %s",
		widget.FormatCurrency(data.Summary.AccountBalance, "USD"),
		widget.FormatCurrency(data.Summary.TotalDebits, "USD"),
		widget.FormatCurrency(data.Summary.TotalCredits, "USD"),
	)))
	return b.String()
}

func renderBankingPayments(data *models.BankingPaymentsData) string {
	var b strings.Builder
	for _, method := range data.PaymentMethods {
		fee := "free"
		if !method.IsFree {
			fee = widget.FormatCurrency(method.Fee, "USD") + " fee"
		}
		marker := "  "
		if method.Recommended {
			marker = "★ "
		}
		b.WriteString(fmt.Sprintf("%s%-24s %s · %s\n", marker, method.Name, fee, method.ProcessingTime))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderBankingOffers(data *models.BankingOffersData) string {
	var b strings.Builder
	for _, offer := range data.Offers {
		validity := fmt.Sprintf("%dd left", offer.DaysRemaining)
		if offer.IsExpired {
			validity = "expired"
		}
		b.WriteString(fmt.Sprintf("%s: %s (%s)\n", offer.Title, offer.Value, validity))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderBankingBanker(data *models.BankingBankerData) string {
	var b strings.Builder
	for _, banker := range data.Bankers {
		avail := "away"
		if banker.IsAvailable {
			avail = "available"
		}
		b.WriteString(fmt.Sprintf("%s, %s (%s) · %s\n", banker.Name, banker.Title, banker.Department, avail))
		b.WriteString("  " + cardDimStyle.Render(banker.Email+" · "+banker.Phone) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderGeneric(w *models.Widget) string {
	return cardDimStyle.Render(fmt.Sprintf("unsupported widget type %q · id %s", w.Type, w.ID))
}

func updatedLine(timestamp string, now time.Time) string {
	when, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return ""
	}
	return "updated " + widget.FormatRelativeTime(when, now)
}

// truncate caps s at n runes, never splitting a multi-byte character.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
