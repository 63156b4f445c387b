package widget

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
)

// Temperature units accepted by FormatTemperature.
const (
	UnitCelsius    = "celsius"
	UnitFahrenheit = "fahrenheit"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"CHF": "CHF ",
}

// FormatTemperature renders a celsius value in the requested unit with one
// decimal, e.g. "20.0°C" or "68.0°F". Unknown units fall back to celsius.
func FormatTemperature(celsius float64, unit string) string {
	if unit == UnitFahrenheit {
		return fmt.Sprintf("%.1f°F", celsius*9/5+32)
	}
	return fmt.Sprintf("%.1f°C", celsius)
}

// FormatCurrency renders an amount with its currency symbol, thousands
// grouping and two decimals, e.g. "$1,234.56". Unknown currency codes are
// prefixed verbatim.
func FormatCurrency(amount float64, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		if currency == "" {
			symbol = currencySymbols["USD"]
		} else {
			symbol = currency + " "
		}
	}

	d := decimal.NewFromFloat(amount).Round(2)
	negative := d.IsNegative()
	if negative {
		d = d.Neg()
	}

	fixed := d.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")
	grouped := groupThousands(intPart)

	if negative {
		return fmt.Sprintf("-%s%s.%s", symbol, grouped, fracPart)
	}
	return fmt.Sprintf("%s%s.%s", symbol, grouped, fracPart)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatPercent renders a percentage with an explicit sign and two
// decimals, e.g. "+1.25%" or "-0.40%".
func FormatPercent(value float64) string {
	d := decimal.NewFromFloat(value).Round(2)
	if d.IsNegative() {
		return d.StringFixed(2) + "%"
	}
	return "+" + d.StringFixed(2) + "%"
}

// FormatRelativeTime buckets the distance between t and now:
// under a minute "Just now", under an hour minutes, under a day hours,
// otherwise days.
func FormatRelativeTime(t, now time.Time) string {
	elapsed := now.Sub(t)
	switch {
	case elapsed < time.Minute:
		return "Just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	}
}

// WeatherIconURL builds the OpenWeatherMap icon URL for a condition code
// like "01d".
func WeatherIconURL(code string) string {
	if code == "" {
		code = "01d"
	}
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", code)
}

// StripHTML flattens HTML fragments in news descriptions to plain text.
// Returns the input unchanged if it does not parse.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
