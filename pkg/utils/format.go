package utils

import (
	"fmt"
	"strings"
)

// Date layout used for departure dates throughout the service
const DATE_LAYOUT = "2006-01-02"

// Currency symbols for the currencies the offer sources quote in
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"IDR": "Rp",
	"SGD": "S$",
	"AUD": "A$",
}

// FormatPrice renders a price with its currency symbol, e.g. "$289.99"
func FormatPrice(price float64, currency string) string {
	symbol, ok := currencySymbols[strings.ToUpper(currency)]
	if !ok {
		return fmt.Sprintf("%.2f %s", price, strings.ToUpper(currency))
	}
	return fmt.Sprintf("%s%.2f", symbol, price)
}

// FormatDuration renders a flight duration in minutes as "5h 20m"
func FormatDuration(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	h := minutes / 60
	m := minutes % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// FormatRoute renders an origin/destination pair as "JFK → LAX"
func FormatRoute(origin, destination string) string {
	return fmt.Sprintf("%s → %s", strings.ToUpper(origin), strings.ToUpper(destination))
}

// FormatStops renders a stop count as "non-stop", "1 stop" or "n stops"
func FormatStops(stops int) string {
	switch {
	case stops <= 0:
		return "non-stop"
	case stops == 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", stops)
	}
}
