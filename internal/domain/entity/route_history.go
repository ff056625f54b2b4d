// internal/domain/entity/route_history.go
package entity

import (
	"fmt"
	"strings"
	"time"
)

// PricePoint is one price observed for a route in a search result
type PricePoint struct {
	Price      float64   `json:"price" bson:"price"`
	Currency   string    `json:"currency" bson:"currency"`
	Carrier    string    `json:"carrier,omitempty" bson:"carrier,omitempty"`
	CabinClass string    `json:"cabinClass,omitempty" bson:"cabinClass,omitempty"`
	RecordedAt time.Time `json:"recordedAt" bson:"recordedAt"`
}

// RoutePriceHistory buckets every price ever seen for one
// origin/destination/departure-date triple across searches
type RoutePriceHistory struct {
	RouteKey      string       `json:"routeKey" bson:"routeKey"`
	Origin        string       `json:"origin" bson:"origin"`
	Destination   string       `json:"destination" bson:"destination"`
	DepartureDate string       `json:"departureDate" bson:"departureDate"`
	PricePoints   []PricePoint `json:"pricePoints" bson:"pricePoints"`
}

// RouteKeyFor builds the composite bucket key, e.g. "JFK:LAX:2026-09-14".
// The departure date is the "2006-01-02" form.
func RouteKeyFor(origin, destination, departureDate string) string {
	return fmt.Sprintf("%s:%s:%s", strings.ToUpper(origin), strings.ToUpper(destination), departureDate)
}

// NewRoutePriceHistory creates an empty bucket for a route
func NewRoutePriceHistory(origin, destination, departureDate string) *RoutePriceHistory {
	return &RoutePriceHistory{
		RouteKey:      RouteKeyFor(origin, destination, departureDate),
		Origin:        strings.ToUpper(origin),
		Destination:   strings.ToUpper(destination),
		DepartureDate: departureDate,
	}
}

// Append adds a price point to the bucket
func (h *RoutePriceHistory) Append(p PricePoint) {
	h.PricePoints = append(h.PricePoints, p)
}

// CurrentPrice returns the last observed price, zero when empty
func (h *RoutePriceHistory) CurrentPrice() float64 {
	if len(h.PricePoints) == 0 {
		return 0
	}
	return h.PricePoints[len(h.PricePoints)-1].Price
}

// LowestPrice returns the minimum over all points, zero when empty
func (h *RoutePriceHistory) LowestPrice() float64 {
	if len(h.PricePoints) == 0 {
		return 0
	}
	lowest := h.PricePoints[0].Price
	for _, p := range h.PricePoints[1:] {
		if p.Price < lowest {
			lowest = p.Price
		}
	}
	return lowest
}

// HighestPrice returns the maximum over all points, zero when empty
func (h *RoutePriceHistory) HighestPrice() float64 {
	if len(h.PricePoints) == 0 {
		return 0
	}
	highest := h.PricePoints[0].Price
	for _, p := range h.PricePoints[1:] {
		if p.Price > highest {
			highest = p.Price
		}
	}
	return highest
}

// AveragePrice returns the arithmetic mean over all points, zero when empty
func (h *RoutePriceHistory) AveragePrice() float64 {
	if len(h.PricePoints) == 0 {
		return 0
	}
	var sum float64
	for _, p := range h.PricePoints {
		sum += p.Price
	}
	return sum / float64(len(h.PricePoints))
}

// PriceChangePercentage returns the change from the first to the last
// point in percent. The second return is false when the bucket is empty
// or the first price is zero.
func (h *RoutePriceHistory) PriceChangePercentage() (float64, bool) {
	if len(h.PricePoints) == 0 {
		return 0, false
	}
	first := h.PricePoints[0].Price
	if first == 0 {
		return 0, false
	}
	last := h.PricePoints[len(h.PricePoints)-1].Price
	return (last - first) / first * 100, true
}
