// internal/domain/entity/watchlist.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Trend classifications over the most recent price snapshots
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// PriceSnapshot is one observed price with its observation time
type PriceSnapshot struct {
	Price      float64   `json:"price" bson:"price"`
	RecordedAt time.Time `json:"recordedAt" bson:"recordedAt"`
}

// WatchlistEntry wraps one offer a user chose to track. The snapshot
// history is append-only and seeded with the offer's price at add-time,
// so it is never empty for a live entry.
type WatchlistEntry struct {
	ID            string          `json:"id" bson:"id"`
	OwnerID       string          `json:"ownerId" bson:"ownerId"`
	Offer         FlightOffer     `json:"offer" bson:"offer"`
	InitialPrice  float64         `json:"initialPrice" bson:"initialPrice"`
	TargetPrice   *float64        `json:"targetPrice,omitempty" bson:"targetPrice,omitempty"`
	AlertsEnabled bool            `json:"alertsEnabled" bson:"alertsEnabled"`
	Note          string          `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt     time.Time       `json:"createdAt" bson:"createdAt"`
	LastCheckedAt time.Time       `json:"lastCheckedAt" bson:"lastCheckedAt"`
	PriceHistory  []PriceSnapshot `json:"priceHistory" bson:"priceHistory"`
}

// NewWatchlistEntry creates an entry for the given offer with alerts on,
// seeding the history with the offer's current price
func NewWatchlistEntry(ownerID string, offer FlightOffer, targetPrice *float64, note string) *WatchlistEntry {
	now := time.Now().UTC()
	return &WatchlistEntry{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Offer:         offer,
		InitialPrice:  offer.Price,
		TargetPrice:   targetPrice,
		AlertsEnabled: true,
		Note:          note,
		CreatedAt:     now,
		LastCheckedAt: now,
		PriceHistory:  []PriceSnapshot{{Price: offer.Price, RecordedAt: now}},
	}
}

// CurrentPrice returns the most recently observed price
func (e *WatchlistEntry) CurrentPrice() float64 {
	if len(e.PriceHistory) == 0 {
		return e.InitialPrice
	}
	return e.PriceHistory[len(e.PriceHistory)-1].Price
}

// PriceChangePercentage returns the change from the initial price in
// percent. A zero initial price yields zero rather than dividing by it.
func (e *WatchlistEntry) PriceChangePercentage() float64 {
	if e.InitialPrice == 0 {
		return 0
	}
	return (e.CurrentPrice() - e.InitialPrice) / e.InitialPrice * 100
}

// RecordPrice appends a snapshot and advances the last-checked timestamp.
// LastCheckedAt never moves backwards.
func (e *WatchlistEntry) RecordPrice(price float64, at time.Time) {
	e.PriceHistory = append(e.PriceHistory, PriceSnapshot{Price: price, RecordedAt: at})
	if at.After(e.LastCheckedAt) {
		e.LastCheckedAt = at
	}
}

// Trend classifies the movement over the last three snapshots: strictly
// increasing, strictly decreasing, or stable. Fewer than two snapshots is
// always stable.
func (e *WatchlistEntry) Trend() string {
	history := e.PriceHistory
	if len(history) > 3 {
		history = history[len(history)-3:]
	}
	if len(history) < 2 {
		return TrendStable
	}

	increasing := true
	decreasing := true
	for i := 1; i < len(history); i++ {
		if history[i].Price <= history[i-1].Price {
			increasing = false
		}
		if history[i].Price >= history[i-1].Price {
			decreasing = false
		}
	}

	switch {
	case increasing:
		return TrendIncreasing
	case decreasing:
		return TrendDecreasing
	default:
		return TrendStable
	}
}
