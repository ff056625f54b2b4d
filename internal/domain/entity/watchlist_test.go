package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tpapu/FlightTrackers/internal/domain/entity"
)

func testOffer(price float64) entity.FlightOffer {
	return entity.FlightOffer{
		OfferID:      "offer-1",
		Origin:       "JFK",
		Destination:  "LAX",
		DepartureUTC: time.Date(2026, 9, 14, 8, 30, 0, 0, time.UTC),
		ArrivalUTC:   time.Date(2026, 9, 14, 11, 45, 0, 0, time.UTC),
		Price:        price,
		Currency:     "USD",
		Carrier:      "DL",
		FlightNumber: "DL404",
		CabinClass:   entity.CabinEconomy,
	}
}

func TestNewWatchlistEntry_SeedsHistory(t *testing.T) {
	entry := entity.NewWatchlistEntry("user-1", testOffer(300), nil, "")

	require.Len(t, entry.PriceHistory, 1)
	assert.Equal(t, 300.0, entry.PriceHistory[0].Price)
	assert.Equal(t, 300.0, entry.InitialPrice)
	assert.True(t, entry.AlertsEnabled)
	assert.NotEmpty(t, entry.ID)
}

func TestWatchlistEntry_PriceChangePercentage(t *testing.T) {
	entry := entity.NewWatchlistEntry("user-1", testOffer(300), nil, "")
	entry.RecordPrice(270, time.Now().UTC())

	assert.InDelta(t, -10.0, entry.PriceChangePercentage(), 0.001)
}

func TestWatchlistEntry_PriceChangePercentage_ZeroInitial(t *testing.T) {
	entry := entity.NewWatchlistEntry("user-1", testOffer(0), nil, "")
	entry.RecordPrice(270, time.Now().UTC())

	assert.Equal(t, 0.0, entry.PriceChangePercentage())
}

func TestWatchlistEntry_RecordPrice_LastCheckedMonotonic(t *testing.T) {
	entry := entity.NewWatchlistEntry("user-1", testOffer(300), nil, "")

	later := entry.LastCheckedAt.Add(time.Hour)
	entry.RecordPrice(290, later)
	require.Equal(t, later, entry.LastCheckedAt)

	// A snapshot carrying an older timestamp must not move the clock back
	entry.RecordPrice(280, later.Add(-30*time.Minute))
	assert.Equal(t, later, entry.LastCheckedAt)
	assert.Len(t, entry.PriceHistory, 3)
}

func TestWatchlistEntry_Trend(t *testing.T) {
	cases := []struct {
		name   string
		prices []float64
		want   string
	}{
		{"strictly decreasing", []float64{100, 90, 80}, entity.TrendDecreasing},
		{"strictly increasing", []float64{100, 110, 120}, entity.TrendIncreasing},
		{"mixed", []float64{100, 90, 95}, entity.TrendStable},
		{"single snapshot", []float64{100}, entity.TrendStable},
		{"flat", []float64{100, 100, 100}, entity.TrendStable},
		{"only last three count", []float64{500, 100, 90, 80}, entity.TrendDecreasing},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entry := entity.NewWatchlistEntry("user-1", testOffer(tc.prices[0]), nil, "")
			at := entry.LastCheckedAt
			for _, p := range tc.prices[1:] {
				at = at.Add(time.Hour)
				entry.RecordPrice(p, at)
			}
			assert.Equal(t, tc.want, entry.Trend())
		})
	}
}

func TestWatchlistEntry_CurrentPrice(t *testing.T) {
	entry := entity.NewWatchlistEntry("user-1", testOffer(300), nil, "")
	assert.Equal(t, 300.0, entry.CurrentPrice())

	entry.RecordPrice(265, time.Now().UTC())
	assert.Equal(t, 265.0, entry.CurrentPrice())
}
