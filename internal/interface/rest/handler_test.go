package rest_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tpapu/FlightTrackers/internal/domain/entity"
)

func sampleOffer(price float64) *entity.FlightOffer {
	return &entity.FlightOffer{
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

func doJSON(t *testing.T, method, url string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestHealth(t *testing.T) {
	h := newHarness()
	defer h.close()

	resp, body := doJSON(t, http.MethodGet, h.server.URL+"/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Healthy", string(body))
}

func TestSearchEndpoint(t *testing.T) {
	h := newHarness()
	defer h.close()
	h.flights.offers = []*entity.FlightOffer{sampleOffer(299.99)}

	resp, body := doJSON(t, http.MethodPost, h.server.URL+"/api/v1/search", map[string]interface{}{
		"origin":        "jfk",
		"destination":   "lax",
		"departureDate": "2026-09-14",
		"passengers":    1,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var decoded struct {
		Data []entity.FlightOffer `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.Len(t, decoded.Data, 1)
	assert.Equal(t, 299.99, decoded.Data[0].Price)
	assert.Equal(t, "DL Airlines", decoded.Data[0].CarrierName)

	// The search lands in the recent list
	resp, body = doJSON(t, http.MethodGet, h.server.URL+"/api/v1/searches/recent", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var recent struct {
		Data []entity.SearchQuery `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &recent))
	require.Len(t, recent.Data, 1)
	assert.Equal(t, "JFK", recent.Data[0].Origin)
}

func TestSearchEndpoint_Validation(t *testing.T) {
	h := newHarness()
	defer h.close()

	resp, _ := doJSON(t, http.MethodPost, h.server.URL+"/api/v1/search", map[string]interface{}{
		"origin":        "NEWYORK",
		"destination":   "LAX",
		"departureDate": "2026-09-14",
		"passengers":    1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearchEndpoint_MalformedBody(t *testing.T) {
	h := newHarness()
	defer h.close()

	req, err := http.NewRequest(http.MethodPost, h.server.URL+"/api/v1/search", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouteHistoryEndpoint(t *testing.T) {
	h := newHarness()
	defer h.close()
	h.flights.offers = []*entity.FlightOffer{sampleOffer(299.99)}

	resp, _ := doJSON(t, http.MethodPost, h.server.URL+"/api/v1/search", map[string]interface{}{
		"origin": "JFK", "destination": "LAX", "departureDate": "2026-09-14", "passengers": 1,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet,
		h.server.URL+"/api/v1/routes/history?origin=JFK&destination=LAX&date=2026-09-14", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats struct {
		CurrentPrice float64 `json:"currentPrice"`
		LowestPrice  float64 `json:"lowestPrice"`
	}
	require.NoError(t, json.Unmarshal(body, &stats))
	assert.Equal(t, 299.99, stats.CurrentPrice)
	assert.Equal(t, 299.99, stats.LowestPrice)

	resp, _ = doJSON(t, http.MethodGet,
		h.server.URL+"/api/v1/routes/history?origin=SFO&destination=SEA&date=2026-09-14", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, h.server.URL+"/api/v1/routes/history?origin=JFK", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestWatchlistLifecycle(t *testing.T) {
	h := newHarness()
	defer h.close()
	h.flights.price = 240

	// Add
	resp, body := doJSON(t, http.MethodPost, h.server.URL+"/api/v1/watchlist", map[string]interface{}{
		"offer":       sampleOffer(300),
		"targetPrice": 250,
		"note":        "summer trip",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var entry entity.WatchlistEntry
	require.NoError(t, json.Unmarshal(body, &entry))
	require.NotEmpty(t, entry.ID)
	assert.Equal(t, 300.0, entry.InitialPrice)

	// List
	resp, body = doJSON(t, http.MethodGet, h.server.URL+"/api/v1/watchlist", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed struct {
		Data []struct {
			ID           string  `json:"id"`
			CurrentPrice float64 `json:"currentPrice"`
			Trend        string  `json:"trend"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &listed))
	require.Len(t, listed.Data, 1)
	assert.Equal(t, entry.ID, listed.Data[0].ID)
	assert.Equal(t, 300.0, listed.Data[0].CurrentPrice)
	assert.Equal(t, entity.TrendStable, listed.Data[0].Trend)

	// Update
	resp, body = doJSON(t, http.MethodPatch, h.server.URL+"/api/v1/watchlist/"+entry.ID, map[string]interface{}{
		"note": "check again friday",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated entity.WatchlistEntry
	require.NoError(t, json.Unmarshal(body, &updated))
	assert.Equal(t, "check again friday", updated.Note)

	// Refresh fires both the drop and the target alert at 240
	resp, body = doJSON(t, http.MethodPost, h.server.URL+"/api/v1/watchlist/"+entry.ID+"/refresh", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var refreshed struct {
		CurrentPrice float64  `json:"currentPrice"`
		ChangePct    float64  `json:"changePct"`
		AlertsFired  []string `json:"alertsFired"`
	}
	require.NoError(t, json.Unmarshal(body, &refreshed))
	assert.Equal(t, 240.0, refreshed.CurrentPrice)
	assert.InDelta(t, -20.0, refreshed.ChangePct, 0.001)
	assert.Equal(t, []string{"price_drop", "target_reached"}, refreshed.AlertsFired)
	assert.Len(t, h.notifier.sent, 2)

	// Remove
	resp, _ = doJSON(t, http.MethodDelete, h.server.URL+"/api/v1/watchlist/"+entry.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, h.server.URL+"/api/v1/watchlist/"+entry.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWatchlistBulkRefresh(t *testing.T) {
	h := newHarness()
	defer h.close()
	h.flights.price = 280

	for i := 0; i < 3; i++ {
		offer := sampleOffer(300)
		offer.OfferID = fmt.Sprintf("offer-%d", i)
		resp, _ := doJSON(t, http.MethodPost, h.server.URL+"/api/v1/watchlist", map[string]interface{}{"offer": offer})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := doJSON(t, http.MethodPost, h.server.URL+"/api/v1/watchlist/refresh", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Refreshed int `json:"refreshed"`
	}
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, 3, result.Refreshed)
}

func TestProfileEndpoints(t *testing.T) {
	h := newHarness()
	defer h.close()

	resp, body := doJSON(t, http.MethodGet, h.server.URL+"/api/v1/profile", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile entity.UserProfile
	require.NoError(t, json.Unmarshal(body, &profile))
	assert.Equal(t, "USD", profile.PreferredCurrency)

	profile.Name = "Alex"
	profile.PreferredCurrency = "eur"
	resp, body = doJSON(t, http.MethodPut, h.server.URL+"/api/v1/profile", profile)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, json.Unmarshal(body, &profile))
	assert.Equal(t, "Alex", profile.Name)
	assert.Equal(t, "EUR", profile.PreferredCurrency)

	resp, _ = doJSON(t, http.MethodPut, h.server.URL+"/api/v1/profile", map[string]interface{}{
		"preferredCurrency": "EURO",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOwnerHeaderIsolation(t *testing.T) {
	h := newHarness()
	defer h.close()

	req, err := http.NewRequest(http.MethodPost, h.server.URL+"/api/v1/watchlist", bytes.NewReader(mustJSON(t, map[string]interface{}{"offer": sampleOffer(300)})))
	require.NoError(t, err)
	req.Header.Set("X-Owner-ID", "alice")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// The default owner sees an empty watchlist
	resp, body := doJSON(t, http.MethodGet, h.server.URL+"/api/v1/watchlist", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &listed))
	assert.Empty(t, listed.Data)
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}
