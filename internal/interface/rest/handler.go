package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tpapu/FlightTrackers/internal/domain/entity"
	"github.com/tpapu/FlightTrackers/internal/usecase"
	"github.com/tpapu/FlightTrackers/pkg/logger"
)

// Handler serves the JSON API
type Handler struct {
	search       *usecase.SearchService
	watchlist    *usecase.WatchlistManager
	profiles     *usecase.ProfileManager
	logger       logger.Logger
	defaultOwner string
}

// NewHandler creates a new API handler
func NewHandler(
	search *usecase.SearchService,
	watchlist *usecase.WatchlistManager,
	profiles *usecase.ProfileManager,
	logger logger.Logger,
	defaultOwner string,
) *Handler {
	return &Handler{
		search:       search,
		watchlist:    watchlist,
		profiles:     profiles,
		logger:       logger,
		defaultOwner: defaultOwner,
	}
}

// ownerID resolves the owner from the X-Owner-ID header, falling back to
// the configured default
func (h *Handler) ownerID(r *http.Request) string {
	if owner := r.Header.Get("X-Owner-ID"); owner != "" {
		return owner
	}
	return h.defaultOwner
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response with the given status
func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			h.logger.Error("Failed to encode response", "error", err)
		}
	}
}

// respondError maps domain error kinds to HTTP status codes
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrValidation), errors.Is(err, entity.ErrInvalidRequest):
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, entity.ErrNotFound):
		h.respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, entity.ErrUnauthorized), errors.Is(err, entity.ErrDecode):
		h.respondJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
	default:
		h.logger.Error("Request failed", "error", err)
		h.respondJSON(w, http.StatusBadGateway, errorResponse{Error: "upstream request failed"})
	}
}

// Search handles POST /api/v1/search
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req entity.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	offers, err := h.search.Search(r.Context(), h.ownerID(r), &req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{"data": offers})
}

// RecentSearches handles GET /api/v1/searches/recent
func (h *Handler) RecentSearches(w http.ResponseWriter, r *http.Request) {
	searches, err := h.search.RecentSearches(r.Context(), h.ownerID(r))
	if err != nil {
		h.respondError(w, err)
		return
	}
	if searches == nil {
		searches = []entity.SearchQuery{}
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"data": searches})
}

// RouteHistory handles GET /api/v1/routes/history
func (h *Handler) RouteHistory(w http.ResponseWriter, r *http.Request) {
	origin := r.URL.Query().Get("origin")
	destination := r.URL.Query().Get("destination")
	date := r.URL.Query().Get("date")
	if origin == "" || destination == "" || date == "" {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "origin, destination and date are required"})
		return
	}

	stats, err := h.search.RouteHistory(r.Context(), h.ownerID(r), origin, destination, date)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, stats)
}

type addEntryRequest struct {
	Offer       entity.FlightOffer `json:"offer"`
	TargetPrice *float64           `json:"targetPrice,omitempty"`
	Note        string             `json:"note,omitempty"`
}

// AddEntry handles POST /api/v1/watchlist
func (h *Handler) AddEntry(w http.ResponseWriter, r *http.Request) {
	var req addEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	entry, err := h.watchlist.Add(r.Context(), h.ownerID(r), req.Offer, req.TargetPrice, req.Note)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, entry)
}

// watchlistItem decorates an entry with its derived figures
type watchlistItem struct {
	*entity.WatchlistEntry
	CurrentPrice float64 `json:"currentPrice"`
	ChangePct    float64 `json:"changePct"`
	Trend        string  `json:"trend"`
}

// ListWatchlist handles GET /api/v1/watchlist
func (h *Handler) ListWatchlist(w http.ResponseWriter, r *http.Request) {
	entries, err := h.watchlist.List(r.Context(), h.ownerID(r), r.URL.Query().Get("sort"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	items := make([]watchlistItem, len(entries))
	for i, entry := range entries {
		items[i] = watchlistItem{
			WatchlistEntry: entry,
			CurrentPrice:   entry.CurrentPrice(),
			ChangePct:      entry.PriceChangePercentage(),
			Trend:          entry.Trend(),
		}
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{"data": items})
}

type updateEntryRequest struct {
	TargetPrice   *float64 `json:"targetPrice,omitempty"`
	ClearTarget   bool     `json:"clearTarget,omitempty"`
	Note          *string  `json:"note,omitempty"`
	AlertsEnabled *bool    `json:"alertsEnabled,omitempty"`
}

// UpdateEntry handles PATCH /api/v1/watchlist/{id}
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	var req updateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	entry, err := h.watchlist.UpdateEntry(r.Context(), h.ownerID(r), chi.URLParam(r, "id"), usecase.EntryUpdate{
		TargetPrice:   req.TargetPrice,
		ClearTarget:   req.ClearTarget,
		Note:          req.Note,
		AlertsEnabled: req.AlertsEnabled,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, entry)
}

// RemoveEntry handles DELETE /api/v1/watchlist/{id}
func (h *Handler) RemoveEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.watchlist.Remove(r.Context(), h.ownerID(r), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RefreshEntry handles POST /api/v1/watchlist/{id}/refresh
func (h *Handler) RefreshEntry(w http.ResponseWriter, r *http.Request) {
	entry, fired, err := h.watchlist.RefreshEntry(r.Context(), h.ownerID(r), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	alerts := make([]string, len(fired))
	for i, a := range fired {
		alerts[i] = string(a)
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"entry":        entry,
		"currentPrice": entry.CurrentPrice(),
		"changePct":    entry.PriceChangePercentage(),
		"trend":        entry.Trend(),
		"alertsFired":  alerts,
	})
}

// RefreshAll handles POST /api/v1/watchlist/refresh
func (h *Handler) RefreshAll(w http.ResponseWriter, r *http.Request) {
	refreshed, err := h.watchlist.RefreshAll(r.Context(), h.ownerID(r))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{"refreshed": refreshed})
}

// GetProfile handles GET /api/v1/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.Get(r.Context(), h.ownerID(r))
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/v1/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var profile entity.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	updated, err := h.profiles.Update(r.Context(), h.ownerID(r), &profile)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, updated)
}
