package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tpapu/FlightTrackers/internal/domain/entity"
	"github.com/tpapu/FlightTrackers/internal/domain/repository"
	"github.com/tpapu/FlightTrackers/pkg/logger"
	"github.com/tpapu/FlightTrackers/pkg/metrics"
	"github.com/tpapu/FlightTrackers/pkg/utils"
)

// Sort orders for listing the watchlist
const (
	SortByDateAdded     = "dateAdded"
	SortByPriceChange   = "priceChange"
	SortByDepartureDate = "departureDate"
	SortByPrice         = "price"
)

// EntryUpdate carries the user-editable fields of a watchlist entry.
// Nil fields are left untouched; ClearTarget removes the target price.
type EntryUpdate struct {
	TargetPrice   *float64
	ClearTarget   bool
	Note          *string
	AlertsEnabled *bool
}

// WatchlistManager owns watchlist mutation: adding and removing entries,
// price refreshes and the alerting that follows them. Mutations are
// load-mutate-save cycles guarded by the shared state lock.
type WatchlistManager struct {
	stateRepo  repository.StateRepository
	flightRepo repository.FlightOfferRepository
	evaluator  *AlertEvaluator
	metrics    *metrics.Metrics
	logger     logger.Logger
	lock       *StateLock
}

// NewWatchlistManager creates a new watchlist manager
func NewWatchlistManager(
	stateRepo repository.StateRepository,
	flightRepo repository.FlightOfferRepository,
	evaluator *AlertEvaluator,
	metrics *metrics.Metrics,
	logger logger.Logger,
	lock *StateLock,
) *WatchlistManager {
	return &WatchlistManager{
		stateRepo:  stateRepo,
		flightRepo: flightRepo,
		evaluator:  evaluator,
		metrics:    metrics,
		logger:     logger,
		lock:       lock,
	}
}

// Add starts tracking an offer. The entry's history is seeded with the
// offer's price, so it is never empty.
func (m *WatchlistManager) Add(ctx context.Context, ownerID string, offer entity.FlightOffer, targetPrice *float64, note string) (*entity.WatchlistEntry, error) {
	if offer.Origin == "" || offer.Destination == "" {
		return nil, fmt.Errorf("%w: offer is missing origin or destination", entity.ErrValidation)
	}
	if offer.Price <= 0 {
		return nil, fmt.Errorf("%w: offer price must be positive", entity.ErrValidation)
	}
	if targetPrice != nil && *targetPrice <= 0 {
		return nil, fmt.Errorf("%w: target price must be positive", entity.ErrValidation)
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	state, err := m.stateRepo.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	entry := entity.NewWatchlistEntry(ownerID, offer, targetPrice, note)
	state.Watchlist = append(state.Watchlist, entry)
	m.persist(ctx, state)

	m.logger.Info("Watchlist entry added",
		"entryId", entry.ID,
		"route", utils.FormatRoute(offer.Origin, offer.Destination),
		"price", offer.Price)

	return entry, nil
}

// Remove stops tracking an entry
func (m *WatchlistManager) Remove(ctx context.Context, ownerID, entryID string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	state, err := m.stateRepo.Load(ctx, ownerID)
	if err != nil {
		return err
	}

	if !state.RemoveEntry(entryID) {
		return fmt.Errorf("%w: watchlist entry %s", entity.ErrNotFound, entryID)
	}
	m.persist(ctx, state)

	m.logger.Info("Watchlist entry removed", "entryId", entryID)
	return nil
}

// UpdateEntry applies user edits to an entry's target price, note or
// alert flag
func (m *WatchlistManager) UpdateEntry(ctx context.Context, ownerID, entryID string, update EntryUpdate) (*entity.WatchlistEntry, error) {
	if update.TargetPrice != nil && *update.TargetPrice <= 0 {
		return nil, fmt.Errorf("%w: target price must be positive", entity.ErrValidation)
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	state, err := m.stateRepo.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	entry, ok := state.FindEntry(entryID)
	if !ok {
		return nil, fmt.Errorf("%w: watchlist entry %s", entity.ErrNotFound, entryID)
	}

	if update.ClearTarget {
		entry.TargetPrice = nil
	} else if update.TargetPrice != nil {
		entry.TargetPrice = update.TargetPrice
	}
	if update.Note != nil {
		entry.Note = *update.Note
	}
	if update.AlertsEnabled != nil {
		entry.AlertsEnabled = *update.AlertsEnabled
	}

	m.persist(ctx, state)
	return entry, nil
}

// List returns the watchlist in the requested order. Unknown sort keys
// fall back to added-date, newest first.
func (m *WatchlistManager) List(ctx context.Context, ownerID, sortBy string) ([]*entity.WatchlistEntry, error) {
	state, err := m.stateRepo.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	entries := make([]*entity.WatchlistEntry, len(state.Watchlist))
	copy(entries, state.Watchlist)

	switch sortBy {
	case SortByPriceChange:
		// Biggest drop first
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].PriceChangePercentage() < entries[j].PriceChangePercentage()
		})
	case SortByDepartureDate:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Offer.DepartureUTC.Before(entries[j].Offer.DepartureUTC)
		})
	case SortByPrice:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].CurrentPrice() < entries[j].CurrentPrice()
		})
	default:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		})
	}

	return entries, nil
}

// RefreshEntry fetches the current cheapest price for one entry's route,
// records it and evaluates alerts. A fetch failure aborts the refresh and
// leaves the entry untouched.
func (m *WatchlistManager) RefreshEntry(ctx context.Context, ownerID, entryID string) (*entity.WatchlistEntry, []entity.AlertType, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	state, err := m.stateRepo.Load(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}

	entry, ok := state.FindEntry(entryID)
	if !ok {
		return nil, nil, fmt.Errorf("%w: watchlist entry %s", entity.ErrNotFound, entryID)
	}

	price, err := m.fetchCurrentPrice(ctx, entry)
	if err != nil {
		m.metrics.ErrorsCount.WithLabelValues("refresh").Inc()
		return nil, nil, err
	}

	fired := m.applyPrice(ctx, state, entry, price)
	m.persist(ctx, state)

	return entry, fired, nil
}

// RefreshAll walks every entry sequentially, fetching one price at a
// time. A failed fetch is logged and that entry skipped; the surviving
// updates are saved in one write at the end. Returns the number of
// entries refreshed.
func (m *WatchlistManager) RefreshAll(ctx context.Context, ownerID string) (int, error) {
	start := time.Now()
	defer func() {
		m.metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	}()

	m.lock.Lock()
	defer m.lock.Unlock()

	state, err := m.stateRepo.Load(ctx, ownerID)
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for _, entry := range state.Watchlist {
		price, err := m.fetchCurrentPrice(ctx, entry)
		if err != nil {
			m.logger.Error("Price fetch failed, skipping entry",
				"entryId", entry.ID,
				"route", utils.FormatRoute(entry.Offer.Origin, entry.Offer.Destination),
				"error", err)
			m.metrics.ErrorsCount.WithLabelValues("refresh").Inc()
			continue
		}
		m.applyPrice(ctx, state, entry, price)
		refreshed++
	}

	m.persist(ctx, state)

	m.logger.Info("Watchlist refresh completed",
		"ownerId", ownerID,
		"entries", len(state.Watchlist),
		"refreshed", refreshed)

	return refreshed, nil
}

// fetchCurrentPrice asks the data source for the cheapest current offer
// on the entry's route
func (m *WatchlistManager) fetchCurrentPrice(ctx context.Context, entry *entity.WatchlistEntry) (float64, error) {
	return m.flightRepo.CheapestPrice(ctx,
		entry.Offer.Origin,
		entry.Offer.Destination,
		entry.Offer.DepartureUTC.Format(utils.DATE_LAYOUT))
}

// applyPrice records one observed price and runs the alert evaluation
func (m *WatchlistManager) applyPrice(ctx context.Context, state *entity.UserState, entry *entity.WatchlistEntry, price float64) []entity.AlertType {
	entry.RecordPrice(price, time.Now().UTC())
	m.metrics.PriceRefreshes.Inc()

	settings := entity.DefaultProfile(entry.OwnerID).Notifications
	if state.Profile != nil {
		settings = state.Profile.Notifications
	}

	return m.evaluator.Evaluate(ctx, entry, settings, price)
}

// persist saves the state; a failed save is logged and swallowed so the
// in-memory state stays authoritative until the next successful write
func (m *WatchlistManager) persist(ctx context.Context, state *entity.UserState) {
	if err := m.stateRepo.Save(ctx, state); err != nil {
		m.logger.Error("State save failed, keeping in-memory state", "ownerId", state.OwnerID, "error", err)
		m.metrics.ErrorsCount.WithLabelValues("persist").Inc()
	}
}
