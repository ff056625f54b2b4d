package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tpapu/FlightTrackers/internal/domain/entity"
	"github.com/tpapu/FlightTrackers/internal/domain/repository"
	"github.com/tpapu/FlightTrackers/pkg/logger"
	"github.com/tpapu/FlightTrackers/pkg/metrics"
	"github.com/tpapu/FlightTrackers/pkg/utils"
)

// RouteStats is a route history bucket together with its derived figures
type RouteStats struct {
	Origin        string              `json:"origin"`
	Destination   string              `json:"destination"`
	DepartureDate string              `json:"departureDate"`
	CurrentPrice  float64             `json:"currentPrice"`
	LowestPrice   float64             `json:"lowestPrice"`
	HighestPrice  float64             `json:"highestPrice"`
	AveragePrice  float64             `json:"averagePrice"`
	ChangePct     *float64            `json:"changePct,omitempty"`
	PricePoints   []entity.PricePoint `json:"pricePoints"`
}

// SearchService performs flight searches and the bookkeeping that hangs
// off them: route price history and the recent-search list
type SearchService struct {
	stateRepo   repository.StateRepository
	flightRepo  repository.FlightOfferRepository
	airportRepo repository.AirportRepository
	airlineRepo repository.AirlineRepository
	validate    *validator.Validate
	metrics     *metrics.Metrics
	logger      logger.Logger
	lock        *StateLock
}

// NewSearchService creates a new search service
func NewSearchService(
	stateRepo repository.StateRepository,
	flightRepo repository.FlightOfferRepository,
	airportRepo repository.AirportRepository,
	airlineRepo repository.AirlineRepository,
	metrics *metrics.Metrics,
	logger logger.Logger,
	lock *StateLock,
) *SearchService {
	return &SearchService{
		stateRepo:   stateRepo,
		flightRepo:  flightRepo,
		airportRepo: airportRepo,
		airlineRepo: airlineRepo,
		validate:    validator.New(),
		metrics:     metrics,
		logger:      logger,
		lock:        lock,
	}
}

// Search validates the request, queries the data source, enriches the
// offers with reference data, and records every offer's price into its
// route bucket plus the search itself into the recent list. A data-source
// failure aborts the search and leaves prior state untouched.
func (s *SearchService) Search(ctx context.Context, ownerID string, req *entity.SearchRequest) ([]*entity.FlightOffer, error) {
	req.Normalize()
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrValidation, err)
	}

	offers, err := s.flightRepo.Search(ctx, req)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("search").Inc()
		return nil, err
	}

	s.enrich(ctx, offers)

	s.lock.Lock()
	defer s.lock.Unlock()

	state, err := s.stateRepo.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for _, offer := range offers {
		bucket := state.EnsureRouteHistory(offer.Origin, offer.Destination, offer.DepartureUTC.Format(utils.DATE_LAYOUT))
		bucket.Append(entity.PricePoint{
			Price:      offer.Price,
			Currency:   offer.Currency,
			Carrier:    offer.Carrier,
			CabinClass: offer.CabinClass,
			RecordedAt: now,
		})
	}

	state.RecentSearches = entity.PushRecentSearch(state.RecentSearches, entity.SearchQuery{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Passengers:    req.Passengers,
		CabinClass:    req.CabinClass,
		SearchedAt:    now,
	})

	s.persist(ctx, state)

	s.metrics.SearchesPerformed.Inc()
	s.metrics.OffersReturned.Add(float64(len(offers)))

	return offers, nil
}

// RouteHistory returns the bucket and derived stats for one route
func (s *SearchService) RouteHistory(ctx context.Context, ownerID, origin, destination, departureDate string) (*RouteStats, error) {
	state, err := s.stateRepo.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	key := entity.RouteKeyFor(origin, destination, departureDate)
	history, ok := state.FindRouteHistory(key)
	if !ok {
		return nil, fmt.Errorf("%w: no price history for %s", entity.ErrNotFound, key)
	}

	stats := &RouteStats{
		Origin:        history.Origin,
		Destination:   history.Destination,
		DepartureDate: history.DepartureDate,
		CurrentPrice:  history.CurrentPrice(),
		LowestPrice:   history.LowestPrice(),
		HighestPrice:  history.HighestPrice(),
		AveragePrice:  history.AveragePrice(),
		PricePoints:   history.PricePoints,
	}
	if pct, ok := history.PriceChangePercentage(); ok {
		stats.ChangePct = &pct
	}

	return stats, nil
}

// RecentSearches returns the bounded most-recent-first search list
func (s *SearchService) RecentSearches(ctx context.Context, ownerID string) ([]entity.SearchQuery, error) {
	state, err := s.stateRepo.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return state.RecentSearches, nil
}

// enrich fills in airport and carrier names from reference data.
// Lookup misses are non-fatal; bare codes pass through.
func (s *SearchService) enrich(ctx context.Context, offers []*entity.FlightOffer) {
	airports := make(map[string]string)
	airlines := make(map[string]string)

	lookupAirport := func(code string) string {
		if name, ok := airports[code]; ok {
			return name
		}
		name := ""
		if airport, err := s.airportRepo.GetByCode(ctx, code); err == nil {
			name = fmt.Sprintf("%s | %s", airport.Name, airport.CityName)
		} else {
			s.logger.Debug("Airport lookup miss", "code", code)
		}
		airports[code] = name
		return name
	}

	lookupAirline := func(code string) string {
		if name, ok := airlines[code]; ok {
			return name
		}
		name := ""
		if airline, err := s.airlineRepo.GetByCode(ctx, code); err == nil {
			name = airline.Name
		} else {
			s.logger.Debug("Airline lookup miss", "code", code)
		}
		airlines[code] = name
		return name
	}

	for _, offer := range offers {
		offer.OriginName = lookupAirport(offer.Origin)
		offer.DestinationName = lookupAirport(offer.Destination)
		offer.CarrierName = lookupAirline(offer.Carrier)
	}
}

// persist saves the state; failures are logged and swallowed
func (s *SearchService) persist(ctx context.Context, state *entity.UserState) {
	if err := s.stateRepo.Save(ctx, state); err != nil {
		s.logger.Error("State save failed, keeping in-memory state", "ownerId", state.OwnerID, "error", err)
		s.metrics.ErrorsCount.WithLabelValues("persist").Inc()
	}
}
