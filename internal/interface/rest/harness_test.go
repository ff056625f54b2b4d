package rest_test

import (
	"context"
	"net/http/httptest"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tpapu/FlightTrackers/internal/domain/entity"
	"github.com/tpapu/FlightTrackers/internal/domain/repository"
	"github.com/tpapu/FlightTrackers/internal/interface/rest"
	"github.com/tpapu/FlightTrackers/internal/usecase"
	"github.com/tpapu/FlightTrackers/pkg/logger"
	"github.com/tpapu/FlightTrackers/pkg/metrics"
)

type nopLogger struct{}

var _ logger.Logger = nopLogger{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}
func (l nopLogger) With(...interface{}) logger.Logger {
	return l
}

type memStateRepo struct {
	states map[string]*entity.UserState
}

var _ repository.StateRepository = (*memStateRepo)(nil)

func newMemStateRepo() *memStateRepo {
	return &memStateRepo{states: make(map[string]*entity.UserState)}
}

func (r *memStateRepo) Load(_ context.Context, ownerID string) (*entity.UserState, error) {
	if state, ok := r.states[ownerID]; ok {
		return state, nil
	}
	state := entity.NewUserState(ownerID)
	r.states[ownerID] = state
	return state, nil
}

func (r *memStateRepo) Save(_ context.Context, state *entity.UserState) error {
	r.states[state.OwnerID] = state
	return nil
}

type stubFlightRepo struct {
	offers []*entity.FlightOffer
	price  float64
	err    error
}

var _ repository.FlightOfferRepository = (*stubFlightRepo)(nil)

func (s *stubFlightRepo) Search(context.Context, *entity.SearchRequest) ([]*entity.FlightOffer, error) {
	return s.offers, s.err
}

func (s *stubFlightRepo) CheapestPrice(context.Context, string, string, string) (float64, error) {
	return s.price, s.err
}

type stubNotifier struct {
	sent []*entity.AlertMessage
}

var _ repository.NotifierRepository = (*stubNotifier)(nil)

func (s *stubNotifier) SendAlert(_ context.Context, msg *entity.AlertMessage) (string, error) {
	s.sent = append(s.sent, msg)
	return "delivery-1", nil
}

type stubAirportRepo struct{}

var _ repository.AirportRepository = (*stubAirportRepo)(nil)

func (stubAirportRepo) GetByCode(_ context.Context, code string) (*entity.Airport, error) {
	return &entity.Airport{Code: code, Name: code + " Intl", CityName: "City"}, nil
}

type stubAirlineRepo struct{}

var _ repository.AirlineRepository = (*stubAirlineRepo)(nil)

func (stubAirlineRepo) GetByCode(_ context.Context, code string) (*entity.Airline, error) {
	return &entity.Airline{Code: code, Name: code + " Airlines"}, nil
}

// harness wires the whole API over in-memory collaborators
type harness struct {
	server   *httptest.Server
	states   *memStateRepo
	flights  *stubFlightRepo
	notifier *stubNotifier
}

func newHarness() *harness {
	states := newMemStateRepo()
	flights := &stubFlightRepo{}
	notifier := &stubNotifier{}

	m := metrics.NewMetrics(prometheus.NewRegistry(), "test")
	lock := usecase.NewStateLock()
	log := nopLogger{}

	search := usecase.NewSearchService(states, flights, stubAirportRepo{}, stubAirlineRepo{}, m, log, lock)
	evaluator := usecase.NewAlertEvaluator(notifier, m, log)
	watchlist := usecase.NewWatchlistManager(states, flights, evaluator, m, log, lock)
	profiles := usecase.NewProfileManager(states, log, lock)

	handler := rest.NewHandler(search, watchlist, profiles, log, "default")
	server := httptest.NewServer(rest.NewRouter(handler))

	return &harness{server: server, states: states, flights: flights, notifier: notifier}
}

func (h *harness) close() {
	h.server.Close()
}
