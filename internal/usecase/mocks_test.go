package usecase_test

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tpapu/FlightTrackers/internal/domain/entity"
	"github.com/tpapu/FlightTrackers/internal/domain/repository"
	"github.com/tpapu/FlightTrackers/pkg/logger"
	"github.com/tpapu/FlightTrackers/pkg/metrics"
)

// nopLogger discards everything
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

// memStateRepo keeps one state per owner in memory, with injectable
// load/save failures
type memStateRepo struct {
	mu      sync.Mutex
	states  map[string]*entity.UserState
	loadErr error
	saveErr error
	saves   int
}

var _ repository.StateRepository = (*memStateRepo)(nil)

func newMemStateRepo() *memStateRepo {
	return &memStateRepo{states: make(map[string]*entity.UserState)}
}

func (r *memStateRepo) Load(_ context.Context, ownerID string) (*entity.UserState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	if state, ok := r.states[ownerID]; ok {
		return state, nil
	}
	state := entity.NewUserState(ownerID)
	r.states[ownerID] = state
	return state, nil
}

func (r *memStateRepo) Save(_ context.Context, state *entity.UserState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.states[state.OwnerID] = state
	return nil
}

// mockFlightRepo implements the data source with function fields
type mockFlightRepo struct {
	searchFn        func(ctx context.Context, req *entity.SearchRequest) ([]*entity.FlightOffer, error)
	cheapestPriceFn func(ctx context.Context, origin, destination, departureDate string) (float64, error)
}

var _ repository.FlightOfferRepository = (*mockFlightRepo)(nil)

func (m *mockFlightRepo) Search(ctx context.Context, req *entity.SearchRequest) ([]*entity.FlightOffer, error) {
	return m.searchFn(ctx, req)
}

func (m *mockFlightRepo) CheapestPrice(ctx context.Context, origin, destination, departureDate string) (float64, error) {
	return m.cheapestPriceFn(ctx, origin, destination, departureDate)
}

// mockNotifier records every alert it was asked to send
type mockNotifier struct {
	sent    []*entity.AlertMessage
	sendErr error
}

var _ repository.NotifierRepository = (*mockNotifier)(nil)

func (m *mockNotifier) SendAlert(_ context.Context, msg *entity.AlertMessage) (string, error) {
	m.sent = append(m.sent, msg)
	if m.sendErr != nil {
		return "", m.sendErr
	}
	return "delivery-1", nil
}

// mockAirportRepo and mockAirlineRepo serve reference data lookups
type mockAirportRepo struct {
	getByCodeFn func(ctx context.Context, code string) (*entity.Airport, error)
}

var _ repository.AirportRepository = (*mockAirportRepo)(nil)

func (m *mockAirportRepo) GetByCode(ctx context.Context, code string) (*entity.Airport, error) {
	return m.getByCodeFn(ctx, code)
}

type mockAirlineRepo struct {
	getByCodeFn func(ctx context.Context, code string) (*entity.Airline, error)
}

var _ repository.AirlineRepository = (*mockAirlineRepo)(nil)

func (m *mockAirlineRepo) GetByCode(ctx context.Context, code string) (*entity.Airline, error) {
	return m.getByCodeFn(ctx, code)
}

func newTestMetrics() *metrics.Metrics {
	return metrics.NewMetrics(prometheus.NewRegistry(), "test")
}
