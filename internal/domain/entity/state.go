// internal/domain/entity/state.go
package entity

import (
	"time"
)

// UserState is the whole persisted document for one owner: profile,
// watchlist, route history buckets and recent searches. It is loaded once
// and replaced wholesale on save.
type UserState struct {
	OwnerID        string               `json:"ownerId" bson:"ownerId"`
	Profile        *UserProfile         `json:"profile,omitempty" bson:"profile,omitempty"`
	Watchlist      []*WatchlistEntry    `json:"watchlist" bson:"watchlist"`
	RouteHistories []*RoutePriceHistory `json:"routeHistories" bson:"routeHistories"`
	RecentSearches []SearchQuery        `json:"recentSearches" bson:"recentSearches"`
	SavedAt        time.Time            `json:"savedAt" bson:"savedAt"`
}

// NewUserState returns the fresh default state for an owner
func NewUserState(ownerID string) *UserState {
	return &UserState{
		OwnerID: ownerID,
		Profile: DefaultProfile(ownerID),
	}
}

// FindEntry returns the watchlist entry with the given id
func (s *UserState) FindEntry(id string) (*WatchlistEntry, bool) {
	for _, e := range s.Watchlist {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// RemoveEntry deletes the watchlist entry with the given id, reporting
// whether it was present
func (s *UserState) RemoveEntry(id string) bool {
	for i, e := range s.Watchlist {
		if e.ID == id {
			s.Watchlist = append(s.Watchlist[:i], s.Watchlist[i+1:]...)
			return true
		}
	}
	return false
}

// FindRouteHistory returns the bucket for the given route key
func (s *UserState) FindRouteHistory(key string) (*RoutePriceHistory, bool) {
	for _, h := range s.RouteHistories {
		if h.RouteKey == key {
			return h, true
		}
	}
	return nil, false
}

// EnsureRouteHistory returns the bucket for the route, creating it on
// first sight
func (s *UserState) EnsureRouteHistory(origin, destination, departureDate string) *RoutePriceHistory {
	key := RouteKeyFor(origin, destination, departureDate)
	if h, ok := s.FindRouteHistory(key); ok {
		return h
	}
	h := NewRoutePriceHistory(origin, destination, departureDate)
	s.RouteHistories = append(s.RouteHistories, h)
	return h
}
