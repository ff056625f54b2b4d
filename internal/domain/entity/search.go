// internal/domain/entity/search.go
package entity

import (
	"strings"
	"time"
)

// RecentSearchLimit caps how many past searches are kept
const RecentSearchLimit = 10

// SearchRequest is a flight search as submitted by the caller
type SearchRequest struct {
	Origin        string `json:"origin" validate:"required,len=3,alpha"`
	Destination   string `json:"destination" validate:"required,len=3,alpha"`
	DepartureDate string `json:"departureDate" validate:"required,datetime=2006-01-02"`
	ReturnDate    string `json:"returnDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Passengers    int    `json:"passengers" validate:"required,min=1,max=9"`
	CabinClass    string `json:"cabinClass,omitempty" validate:"omitempty,oneof=ECONOMY PREMIUM_ECONOMY BUSINESS FIRST"`
}

// Normalize upper-cases airport codes and fills the cabin default
func (r *SearchRequest) Normalize() {
	r.Origin = strings.ToUpper(strings.TrimSpace(r.Origin))
	r.Destination = strings.ToUpper(strings.TrimSpace(r.Destination))
	if r.CabinClass == "" {
		r.CabinClass = CabinEconomy
	}
}

// SearchQuery records one past search
type SearchQuery struct {
	Origin        string    `json:"origin" bson:"origin"`
	Destination   string    `json:"destination" bson:"destination"`
	DepartureDate string    `json:"departureDate" bson:"departureDate"`
	ReturnDate    string    `json:"returnDate,omitempty" bson:"returnDate,omitempty"`
	Passengers    int       `json:"passengers" bson:"passengers"`
	CabinClass    string    `json:"cabinClass" bson:"cabinClass"`
	SearchedAt    time.Time `json:"searchedAt" bson:"searchedAt"`
}

// SameRoute reports whether two searches cover the same
// origin/destination pair
func (q SearchQuery) SameRoute(other SearchQuery) bool {
	return strings.EqualFold(q.Origin, other.Origin) &&
		strings.EqualFold(q.Destination, other.Destination)
}

// PushRecentSearch prepends q to the list, dropping any older search for
// the same route and trimming the result to RecentSearchLimit entries
func PushRecentSearch(list []SearchQuery, q SearchQuery) []SearchQuery {
	result := make([]SearchQuery, 0, len(list)+1)
	result = append(result, q)
	for _, prev := range list {
		if prev.SameRoute(q) {
			continue
		}
		result = append(result, prev)
	}
	if len(result) > RecentSearchLimit {
		result = result[:RecentSearchLimit]
	}
	return result
}
