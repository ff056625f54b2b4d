package repository

import (
	"context"

	"github.com/tpapu/FlightTrackers/internal/domain/entity"
)

// FlightOfferRepository defines the interface for the external flight
// data source
type FlightOfferRepository interface {
	Search(ctx context.Context, req *entity.SearchRequest) ([]*entity.FlightOffer, error)
	CheapestPrice(ctx context.Context, origin, destination, departureDate string) (float64, error)
}
