package repository

import (
	"context"

	"github.com/tpapu/FlightTrackers/internal/domain/entity"
)

// AirportRepository defines the interface for airport reference data
type AirportRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Airport, error)
}
