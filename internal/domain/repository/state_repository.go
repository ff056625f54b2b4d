package repository

import (
	"context"

	"github.com/tpapu/FlightTrackers/internal/domain/entity"
)

// StateRepository defines the interface for whole-state persistence. Load
// never fails on a missing or unreadable document; it falls back to a
// fresh default state.
type StateRepository interface {
	Load(ctx context.Context, ownerID string) (*entity.UserState, error)
	Save(ctx context.Context, state *entity.UserState) error
}
