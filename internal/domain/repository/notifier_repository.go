package repository

import (
	"context"

	"github.com/tpapu/FlightTrackers/internal/domain/entity"
)

// NotifierRepository defines the interface for push notification delivery
type NotifierRepository interface {
	SendAlert(ctx context.Context, msg *entity.AlertMessage) (string, error)
}
