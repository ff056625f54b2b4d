package usecase

import (
	"context"

	"github.com/tpapu/FlightTrackers/internal/domain/entity"
	"github.com/tpapu/FlightTrackers/internal/domain/repository"
	"github.com/tpapu/FlightTrackers/pkg/logger"
	"github.com/tpapu/FlightTrackers/pkg/metrics"
	"github.com/tpapu/FlightTrackers/templates"
)

// AlertEvaluator classifies price movements against an entry's
// configuration and fires notifier alerts. Percentage change is always
// measured against the entry's initial price, not the previous snapshot.
type AlertEvaluator struct {
	notifierRepo repository.NotifierRepository
	metrics      *metrics.Metrics
	logger       logger.Logger
}

// NewAlertEvaluator creates a new alert evaluator
func NewAlertEvaluator(
	notifierRepo repository.NotifierRepository,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *AlertEvaluator {
	return &AlertEvaluator{
		notifierRepo: notifierRepo,
		metrics:      metrics,
		logger:       logger,
	}
}

// Evaluate decides which alerts the new price triggers and sends them.
// Returns the alert types that fired. An entry with a zero initial price
// is treated as no-change and never alerts. Target-reached ignores the
// thresholds and can co-fire with a drop alert.
func (ae *AlertEvaluator) Evaluate(ctx context.Context, entry *entity.WatchlistEntry, settings entity.NotificationSettings, newPrice float64) []entity.AlertType {
	if !entry.AlertsEnabled {
		return nil
	}
	if entry.InitialPrice <= 0 {
		return nil
	}

	changePct := (newPrice - entry.InitialPrice) / entry.InitialPrice * 100

	var fired []entity.AlertType

	if changePct < 0 && settings.PriceDropEnabled && -changePct >= settings.DropThresholdPct {
		ae.send(ctx, templates.PriceDropAlert(entry, newPrice, changePct))
		fired = append(fired, entity.AlertPriceDrop)
	}

	if changePct > 0 && settings.PriceIncreaseEnabled && changePct >= settings.IncreaseThresholdPct {
		ae.send(ctx, templates.PriceIncreaseAlert(entry, newPrice, changePct))
		fired = append(fired, entity.AlertPriceIncrease)
	}

	if entry.TargetPrice != nil && newPrice <= *entry.TargetPrice {
		ae.send(ctx, templates.TargetReachedAlert(entry, newPrice))
		fired = append(fired, entity.AlertTargetReached)
	}

	return fired
}

// send delivers one alert; delivery failures are logged and dropped
func (ae *AlertEvaluator) send(ctx context.Context, msg *entity.AlertMessage) {
	if _, err := ae.notifierRepo.SendAlert(ctx, msg); err != nil {
		ae.logger.Error("Failed to send alert",
			"category", msg.Category,
			"correlationId", msg.CorrelationID,
			"error", err)
		ae.metrics.ErrorsCount.WithLabelValues("notify").Inc()
		return
	}

	ae.metrics.AlertsSent.WithLabelValues(string(msg.Category)).Inc()
}
