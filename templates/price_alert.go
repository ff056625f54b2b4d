package templates

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tpapu/FlightTrackers/internal/domain/entity"
	"github.com/tpapu/FlightTrackers/pkg/utils"
)

const priceDropBody = `Good news! %s %s on %s dropped to %s — down %.1f%% from %s when you started watching.`

const priceIncreaseBody = `Heads up: %s %s on %s climbed to %s — up %.1f%% from %s when you started watching.`

const targetReachedBody = `%s %s on %s is now %s, at or below your target of %s. Time to book?`

// PriceDropAlert builds the notifier message for a price-drop event
func PriceDropAlert(e *entity.WatchlistEntry, newPrice, changePct float64) *entity.AlertMessage {
	route := utils.FormatRoute(e.Offer.Origin, e.Offer.Destination)
	return &entity.AlertMessage{
		Title:    fmt.Sprintf("Price drop: %s", route),
		Category: entity.AlertPriceDrop,
		Body: fmt.Sprintf(priceDropBody,
			carrierLabel(e),
			route,
			e.Offer.DepartureUTC.Format("Jan 2"),
			utils.FormatPrice(newPrice, e.Offer.Currency),
			-changePct,
			utils.FormatPrice(e.InitialPrice, e.Offer.Currency),
		),
		CorrelationID: uuid.NewString(),
		OwnerID:       e.OwnerID,
		CreatedAt:     time.Now().UTC(),
	}
}

// PriceIncreaseAlert builds the notifier message for a price-increase event
func PriceIncreaseAlert(e *entity.WatchlistEntry, newPrice, changePct float64) *entity.AlertMessage {
	route := utils.FormatRoute(e.Offer.Origin, e.Offer.Destination)
	return &entity.AlertMessage{
		Title:    fmt.Sprintf("Price increase: %s", route),
		Category: entity.AlertPriceIncrease,
		Body: fmt.Sprintf(priceIncreaseBody,
			carrierLabel(e),
			route,
			e.Offer.DepartureUTC.Format("Jan 2"),
			utils.FormatPrice(newPrice, e.Offer.Currency),
			changePct,
			utils.FormatPrice(e.InitialPrice, e.Offer.Currency),
		),
		CorrelationID: uuid.NewString(),
		OwnerID:       e.OwnerID,
		CreatedAt:     time.Now().UTC(),
	}
}

// TargetReachedAlert builds the notifier message for a target-price event
func TargetReachedAlert(e *entity.WatchlistEntry, newPrice float64) *entity.AlertMessage {
	route := utils.FormatRoute(e.Offer.Origin, e.Offer.Destination)
	target := 0.0
	if e.TargetPrice != nil {
		target = *e.TargetPrice
	}
	return &entity.AlertMessage{
		Title:    fmt.Sprintf("Target price reached: %s", route),
		Category: entity.AlertTargetReached,
		Body: fmt.Sprintf(targetReachedBody,
			carrierLabel(e),
			route,
			e.Offer.DepartureUTC.Format("Jan 2"),
			utils.FormatPrice(newPrice, e.Offer.Currency),
			utils.FormatPrice(target, e.Offer.Currency),
		),
		CorrelationID: uuid.NewString(),
		OwnerID:       e.OwnerID,
		CreatedAt:     time.Now().UTC(),
	}
}

// carrierLabel prefers the enriched carrier name over the bare code
func carrierLabel(e *entity.WatchlistEntry) string {
	if e.Offer.CarrierName != "" {
		return e.Offer.CarrierName
	}
	if e.Offer.Carrier != "" {
		return fmt.Sprintf("%s %s", e.Offer.Carrier, e.Offer.FlightNumber)
	}
	return "your flight"
}
