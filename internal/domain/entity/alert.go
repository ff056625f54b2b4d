// internal/domain/entity/alert.go
package entity

import (
	"time"
)

// AlertType defines the kind of price alert
type AlertType string

const (
	AlertPriceDrop     AlertType = "price_drop"
	AlertPriceIncrease AlertType = "price_increase"
	AlertTargetReached AlertType = "target_reached"
)

// AlertMessage is the structured message handed to the notifier
type AlertMessage struct {
	Title         string    `json:"title" bson:"title"`
	Body          string    `json:"body" bson:"body"`
	Category      AlertType `json:"category" bson:"category"`
	CorrelationID string    `json:"correlationId" bson:"correlationId"`
	OwnerID       string    `json:"ownerId" bson:"ownerId"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}
