// internal/domain/entity/user_profile.go
package entity

import (
	"time"
)

// Luggage preferences
const (
	LuggageCarryOnOnly = "carry_on_only"
	LuggageChecked     = "checked"
)

// NotificationSettings configures threshold-based price alerts
type NotificationSettings struct {
	PriceDropEnabled     bool    `json:"priceDropEnabled" bson:"priceDropEnabled"`
	PriceIncreaseEnabled bool    `json:"priceIncreaseEnabled" bson:"priceIncreaseEnabled"`
	DropThresholdPct     float64 `json:"dropThresholdPct" bson:"dropThresholdPct"`
	IncreaseThresholdPct float64 `json:"increaseThresholdPct" bson:"increaseThresholdPct"`
}

// UserProfile holds a user's identity and preferences
type UserProfile struct {
	OwnerID           string               `json:"ownerId" bson:"ownerId"`
	Name              string               `json:"name,omitempty" bson:"name,omitempty"`
	Email             string               `json:"email,omitempty" bson:"email,omitempty"`
	PreferredCurrency string               `json:"preferredCurrency" bson:"preferredCurrency"`
	PreferredAirports []string             `json:"preferredAirports,omitempty" bson:"preferredAirports,omitempty"`
	LuggagePreference string               `json:"luggagePreference" bson:"luggagePreference"`
	Notifications     NotificationSettings `json:"notifications" bson:"notifications"`
	CreatedAt         time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// DefaultProfile returns the profile a fresh owner starts with
func DefaultProfile(ownerID string) *UserProfile {
	now := time.Now().UTC()
	return &UserProfile{
		OwnerID:           ownerID,
		PreferredCurrency: "USD",
		LuggagePreference: LuggageCarryOnOnly,
		Notifications: NotificationSettings{
			PriceDropEnabled:     true,
			PriceIncreaseEnabled: true,
			DropThresholdPct:     10,
			IncreaseThresholdPct: 10,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
