// internal/domain/entity/flight_offer.go
package entity

import (
	"time"
)

// Cabin classes accepted by the flight data source
const (
	CabinEconomy        = "ECONOMY"
	CabinPremiumEconomy = "PREMIUM_ECONOMY"
	CabinBusiness       = "BUSINESS"
	CabinFirst          = "FIRST"
)

// FlightLeg represents one segment of a multi-stop itinerary
type FlightLeg struct {
	FlightNumber string    `json:"flightNumber" bson:"flightNumber"`
	Carrier      string    `json:"carrier" bson:"carrier"`
	Origin       string    `json:"origin" bson:"origin"`
	Destination  string    `json:"destination" bson:"destination"`
	DepartureUTC time.Time `json:"departureUtc" bson:"departureUtc"`
	ArrivalUTC   time.Time `json:"arrivalUtc" bson:"arrivalUtc"`
}

// FlightOffer represents one priced itinerary returned by the data source.
// Offers are immutable once returned; the price a user keeps watching lives
// in the watchlist entry's snapshot history, not here.
type FlightOffer struct {
	OfferID         string      `json:"offerId" bson:"offerId"`
	Origin          string      `json:"origin" bson:"origin"`
	Destination     string      `json:"destination" bson:"destination"`
	OriginName      string      `json:"originName,omitempty" bson:"originName,omitempty"`
	DestinationName string      `json:"destinationName,omitempty" bson:"destinationName,omitempty"`
	DepartureUTC    time.Time   `json:"departureUtc" bson:"departureUtc"`
	ArrivalUTC      time.Time   `json:"arrivalUtc" bson:"arrivalUtc"`
	Price           float64     `json:"price" bson:"price"`
	Currency        string      `json:"currency" bson:"currency"`
	Carrier         string      `json:"carrier" bson:"carrier"`
	CarrierName     string      `json:"carrierName,omitempty" bson:"carrierName,omitempty"`
	FlightNumber    string      `json:"flightNumber" bson:"flightNumber"`
	SeatsAvailable  int         `json:"seatsAvailable" bson:"seatsAvailable"`
	CabinClass      string      `json:"cabinClass" bson:"cabinClass"`
	DurationMinutes int         `json:"durationMinutes" bson:"durationMinutes"`
	Stops           int         `json:"stops" bson:"stops"`
	Legs            []FlightLeg `json:"legs,omitempty" bson:"legs,omitempty"`
}

// RouteKey returns the route+date identifier this offer belongs to,
// e.g. "JFK:LAX:2026-09-14"
func (o *FlightOffer) RouteKey() string {
	return RouteKeyFor(o.Origin, o.Destination, o.DepartureUTC.Format("2006-01-02"))
}
