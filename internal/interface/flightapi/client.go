package flightapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tpapu/FlightTrackers/internal/domain/entity"
	"github.com/tpapu/FlightTrackers/internal/domain/repository"
	"github.com/tpapu/FlightTrackers/pkg/logger"
)

// Client calls the flight-offers search API. The HTTP client is expected
// to carry OAuth credentials (see infrastructure/oauth).
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     logger.Logger
}

// NewClient creates a new flight API client
func NewClient(httpClient *http.Client, baseURL string, logger logger.Logger) repository.FlightOfferRepository {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
	}
}

// legRecord is the wire format of one itinerary segment
type legRecord struct {
	FlightNumber string    `json:"flightNumber"`
	Carrier      string    `json:"carrier"`
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	DepartureAt  time.Time `json:"departureAt"`
	ArrivalAt    time.Time `json:"arrivalAt"`
}

// offerRecord is the wire format of one priced offer
type offerRecord struct {
	ID              string      `json:"id"`
	Origin          string      `json:"origin"`
	Destination     string      `json:"destination"`
	DepartureAt     time.Time   `json:"departureAt"`
	ArrivalAt       time.Time   `json:"arrivalAt"`
	Price           float64     `json:"price"`
	Currency        string      `json:"currency"`
	Carrier         string      `json:"carrier"`
	FlightNumber    string      `json:"flightNumber"`
	SeatsAvailable  int         `json:"seatsAvailable"`
	CabinClass      string      `json:"cabinClass"`
	DurationMinutes int         `json:"durationMinutes"`
	Stops           int         `json:"stops"`
	Legs            []legRecord `json:"legs"`
}

type searchResponse struct {
	Data  []offerRecord `json:"data"`
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Search queries the data source for offers matching the request. The
// request must already be validated; the data source's own rejections
// surface as ErrInvalidRequest / ErrUnauthorized.
func (c *Client) Search(ctx context.Context, req *entity.SearchRequest) ([]*entity.FlightOffer, error) {
	params := url.Values{}
	params.Set("origin", req.Origin)
	params.Set("destination", req.Destination)
	params.Set("departureDate", req.DepartureDate)
	if req.ReturnDate != "" {
		params.Set("returnDate", req.ReturnDate)
	}
	params.Set("passengers", strconv.Itoa(req.Passengers))
	if req.CabinClass != "" {
		params.Set("cabinClass", req.CabinClass)
	}

	endpoint := fmt.Sprintf("%s/v1/offers/search?%s", c.baseURL, params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		var body searchResponse
		json.NewDecoder(resp.Body).Decode(&body)
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidRequest, body.Error.Message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: flight API rejected credentials (status %d)", entity.ErrUnauthorized, resp.StatusCode)
	default:
		return nil, fmt.Errorf("flight API returned status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrDecode, err)
	}

	offers := make([]*entity.FlightOffer, 0, len(body.Data))
	for _, rec := range body.Data {
		offers = append(offers, convertOffer(rec))
	}

	c.logger.Info("Flight search completed",
		"origin", req.Origin,
		"destination", req.Destination,
		"departureDate", req.DepartureDate,
		"offers", len(offers))

	return offers, nil
}

// CheapestPrice returns the lowest offer price currently available for a
// route, used by the watchlist refresher
func (c *Client) CheapestPrice(ctx context.Context, origin, destination, departureDate string) (float64, error) {
	offers, err := c.Search(ctx, &entity.SearchRequest{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: departureDate,
		Passengers:    1,
	})
	if err != nil {
		return 0, err
	}
	if len(offers) == 0 {
		return 0, fmt.Errorf("%w: no offers for %s-%s on %s", entity.ErrNotFound, origin, destination, departureDate)
	}

	cheapest := offers[0].Price
	for _, offer := range offers[1:] {
		if offer.Price < cheapest {
			cheapest = offer.Price
		}
	}
	return cheapest, nil
}

// convertOffer converts a wire record to the domain entity
func convertOffer(rec offerRecord) *entity.FlightOffer {
	offer := &entity.FlightOffer{
		OfferID:         rec.ID,
		Origin:          rec.Origin,
		Destination:     rec.Destination,
		DepartureUTC:    rec.DepartureAt.UTC(),
		ArrivalUTC:      rec.ArrivalAt.UTC(),
		Price:           rec.Price,
		Currency:        rec.Currency,
		Carrier:         rec.Carrier,
		FlightNumber:    rec.FlightNumber,
		SeatsAvailable:  rec.SeatsAvailable,
		CabinClass:      rec.CabinClass,
		DurationMinutes: rec.DurationMinutes,
		Stops:           rec.Stops,
	}

	for _, leg := range rec.Legs {
		offer.Legs = append(offer.Legs, entity.FlightLeg{
			FlightNumber: leg.FlightNumber,
			Carrier:      leg.Carrier,
			Origin:       leg.Origin,
			Destination:  leg.Destination,
			DepartureUTC: leg.DepartureAt.UTC(),
			ArrivalUTC:   leg.ArrivalAt.UTC(),
		})
	}

	return offer
}
