package oauth

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/tpapu/FlightTrackers/pkg/logger"
)

// FlightAPIOAuth handles client-credentials authentication with the
// flight data source
type FlightAPIOAuth struct {
	config *clientcredentials.Config
	logger logger.Logger
}

// NewFlightAPIOAuth creates a new flight API OAuth handler
func NewFlightAPIOAuth(clientID, clientSecret, tokenURL string, logger logger.Logger) *FlightAPIOAuth {
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}

	return &FlightAPIOAuth{
		config: config,
		logger: logger,
	}
}

// GetTokenSource returns a token source that refreshes itself as tokens
// expire
func (o *FlightAPIOAuth) GetTokenSource(ctx context.Context) oauth2.TokenSource {
	return o.config.TokenSource(ctx)
}

// Client returns an HTTP client that attaches bearer tokens to every
// request
func (o *FlightAPIOAuth) Client(ctx context.Context) *http.Client {
	return oauth2.NewClient(ctx, o.GetTokenSource(ctx))
}
