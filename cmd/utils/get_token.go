package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"golang.org/x/oauth2/clientcredentials"
)

// Fetches an access token from the flight API with the configured client
// credentials and prints it. Useful for checking credentials before
// deploying.
func main() {
	config := &clientcredentials.Config{
		ClientID:     os.Getenv("FLIGHT_API_CLIENT_ID"),
		ClientSecret: os.Getenv("FLIGHT_API_CLIENT_SECRET"),
		TokenURL:     os.Getenv("FLIGHT_API_TOKEN_URL"),
	}

	if config.ClientID == "" || config.ClientSecret == "" || config.TokenURL == "" {
		log.Fatal("FLIGHT_API_CLIENT_ID, FLIGHT_API_CLIENT_SECRET and FLIGHT_API_TOKEN_URL must be set")
	}

	token, err := config.Token(context.Background())
	if err != nil {
		log.Fatalf("Failed to fetch token: %v", err)
	}

	fmt.Printf("\nAccess Token: %s\nExpires: %s\n\n", token.AccessToken, token.Expiry)
}
