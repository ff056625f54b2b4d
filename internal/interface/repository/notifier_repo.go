package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tpapu/FlightTrackers/internal/domain/entity"
	"github.com/tpapu/FlightTrackers/internal/domain/repository"
	"github.com/tpapu/FlightTrackers/pkg/logger"
)

// PushNotifierRepository delivers alert messages to the push notification
// service. Delivery is fire-and-forget; the returned delivery id is only
// logged.
type PushNotifierRepository struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
	client      *http.Client
}

// NewPushNotifierRepository creates a new push notifier repository
func NewPushNotifierRepository(baseURL, bearerToken string, logger logger.Logger) repository.NotifierRepository {
	return &PushNotifierRepository{
		logger:      logger,
		baseURL:     baseURL,
		bearerToken: bearerToken,
		client:      &http.Client{Timeout: 30 * time.Second},
	}
}

// SendAlert sends an alert message to the notifier service and returns
// the delivery id
func (r *PushNotifierRepository) SendAlert(ctx context.Context, msg *entity.AlertMessage) (string, error) {
	jsonData, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal alert: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/notifications/send", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return "", fmt.Errorf("notifier returned status %d: %v", resp.StatusCode, errorBody)
	}

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			DeliveryID string `json:"deliveryId"`
			Status     string `json:"status"`
		} `json:"data"`
		Error struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if !response.Success {
		return "", fmt.Errorf("notifier rejected alert: %s (code: %s)", response.Error.Message, response.Error.Code)
	}

	r.logger.Info("Alert delivered to notifier",
		"deliveryId", response.Data.DeliveryID,
		"category", msg.Category,
		"correlationId", msg.CorrelationID)

	return response.Data.DeliveryID, nil
}
