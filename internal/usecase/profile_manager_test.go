package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tpapu/FlightTrackers/internal/domain/entity"
	"github.com/tpapu/FlightTrackers/internal/usecase"
)

func TestProfileManager_Get_Defaults(t *testing.T) {
	manager := usecase.NewProfileManager(newMemStateRepo(), nopLogger{}, usecase.NewStateLock())

	profile, err := manager.Get(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, "user-1", profile.OwnerID)
	assert.Equal(t, "USD", profile.PreferredCurrency)
	assert.Equal(t, entity.LuggageCarryOnOnly, profile.LuggagePreference)
	assert.Equal(t, 10.0, profile.Notifications.DropThresholdPct)
}

func TestProfileManager_Update(t *testing.T) {
	states := newMemStateRepo()
	manager := usecase.NewProfileManager(states, nopLogger{}, usecase.NewStateLock())

	existing, err := manager.Get(context.Background(), "user-1")
	require.NoError(t, err)

	updated, err := manager.Update(context.Background(), "user-1", &entity.UserProfile{
		Name:              "Alex",
		PreferredCurrency: "eur",
		PreferredAirports: []string{"JFK", "EWR"},
		Notifications: entity.NotificationSettings{
			PriceDropEnabled: true,
			DropThresholdPct: 5,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "user-1", updated.OwnerID)
	assert.Equal(t, "EUR", updated.PreferredCurrency)
	assert.Equal(t, existing.CreatedAt, updated.CreatedAt)
	assert.Equal(t, 5.0, updated.Notifications.DropThresholdPct)

	reloaded, err := manager.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Alex", reloaded.Name)
}

func TestProfileManager_Update_KeepsCurrencyWhenOmitted(t *testing.T) {
	manager := usecase.NewProfileManager(newMemStateRepo(), nopLogger{}, usecase.NewStateLock())

	updated, err := manager.Update(context.Background(), "user-1", &entity.UserProfile{Name: "Alex"})
	require.NoError(t, err)

	assert.Equal(t, "USD", updated.PreferredCurrency)
}

func TestProfileManager_Update_Validation(t *testing.T) {
	manager := usecase.NewProfileManager(newMemStateRepo(), nopLogger{}, usecase.NewStateLock())

	_, err := manager.Update(context.Background(), "user-1", &entity.UserProfile{PreferredCurrency: "EURO"})
	assert.ErrorIs(t, err, entity.ErrValidation)

	_, err = manager.Update(context.Background(), "user-1", &entity.UserProfile{
		Notifications: entity.NotificationSettings{DropThresholdPct: -1},
	})
	assert.ErrorIs(t, err, entity.ErrValidation)
}
