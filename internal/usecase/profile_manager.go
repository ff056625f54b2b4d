package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tpapu/FlightTrackers/internal/domain/entity"
	"github.com/tpapu/FlightTrackers/internal/domain/repository"
	"github.com/tpapu/FlightTrackers/pkg/logger"
)

// ProfileManager handles reading and editing the user profile
type ProfileManager struct {
	stateRepo repository.StateRepository
	logger    logger.Logger
	lock      *StateLock
}

// NewProfileManager creates a new profile manager
func NewProfileManager(stateRepo repository.StateRepository, logger logger.Logger, lock *StateLock) *ProfileManager {
	return &ProfileManager{
		stateRepo: stateRepo,
		logger:    logger,
		lock:      lock,
	}
}

// Get returns the owner's profile, defaulting a fresh one when none was
// ever saved
func (p *ProfileManager) Get(ctx context.Context, ownerID string) (*entity.UserProfile, error) {
	state, err := p.stateRepo.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if state.Profile == nil {
		return entity.DefaultProfile(ownerID), nil
	}
	return state.Profile, nil
}

// Update replaces the editable profile fields. Identity and creation
// time are preserved from the stored profile.
func (p *ProfileManager) Update(ctx context.Context, ownerID string, profile *entity.UserProfile) (*entity.UserProfile, error) {
	if profile.PreferredCurrency != "" && len(profile.PreferredCurrency) != 3 {
		return nil, fmt.Errorf("%w: preferred currency must be a 3-letter code", entity.ErrValidation)
	}
	if profile.Notifications.DropThresholdPct < 0 || profile.Notifications.IncreaseThresholdPct < 0 {
		return nil, fmt.Errorf("%w: alert thresholds cannot be negative", entity.ErrValidation)
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	state, err := p.stateRepo.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	existing := state.Profile
	if existing == nil {
		existing = entity.DefaultProfile(ownerID)
	}

	profile.OwnerID = ownerID
	profile.CreatedAt = existing.CreatedAt
	profile.UpdatedAt = time.Now().UTC()
	if profile.PreferredCurrency == "" {
		profile.PreferredCurrency = existing.PreferredCurrency
	}
	profile.PreferredCurrency = strings.ToUpper(profile.PreferredCurrency)

	state.Profile = profile
	if err := p.stateRepo.Save(ctx, state); err != nil {
		p.logger.Error("State save failed, keeping in-memory state", "ownerId", ownerID, "error", err)
	}

	return profile, nil
}
