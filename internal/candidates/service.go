package candidates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"candidate-onboarding/internal/profile"
	"candidate-onboarding/internal/shared/metrics"
)

var (
	ErrForbidden     = errors.New("candidate belongs to another user")
	ErrInvalidStatus = errors.New("invalid onboarding status")
)

// Service contains business logic for candidate records.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// GetForUser returns the candidate record owned by the user.
func (s *Service) GetForUser(ctx context.Context, userID string) (Candidate, error) {
	if strings.TrimSpace(userID) == "" {
		return Candidate{}, errors.New("user id is required")
	}
	return s.Repo.GetByUser(ctx, userID)
}

// Provision creates a candidate with defaults from identity attributes.
// It is idempotent per user: if a record already exists it is returned
// unchanged, so a double-submitted creation call cannot produce duplicates.
func (s *Service) Provision(ctx context.Context, userID, email, fullName, avatarURL string) (Candidate, bool, error) {
	if strings.TrimSpace(userID) == "" {
		return Candidate{}, false, errors.New("user id is required")
	}

	if existing, err := s.Repo.GetByUser(ctx, userID); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return Candidate{}, false, err
	}

	candidate := Candidate{
		ID:               uuid.NewString(),
		UserID:           userID,
		Email:            strings.TrimSpace(email),
		FullName:         strings.TrimSpace(fullName),
		AvatarURL:        strings.TrimSpace(avatarURL),
		OnboardingStatus: profile.StatusPending,
	}
	if err := s.Repo.Create(ctx, candidate); err != nil {
		// A concurrent provision may have won the race; surface its record.
		if existing, lookupErr := s.Repo.GetByUser(ctx, userID); lookupErr == nil {
			return existing, false, nil
		}
		return Candidate{}, false, fmt.Errorf("create candidate: %w", err)
	}

	created, err := s.Repo.GetByUser(ctx, userID)
	if err != nil {
		return Candidate{}, false, fmt.Errorf("load created candidate: %w", err)
	}
	metrics.IncCandidateProvisioned()
	return created, true, nil
}

// ApplyPatch validates and applies a sparse update to the user's record.
func (s *Service) ApplyPatch(ctx context.Context, userID, recordID string, patch profile.Patch) (Candidate, error) {
	existing, err := s.Repo.GetByID(ctx, recordID)
	if err != nil {
		return Candidate{}, err
	}
	if existing.UserID != userID {
		return Candidate{}, ErrForbidden
	}
	if patch.OnboardingStatus != nil && !profile.ValidStatus(*patch.OnboardingStatus) {
		return Candidate{}, fmt.Errorf("%w: %q", ErrInvalidStatus, *patch.OnboardingStatus)
	}
	if patch.IsEmpty() {
		return existing, nil
	}

	updated, err := s.Repo.Update(ctx, recordID, patch)
	if err != nil {
		return Candidate{}, err
	}
	if patch.OnboardingStatus != nil && existing.OnboardingStatus != updated.OnboardingStatus {
		switch updated.OnboardingStatus {
		case profile.StatusCompleted:
			metrics.IncOnboardingCompleted()
		case profile.StatusSkipped:
			metrics.IncOnboardingSkipped()
		}
	}
	return updated, nil
}
