package candidates

import (
	"context"
	"errors"

	"candidate-onboarding/internal/profile"
)

var ErrNotFound = errors.New("candidate not found")

// Repo defines persistence operations for candidate records.
type Repo interface {
	Create(ctx context.Context, candidate Candidate) error
	GetByUser(ctx context.Context, userID string) (Candidate, error)
	GetByID(ctx context.Context, id string) (Candidate, error)
	// Update applies a sparse patch: only non-nil patch fields change.
	Update(ctx context.Context, id string, patch profile.Patch) (Candidate, error)
	// SetResumeDocument links (or, with empty documentID, unlinks) the
	// candidate's resume document.
	SetResumeDocument(ctx context.Context, id, documentID string) error
}
