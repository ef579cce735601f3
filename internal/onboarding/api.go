package onboarding

import (
	"context"

	"candidate-onboarding/internal/profile"
)

// Identity is the authenticated principal as known to the identity
// provider, before any candidate record exists for it.
type Identity struct {
	Subject   string
	Email     string
	FullName  string
	AvatarURL string
}

// Resolution is the outcome of resolving an identity to a record.
type Resolution struct {
	Record  profile.Record
	Created bool
}

// CandidatesAPI is the candidate-service surface the orchestrator consumes.
type CandidatesAPI interface {
	// LookupSelf fetches the caller's record, returning an error wrapping
	// ErrRecordNotFound when none exists.
	LookupSelf(ctx context.Context) (profile.Record, error)
	// Provision creates a record with defaults from identity attributes.
	Provision(ctx context.Context, ident Identity) (profile.Record, error)
	// Patch applies a sparse update to the record with the given id.
	Patch(ctx context.Context, recordID string, patch profile.Patch) (profile.Record, error)
}

// DocumentsAPI is the document-service surface for the resume slot.
type DocumentsAPI interface {
	// Upload stores data as the resume for the given record and returns
	// the assigned document id.
	Upload(ctx context.Context, recordID, fileName, mimeType string, data []byte) (string, error)
	// Delete removes a stored document.
	Delete(ctx context.Context, documentID string) error
}
