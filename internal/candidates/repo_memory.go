package candidates

import (
	"context"
	"errors"
	"sync"
	"time"

	"candidate-onboarding/internal/profile"
)

// MemoryRepo is the in-memory Repo used when no database is configured.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]Candidate
	byUser map[string]string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]Candidate),
		byUser: make(map[string]string),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, candidate Candidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUser[candidate.UserID]; ok {
		return errors.New("candidate already exists for user")
	}
	now := time.Now().UTC()
	candidate.CreatedAt = now
	candidate.UpdatedAt = now
	r.byID[candidate.ID] = candidate
	r.byUser[candidate.UserID] = candidate.ID
	return nil
}

func (r *MemoryRepo) GetByUser(ctx context.Context, userID string) (Candidate, error) {
	if err := ctx.Err(); err != nil {
		return Candidate{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byUser[userID]
	if !ok {
		return Candidate{}, ErrNotFound
	}
	return r.byID[id], nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Candidate, error) {
	if err := ctx.Err(); err != nil {
		return Candidate{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	candidate, ok := r.byID[id]
	if !ok {
		return Candidate{}, ErrNotFound
	}
	return candidate, nil
}

func (r *MemoryRepo) Update(ctx context.Context, id string, patch profile.Patch) (Candidate, error) {
	if err := ctx.Err(); err != nil {
		return Candidate{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	candidate, ok := r.byID[id]
	if !ok {
		return Candidate{}, ErrNotFound
	}
	candidate.applyPatch(patch)
	candidate.UpdatedAt = time.Now().UTC()
	r.byID[id] = candidate
	return candidate, nil
}

func (r *MemoryRepo) SetResumeDocument(ctx context.Context, id, documentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	candidate, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	candidate.ResumeDocumentID = documentID
	candidate.UpdatedAt = time.Now().UTC()
	r.byID[id] = candidate
	return nil
}
