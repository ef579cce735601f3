package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"candidate-onboarding/internal/candidates"
	"candidate-onboarding/internal/shared/metrics"
	"candidate-onboarding/internal/shared/storage/object"
	"candidate-onboarding/internal/shared/telemetry"
)

// Service contains business logic for candidate documents.
type Service struct {
	Store      object.ObjectStore
	Repo       Repo
	Candidates candidates.Repo
}

// Upload stores the file, records the document, and links it as the
// candidate's resume. The candidate must belong to the uploading user.
func (s *Service) Upload(ctx context.Context, userID, entityID, fileName string, r io.Reader) (Document, error) {
	if fileName == "" || entityID == "" {
		return Document{}, ErrInvalidInput
	}

	candidate, err := s.Candidates.GetByID(ctx, entityID)
	if err != nil {
		if errors.Is(err, candidates.ErrNotFound) {
			return Document{}, fmt.Errorf("%w: unknown candidate", ErrInvalidInput)
		}
		return Document{}, err
	}
	if candidate.UserID != userID {
		return Document{}, fmt.Errorf("%w: candidate belongs to another user", ErrInvalidInput)
	}

	started := metrics.NowMillis()
	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, fileName, r)
	if err != nil {
		metrics.IncResumeUploadFailure()
		return Document{}, err
	}

	doc := Document{
		ID:           uuid.NewString(),
		UserID:       userID,
		EntityType:   EntityCandidate,
		EntityID:     entityID,
		DocumentType: TypeResume,
		FileName:     fileName,
		MimeType:     mimeType,
		SizeBytes:    size,
		StorageKey:   storageKey,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		metrics.IncResumeUploadFailure()
		return Document{}, err
	}
	metrics.IncResumeUpload()
	metrics.ObserveUploadDurationMs(metrics.NowMillis() - started)

	if err := s.Candidates.SetResumeDocument(ctx, entityID, doc.ID); err != nil {
		telemetry.Error("documents.link_failed", map[string]any{
			"document_id":  doc.ID,
			"candidate_id": entityID,
			"error":        err.Error(),
		})
	}
	return doc, nil
}

// Remove soft-deletes the document, unlinks it from its candidate, and
// removes the stored bytes best-effort.
func (s *Service) Remove(ctx context.Context, userID, documentID string) error {
	doc, err := s.Repo.GetByID(ctx, documentID)
	if err != nil {
		return err
	}
	if doc.UserID != userID {
		return fmt.Errorf("%w: document belongs to another user", ErrInvalidInput)
	}

	if err := s.Repo.SoftDelete(ctx, documentID); err != nil {
		return err
	}

	if candidate, err := s.Candidates.GetByID(ctx, doc.EntityID); err == nil && candidate.ResumeDocumentID == doc.ID {
		if err := s.Candidates.SetResumeDocument(ctx, doc.EntityID, ""); err != nil {
			telemetry.Error("documents.unlink_failed", map[string]any{
				"document_id":  doc.ID,
				"candidate_id": doc.EntityID,
				"error":        err.Error(),
			})
		}
	}

	if err := s.Store.Delete(ctx, doc.StorageKey); err != nil {
		telemetry.Error("documents.blob_delete_failed", map[string]any{
			"document_id": doc.ID,
			"storage_key": doc.StorageKey,
			"error":       err.Error(),
		})
	}
	return nil
}
