package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"candidate-onboarding/internal/candidates"
)

type fakeStore struct {
	saves     int
	deletes   []string
	deleteErr error
}

func (f *fakeStore) Save(ctx context.Context, userID, fileName string, r io.Reader) (string, int64, string, error) {
	f.saves++
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", err
	}
	return fmt.Sprintf("%s/%s", userID, fileName), int64(len(data)), "application/pdf", nil
}

func (f *fakeStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(nil)), nil
}

func (f *fakeStore) Delete(ctx context.Context, storageKey string) error {
	f.deletes = append(f.deletes, storageKey)
	return f.deleteErr
}

func newTestService(t *testing.T) (*Service, *fakeStore, candidates.Candidate) {
	t.Helper()
	store := &fakeStore{}
	candRepo := candidates.NewMemoryRepo()
	svc := &Service{
		Store:      store,
		Repo:       NewMemoryRepo(),
		Candidates: candRepo,
	}

	candSvc := candidates.NewService(candRepo)
	candidate, _, err := candSvc.Provision(context.Background(), "google:1", "a@b.test", "Ada L", "")
	if err != nil {
		t.Fatalf("provision candidate: %v", err)
	}
	return svc, store, candidate
}

func TestUploadLinksResumeToCandidate(t *testing.T) {
	svc, store, candidate := newTestService(t)

	doc, err := svc.Upload(context.Background(), "google:1", candidate.ID, "resume.pdf", bytes.NewReader([]byte("%PDF-1.4")))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if doc.ID == "" || doc.StorageKey == "" {
		t.Fatalf("expected populated document, got %+v", doc)
	}
	if doc.EntityType != EntityCandidate || doc.DocumentType != TypeResume {
		t.Fatalf("unexpected document tags: %+v", doc)
	}
	if store.saves != 1 {
		t.Fatalf("expected one store save, got %d", store.saves)
	}

	linked, err := svc.Candidates.GetByID(context.Background(), candidate.ID)
	if err != nil {
		t.Fatalf("reload candidate: %v", err)
	}
	if linked.ResumeDocumentID != doc.ID {
		t.Fatalf("expected resume linked, got %q", linked.ResumeDocumentID)
	}
}

func TestUploadRejectsUnknownCandidate(t *testing.T) {
	svc, store, _ := newTestService(t)

	_, err := svc.Upload(context.Background(), "google:1", "no-such-candidate", "resume.pdf", bytes.NewReader([]byte("x")))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if store.saves != 0 {
		t.Fatalf("expected no store save for rejected upload")
	}
}

func TestUploadRejectsForeignCandidate(t *testing.T) {
	svc, _, candidate := newTestService(t)

	_, err := svc.Upload(context.Background(), "google:2", candidate.ID, "resume.pdf", bytes.NewReader([]byte("x")))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRemoveUnlinksAndDeletesBlob(t *testing.T) {
	svc, store, candidate := newTestService(t)

	doc, err := svc.Upload(context.Background(), "google:1", candidate.ID, "resume.pdf", bytes.NewReader([]byte("x")))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := svc.Remove(context.Background(), "google:1", doc.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if _, err := svc.Repo.GetByID(context.Background(), doc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected soft-deleted document, got %v", err)
	}
	unlinked, err := svc.Candidates.GetByID(context.Background(), candidate.ID)
	if err != nil {
		t.Fatalf("reload candidate: %v", err)
	}
	if unlinked.ResumeDocumentID != "" {
		t.Fatalf("expected resume unlinked, got %q", unlinked.ResumeDocumentID)
	}
	if len(store.deletes) != 1 || store.deletes[0] != doc.StorageKey {
		t.Fatalf("expected blob delete for %q, got %v", doc.StorageKey, store.deletes)
	}
}

func TestRemoveSwallowsBlobDeleteFailure(t *testing.T) {
	svc, store, candidate := newTestService(t)
	store.deleteErr = errors.New("s3 unavailable")

	doc, err := svc.Upload(context.Background(), "google:1", candidate.ID, "resume.pdf", bytes.NewReader([]byte("x")))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := svc.Remove(context.Background(), "google:1", doc.ID); err != nil {
		t.Fatalf("remove should succeed despite blob delete failure, got %v", err)
	}
}

func TestRemoveRejectsForeignDocument(t *testing.T) {
	svc, _, candidate := newTestService(t)

	doc, err := svc.Upload(context.Background(), "google:1", candidate.ID, "resume.pdf", bytes.NewReader([]byte("x")))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := svc.Remove(context.Background(), "google:2", doc.ID); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRemoveKeepsLinkOfReplacementResume(t *testing.T) {
	svc, _, candidate := newTestService(t)

	first, err := svc.Upload(context.Background(), "google:1", candidate.ID, "old.pdf", bytes.NewReader([]byte("x")))
	if err != nil {
		t.Fatalf("upload first: %v", err)
	}
	second, err := svc.Upload(context.Background(), "google:1", candidate.ID, "new.pdf", bytes.NewReader([]byte("y")))
	if err != nil {
		t.Fatalf("upload second: %v", err)
	}

	// Deleting the superseded document must not clear the link to the
	// currently attached one.
	if err := svc.Remove(context.Background(), "google:1", first.ID); err != nil {
		t.Fatalf("remove first: %v", err)
	}
	linked, err := svc.Candidates.GetByID(context.Background(), candidate.ID)
	if err != nil {
		t.Fatalf("reload candidate: %v", err)
	}
	if linked.ResumeDocumentID != second.ID {
		t.Fatalf("expected link to %q preserved, got %q", second.ID, linked.ResumeDocumentID)
	}
}
