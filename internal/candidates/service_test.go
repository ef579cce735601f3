package candidates

import (
	"context"
	"errors"
	"testing"

	"candidate-onboarding/internal/profile"
)

func TestProvisionCreatesPendingCandidate(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	candidate, created, err := svc.Provision(context.Background(), "google:1", "a@b.test", "Ada L", "")
	if err != nil {
		t.Fatalf("provision: %v", err)
	}
	if !created {
		t.Fatalf("expected created=true")
	}
	if candidate.ID == "" {
		t.Fatalf("expected generated id")
	}
	if candidate.OnboardingStatus != profile.StatusPending {
		t.Fatalf("expected pending status, got %q", candidate.OnboardingStatus)
	}
	if candidate.Email != "a@b.test" || candidate.FullName != "Ada L" {
		t.Fatalf("identity attributes not stored: %+v", candidate)
	}
}

func TestProvisionIdempotentPerUser(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	first, created, err := svc.Provision(context.Background(), "google:1", "a@b.test", "", "")
	if err != nil || !created {
		t.Fatalf("first provision: created=%v err=%v", created, err)
	}

	second, created, err := svc.Provision(context.Background(), "google:1", "other@b.test", "", "")
	if err != nil {
		t.Fatalf("second provision: %v", err)
	}
	if created {
		t.Fatalf("expected created=false on repeat provision")
	}
	if second.ID != first.ID {
		t.Fatalf("expected same record, got %s and %s", first.ID, second.ID)
	}
	if second.Email != "a@b.test" {
		t.Fatalf("repeat provision must not overwrite existing record, got email %q", second.Email)
	}
}

func TestGetForUserNotFound(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	if _, err := svc.GetForUser(context.Background(), "google:none"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApplyPatchSparseUpdate(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	candidate, _, err := svc.Provision(context.Background(), "google:1", "a@b.test", "Ada L", "")
	if err != nil {
		t.Fatalf("provision: %v", err)
	}

	phone := "555-0100"
	updated, err := svc.ApplyPatch(context.Background(), "google:1", candidate.ID, profile.Patch{Phone: &phone})
	if err != nil {
		t.Fatalf("apply patch: %v", err)
	}
	if updated.Phone != "555-0100" {
		t.Fatalf("expected phone updated, got %q", updated.Phone)
	}
	if updated.FullName != "Ada L" {
		t.Fatalf("omitted field was overwritten: %q", updated.FullName)
	}
}

func TestApplyPatchRejectsForeignUser(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	candidate, _, err := svc.Provision(context.Background(), "google:1", "a@b.test", "", "")
	if err != nil {
		t.Fatalf("provision: %v", err)
	}

	phone := "555-0100"
	if _, err := svc.ApplyPatch(context.Background(), "google:2", candidate.ID, profile.Patch{Phone: &phone}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestApplyPatchRejectsInvalidStatus(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	candidate, _, err := svc.Provision(context.Background(), "google:1", "a@b.test", "", "")
	if err != nil {
		t.Fatalf("provision: %v", err)
	}

	bogus := "abandoned"
	if _, err := svc.ApplyPatch(context.Background(), "google:1", candidate.ID, profile.Patch{OnboardingStatus: &bogus}); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestApplyPatchEmptyPatchIsNoOp(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	candidate, _, err := svc.Provision(context.Background(), "google:1", "a@b.test", "", "")
	if err != nil {
		t.Fatalf("provision: %v", err)
	}

	got, err := svc.ApplyPatch(context.Background(), "google:1", candidate.ID, profile.Patch{})
	if err != nil {
		t.Fatalf("apply empty patch: %v", err)
	}
	if got.UpdatedAt != candidate.UpdatedAt {
		t.Fatalf("empty patch must not touch the record")
	}
}

func TestApplyPatchStatusTransition(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	candidate, _, err := svc.Provision(context.Background(), "google:1", "a@b.test", "", "")
	if err != nil {
		t.Fatalf("provision: %v", err)
	}

	completed := profile.StatusCompleted
	updated, err := svc.ApplyPatch(context.Background(), "google:1", candidate.ID, profile.Patch{OnboardingStatus: &completed})
	if err != nil {
		t.Fatalf("apply status patch: %v", err)
	}
	if updated.OnboardingStatus != profile.StatusCompleted {
		t.Fatalf("expected completed, got %q", updated.OnboardingStatus)
	}
}
