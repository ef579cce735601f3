package candidates

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"candidate-onboarding/internal/profile"
)

var candidateColumnNames = []string{
	"id", "user_id", "email", "full_name", "avatar_url", "onboarding_status",
	"phone", "location", "current_title", "current_company", "bio",
	"linkedin_url", "github_url", "portfolio_url",
	"desired_job_type", "availability", "open_to_remote", "open_to_relocation",
	"desired_salary_min", "desired_salary_max", "resume_document_id",
	"created_at", "updated_at",
}

func candidateRow(id, userID string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(candidateColumnNames).AddRow(
		id, userID, "a@b.test", "Ada L", nil, profile.StatusPending,
		"555-0100", nil, nil, nil, nil,
		nil, nil, nil,
		"full-time, contract", nil, true, nil,
		90000, nil, nil,
		now, now,
	)
}

func TestPGRepoCreateInsertsIdentityColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	candidate := Candidate{
		ID:               "cand-1",
		UserID:           "google:1",
		Email:            "a@b.test",
		FullName:         "Ada L",
		OnboardingStatus: profile.StatusPending,
	}

	mock.ExpectExec("INSERT INTO candidates").
		WithArgs(
			candidate.ID,
			candidate.UserID,
			candidate.Email,
			candidate.FullName,
			nil, // avatar_url empty -> NULL
			candidate.OnboardingStatus,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), candidate); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByUserNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT").
		WithArgs("google:none").
		WillReturnRows(sqlmock.NewRows(candidateColumnNames))

	if _, err := repo.GetByUser(context.Background(), "google:none"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpdateWritesOnlyPatchedColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	phone := "555-0100"
	remote := true
	patch := profile.Patch{Phone: &phone, OpenToRemote: &remote}

	mock.ExpectQuery(`UPDATE candidates SET phone = \$1, open_to_remote = \$2, updated_at = now\(\) WHERE id = \$3 RETURNING`).
		WithArgs(phone, remote, "cand-1").
		WillReturnRows(candidateRow("cand-1", "google:1"))

	updated, err := repo.Update(context.Background(), "cand-1", patch)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Phone != "555-0100" {
		t.Fatalf("expected phone scanned back, got %q", updated.Phone)
	}
	if updated.OpenToRemote == nil || !*updated.OpenToRemote {
		t.Fatalf("expected open_to_remote true, got %v", updated.OpenToRemote)
	}
	if updated.DesiredSalaryMin == nil || *updated.DesiredSalaryMin != 90000 {
		t.Fatalf("expected desired_salary_min 90000, got %v", updated.DesiredSalaryMin)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateEmptyPatchFallsBackToGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT").
		WithArgs("cand-1").
		WillReturnRows(candidateRow("cand-1", "google:1"))

	got, err := repo.Update(context.Background(), "cand-1", profile.Patch{})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.ID != "cand-1" {
		t.Fatalf("expected cand-1, got %q", got.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSetResumeDocumentNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE candidates SET resume_document_id").
		WithArgs("doc-1", "cand-missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.SetResumeDocument(context.Background(), "cand-missing", "doc-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
