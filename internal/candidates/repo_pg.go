package candidates

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"candidate-onboarding/internal/profile"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const candidateColumns = `
id, user_id, email, full_name, avatar_url, onboarding_status,
phone, location, current_title, current_company, bio,
linkedin_url, github_url, portfolio_url,
desired_job_type, availability, open_to_remote, open_to_relocation,
desired_salary_min, desired_salary_max, resume_document_id,
created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, candidate Candidate) error {
	const query = `
INSERT INTO candidates (
    id, user_id, email, full_name, avatar_url, onboarding_status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		candidate.ID,
		candidate.UserID,
		candidate.Email,
		nullableString(candidate.FullName),
		nullableString(candidate.AvatarURL),
		candidate.OnboardingStatus,
	)
	return err
}

func (r *PGRepo) GetByUser(ctx context.Context, userID string) (Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE user_id = $1 LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1 LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

// Update builds an UPDATE statement containing only the patched columns, so
// an omitted field is never written back as a blank.
func (r *PGRepo) Update(ctx context.Context, id string, patch profile.Patch) (Candidate, error) {
	sets := make([]string, 0, 16)
	args := make([]any, 0, 17)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.OnboardingStatus != nil {
		add("onboarding_status", *patch.OnboardingStatus)
	}
	if patch.FullName != nil {
		add("full_name", nullableString(*patch.FullName))
	}
	if patch.Phone != nil {
		add("phone", nullableString(*patch.Phone))
	}
	if patch.Location != nil {
		add("location", nullableString(*patch.Location))
	}
	if patch.CurrentTitle != nil {
		add("current_title", nullableString(*patch.CurrentTitle))
	}
	if patch.CurrentCompany != nil {
		add("current_company", nullableString(*patch.CurrentCompany))
	}
	if patch.Bio != nil {
		add("bio", nullableString(*patch.Bio))
	}
	if patch.LinkedInURL != nil {
		add("linkedin_url", nullableString(*patch.LinkedInURL))
	}
	if patch.GitHubURL != nil {
		add("github_url", nullableString(*patch.GitHubURL))
	}
	if patch.PortfolioURL != nil {
		add("portfolio_url", nullableString(*patch.PortfolioURL))
	}
	if patch.DesiredJobType != nil {
		add("desired_job_type", nullableString(*patch.DesiredJobType))
	}
	if patch.Availability != nil {
		add("availability", nullableString(*patch.Availability))
	}
	if patch.OpenToRemote != nil {
		add("open_to_remote", *patch.OpenToRemote)
	}
	if patch.OpenToRelocation != nil {
		add("open_to_relocation", *patch.OpenToRelocation)
	}
	if patch.DesiredSalaryMin != nil {
		add("desired_salary_min", *patch.DesiredSalaryMin)
	}
	if patch.DesiredSalaryMax != nil {
		add("desired_salary_max", *patch.DesiredSalaryMax)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at = now()")
	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE candidates SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), candidateColumns,
	)
	return r.scanOne(r.DB.QueryRowContext(ctx, query, args...))
}

func (r *PGRepo) SetResumeDocument(ctx context.Context, id, documentID string) error {
	const query = `UPDATE candidates SET resume_document_id = $1, updated_at = now() WHERE id = $2`
	res, err := r.DB.ExecContext(ctx, query, nullableString(documentID), id)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) scanOne(row rowScanner) (Candidate, error) {
	var c Candidate
	var fullName, avatarURL, phone, location sql.NullString
	var currentTitle, currentCompany, bio sql.NullString
	var linkedin, github, portfolio sql.NullString
	var jobType, availability, resumeDoc sql.NullString
	var openRemote, openRelocation sql.NullBool
	var salaryMin, salaryMax sql.NullInt64

	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Email,
		&fullName,
		&avatarURL,
		&c.OnboardingStatus,
		&phone,
		&location,
		&currentTitle,
		&currentCompany,
		&bio,
		&linkedin,
		&github,
		&portfolio,
		&jobType,
		&availability,
		&openRemote,
		&openRelocation,
		&salaryMin,
		&salaryMax,
		&resumeDoc,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Candidate{}, ErrNotFound
		}
		return Candidate{}, err
	}

	c.FullName = fullName.String
	c.AvatarURL = avatarURL.String
	c.Phone = phone.String
	c.Location = location.String
	c.CurrentTitle = currentTitle.String
	c.CurrentCompany = currentCompany.String
	c.Bio = bio.String
	c.LinkedInURL = linkedin.String
	c.GitHubURL = github.String
	c.PortfolioURL = portfolio.String
	c.DesiredJobType = jobType.String
	c.Availability = availability.String
	c.ResumeDocumentID = resumeDoc.String
	if openRemote.Valid {
		v := openRemote.Bool
		c.OpenToRemote = &v
	}
	if openRelocation.Valid {
		v := openRelocation.Bool
		c.OpenToRelocation = &v
	}
	if salaryMin.Valid {
		v := int(salaryMin.Int64)
		c.DesiredSalaryMin = &v
	}
	if salaryMax.Valid {
		v := int(salaryMax.Int64)
		c.DesiredSalaryMax = &v
	}
	return c, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
