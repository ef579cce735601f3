package profile

import "time"

// Onboarding lifecycle statuses as they appear on the wire.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusSkipped    = "skipped"
)

// ValidStatus reports whether s is a known onboarding status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusSkipped:
		return true
	}
	return false
}

// TerminalStatus reports whether s ends the onboarding wizard.
func TerminalStatus(s string) bool {
	return s == StatusCompleted || s == StatusSkipped
}

// Record is the candidate profile as exchanged with the candidate service.
type Record struct {
	ID               string    `json:"id"`
	Email            string    `json:"email,omitempty"`
	AvatarURL        string    `json:"avatar_url,omitempty"`
	OnboardingStatus string    `json:"onboarding_status"`
	FullName         string    `json:"full_name,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	Location         string    `json:"location,omitempty"`
	CurrentTitle     string    `json:"current_title,omitempty"`
	CurrentCompany   string    `json:"current_company,omitempty"`
	Bio              string    `json:"bio,omitempty"`
	LinkedInURL      string    `json:"linkedin_url,omitempty"`
	GitHubURL        string    `json:"github_url,omitempty"`
	PortfolioURL     string    `json:"portfolio_url,omitempty"`
	DesiredJobType   string    `json:"desired_job_type,omitempty"`
	Availability     string    `json:"availability,omitempty"`
	OpenToRemote     *bool     `json:"open_to_remote,omitempty"`
	OpenToRelocation *bool     `json:"open_to_relocation,omitempty"`
	DesiredSalaryMin *int      `json:"desired_salary_min,omitempty"`
	DesiredSalaryMax *int      `json:"desired_salary_max,omitempty"`
	ResumeDocumentID string    `json:"resume_document_id,omitempty"`
	CreatedAt        time.Time `json:"created_at,omitempty"`
	UpdatedAt        time.Time `json:"updated_at,omitempty"`
}
