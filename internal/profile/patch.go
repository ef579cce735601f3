package profile

// Patch is a sparse update to a candidate record. Every field is a pointer
// so a nil field is omitted from the JSON body entirely; the service leaves
// omitted fields untouched. Both the orchestrator (as producer) and the
// candidate service (as consumer) use this type.
type Patch struct {
	OnboardingStatus *string `json:"onboarding_status,omitempty"`
	FullName         *string `json:"full_name,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	Location         *string `json:"location,omitempty"`
	CurrentTitle     *string `json:"current_title,omitempty"`
	CurrentCompany   *string `json:"current_company,omitempty"`
	Bio              *string `json:"bio,omitempty"`
	LinkedInURL      *string `json:"linkedin_url,omitempty"`
	GitHubURL        *string `json:"github_url,omitempty"`
	PortfolioURL     *string `json:"portfolio_url,omitempty"`
	DesiredJobType   *string `json:"desired_job_type,omitempty"`
	Availability     *string `json:"availability,omitempty"`
	OpenToRemote     *bool   `json:"open_to_remote,omitempty"`
	OpenToRelocation *bool   `json:"open_to_relocation,omitempty"`
	DesiredSalaryMin *int    `json:"desired_salary_min,omitempty"`
	DesiredSalaryMax *int    `json:"desired_salary_max,omitempty"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// String returns a pointer to s, for building patches inline.
func String(s string) *string { return &s }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to n.
func Int(n int) *int { return &n }
