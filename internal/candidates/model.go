package candidates

import (
	"time"

	"candidate-onboarding/internal/profile"
)

// Candidate is a candidate profile record owned by one authenticated user.
type Candidate struct {
	ID               string
	UserID           string
	Email            string
	FullName         string
	AvatarURL        string
	OnboardingStatus string
	Phone            string
	Location         string
	CurrentTitle     string
	CurrentCompany   string
	Bio              string
	LinkedInURL      string
	GitHubURL        string
	PortfolioURL     string
	DesiredJobType   string
	Availability     string
	OpenToRemote     *bool
	OpenToRelocation *bool
	DesiredSalaryMin *int
	DesiredSalaryMax *int
	ResumeDocumentID string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ToRecord converts the candidate to its wire representation.
func (c Candidate) ToRecord() profile.Record {
	return profile.Record{
		ID:               c.ID,
		Email:            c.Email,
		AvatarURL:        c.AvatarURL,
		OnboardingStatus: c.OnboardingStatus,
		FullName:         c.FullName,
		Phone:            c.Phone,
		Location:         c.Location,
		CurrentTitle:     c.CurrentTitle,
		CurrentCompany:   c.CurrentCompany,
		Bio:              c.Bio,
		LinkedInURL:      c.LinkedInURL,
		GitHubURL:        c.GitHubURL,
		PortfolioURL:     c.PortfolioURL,
		DesiredJobType:   c.DesiredJobType,
		Availability:     c.Availability,
		OpenToRemote:     c.OpenToRemote,
		OpenToRelocation: c.OpenToRelocation,
		DesiredSalaryMin: c.DesiredSalaryMin,
		DesiredSalaryMax: c.DesiredSalaryMax,
		ResumeDocumentID: c.ResumeDocumentID,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// applyPatch merges a sparse patch into the candidate in place.
func (c *Candidate) applyPatch(p profile.Patch) {
	if p.OnboardingStatus != nil {
		c.OnboardingStatus = *p.OnboardingStatus
	}
	if p.FullName != nil {
		c.FullName = *p.FullName
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Location != nil {
		c.Location = *p.Location
	}
	if p.CurrentTitle != nil {
		c.CurrentTitle = *p.CurrentTitle
	}
	if p.CurrentCompany != nil {
		c.CurrentCompany = *p.CurrentCompany
	}
	if p.Bio != nil {
		c.Bio = *p.Bio
	}
	if p.LinkedInURL != nil {
		c.LinkedInURL = *p.LinkedInURL
	}
	if p.GitHubURL != nil {
		c.GitHubURL = *p.GitHubURL
	}
	if p.PortfolioURL != nil {
		c.PortfolioURL = *p.PortfolioURL
	}
	if p.DesiredJobType != nil {
		c.DesiredJobType = *p.DesiredJobType
	}
	if p.Availability != nil {
		c.Availability = *p.Availability
	}
	if p.OpenToRemote != nil {
		v := *p.OpenToRemote
		c.OpenToRemote = &v
	}
	if p.OpenToRelocation != nil {
		v := *p.OpenToRelocation
		c.OpenToRelocation = &v
	}
	if p.DesiredSalaryMin != nil {
		v := *p.DesiredSalaryMin
		c.DesiredSalaryMin = &v
	}
	if p.DesiredSalaryMax != nil {
		v := *p.DesiredSalaryMax
		c.DesiredSalaryMax = &v
	}
}
