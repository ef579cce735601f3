package onboarding

import "candidate-onboarding/internal/profile"

// Wizard step bounds. Steps are all optional; navigation clamps into range.
const (
	FirstStep = 1
	LastStep  = 4
)

// AttachmentState tracks the resume slot lifecycle.
type AttachmentState string

const (
	AttachmentAbsent    AttachmentState = "absent"
	AttachmentSelected  AttachmentState = "selected"
	AttachmentUploading AttachmentState = "uploading"
	AttachmentAttached  AttachmentState = "attached"
)

// Attachment is the transient resume slot inside the draft. Only DocumentID
// survives server-side; the rest describes the local file in progress.
type Attachment struct {
	State      AttachmentState
	FileName   string
	MimeType   string
	SizeBytes  int64
	DocumentID string
}

// Draft accumulates the candidate's edits before submission. String fields
// are absent when empty; bool and salary fields are absent when nil.
type Draft struct {
	FullName         string
	Phone            string
	Location         string
	CurrentTitle     string
	CurrentCompany   string
	Bio              string
	LinkedInURL      string
	GitHubURL        string
	PortfolioURL     string
	DesiredJobTypes  []string
	Availability     string
	OpenToRemote     *bool
	OpenToRelocation *bool
	DesiredSalaryMin *int
	DesiredSalaryMax *int
	Attachment       Attachment
}

// DraftPatch is a partial draft update. Nil fields are left untouched;
// non-nil fields overwrite. Patches merge into the draft, they never
// replace it.
type DraftPatch struct {
	FullName         *string
	Phone            *string
	Location         *string
	CurrentTitle     *string
	CurrentCompany   *string
	Bio              *string
	LinkedInURL      *string
	GitHubURL        *string
	PortfolioURL     *string
	DesiredJobTypes  *[]string
	Availability     *string
	OpenToRemote     *bool
	OpenToRelocation *bool
	DesiredSalaryMin *int
	DesiredSalaryMax *int
}

// Session is the in-memory onboarding state for one authenticated browsing
// session. It is mutated only by Service operations and published to
// subscribers as whole snapshots.
type Session struct {
	RecordID   string
	Step       int
	Status     string
	Presented  bool
	Draft      Draft
	Submitting bool
	LastError  string
}

func (d *Draft) apply(p DraftPatch) {
	if p.FullName != nil {
		d.FullName = *p.FullName
	}
	if p.Phone != nil {
		d.Phone = *p.Phone
	}
	if p.Location != nil {
		d.Location = *p.Location
	}
	if p.CurrentTitle != nil {
		d.CurrentTitle = *p.CurrentTitle
	}
	if p.CurrentCompany != nil {
		d.CurrentCompany = *p.CurrentCompany
	}
	if p.Bio != nil {
		d.Bio = *p.Bio
	}
	if p.LinkedInURL != nil {
		d.LinkedInURL = *p.LinkedInURL
	}
	if p.GitHubURL != nil {
		d.GitHubURL = *p.GitHubURL
	}
	if p.PortfolioURL != nil {
		d.PortfolioURL = *p.PortfolioURL
	}
	if p.DesiredJobTypes != nil {
		d.DesiredJobTypes = append([]string(nil), (*p.DesiredJobTypes)...)
	}
	if p.Availability != nil {
		d.Availability = *p.Availability
	}
	if p.OpenToRemote != nil {
		v := *p.OpenToRemote
		d.OpenToRemote = &v
	}
	if p.OpenToRelocation != nil {
		v := *p.OpenToRelocation
		d.OpenToRelocation = &v
	}
	if p.DesiredSalaryMin != nil {
		v := *p.DesiredSalaryMin
		d.DesiredSalaryMin = &v
	}
	if p.DesiredSalaryMax != nil {
		v := *p.DesiredSalaryMax
		d.DesiredSalaryMax = &v
	}
}

// draftFromRecord pre-fills a draft from the resolved record's saved fields.
func draftFromRecord(rec profile.Record) Draft {
	d := Draft{
		FullName:        rec.FullName,
		Phone:           rec.Phone,
		Location:        rec.Location,
		CurrentTitle:    rec.CurrentTitle,
		CurrentCompany:  rec.CurrentCompany,
		Bio:             rec.Bio,
		LinkedInURL:     rec.LinkedInURL,
		GitHubURL:       rec.GitHubURL,
		PortfolioURL:    rec.PortfolioURL,
		DesiredJobTypes: profile.DecodeTagList(rec.DesiredJobType),
		Availability:    rec.Availability,
	}
	if rec.OpenToRemote != nil {
		v := *rec.OpenToRemote
		d.OpenToRemote = &v
	}
	if rec.OpenToRelocation != nil {
		v := *rec.OpenToRelocation
		d.OpenToRelocation = &v
	}
	if rec.DesiredSalaryMin != nil {
		v := *rec.DesiredSalaryMin
		d.DesiredSalaryMin = &v
	}
	if rec.DesiredSalaryMax != nil {
		v := *rec.DesiredSalaryMax
		d.DesiredSalaryMax = &v
	}
	if rec.ResumeDocumentID != "" {
		d.Attachment = Attachment{State: AttachmentAttached, DocumentID: rec.ResumeDocumentID}
	} else {
		d.Attachment = Attachment{State: AttachmentAbsent}
	}
	return d
}

// snapshot deep-copies the session so subscribers never share mutable state.
func (s Session) snapshot() Session {
	out := s
	out.Draft.DesiredJobTypes = append([]string(nil), s.Draft.DesiredJobTypes...)
	if s.Draft.OpenToRemote != nil {
		v := *s.Draft.OpenToRemote
		out.Draft.OpenToRemote = &v
	}
	if s.Draft.OpenToRelocation != nil {
		v := *s.Draft.OpenToRelocation
		out.Draft.OpenToRelocation = &v
	}
	if s.Draft.DesiredSalaryMin != nil {
		v := *s.Draft.DesiredSalaryMin
		out.Draft.DesiredSalaryMin = &v
	}
	if s.Draft.DesiredSalaryMax != nil {
		v := *s.Draft.DesiredSalaryMax
		out.Draft.DesiredSalaryMax = &v
	}
	return out
}
