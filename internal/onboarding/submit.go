package onboarding

import (
	"context"
	"fmt"

	"candidate-onboarding/internal/profile"
)

// Skip marks onboarding as skipped with a single-field update. It is a
// no-op while another submission is in flight or before a record has been
// resolved.
func (s *Service) Skip(ctx context.Context) error {
	return s.submit(ctx, profile.Patch{OnboardingStatus: profile.String(profile.StatusSkipped)}, profile.StatusSkipped)
}

// Complete persists every field the candidate actually supplied and marks
// onboarding completed. Untouched draft fields are omitted from the patch
// so the server never overwrites previously saved values with blanks.
func (s *Service) Complete(ctx context.Context) error {
	s.mu.Lock()
	patch := buildPatch(s.sess.Draft)
	s.mu.Unlock()
	patch.OnboardingStatus = profile.String(profile.StatusCompleted)
	return s.submit(ctx, patch, profile.StatusCompleted)
}

func (s *Service) submit(ctx context.Context, patch profile.Patch, target string) error {
	s.mu.Lock()
	if s.sess.Submitting || s.sess.RecordID == "" {
		s.mu.Unlock()
		return nil
	}
	recordID := s.sess.RecordID
	s.sess.Submitting = true
	s.sess.LastError = ""
	s.notifyLocked()
	s.mu.Unlock()

	rec, err := s.candidates.Patch(ctx, recordID, patch)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess.Submitting = false
	if err != nil {
		s.sess.LastError = fmt.Sprintf("failed to save onboarding: %v", err)
		s.notifyLocked()
		return fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
	s.sess.Status = target
	s.sess.Presented = false
	if rec.ID != "" {
		s.record = rec
	} else {
		s.record.OnboardingStatus = target
	}
	s.notifyLocked()
	return nil
}

// buildPatch converts the accumulated draft into a sparse patch: only
// fields with a present value are included.
func buildPatch(d Draft) profile.Patch {
	var p profile.Patch
	setString := func(dst **string, v string) {
		if v != "" {
			*dst = profile.String(v)
		}
	}
	setString(&p.FullName, d.FullName)
	setString(&p.Phone, d.Phone)
	setString(&p.Location, d.Location)
	setString(&p.CurrentTitle, d.CurrentTitle)
	setString(&p.CurrentCompany, d.CurrentCompany)
	setString(&p.Bio, d.Bio)
	setString(&p.LinkedInURL, d.LinkedInURL)
	setString(&p.GitHubURL, d.GitHubURL)
	setString(&p.PortfolioURL, d.PortfolioURL)
	if encoded := profile.EncodeTagList(d.DesiredJobTypes); len(d.DesiredJobTypes) > 0 {
		p.DesiredJobType = profile.String(encoded)
	}
	setString(&p.Availability, d.Availability)
	if d.OpenToRemote != nil {
		p.OpenToRemote = profile.Bool(*d.OpenToRemote)
	}
	if d.OpenToRelocation != nil {
		p.OpenToRelocation = profile.Bool(*d.OpenToRelocation)
	}
	if d.DesiredSalaryMin != nil {
		p.DesiredSalaryMin = profile.Int(*d.DesiredSalaryMin)
	}
	if d.DesiredSalaryMax != nil {
		p.DesiredSalaryMax = profile.Int(*d.DesiredSalaryMax)
	}
	return p
}
