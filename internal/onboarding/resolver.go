package onboarding

import (
	"context"
	"errors"
	"fmt"

	"candidate-onboarding/internal/profile"
	"candidate-onboarding/internal/shared/telemetry"
)

// Resolve returns the canonical candidate record for the identity, creating
// one if none exists yet. Concurrent calls for the same identity share a
// single lookup/provision flight; once a resolve has succeeded, later calls
// short-circuit to the cached record for the session's lifetime.
//
// Only a lookup failure wrapping ErrRecordNotFound triggers provisioning.
// Any other lookup error is surfaced as-is so a transient server fault does
// not create a duplicate record.
func (s *Service) Resolve(ctx context.Context, ident Identity) (Resolution, error) {
	s.mu.Lock()
	if s.resolved {
		res := Resolution{Record: s.record}
		s.mu.Unlock()
		return res, nil
	}
	gen := s.generation
	s.flightKey = ident.Subject
	s.mu.Unlock()

	// Every caller of a shared flight gets the same resolution, Created
	// included: if the flight provisioned, all of them received a record
	// that did not exist before they asked.
	v, err, _ := s.flight.Do(ident.Subject, func() (any, error) {
		return s.lookupOrProvision(ctx, ident)
	})
	if err != nil {
		return Resolution{}, err
	}
	res := v.(Resolution)

	s.mu.Lock()
	if s.generation == gen && !s.resolved {
		s.applyRecordLocked(res.Record)
		s.notifyLocked()
	}
	s.mu.Unlock()
	return res, nil
}

func (s *Service) lookupOrProvision(ctx context.Context, ident Identity) (Resolution, error) {
	rec, err := s.candidates.LookupSelf(ctx)
	if err == nil {
		if rec.ID == "" {
			return Resolution{}, fmt.Errorf("%w: lookup returned record without id", ErrProvisioningFailed)
		}
		return Resolution{Record: rec}, nil
	}
	if !errors.Is(err, ErrRecordNotFound) {
		return Resolution{}, fmt.Errorf("lookup candidate: %w", err)
	}

	telemetry.Info("onboarding.provision", map[string]any{"subject": ident.Subject})
	created, err := s.candidates.Provision(ctx, ident)
	if err != nil {
		return Resolution{}, fmt.Errorf("%w: %v", ErrProvisioningFailed, err)
	}
	if created.ID == "" {
		return Resolution{}, fmt.Errorf("%w: provision returned no usable record", ErrProvisioningFailed)
	}
	return Resolution{Record: created, Created: true}, nil
}

// applyRecordLocked populates the session from a freshly resolved record.
func (s *Service) applyRecordLocked(rec profile.Record) {
	s.resolved = true
	s.record = rec
	status := rec.OnboardingStatus
	if status == "" {
		status = profile.StatusPending
	}
	s.sess.RecordID = rec.ID
	s.sess.Status = status
	s.sess.Step = FirstStep
	s.sess.Draft = draftFromRecord(rec)
	s.sess.Presented = status == profile.StatusPending
	s.sess.Submitting = false
	s.sess.LastError = ""
}
