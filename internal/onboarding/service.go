package onboarding

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"candidate-onboarding/internal/profile"
)

// Service orchestrates one candidate onboarding session. All state lives in
// a single Session value guarded by a mutex; every mutation replaces the
// session wholesale and publishes a snapshot to subscribers. Network calls
// happen outside the lock, and their results are applied only if the
// session has not moved on in the meantime.
type Service struct {
	candidates CandidatesAPI
	documents  DocumentsAPI

	mu         sync.Mutex
	sess       Session
	record     profile.Record
	resolved   bool
	generation uint64
	uploadSeq  uint64
	subs       map[int]chan Session
	nextSub    int

	flight    singleflight.Group
	flightKey string
}

// NewService builds a Service over the given API clients.
func NewService(candidates CandidatesAPI, documents DocumentsAPI) *Service {
	return &Service{
		candidates: candidates,
		documents:  documents,
		sess:       Session{Step: FirstStep, Draft: Draft{Attachment: Attachment{State: AttachmentAbsent}}},
		subs:       make(map[int]chan Session),
	}
}

// Session returns a snapshot of the current session state.
func (s *Service) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.snapshot()
}

// Subscribe registers a listener for session snapshots. The current state
// is delivered immediately, then every subsequent change. The returned
// cancel func must be called to release the subscription.
func (s *Service) Subscribe() (<-chan Session, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Session, 16)
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.sess.snapshot()

	cancel := func() {
		s.mu.Lock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// notifyLocked publishes the current session to all subscribers. Callers
// hold s.mu. Slow subscribers drop snapshots rather than block mutations;
// every channel send is a full snapshot, so a later one supersedes it.
func (s *Service) notifyLocked() {
	snap := s.sess.snapshot()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

// Reset discards the session so the resolver can run again from a clean
// state. An in-flight resolve or upload from before the reset can no longer
// touch the new session.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.uploadSeq++
	s.resolved = false
	s.record = profile.Record{}
	s.sess = Session{Step: FirstStep, Draft: Draft{Attachment: Attachment{State: AttachmentAbsent}}}
	// Forget detaches any in-flight resolve from its key so the next
	// Resolve starts a fresh flight; the generation bump keeps the old
	// flight's result from applying. The Group itself must never be
	// replaced while a flight may still hold its lock.
	if s.flightKey != "" {
		s.flight.Forget(s.flightKey)
	}
	s.notifyLocked()
}

// NextStep advances the wizard, saturating at the last step.
func (s *Service) NextStep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess.Step < LastStep {
		s.sess.Step++
		s.notifyLocked()
	}
}

// PreviousStep moves back, saturating at the first step.
func (s *Service) PreviousStep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess.Step > FirstStep {
		s.sess.Step--
		s.notifyLocked()
	}
}

// GoToStep jumps to step n, clamped into range. Steps are all optional, so
// no completeness check is made.
func (s *Service) GoToStep(n int) {
	if n < FirstStep {
		n = FirstStep
	}
	if n > LastStep {
		n = LastStep
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess.Step != n {
		s.sess.Step = n
		s.notifyLocked()
	}
}

// UpdateDraft merges a partial edit into the draft. Step, status, the
// submitting flag and the last error are untouched.
func (s *Service) UpdateDraft(p DraftPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess.Draft.apply(p)
	s.notifyLocked()
}

// Present shows the wizard from its first step.
func (s *Service) Present() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess.Presented = true
	s.sess.Step = FirstStep
	s.notifyLocked()
}

// Dismiss hides the wizard without changing any accumulated state.
func (s *Service) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess.Presented = false
	s.notifyLocked()
}
