package onboarding

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"

	"candidate-onboarding/internal/profile"
	"candidate-onboarding/internal/shared/telemetry"
)

const maxResumeSize = 10 << 20 // 10 MiB

const (
	mimePDF   = "application/pdf"
	mimeDOC   = "application/msword"
	mimeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimePlain = "text/plain"
)

var allowedResumeTypes = map[string]struct{}{
	mimePDF:   {},
	mimeDOC:   {},
	mimeDOCX:  {},
	mimePlain: {},
}

// SelectFile validates the chosen file and, if it passes, uploads it as the
// session's resume. Validation happens entirely locally; an invalid file
// never causes a network call and leaves the resume slot untouched.
//
// A result arriving after the session was reset, superseded by a newer
// selection, or closed by a terminal status is discarded, and the orphaned
// upload is deleted best-effort.
func (s *Service) SelectFile(ctx context.Context, fileName, mimeType string, data []byte) error {
	if err := validateResume(fileName, mimeType, data); err != nil {
		s.mu.Lock()
		s.sess.LastError = err.Error()
		s.notifyLocked()
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	recordID := s.sess.RecordID
	if recordID == "" {
		s.mu.Unlock()
		return fmt.Errorf("%w: no resolved record", ErrAttachmentUploadFailed)
	}
	s.uploadSeq++
	seq := s.uploadSeq
	gen := s.generation
	s.sess.LastError = ""
	s.sess.Draft.Attachment = Attachment{
		State:     AttachmentSelected,
		FileName:  fileName,
		MimeType:  mimeType,
		SizeBytes: int64(len(data)),
	}
	s.notifyLocked()
	s.sess.Draft.Attachment.State = AttachmentUploading
	s.notifyLocked()
	s.mu.Unlock()

	docID, err := s.documents.Upload(ctx, recordID, fileName, mimeType, data)

	s.mu.Lock()
	if s.generation != gen || s.uploadSeq != seq || isClosed(s.sess) {
		s.mu.Unlock()
		telemetry.Info("onboarding.upload_discarded", map[string]any{
			"record_id": recordID,
			"file_name": fileName,
		})
		if err == nil && docID != "" {
			s.discardOrphan(ctx, docID)
		}
		return nil
	}
	defer s.mu.Unlock()

	if err != nil {
		s.sess.Draft.Attachment = Attachment{State: AttachmentAbsent}
		s.sess.LastError = fmt.Sprintf("failed to upload resume: %v", err)
		s.notifyLocked()
		return fmt.Errorf("%w: %v", ErrAttachmentUploadFailed, err)
	}

	s.sess.Draft.Attachment = Attachment{
		State:      AttachmentAttached,
		FileName:   fileName,
		MimeType:   mimeType,
		SizeBytes:  int64(len(data)),
		DocumentID: docID,
	}
	s.record.ResumeDocumentID = docID
	s.notifyLocked()
	return nil
}

// RemoveFile clears the resume slot. The server-side delete is best-effort:
// a failure is logged but never blocks the local removal, and any previous
// error message is cleared either way.
func (s *Service) RemoveFile(ctx context.Context) {
	s.mu.Lock()
	att := s.sess.Draft.Attachment
	s.sess.Draft.Attachment = Attachment{State: AttachmentAbsent}
	s.sess.LastError = ""
	s.record.ResumeDocumentID = ""
	s.uploadSeq++ // invalidate any in-flight upload
	s.notifyLocked()
	s.mu.Unlock()

	if att.State != AttachmentAttached || att.DocumentID == "" {
		return
	}
	if err := s.documents.Delete(ctx, att.DocumentID); err != nil {
		telemetry.Error("onboarding.resume_delete_failed", map[string]any{
			"document_id": att.DocumentID,
			"error":       err.Error(),
		})
	}
}

func (s *Service) discardOrphan(ctx context.Context, docID string) {
	if err := s.documents.Delete(ctx, docID); err != nil {
		telemetry.Error("onboarding.orphan_delete_failed", map[string]any{
			"document_id": docID,
			"error":       err.Error(),
		})
	}
}

// isClosed reports whether the wizard can no longer accept upload results.
func isClosed(sess Session) bool {
	return profile.TerminalStatus(sess.Status)
}

func validateResume(fileName, mimeType string, data []byte) error {
	if _, ok := allowedResumeTypes[mimeType]; !ok {
		return fmt.Errorf("%w: unsupported file type %q", ErrAttachmentInvalid, mimeType)
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: file %q is empty", ErrAttachmentInvalid, fileName)
	}
	if len(data) > maxResumeSize {
		return fmt.Errorf("%w: file %q exceeds 10 MiB", ErrAttachmentInvalid, fileName)
	}
	if mimeType == mimePDF && !readablePDF(data) {
		return fmt.Errorf("%w: %q is not a readable PDF", ErrAttachmentInvalid, fileName)
	}
	return nil
}

// readablePDF checks the payload parses as a PDF. The pdf package can panic
// on malformed cross-reference tables, so treat a panic as unreadable.
func readablePDF(data []byte) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	_, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	return err == nil
}
