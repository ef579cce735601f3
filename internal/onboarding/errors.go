package onboarding

import "errors"

var (
	// ErrAuthTokenMissing means a request could not obtain a bearer token.
	ErrAuthTokenMissing = errors.New("auth token missing")

	// ErrRecordNotFound is returned by CandidatesAPI.LookupSelf when the
	// identity has no backing record yet. It is the only lookup failure
	// that triggers provisioning; it never reaches the caller of Resolve.
	ErrRecordNotFound = errors.New("candidate record not found")

	// ErrProvisioningFailed is terminal for a Resolve attempt: the identity
	// authenticated but no usable record could be created for it.
	ErrProvisioningFailed = errors.New("account provisioning failed")

	// ErrSubmissionFailed wraps a failed skip or complete call. The session
	// keeps its draft and presentation state so the user can retry.
	ErrSubmissionFailed = errors.New("submission failed")

	// ErrAttachmentInvalid means the selected file failed local validation;
	// no network call was attempted.
	ErrAttachmentInvalid = errors.New("attachment validation failed")

	// ErrAttachmentUploadFailed means the upload call failed; the resume
	// slot reverts to absent.
	ErrAttachmentUploadFailed = errors.New("attachment upload failed")
)
