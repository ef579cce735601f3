package documents

import "time"

// Entity and document type tags accepted on upload.
const (
	EntityCandidate = "candidate"
	TypeResume      = "resume"
)

// Document is an uploaded file attached to a candidate record.
type Document struct {
	ID           string
	UserID       string
	EntityType   string
	EntityID     string
	DocumentType string
	FileName     string
	MimeType     string
	SizeBytes    int64
	StorageKey   string
	CreatedAt    time.Time
	DeletedAt    *time.Time
}
