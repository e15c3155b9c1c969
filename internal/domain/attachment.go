package domain

import "time"

// Attachment is metadata only. The byte payload lives behind an external
// blob collaborator, addressed by StorageKey.
type Attachment struct {
	ID               string
	CardID           string
	OriginalFilename string
	StorageKey       string
	SizeBytes        int64
	MimeType         string
	UploadedAt       time.Time
}
