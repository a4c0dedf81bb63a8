package model

import "time"

// Attachment references a blob owned by exactly one user record.
// Attachments are set once at creation and never reassigned.
type Attachment struct {
	BlobID   string `json:"blobId"`
	Filename string `json:"filename"`
}

// User is the primary entity. It is a pure domain model with no
// database-specific dependencies or tags, usable across layers
// (HTTP, service, storage) without coupling to persistence.
// A nil Attachment serializes as JSON null.
type User struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Attachment *Attachment `json:"attachment"`
	CreatedAt  time.Time   `json:"createdAt"`
}
