package models

import "time"

// Artifact is a translated file delivered by an administrator. The ledger of
// artifacts is append-only: artifacts are never edited or removed.
//
// RequestID links the artifact to the file request it answers. Either Content
// (inline payload, e.g. a data URL) or Key (object-storage key resolved to a
// presigned URL on download) is set.
type Artifact struct {
	ID         string    `json:"id"`
	RequestID  int64     `json:"requestId"`
	Name       string    `json:"name"`
	Content    string    `json:"content,omitempty"`
	Key        string    `json:"key,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}
