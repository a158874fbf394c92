package models

import "errors"

// Status classifies where a file request is in its lifecycle.
type Status string

const (
	StatusUploaded   Status = "Uploaded"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
)

var ErrUnknownStatus = errors.New("unknown status")

// ParseStatus validates a raw status value coming from transport or storage.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusUploaded, StatusInProgress, StatusCompleted:
		return Status(s), nil
	default:
		return "", ErrUnknownStatus
	}
}

// Next returns the following status in the normal forward order. Completed
// has no successor and returns itself.
func (s Status) Next() Status {
	switch s {
	case StatusUploaded:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	default:
		return s
	}
}

// CanAdvance reports whether moving from s to target respects the forward
// order Uploaded → InProgress → Completed. Setting the same status again is
// allowed so that repeated updates stay idempotent.
func (s Status) CanAdvance(target Status) bool {
	if s == target {
		return true
	}
	return s.Next() == target && s != target
}

// AllowsDownload reports whether the translated artifact may be downloaded.
func (s Status) AllowsDownload() bool {
	return s == StatusCompleted
}

// AllowsDelete reports whether the original file request may still be removed.
func (s Status) AllowsDelete() bool {
	return s == StatusUploaded
}

// AllowsDelivery reports whether the administrative upload-translated-file
// and notify actions are available.
func (s Status) AllowsDelivery() bool {
	return s == StatusCompleted
}
