package models

// FileRequest is a client-submitted translation job. The id is a
// timestamp-derived integer, unique within the owning user's file list.
type FileRequest struct {
	ID              int64  `json:"id"`
	SourceLanguage  string `json:"sourceLanguage"`
	TargetLanguage  string `json:"targetLanguage"`
	TurnaroundHours int    `json:"turnaroundHours"`
	Status          Status `json:"status"`
	FileName        string `json:"fileName"`
	FileURL         string `json:"fileUrl,omitempty"`
}
