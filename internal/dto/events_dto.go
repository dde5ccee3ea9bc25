package dto

import "time"

// PublishDocumentGeneratedMessage is the event payload emitted after a
// document has been assembled and serialized successfully.
type PublishDocumentGeneratedMessage struct {
	DocumentId      string    `json:"document_id"`
	Source          string    `json:"source"` // "single_shot" | "interview" | "manual"
	TaskDescription string    `json:"task_description,omitempty"`
	SizeBytes       int       `json:"size_bytes"`
	GeneratedAt     time.Time `json:"generated_at"`
}
