package dto

import "time"

// ArchiveRecordResponse is one archived generation in list and detail
// responses.
type ArchiveRecordResponse struct {
	Id              string    `json:"id"`
	Source          string    `json:"source"`
	TaskDescription string    `json:"task_description,omitempty"`
	SizeBytes       int       `json:"size_bytes"`
	CreatedAt       time.Time `json:"created_at"`
}

type ArchiveListResponse struct {
	Total   int64                    `json:"total"`
	Records []*ArchiveRecordResponse `json:"records"`
}
