package dto

// GenerateFullRequest is the single-shot entry: exactly 20 ordered answers.
type GenerateFullRequest struct {
	Answers []string `json:"answers" validate:"required,len=20,dive,required"`
}

// ApplySectionRequest feeds one section's raw content into a working
// document. DocumentId empty means "start from a fresh template".
type ApplySectionRequest struct {
	DocumentId string `json:"document_id,omitempty" validate:"omitempty,uuid4"`
	Content    string `json:"content" validate:"required"`
}
