package dto

// StartInterviewRequest opens a new interview session for a task.
type StartInterviewRequest struct {
	TaskDescription string `json:"task_description" validate:"required,min=10"`
}

type StartInterviewResponse struct {
	SessionId      string `json:"session_id"`
	Question       string `json:"question"`
	QuestionNumber int    `json:"question_number"`
	TotalQuestions int    `json:"total_questions"`
}

type AnswerRequest struct {
	Answer string `json:"answer" validate:"required"`
}

type AnswerResponse struct {
	SessionId      string `json:"session_id"`
	Complete       bool   `json:"complete"`
	NextQuestion   string `json:"next_question,omitempty"`
	QuestionNumber int    `json:"question_number,omitempty"`
	Answered       int    `json:"answered"`
	TotalQuestions int    `json:"total_questions"`
}
