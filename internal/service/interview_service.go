package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"rams-generator-be/internal/constant"
	"rams-generator-be/internal/dto"
	"rams-generator-be/internal/pkg/logger"
	"rams-generator-be/internal/repository/memory"
	"rams-generator-be/pkg/llm"
	"rams-generator-be/pkg/store"

	"github.com/google/uuid"
)

// IInterviewService drives the multi-turn interview: question generation,
// answer collection, and handover to the assembly orchestrator.
type IInterviewService interface {
	Start(ctx context.Context, request *dto.StartInterviewRequest) (*dto.StartInterviewResponse, error)
	Answer(ctx context.Context, sessionID string, request *dto.AnswerRequest) (*dto.AnswerResponse, error)
	Generate(ctx context.Context, sessionID string) ([]byte, error)
}

type interviewService struct {
	sessionRepo *memory.SessionRepository
	llmProvider llm.Provider
	ramsService IRamsService
	logger      logger.ILogger
}

func NewInterviewService(
	sessionRepo *memory.SessionRepository,
	llmProvider llm.Provider,
	ramsService IRamsService,
	sysLogger logger.ILogger,
) IInterviewService {
	return &interviewService{
		sessionRepo: sessionRepo,
		llmProvider: llmProvider,
		ramsService: ramsService,
		logger:      sysLogger,
	}
}

// Start generates the fixed question list for a task description and opens
// a new session. The session exists only after question generation succeeds,
// so a cancelled or failed generation leaves nothing behind.
func (is *interviewService) Start(ctx context.Context, request *dto.StartInterviewRequest) (*dto.StartInterviewResponse, error) {
	prompt := fmt.Sprintf(constant.QuestionGenerationPromptV1,
		request.TaskDescription,
		constant.InterviewQuestionCount,
		constant.InterviewQuestionCount,
	)

	raw, err := is.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.2))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuestionGeneration, err)
	}

	questions := parseQuestionList(raw)
	if len(questions) < constant.InterviewQuestionCount {
		return nil, fmt.Errorf("%w: got %d of %d questions",
			ErrQuestionGeneration, len(questions), constant.InterviewQuestionCount)
	}
	questions = questions[:constant.InterviewQuestionCount]

	session := &store.InterviewSession{
		ID:              uuid.New().String(),
		TaskDescription: request.TaskDescription,
		State:           store.StateInterviewing,
		Questions:       questions,
		Answers:         make([]string, 0, len(questions)),
		CurrentIndex:    0,
	}
	is.sessionRepo.Save(session)

	is.logger.Info("interview", "Interview session started", map[string]interface{}{
		"session_id": session.ID,
		"questions":  len(questions),
	})

	return &dto.StartInterviewResponse{
		SessionId:      session.ID,
		Question:       questions[0],
		QuestionNumber: 1,
		TotalQuestions: len(questions),
	}, nil
}

// Answer records one answer and advances the interview. Turns on the same
// session are serialized by the session mutex; distinct sessions proceed in
// parallel.
func (is *interviewService) Answer(ctx context.Context, sessionID string, request *dto.AnswerRequest) (*dto.AnswerResponse, error) {
	session, found := is.sessionRepo.Get(sessionID)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	session.Mu.Lock()
	defer session.Mu.Unlock()

	if session.State == store.StateConsumed || session.Complete() {
		return nil, fmt.Errorf("%w: %s", ErrSessionAlreadyComplete, sessionID)
	}

	session.Answers = append(session.Answers, request.Answer)
	session.CurrentIndex++

	response := &dto.AnswerResponse{
		SessionId:      session.ID,
		Answered:       session.CurrentIndex,
		TotalQuestions: len(session.Questions),
	}

	if session.Complete() {
		session.State = store.StateComplete
		response.Complete = true
		is.logger.Info("interview", "Interview complete", map[string]interface{}{
			"session_id": session.ID,
		})
	} else {
		response.NextQuestion = session.Questions[session.CurrentIndex]
		response.QuestionNumber = session.CurrentIndex + 1
	}

	is.sessionRepo.Save(session)
	return response, nil
}

// Generate assembles the final document from a completed interview. The
// session is consumed on success only; a failed assembly leaves it complete
// so the caller may retry.
func (is *interviewService) Generate(ctx context.Context, sessionID string) ([]byte, error) {
	session, found := is.sessionRepo.Get(sessionID)
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	session.Mu.Lock()
	defer session.Mu.Unlock()

	switch session.State {
	case store.StateConsumed:
		return nil, fmt.Errorf("%w: %s", ErrSessionConsumed, sessionID)
	case store.StateComplete:
		// proceed
	default:
		return nil, fmt.Errorf("%w: %d of %d answers collected",
			ErrSessionNotComplete, session.CurrentIndex, len(session.Questions))
	}

	data, err := is.ramsService.AssembleFull(ctx, session.Answers, SourceInterview, session.TaskDescription)
	if err != nil {
		return nil, err
	}

	session.State = store.StateConsumed
	is.sessionRepo.Save(session)
	return data, nil
}

var questionPrefixPattern = regexp.MustCompile(`^\s*(?:\d+[.)]\s*|[-*]\s+)`)

// parseQuestionList extracts one question per non-empty line, tolerating
// "1.", "1)" and bullet prefixes.
func parseQuestionList(raw string) []string {
	var questions []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(questionPrefixPattern.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		questions = append(questions, line)
	}
	return questions
}
