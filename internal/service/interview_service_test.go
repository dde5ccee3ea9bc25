package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"rams-generator-be/internal/dto"
	"rams-generator-be/internal/repository/memory"
	"rams-generator-be/internal/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInterviewServiceForTest(t *testing.T, provider *fakeProvider, publisher IPublisherService) (IInterviewService, *memory.SessionRepository) {
	t.Helper()
	templates, err := template.NewStore("")
	require.NoError(t, err)
	ramsService := NewRamsService(
		templates,
		memory.NewWorkdocRepository(),
		provider,
		publisher,
		nopLogger{},
		"",
		0.2,
		4300,
	)
	sessionRepo := memory.NewSessionRepository()
	return NewInterviewService(sessionRepo, provider, ramsService, nopLogger{}), sessionRepo
}

func startSession(t *testing.T, svc IInterviewService) *dto.StartInterviewResponse {
	t.Helper()
	resp, err := svc.Start(context.Background(), &dto.StartInterviewRequest{
		TaskDescription: "Replace a 300mm valve in a live chamber",
	})
	require.NoError(t, err)
	return resp
}

func answerAll(t *testing.T, svc IInterviewService, sessionID string, total int) *dto.AnswerResponse {
	t.Helper()
	var last *dto.AnswerResponse
	for i := 0; i < total; i++ {
		resp, err := svc.Answer(context.Background(), sessionID, &dto.AnswerRequest{
			Answer: fmt.Sprintf("answer %d", i+1),
		})
		require.NoError(t, err)
		last = resp
	}
	return last
}

func TestStartReturnsFirstQuestion(t *testing.T) {
	svc, _ := newInterviewServiceForTest(t, &fakeProvider{}, nil)

	resp := startSession(t, svc)
	assert.NotEmpty(t, resp.SessionId)
	assert.Equal(t, "Question number 1?", resp.Question)
	assert.Equal(t, 1, resp.QuestionNumber)
	assert.Equal(t, 20, resp.TotalQuestions)
}

func TestStartQuestionGenerationFailureLeavesNoSession(t *testing.T) {
	svc, _ := newInterviewServiceForTest(t, &fakeProvider{failQuestions: true}, nil)

	_, err := svc.Start(context.Background(), &dto.StartInterviewRequest{
		TaskDescription: "Replace a 300mm valve in a live chamber",
	})
	assert.ErrorIs(t, err, ErrQuestionGeneration)
}

func TestAnswerAdvancesAndCompletes(t *testing.T) {
	svc, _ := newInterviewServiceForTest(t, &fakeProvider{}, nil)
	session := startSession(t, svc)

	first, err := svc.Answer(context.Background(), session.SessionId, &dto.AnswerRequest{Answer: "a"})
	require.NoError(t, err)
	assert.False(t, first.Complete)
	assert.Equal(t, "Question number 2?", first.NextQuestion)
	assert.Equal(t, 2, first.QuestionNumber)
	assert.Equal(t, 1, first.Answered)

	last := answerAll(t, svc, session.SessionId, 19)
	assert.True(t, last.Complete)
	assert.Empty(t, last.NextQuestion)
	assert.Equal(t, 20, last.Answered)
}

func TestAnswerAfterCompleteFails(t *testing.T) {
	svc, _ := newInterviewServiceForTest(t, &fakeProvider{}, nil)
	session := startSession(t, svc)
	answerAll(t, svc, session.SessionId, 20)

	_, err := svc.Answer(context.Background(), session.SessionId, &dto.AnswerRequest{Answer: "extra"})
	assert.ErrorIs(t, err, ErrSessionAlreadyComplete)
}

func TestAnswerUnknownSession(t *testing.T) {
	svc, _ := newInterviewServiceForTest(t, &fakeProvider{}, nil)

	_, err := svc.Answer(context.Background(), "missing", &dto.AnswerRequest{Answer: "a"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGenerateBeforeCompleteFails(t *testing.T) {
	svc, _ := newInterviewServiceForTest(t, &fakeProvider{}, nil)
	session := startSession(t, svc)
	answerAll(t, svc, session.SessionId, 5)

	_, err := svc.Generate(context.Background(), session.SessionId)
	assert.ErrorIs(t, err, ErrSessionNotComplete)
}

func TestGenerateConsumesSession(t *testing.T) {
	publisher := &capturingPublisher{}
	svc, _ := newInterviewServiceForTest(t, &fakeProvider{}, publisher)
	session := startSession(t, svc)
	answerAll(t, svc, session.SessionId, 20)

	data, err := svc.Generate(context.Background(), session.SessionId)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	events := publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, SourceInterview, events[0].Source)

	_, err = svc.Generate(context.Background(), session.SessionId)
	assert.ErrorIs(t, err, ErrSessionConsumed)
}

func TestGenerateFailureLeavesSessionRetryable(t *testing.T) {
	provider := &fakeProvider{}
	svc, _ := newInterviewServiceForTest(t, provider, nil)
	session := startSession(t, svc)
	answerAll(t, svc, session.SessionId, 20)

	provider.failSections = true
	_, err := svc.Generate(context.Background(), session.SessionId)
	require.ErrorIs(t, err, ErrAssembly)

	provider.failSections = false
	data, err := svc.Generate(context.Background(), session.SessionId)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestSessionsAreIsolated(t *testing.T) {
	svc, _ := newInterviewServiceForTest(t, &fakeProvider{}, nil)
	first := startSession(t, svc)
	second := startSession(t, svc)
	require.NotEqual(t, first.SessionId, second.SessionId)

	answerAll(t, svc, first.SessionId, 20)

	resp, err := svc.Answer(context.Background(), second.SessionId, &dto.AnswerRequest{Answer: "a"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Answered)
	assert.False(t, resp.Complete)
}

func TestConcurrentAnswersOnDistinctSessions(t *testing.T) {
	svc, _ := newInterviewServiceForTest(t, &fakeProvider{}, nil)

	sessions := make([]string, 4)
	for i := range sessions {
		sessions[i] = startSession(t, svc).SessionId
	}

	var wg sync.WaitGroup
	for _, id := range sessions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			answerAll(t, svc, id, 20)
		}()
	}
	wg.Wait()

	for _, id := range sessions {
		data, err := svc.Generate(context.Background(), id)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}
}

func TestParseQuestionListPrefixes(t *testing.T) {
	raw := "1. First?\n2) Second?\n- Third?\n* Fourth?\n\n  Fifth?  \n"
	questions := parseQuestionList(raw)
	assert.Equal(t, []string{"First?", "Second?", "Third?", "Fourth?", "Fifth?"}, questions)
}
