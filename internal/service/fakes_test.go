package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"rams-generator-be/internal/dto"
	"rams-generator-be/pkg/llm"
)

// fakeProvider answers each prompt kind with deterministic content so the
// full pipeline can run without a live model.
type fakeProvider struct {
	mu    sync.Mutex
	calls []string

	failQuestions bool
	failSections  bool
}

func (p *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.Generate(ctx, history[len(history)-1].Content, options...)
}

func (p *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	p.mu.Lock()
	p.calls = append(p.calls, prompt)
	p.mu.Unlock()

	switch {
	case strings.Contains(prompt, "interview questions"):
		if p.failQuestions {
			return "", fmt.Errorf("%w: quota exceeded", llm.ErrGeneration)
		}
		var sb strings.Builder
		for i := 1; i <= 20; i++ {
			fmt.Fprintf(&sb, "%d. Question number %d?\n", i, i)
		}
		return sb.String(), nil
	case strings.Contains(prompt, "Risk Assessment Table"):
		if p.failSections {
			return "", fmt.Errorf("%w: quota exceeded", llm.ErrGeneration)
		}
		return "Slips\tOperatives\tFall\tHousekeeping\tSupervisor\n" +
			"Noise\tAll personnel\tHearing damage\tEar defenders\tSite manager", nil
	case strings.Contains(prompt, "Sequence of Activities"):
		if p.failSections {
			return "", fmt.Errorf("%w: quota exceeded", llm.ErrGeneration)
		}
		return "Arrive on site and sign in.\n\nIsolate the supply and verify dead.\n\nReinstate and demobilize.", nil
	case strings.Contains(prompt, "Method Statement"):
		if p.failSections {
			return "", fmt.Errorf("%w: quota exceeded", llm.ErrGeneration)
		}
		return "Scope of works covers the full task.\n\nAll operatives wear mandatory PPE.", nil
	}
	return "", fmt.Errorf("%w: unrecognized prompt", llm.ErrGeneration)
}

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

// nopLogger satisfies logger.ILogger without writing anywhere.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// capturingPublisher records published archive events.
type capturingPublisher struct {
	mu       sync.Mutex
	messages []*dto.PublishDocumentGeneratedMessage
	err      error
}

func (p *capturingPublisher) PublishDocumentGenerated(payload *dto.PublishDocumentGeneratedMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, payload)
	return nil
}

func (p *capturingPublisher) published() []*dto.PublishDocumentGeneratedMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*dto.PublishDocumentGeneratedMessage(nil), p.messages...)
}
