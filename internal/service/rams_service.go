package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"rams-generator-be/internal/assembler"
	"rams-generator-be/internal/constant"
	"rams-generator-be/internal/dto"
	"rams-generator-be/internal/pkg/logger"
	"rams-generator-be/internal/repository/memory"
	"rams-generator-be/internal/template"
	"rams-generator-be/pkg/document"
	"rams-generator-be/pkg/llm"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Document sources recorded in the archive
const (
	SourceSingleShot = "single_shot"
	SourceInterview  = "interview"
	SourceManual     = "manual"
)

// IRamsService is the document assembly orchestrator: template -> generated
// section content -> structural elements -> marker substitution -> bytes.
type IRamsService interface {
	// AssembleFull derives the three section payloads from the fixed answer
	// set via the text-generation backend, then assembles the document.
	AssembleFull(ctx context.Context, answers []string, source, taskDescription string) ([]byte, error)

	// Assemble inserts pre-generated section content into a fresh template.
	Assemble(ctx context.Context, sections []assembler.Section) ([]byte, error)

	// ApplySection applies one section to a working document (fresh template
	// when no document id is given) and returns the id and updated bytes.
	ApplySection(ctx context.Context, sectionType assembler.SectionType, request *dto.ApplySectionRequest) (string, []byte, error)
}

type ramsService struct {
	templates    *template.Store
	workdocs     *memory.WorkdocRepository
	llmProvider  llm.Provider
	publisher    IPublisherService
	logger       logger.ILogger
	systemPrompt string
	temperature  float64
	maxTokens    int
}

func NewRamsService(
	templates *template.Store,
	workdocs *memory.WorkdocRepository,
	llmProvider llm.Provider,
	publisher IPublisherService,
	sysLogger logger.ILogger,
	systemPromptPath string,
	temperature float64,
	maxTokens int,
) IRamsService {
	return &ramsService{
		templates:    templates,
		workdocs:     workdocs,
		llmProvider:  llmProvider,
		publisher:    publisher,
		logger:       sysLogger,
		systemPrompt: loadSystemPrompt(systemPromptPath, sysLogger),
		temperature:  temperature,
		maxTokens:    maxTokens,
	}
}

// loadSystemPrompt reads the shared system prompt and strips the
// plugin-only submission instructions from the tail.
func loadSystemPrompt(path string, sysLogger logger.ILogger) string {
	if path == "" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		sysLogger.Warn("rams", "Could not load system prompt file", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return ""
	}
	prompt := strings.TrimSpace(string(data))
	if idx := strings.Index(prompt, constant.SystemPromptTruncationSentinel); idx != -1 {
		prompt = strings.TrimSpace(prompt[:idx])
	}
	return prompt
}

// canonicalRank orders sections risk assessment, sequence, method statement.
func canonicalRank(t assembler.SectionType) int {
	switch t {
	case assembler.SectionRiskAssessment:
		return 0
	case assembler.SectionSequence:
		return 1
	case assembler.SectionMethodStatement:
		return 2
	}
	return 3
}

func (rs *ramsService) AssembleFull(ctx context.Context, answers []string, source, taskDescription string) ([]byte, error) {
	if len(answers) != constant.InterviewQuestionCount {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAnswerCount, len(answers))
	}

	answerList := formatAnswerList(answers)
	prompts := map[assembler.SectionType]string{
		assembler.SectionRiskAssessment:  fmt.Sprintf(constant.RiskAssessmentPromptV1, len(answers), answerList),
		assembler.SectionSequence:        fmt.Sprintf(constant.SequencePromptV1, len(answers), answerList),
		assembler.SectionMethodStatement: fmt.Sprintf(constant.MethodStatementPromptV1, len(answers), answerList),
	}

	// The three section generations are independent; run them concurrently
	// like the legacy pipeline did. A single failure cancels the rest and
	// fails the whole assembly.
	order := []assembler.SectionType{
		assembler.SectionRiskAssessment,
		assembler.SectionSequence,
		assembler.SectionMethodStatement,
	}
	contents := make([]string, len(order))
	g, gctx := errgroup.WithContext(ctx)
	for i, sectionType := range order {
		g.Go(func() error {
			content, err := rs.generate(gctx, prompts[sectionType])
			if err != nil {
				return fmt.Errorf("generate %s: %w", sectionType, err)
			}
			contents[i] = content
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		rs.logger.Error("rams", "Section generation failed", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("%w: %w", ErrAssembly, err)
	}
	rs.logger.Info("rams", "Received generated content for all sections", nil)

	sections := make([]assembler.Section, 0, len(order))
	for i, t := range order {
		sections = append(sections, assembler.Section{Type: t, Content: contents[i]})
	}

	data, err := rs.Assemble(ctx, sections)
	if err != nil {
		return nil, err
	}

	rs.publishGenerated(source, taskDescription, len(data))
	return data, nil
}

func (rs *ramsService) Assemble(ctx context.Context, sections []assembler.Section) ([]byte, error) {
	doc := rs.templates.Load()

	ordered := append([]assembler.Section(nil), sections...)
	for i := 0; i < len(ordered); i++ {
		for j := i + 1; j < len(ordered); j++ {
			if canonicalRank(ordered[j].Type) < canonicalRank(ordered[i].Type) {
				ordered[i], ordered[j] = ordered[j], ordered[i]
			}
		}
	}

	for _, section := range ordered {
		if err := insertSection(doc, section); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAssembly, err)
		}
	}

	data, err := doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssembly, err)
	}
	return data, nil
}

func (rs *ramsService) ApplySection(ctx context.Context, sectionType assembler.SectionType, request *dto.ApplySectionRequest) (string, []byte, error) {
	documentID := request.DocumentId
	var base *document.Document
	if documentID != "" {
		existing, found := rs.workdocs.Get(documentID)
		if !found {
			return "", nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, documentID)
		}
		base = existing
	} else {
		documentID = uuid.New().String()
		base = rs.templates.Load()
	}

	// Mutate a clone so a failed insert leaves the stored working document
	// untouched.
	doc := base.Clone()
	if err := insertSection(doc, assembler.Section{Type: sectionType, Content: request.Content}); err != nil {
		return "", nil, err
	}

	data, err := doc.Bytes()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrAssembly, err)
	}

	rs.workdocs.Save(documentID, doc)
	rs.logger.Info("rams", "Applied section to working document", map[string]interface{}{
		"document_id": documentID,
		"section":     string(sectionType),
	})
	return documentID, data, nil
}

func insertSection(doc *document.Document, section assembler.Section) error {
	blocks, err := assembler.Build(section)
	if err != nil {
		return err
	}
	return doc.Insert(section.Type.Marker(), blocks)
}

func (rs *ramsService) generate(ctx context.Context, prompt string) (string, error) {
	history := make([]llm.Message, 0, 2)
	if rs.systemPrompt != "" {
		history = append(history, llm.Message{Role: "system", Content: rs.systemPrompt})
	}
	history = append(history, llm.Message{Role: "user", Content: prompt})

	return rs.llmProvider.Chat(ctx, history,
		llm.WithTemperature(rs.temperature),
		llm.WithMaxTokens(rs.maxTokens),
	)
}

func (rs *ramsService) publishGenerated(source, taskDescription string, size int) {
	if rs.publisher == nil {
		return
	}
	msg := &dto.PublishDocumentGeneratedMessage{
		DocumentId:      uuid.New().String(),
		Source:          source,
		TaskDescription: taskDescription,
		SizeBytes:       size,
		GeneratedAt:     time.Now(),
	}
	if err := rs.publisher.PublishDocumentGenerated(msg); err != nil {
		// Archive bookkeeping must not fail the caller's download.
		rs.logger.Warn("rams", "Failed to publish document generated event", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func formatAnswerList(answers []string) string {
	var sb strings.Builder
	for i, answer := range answers {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, answer)
	}
	return strings.TrimRight(sb.String(), "\n")
}
