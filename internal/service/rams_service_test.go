package service

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"rams-generator-be/internal/assembler"
	"rams-generator-be/internal/dto"
	"rams-generator-be/internal/repository/memory"
	"rams-generator-be/internal/template"
	"rams-generator-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRamsServiceForTest(t *testing.T, provider llm.Provider, publisher IPublisherService) IRamsService {
	t.Helper()
	templates, err := template.NewStore("")
	require.NoError(t, err)
	return NewRamsService(
		templates,
		memory.NewWorkdocRepository(),
		provider,
		publisher,
		nopLogger{},
		"",
		0.2,
		4300,
	)
}

func twentyAnswers() []string {
	answers := make([]string, 20)
	for i := range answers {
		answers[i] = "answer"
	}
	return answers
}

func documentBody(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(body)
	}
	t.Fatal("word/document.xml not found in archive")
	return ""
}

func TestAssembleFullProducesCompleteDocument(t *testing.T) {
	provider := &fakeProvider{}
	publisher := &capturingPublisher{}
	svc := newRamsServiceForTest(t, provider, publisher)

	data, err := svc.AssembleFull(context.Background(), twentyAnswers(), SourceSingleShot, "replace pump")
	require.NoError(t, err)
	require.NotEmpty(t, data)

	body := documentBody(t, data)
	for _, marker := range []string{">RISK_TABLE<", ">SEQUENCE<", ">METHOD_STATEMENT<"} {
		assert.NotContains(t, body, marker, "every marker must be consumed")
	}
	assert.Contains(t, body, "<w:tbl>")
	assert.Contains(t, body, "Housekeeping")
	assert.Contains(t, body, "Isolate the supply and verify dead.")
	assert.Contains(t, body, "Scope of works covers the full task.")

	// One generation call per section.
	assert.Equal(t, 3, provider.callCount())

	events := publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, SourceSingleShot, events[0].Source)
	assert.Equal(t, "replace pump", events[0].TaskDescription)
	assert.Equal(t, len(data), events[0].SizeBytes)
}

func TestAssembleFullRejectsWrongAnswerCount(t *testing.T) {
	svc := newRamsServiceForTest(t, &fakeProvider{}, nil)

	_, err := svc.AssembleFull(context.Background(), []string{"only one"}, SourceSingleShot, "task")
	assert.ErrorIs(t, err, ErrInvalidAnswerCount)
}

func TestAssembleFullGenerationFailure(t *testing.T) {
	publisher := &capturingPublisher{}
	svc := newRamsServiceForTest(t, &fakeProvider{failSections: true}, publisher)

	_, err := svc.AssembleFull(context.Background(), twentyAnswers(), SourceSingleShot, "task")
	require.ErrorIs(t, err, ErrAssembly)
	assert.ErrorIs(t, err, llm.ErrGeneration)
	assert.Empty(t, publisher.published(), "failed generations must not be archived")
}

func TestAssembleMalformedHazardLine(t *testing.T) {
	svc := newRamsServiceForTest(t, &fakeProvider{}, nil)

	_, err := svc.Assemble(context.Background(), []assembler.Section{
		{Type: assembler.SectionRiskAssessment, Content: "too\tfew\tfields"},
	})
	require.ErrorIs(t, err, ErrAssembly)
	var malformed *assembler.ErrMalformedSection
	assert.ErrorAs(t, err, &malformed)
}

func TestAssemblePartialSectionsLeaveOtherMarkers(t *testing.T) {
	svc := newRamsServiceForTest(t, &fakeProvider{}, nil)

	data, err := svc.Assemble(context.Background(), []assembler.Section{
		{Type: assembler.SectionSequence, Content: "step one\n\nstep two"},
	})
	require.NoError(t, err)

	body := documentBody(t, data)
	assert.NotContains(t, body, ">SEQUENCE<")
	assert.Contains(t, body, ">RISK_TABLE<")
	assert.Contains(t, body, ">METHOD_STATEMENT<")
}

func TestApplySectionFreshThenIncremental(t *testing.T) {
	svc := newRamsServiceForTest(t, &fakeProvider{}, nil)
	ctx := context.Background()

	id, first, err := svc.ApplySection(ctx, assembler.SectionSequence, &dto.ApplySectionRequest{
		Content: "step one\n\nstep two",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.Contains(t, documentBody(t, first), ">RISK_TABLE<")

	_, second, err := svc.ApplySection(ctx, assembler.SectionRiskAssessment, &dto.ApplySectionRequest{
		DocumentId: id,
		Content:    "Slips\tOperatives\tFall\tHousekeeping\tSupervisor",
	})
	require.NoError(t, err)

	body := documentBody(t, second)
	assert.NotContains(t, body, ">SEQUENCE<")
	assert.NotContains(t, body, ">RISK_TABLE<")
	assert.Contains(t, body, "step one")
	assert.Contains(t, body, "Housekeeping")
}

func TestApplySectionUnknownDocument(t *testing.T) {
	svc := newRamsServiceForTest(t, &fakeProvider{}, nil)

	_, _, err := svc.ApplySection(context.Background(), assembler.SectionSequence, &dto.ApplySectionRequest{
		DocumentId: "2d9447a4-5f48-4f4b-a9a1-000000000000",
		Content:    "steps",
	})
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestApplySectionFailureLeavesWorkdocUntouched(t *testing.T) {
	svc := newRamsServiceForTest(t, &fakeProvider{}, nil)
	ctx := context.Background()

	id, _, err := svc.ApplySection(ctx, assembler.SectionSequence, &dto.ApplySectionRequest{
		Content: "step one",
	})
	require.NoError(t, err)

	// Same marker again: gone from the working doc, must fail and leave it
	// usable for the remaining sections.
	_, _, err = svc.ApplySection(ctx, assembler.SectionSequence, &dto.ApplySectionRequest{
		DocumentId: id,
		Content:    "step one again",
	})
	require.Error(t, err)

	_, data, err := svc.ApplySection(ctx, assembler.SectionMethodStatement, &dto.ApplySectionRequest{
		DocumentId: id,
		Content:    "scope of works",
	})
	require.NoError(t, err)
	body := documentBody(t, data)
	assert.Contains(t, body, "step one")
	assert.NotContains(t, body, "step one again")
	assert.Contains(t, body, "scope of works")
}

func TestFormatAnswerList(t *testing.T) {
	list := formatAnswerList([]string{"first", "second"})
	assert.Equal(t, "1. first\n2. second", list)
	assert.False(t, strings.HasSuffix(list, "\n"))
}
