package document

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func templateDoc() *Document {
	doc := New()
	doc.SetFooter("footer line")
	doc.Append(
		&Paragraph{Style: "Title", Text: "Demo"},
		&Paragraph{Style: "Normal", Text: "A"},
		&Paragraph{Style: "Normal", Text: "B"},
		&Paragraph{Style: "Normal", Text: "C"},
	)
	return doc
}

func TestInsertReplacesMarkerInPlace(t *testing.T) {
	doc := templateDoc()

	err := doc.Insert("B", []Block{
		&Paragraph{Style: "Normal", Text: "first"},
		&Paragraph{Style: "Normal", Text: "second"},
	})
	require.NoError(t, err)

	text := doc.PlainText()
	assert.NotContains(t, text, "B\n")
	idxA := strings.Index(text, "A")
	idxFirst := strings.Index(text, "first")
	idxSecond := strings.Index(text, "second")
	idxC := strings.Index(text, "C")
	assert.True(t, idxA < idxFirst && idxFirst < idxSecond && idxSecond < idxC,
		"inserted elements must keep the marker position")
	assert.Equal(t, 5, doc.Len())
}

func TestInsertAnyOrderConsumesAllMarkers(t *testing.T) {
	doc := templateDoc()

	// Reverse of document order on purpose.
	for _, marker := range []string{"C", "A", "B"} {
		err := doc.Insert(marker, []Block{&Paragraph{Text: "content-" + marker}})
		require.NoError(t, err)
	}

	text := doc.PlainText()
	for _, marker := range []string{"A", "B", "C"} {
		assert.False(t, doc.HasMarker(marker))
		assert.Contains(t, text, "content-"+marker)
	}
}

func TestInsertUnknownMarkerFails(t *testing.T) {
	doc := templateDoc()

	err := doc.Insert("MISSING", []Block{&Paragraph{Text: "x"}})
	var notFound *ErrMarkerNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "MISSING", notFound.Marker)
}

func TestInsertTwiceFailsSecondTime(t *testing.T) {
	doc := templateDoc()

	require.NoError(t, doc.Insert("B", []Block{&Paragraph{Text: "once"}}))

	err := doc.Insert("B", []Block{&Paragraph{Text: "twice"}})
	var notFound *ErrMarkerNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestInsertTable(t *testing.T) {
	doc := templateDoc()

	table := &Table{
		Style:  "TableGrid",
		Header: []string{"H1", "H2"},
		Rows:   [][]string{{"r1c1", "r1c2"}, {"r2c1", "r2c2"}},
	}
	require.NoError(t, doc.Insert("A", []Block{table}))

	text := doc.PlainText()
	assert.Contains(t, text, "H1")
	assert.Contains(t, text, "r2c2")
}

func TestCloneIsIndependent(t *testing.T) {
	original := templateDoc()
	clone := original.Clone()

	require.NoError(t, clone.Insert("B", []Block{&Paragraph{Text: "mutated"}}))

	assert.True(t, original.HasMarker("B"), "insert on clone must not touch the original")
	assert.False(t, clone.HasMarker("B"))
}

func TestBytesProducesValidDocx(t *testing.T) {
	doc := templateDoc()
	require.NoError(t, doc.Insert("B", []Block{
		&Paragraph{Text: "body text with <brackets> & ampersand"},
		&Table{Header: []string{"X"}, Rows: [][]string{{"y"}}},
	}))

	data, err := doc.Bytes()
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	parts := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		parts[f.Name] = string(content)
	}

	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/document.xml",
		"word/styles.xml",
		"word/footer1.xml",
	} {
		assert.Contains(t, parts, name)
	}

	body := parts["word/document.xml"]
	assert.Contains(t, body, "&lt;brackets&gt; &amp; ampersand", "text must be XML-escaped")
	assert.Contains(t, body, "<w:tbl>")
	assert.NotContains(t, body, ">B<", "consumed marker must not survive serialization")
	assert.Contains(t, parts["word/styles.xml"], `w:styleId="TableGrid"`)
	assert.Contains(t, parts["word/footer1.xml"], "footer line")
}
