package document

import (
	"fmt"
	"strings"
)

// Block is a structural element in the document body sequence.
// Concrete types: *Paragraph, *Table.
type Block interface {
	blockText() string
}

// Paragraph is a single styled text paragraph.
type Paragraph struct {
	Style string // named style id, e.g. "Normal", "Heading1", "Title"
	Text  string
}

func (p *Paragraph) blockText() string { return p.Text }

// Table is a grid element. Header cells are rendered bold; data rows follow
// in order.
type Table struct {
	Style  string // named table style id, e.g. "TableGrid"
	Header []string
	Rows   [][]string
}

func (t *Table) blockText() string {
	var sb strings.Builder
	for _, cell := range t.Header {
		sb.WriteString(cell)
		sb.WriteString("\t")
	}
	for _, row := range t.Rows {
		sb.WriteString("\n")
		for _, cell := range row {
			sb.WriteString(cell)
			sb.WriteString("\t")
		}
	}
	return sb.String()
}

// Style is an entry in the document-level style pool. Styles are shared by
// all blocks and are never touched by block-level mutations.
type Style struct {
	ID       string
	Name     string
	Table    bool
	Bold     bool
	SizePt   int // 0 means inherit
	Centered bool
}

// Document is a mutable in-memory structural document: an ordered arena of
// blocks plus a shared style pool and a footer line. One Document is owned by
// exactly one request flow; it is not safe for concurrent mutation.
type Document struct {
	blocks     []Block
	styles     []Style
	footerText string
}

// ErrMarkerNotFound reports that a placeholder marker is absent from the
// block sequence, either because the template never contained it or because
// a previous insert already consumed it.
type ErrMarkerNotFound struct {
	Marker string
}

func (e *ErrMarkerNotFound) Error() string {
	return fmt.Sprintf("placeholder marker %q not found in document", e.Marker)
}

// New creates an empty document carrying the default style pool.
func New() *Document {
	return &Document{styles: defaultStyles()}
}

func defaultStyles() []Style {
	return []Style{
		{ID: "Normal", Name: "Normal", SizePt: 11},
		{ID: "Title", Name: "Title", Bold: true, SizePt: 20, Centered: true},
		{ID: "Heading1", Name: "heading 1", Bold: true, SizePt: 14},
		{ID: "Footer", Name: "footer", SizePt: 8},
		{ID: "TableGrid", Name: "Table Grid", Table: true},
	}
}

// Append adds a block at the end of the body sequence.
func (d *Document) Append(blocks ...Block) {
	d.blocks = append(d.blocks, blocks...)
}

// SetFooter sets the footer line rendered on every page.
func (d *Document) SetFooter(text string) {
	d.footerText = text
}

// Len returns the number of body blocks.
func (d *Document) Len() int {
	return len(d.blocks)
}

// Insert replaces the single paragraph whose text equals the marker token
// with the given elements, keeping its position in the body sequence.
// Surrounding blocks and the style pool are untouched. A marker can be
// consumed only once: a second insert for the same marker fails with
// *ErrMarkerNotFound.
func (d *Document) Insert(marker string, elements []Block) error {
	idx := -1
	for i, b := range d.blocks {
		if p, ok := b.(*Paragraph); ok && p.Text == marker {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &ErrMarkerNotFound{Marker: marker}
	}

	replaced := make([]Block, 0, len(d.blocks)-1+len(elements))
	replaced = append(replaced, d.blocks[:idx]...)
	replaced = append(replaced, elements...)
	replaced = append(replaced, d.blocks[idx+1:]...)
	d.blocks = replaced
	return nil
}

// HasMarker reports whether a paragraph with exactly the marker text exists.
func (d *Document) HasMarker(marker string) bool {
	return d.countMarker(marker) > 0
}

// CountMarker returns how many paragraphs carry exactly the marker text.
func (d *Document) CountMarker(marker string) int {
	return d.countMarker(marker)
}

func (d *Document) countMarker(marker string) int {
	n := 0
	for _, b := range d.blocks {
		if p, ok := b.(*Paragraph); ok && p.Text == marker {
			n++
		}
	}
	return n
}

// Clone returns a deep copy. Each request flow works on its own copy of the
// template, so clones never alias block or row storage.
func (d *Document) Clone() *Document {
	out := &Document{
		blocks:     make([]Block, 0, len(d.blocks)),
		styles:     make([]Style, len(d.styles)),
		footerText: d.footerText,
	}
	copy(out.styles, d.styles)
	for _, b := range d.blocks {
		switch v := b.(type) {
		case *Paragraph:
			p := *v
			out.blocks = append(out.blocks, &p)
		case *Table:
			t := &Table{Style: v.Style, Header: append([]string(nil), v.Header...)}
			t.Rows = make([][]string, len(v.Rows))
			for i, row := range v.Rows {
				t.Rows[i] = append([]string(nil), row...)
			}
			out.blocks = append(out.blocks, t)
		}
	}
	return out
}

// PlainText returns the concatenated text of all blocks, one block per line.
// Used by callers that need to inspect document content (e.g. tests checking
// that no marker token survived assembly).
func (d *Document) PlainText() string {
	var sb strings.Builder
	for _, b := range d.blocks {
		sb.WriteString(b.blockText())
		sb.WriteString("\n")
	}
	sb.WriteString(d.footerText)
	return sb.String()
}
