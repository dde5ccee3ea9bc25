package template

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"rams-generator-be/internal/constant"
	"rams-generator-be/pkg/document"
)

// ErrTemplateLoad reports a missing or malformed template definition.
var ErrTemplateLoad = errors.New("template load failed")

//go:embed template_rams.json
var embeddedTemplate []byte

type blockDefinition struct {
	Type   string     `json:"type"`
	Style  string     `json:"style"`
	Text   string     `json:"text"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

type templateDefinition struct {
	Title  string            `json:"title"`
	Footer string            `json:"footer"`
	Blocks []blockDefinition `json:"blocks"`
}

// Store loads the immutable RAMS template. It is read-only after
// construction and safe for concurrent use: every Load returns an
// independent working copy.
type Store struct {
	def templateDefinition
}

// NewStore parses and validates the template definition. An empty path uses
// the embedded default; otherwise the definition is read from disk
// (TEMPLATE_PATH). Fails with ErrTemplateLoad when the definition is
// missing, unparsable, or a known marker is absent or duplicated.
func NewStore(path string) (*Store, error) {
	raw := embeddedTemplate
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrTemplateLoad, path, err)
		}
		raw = data
	}

	var def templateDefinition
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("%w: parse definition: %v", ErrTemplateLoad, err)
	}
	if len(def.Blocks) == 0 {
		return nil, fmt.Errorf("%w: definition has no blocks", ErrTemplateLoad)
	}

	store := &Store{def: def}
	doc := store.build()
	for _, marker := range []string{
		constant.MarkerRiskTable,
		constant.MarkerSequence,
		constant.MarkerMethodStatement,
	} {
		switch n := doc.CountMarker(marker); {
		case n == 0:
			return nil, fmt.Errorf("%w: marker %q not found in template", ErrTemplateLoad, marker)
		case n > 1:
			return nil, fmt.Errorf("%w: marker %q appears %d times in template", ErrTemplateLoad, marker, n)
		}
	}
	return store, nil
}

// Load returns a fresh working copy of the template. Copies never share
// block storage, so concurrent request flows cannot observe each other's
// insertions.
func (s *Store) Load() *document.Document {
	return s.build()
}

func (s *Store) build() *document.Document {
	doc := document.New()
	doc.SetFooter(s.def.Footer)
	for _, b := range s.def.Blocks {
		switch b.Type {
		case "table":
			table := &document.Table{Style: b.Style, Header: append([]string(nil), b.Header...)}
			for _, row := range b.Rows {
				table.Rows = append(table.Rows, append([]string(nil), row...))
			}
			doc.Append(table)
		default:
			doc.Append(&document.Paragraph{Style: b.Style, Text: b.Text})
		}
	}
	return doc
}
