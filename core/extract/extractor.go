// Package extract implements the Extractor interface.
// The source file is validated with pdfcpu first, then text is pulled
// page by page and cleaned up for the downstream renderers.
package extract

import (
	"errors"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"planpipe/core"
	"planpipe/core/store"
)

// PDFExtractor extracts cleaned plain text from a PDF file.
type PDFExtractor struct {
	conf *model.Configuration
}

// New creates a PDFExtractor. Validation is relaxed: the catalog emits
// slightly malformed PDFs that still extract fine.
func New() *PDFExtractor {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFExtractor{conf: conf}
}

// Extract validates the PDF, extracts text page by page, and returns a
// cleaned Document. Fails with a ConversionError when the file is not a
// readable PDF or contains no extractable text.
func (e *PDFExtractor) Extract(path string) (*core.Document, error) {
	if err := api.ValidateFile(path, e.conf); err != nil {
		return nil, &core.ConversionError{Path: path, Err: err}
	}
	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return nil, &core.ConversionError{Path: path, Err: err}
	}

	lines, err := extractLines(path)
	if err != nil {
		return nil, &core.ConversionError{Path: path, Err: err}
	}

	text := CleanLines(lines)
	if strings.TrimSpace(text) == "" {
		return nil, &core.ConversionError{Path: path, Err: errors.New("no extractable text")}
	}

	return &core.Document{
		SourcePath: path,
		Stem:       store.Stem(path),
		PageCount:  pageCount,
		Text:       text,
	}, nil
}

// extractLines reads every page and returns its text rows in order.
func extractLines(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			// A single broken page should not sink the document.
			continue
		}
		for _, row := range rows {
			var b strings.Builder
			for _, word := range row.Content {
				b.WriteString(word.S)
			}
			lines = append(lines, b.String())
		}
	}
	return lines, nil
}

// CleanLines normalizes extracted rows: NBSP becomes a space, lines are
// trimmed, blank runs collapse to one blank line, and rows consisting
// only of stray single-letter tokens (column-break debris) are dropped.
func CleanLines(lines []string) string {
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		s := strings.TrimSpace(strings.ReplaceAll(line, " ", " "))
		if s == "" {
			if len(cleaned) > 0 && cleaned[len(cleaned)-1] != "" {
				cleaned = append(cleaned, "")
			}
			continue
		}
		cleaned = append(cleaned, s)
	}

	result := make([]string, 0, len(cleaned))
	for _, s := range cleaned {
		if s != "" && isNoiseLine(s) {
			continue
		}
		result = append(result, s)
	}
	return strings.TrimRight(strings.TrimLeft(strings.Join(result, "\n"), "\n"), "\n") + "\n"
}

// isNoiseLine reports whether every token on the line is a lone letter.
func isNoiseLine(s string) bool {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		runes := []rune(tok)
		if len(runes) != 1 || !unicode.IsLetter(runes[0]) {
			return false
		}
	}
	return true
}
