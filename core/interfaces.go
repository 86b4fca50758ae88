// Package core defines the pipeline interfaces for planpipe.
// Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"strings"
	"time"
)

// FetchResult holds the outcome of a fetch: the downloaded PDF and the
// rendered catalog page it was discovered on.
type FetchResult struct {
	PageURL   string
	PageHTML  string
	PDFURL    string
	PDFPath   string
	FetchedAt time.Time
}

// Document is the canonical intermediate format: cleaned plain text
// extracted from a source PDF.
type Document struct {
	SourcePath string
	Stem       string
	PageCount  int
	Text       string
}

// Lines splits the document text into individual lines for the
// structure parser.
func (d *Document) Lines() []string {
	return strings.Split(d.Text, "\n")
}

// Kind identifies one of the servable artifacts.
type Kind string

const (
	KindPDF        Kind = "pdf"
	KindText       Kind = "txt"
	KindXML        Kind = "xml"
	KindStructured Kind = "structured"
)

// Kinds lists the servable artifact kinds in a stable order.
func Kinds() []Kind {
	return []Kind{KindPDF, KindText, KindXML, KindStructured}
}

// ArtifactSet holds the file paths of a source document and everything
// derived from it. Paths are absolute; existence is not implied.
type ArtifactSet struct {
	PDF          string `json:"pdf"`
	Text         string `json:"txt"`
	XML          string `json:"xml"`
	Structured   string `json:"structured"`
	PageSnapshot string `json:"page_snapshot,omitempty"`
}

// ByKind returns the path for a servable kind.
func (a ArtifactSet) ByKind(k Kind) (string, bool) {
	switch k {
	case KindPDF:
		return a.PDF, true
	case KindText:
		return a.Text, true
	case KindXML:
		return a.XML, true
	case KindStructured:
		return a.Structured, true
	default:
		return "", false
	}
}

// Fetcher locates and downloads the current study-plan PDF from the
// configured catalog page.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (*FetchResult, error)
}

// Extractor turns a PDF file into a cleaned-text Document.
type Extractor interface {
	Extract(path string) (*Document, error)
}

// Renderer converts a Document into one derived output format.
type Renderer interface {
	Render(doc *Document) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".txt").
	Extension() string
}
