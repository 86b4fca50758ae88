// Package render — generic XML renderer.
// Wraps the extracted text in a single <document> element with reserved
// characters escaped; line structure is preserved verbatim.
package render

import (
	"strings"

	"planpipe/core"
)

// XMLRenderer produces the plain XML wrapping of the document text.
type XMLRenderer struct{}

// NewXMLRenderer creates an XMLRenderer.
func NewXMLRenderer() *XMLRenderer {
	return &XMLRenderer{}
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Render wraps the escaped document text in a <document> element.
func (r *XMLRenderer) Render(doc *core.Document) ([]byte, error) {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString("<document>\n")
	b.WriteString(xmlEscaper.Replace(doc.Text))
	b.WriteString("\n</document>\n")
	return []byte(b.String()), nil
}

// Extension returns the file extension for XML output.
func (r *XMLRenderer) Extension() string {
	return ".xml"
}
