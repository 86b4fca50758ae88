// Package render provides output renderers for the planpipe pipeline.
// This file implements the plain-text renderer, which is a simple
// passthrough since cleaned text is already the canonical format.
package render

import "planpipe/core"

// TextRenderer writes the extracted text as-is.
type TextRenderer struct{}

// NewTextRenderer creates a TextRenderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render returns the document text as bytes (passthrough).
func (r *TextRenderer) Render(doc *core.Document) ([]byte, error) {
	return []byte(doc.Text), nil
}

// Extension returns the file extension for text output.
func (r *TextRenderer) Extension() string {
	return ".txt"
}
