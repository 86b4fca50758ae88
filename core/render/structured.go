// Package render — structured XML renderer.
// Runs the study-plan parser over the document lines and serializes the
// resulting block/section/discipline tree.
package render

import (
	"encoding/xml"
	"fmt"

	"planpipe/core"
	"planpipe/core/plan"
)

// StructuredRenderer produces the heading-segmented XML rendering.
type StructuredRenderer struct{}

// NewStructuredRenderer creates a StructuredRenderer.
func NewStructuredRenderer() *StructuredRenderer {
	return &StructuredRenderer{}
}

// studyPlanXML is the marshaling envelope for the parsed plan.
type studyPlanXML struct {
	XMLName xml.Name     `xml:"study_plan"`
	Blocks  []plan.Block `xml:"block"`
}

// Render parses the document and returns indented structured XML.
func (r *StructuredRenderer) Render(doc *core.Document) ([]byte, error) {
	parsed := plan.Parse(doc.Lines())

	data, err := xml.MarshalIndent(studyPlanXML{Blocks: parsed.Blocks}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling structured XML: %w", err)
	}

	out := make([]byte, 0, len(xml.Header)+len(data)+1)
	out = append(out, []byte(xml.Header)...)
	out = append(out, data...)
	out = append(out, '\n')
	return out, nil
}

// Extension returns the file extension for structured XML output.
func (r *StructuredRenderer) Extension() string {
	return ".structured.xml"
}
