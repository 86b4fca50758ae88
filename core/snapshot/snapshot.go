// Package snapshot renders the fetched catalog page as a Markdown
// provenance record, stored beside the derived artifacts so a reader
// can see what the page looked like when the PDF was pulled.
// It isolates the main content by:
//  1. Finding the best content container (<main>, <article>, or <body>)
//  2. Removing noise elements (nav, footer, scripts, images, etc.)
package snapshot

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// noiseSelectors are HTML elements removed before conversion. They
// contribute no meaningful content to the snapshot.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", "header",
	"img", "picture", "figure", "figcaption",
	"iframe", "video", "audio",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
}

// Renderer converts a rendered page into a Markdown snapshot.
type Renderer struct{}

// New creates a snapshot Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render strips noise from the page HTML and converts the main content
// to Markdown, prefixed with a source line.
func (r *Renderer) Render(pageURL, html string) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing page HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	// <main> is the most semantically correct, then <article>, then <body>.
	var content *goquery.Selection
	for _, tag := range []string{"main", "article", "body"} {
		sel := doc.Find(tag)
		if sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		return nil, fmt.Errorf("no content container found in page HTML")
	}

	fragment, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, fmt.Errorf("serializing content: %w", err)
	}

	markdown, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return nil, fmt.Errorf("converting page to markdown: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<!-- source: %s -->\n\n", pageURL)
	b.WriteString(strings.TrimSpace(markdown))
	b.WriteString("\n")
	return []byte(b.String()), nil
}
