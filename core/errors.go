// Package core — error taxonomy shared across the pipeline.
// Every failure class a caller can react to gets its own type so the
// cmd layer and the API can match with errors.As.
package core

import "fmt"

// NavigationError means the catalog page could not be loaded or
// rendered by the headless browser.
type NavigationError struct {
	URL string
	Err error
}

func (e *NavigationError) Error() string {
	return fmt.Sprintf("navigating %s: %v", e.URL, e.Err)
}

func (e *NavigationError) Unwrap() error { return e.Err }

// LinkNotFoundError means the page rendered fine but no study-plan PDF
// link was found on it.
type LinkNotFoundError struct {
	URL string
}

func (e *LinkNotFoundError) Error() string {
	return fmt.Sprintf("no study-plan PDF link found on %s", e.URL)
}

// ConversionError means the source PDF could not be opened or yielded
// no extractable text.
type ConversionError struct {
	Path string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("converting %s: %v", e.Path, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// ArtifactMissingError means a requested artifact is not on disk yet.
// The API maps it to HTTP 404.
type ArtifactMissingError struct {
	Kind Kind
	Path string
}

func (e *ArtifactMissingError) Error() string {
	return fmt.Sprintf("artifact %q not found at %s", e.Kind, e.Path)
}
