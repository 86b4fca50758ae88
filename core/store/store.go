// Package store implements the on-disk artifact layout:
// downloads/ for raw PDFs, processed/ for derived files, and latest.txt
// pointing at the current source document. Writes go through a
// temp-file-then-rename step so readers never observe partial files.
package store

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"planpipe/core"
)

const (
	downloadsDir = "downloads"
	processedDir = "processed"
	latestFile   = "latest.txt"
)

// Store manages the data directory.
type Store struct {
	Root string
}

// New creates a Store rooted at dataDir, ensuring the directory layout
// exists. If dataDir is empty it defaults to "data" under the current
// working directory.
func New(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "data"
	}
	abs, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("resolving data dir: %w", err)
	}
	for _, dir := range []string{abs, filepath.Join(abs, downloadsDir), filepath.Join(abs, processedDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return &Store{Root: abs}, nil
}

// DownloadsDir returns the directory raw PDFs are saved into.
func (s *Store) DownloadsDir() string {
	return filepath.Join(s.Root, downloadsDir)
}

// ProcessedDir returns the directory derived artifacts are written into.
func (s *Store) ProcessedDir() string {
	return filepath.Join(s.Root, processedDir)
}

// LatestPath returns the path of the latest-pointer file.
func (s *Store) LatestPath() string {
	return filepath.Join(s.Root, latestFile)
}

// WriteLatest records pdfPath as the current source document.
func (s *Store) WriteLatest(pdfPath string) error {
	return s.writeFile(s.LatestPath(), []byte(pdfPath+"\n"))
}

// ReadLatest returns the path recorded by the last successful fetch.
func (s *Store) ReadLatest() (string, error) {
	data, err := os.ReadFile(s.LatestPath())
	if err != nil {
		return "", fmt.Errorf("reading latest pointer: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// WriteDownload streams r into downloads/ under the given name without
// buffering the whole file. Returns the final path.
func (s *Store) WriteDownload(name string, r io.Reader) (string, error) {
	path := filepath.Join(s.DownloadsDir(), name)
	if err := s.writeFileFrom(path, r); err != nil {
		return "", err
	}
	return path, nil
}

// WriteProcessed writes one derived artifact for the given stem.
// ext must include the leading dot (".txt", ".structured.xml", ...).
func (s *Store) WriteProcessed(stem, ext string, data []byte) (string, error) {
	path := filepath.Join(s.ProcessedDir(), stem+ext)
	if err := s.writeFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}

// Artifacts returns the expected artifact paths for a source PDF.
func (s *Store) Artifacts(pdfPath string) core.ArtifactSet {
	stem := Stem(pdfPath)
	return core.ArtifactSet{
		PDF:          pdfPath,
		Text:         filepath.Join(s.ProcessedDir(), stem+".txt"),
		XML:          filepath.Join(s.ProcessedDir(), stem+".xml"),
		Structured:   filepath.Join(s.ProcessedDir(), stem+".structured.xml"),
		PageSnapshot: filepath.Join(s.ProcessedDir(), stem+".page.md"),
	}
}

// Resolve returns the on-disk path for a servable kind, or an
// ArtifactMissingError if the file does not exist yet.
func (s *Store) Resolve(set core.ArtifactSet, kind core.Kind) (string, error) {
	path, ok := set.ByKind(kind)
	if !ok {
		return "", fmt.Errorf("unknown artifact kind %q", kind)
	}
	if _, err := os.Stat(path); err != nil {
		return "", &core.ArtifactMissingError{Kind: kind, Path: path}
	}
	return path, nil
}

// Stem returns the filename of path without directory or extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// writeFile writes atomically: temp file in the target directory, then
// rename over the final name.
func (s *Store) writeFile(path string, data []byte) error {
	return s.writeFileFrom(path, bytes.NewReader(data))
}

// writeFileFrom copies r into a temp file in the target directory, then
// renames it over the final name.
func (s *Store) writeFileFrom(path string, r io.Reader) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming %s: %w", path, err)
	}
	return nil
}
