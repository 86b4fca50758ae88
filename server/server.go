// Package server exposes the artifact store over a small read-only
// HTTP API. The startup pipeline result is injected at construction;
// handlers never mutate it.
package server

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"planpipe/core"
	"planpipe/core/pipeline"
	"planpipe/core/store"
)

// Server serves service metadata, pipeline status and artifact files.
type Server struct {
	result pipeline.Result
	store  *store.Store
	log    *zap.SugaredLogger
}

// New creates a Server over the given pipeline result and store.
func New(result pipeline.Result, st *store.Store) *Server {
	return &Server{
		result: result,
		store:  st,
		log:    zap.S(),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLog())

	r.GET("/", s.handleRoot)
	r.GET("/status", s.handleStatus)
	r.GET("/files/:kind", s.handleFile)
	return r
}

// Run serves until the listener fails or the process is terminated.
func (s *Server) Run(addr string) error {
	s.log.Infow("http api listening", "addr", addr)
	return s.Router().Run(addr)
}

func (s *Server) handleRoot(c *gin.Context) {
	kinds := core.Kinds()
	endpoints := make([]string, 0, len(kinds)+2)
	endpoints = append(endpoints, "/status")
	for _, k := range kinds {
		endpoints = append(endpoints, "/files/"+string(k))
	}
	c.JSON(http.StatusOK, gin.H{
		"service":     "planpipe",
		"description": "study plan fetcher and converter",
		"endpoints":   endpoints,
	})
}

// artifactStatus is one artifact entry in the status payload.
type artifactStatus struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

func (s *Server) handleStatus(c *gin.Context) {
	if !s.result.Ready() {
		c.JSON(http.StatusOK, gin.H{
			"ready": false,
			"error": s.result.Err.Error(),
		})
		return
	}

	artifacts := make(map[string]artifactStatus, len(core.Kinds())+1)
	for _, kind := range core.Kinds() {
		path, _ := s.result.Artifacts.ByKind(kind)
		_, err := os.Stat(path)
		artifacts[string(kind)] = artifactStatus{Path: path, Exists: err == nil}
	}
	// The page snapshot is status-only provenance, never served via /files.
	if path := s.result.Artifacts.PageSnapshot; path != "" {
		_, err := os.Stat(path)
		artifacts["page_snapshot"] = artifactStatus{Path: path, Exists: err == nil}
	}

	c.JSON(http.StatusOK, gin.H{
		"ready":      true,
		"pdf":        s.result.PDFPath,
		"page_count": s.result.PageCount,
		"fetched_at": s.result.FetchedAt.Format(time.RFC3339),
		"artifacts":  artifacts,
	})
}

func (s *Server) handleFile(c *gin.Context) {
	kind := core.Kind(c.Param("kind"))
	if _, ok := (core.ArtifactSet{}).ByKind(kind); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown artifact kind: " + string(kind)})
		return
	}

	if !s.result.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "pipeline did not complete: " + s.result.Err.Error()})
		return
	}

	path, err := s.store.Resolve(s.result.Artifacts, kind)
	if err != nil {
		var missing *core.ArtifactMissingError
		if errors.As(err, &missing) {
			c.JSON(http.StatusNotFound, gin.H{"error": "artifact not found: " + string(kind)})
			return
		}
		s.log.Errorw("resolving artifact", "kind", kind, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "resolving artifact"})
		return
	}

	c.File(path)
}

// requestLog logs method, path, status and latency per request.
func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Infow("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
