package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alexanderramin/throughput/internal/importer"
	"github.com/alexanderramin/throughput/internal/repository"
	"github.com/alexanderramin/throughput/internal/service"
)

// handleImport imports the CSV uploaded in the multipart field "file".
// POST /api/import
func (s *Server) handleImport(c *gin.Context) {
	if c.Request.ContentLength > s.opts.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: s.tooLargeMessage()})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: s.tooLargeMessage()})
			return
		}
		c.JSON(http.StatusBadRequest, errorResponse{Error: "No file uploaded"})
		return
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".csv") {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Only CSV files supported. Save Excel as CSV first."})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to read upload"})
		return
	}
	defer f.Close()

	if fh.Size > 0 {
		mt, err := sniff(f)
		if err != nil {
			c.JSON(http.StatusInternalServerError, errorResponse{Error: "Failed to read upload"})
			return
		}
		if !isText(mt) {
			s.log.Info("rejected binary upload", zap.String("source", fh.Filename), zap.String("detected", mt.String()))
			c.JSON(http.StatusBadRequest, errorResponse{Error: "Only CSV files supported. Save Excel as CSV first."})
			return
		}
	}

	result, err := s.imports.Import(c.Request.Context(), f, fh.Filename)
	if err != nil {
		status := http.StatusInternalServerError
		if service.IsInputError(err) {
			status = http.StatusBadRequest
		} else {
			s.log.Error("import failed", zap.String("source", fh.Filename), zap.Error(err))
		}
		c.JSON(status, errorResponse{Error: err.Error()})
		return
	}

	resp := importResponse{
		Success: true,
		Message: "Import successful",
		RunID:   result.RunID,
		Stats:   result.Summary,
	}
	for _, conflict := range result.Conflicts {
		resp.Warnings = append(resp.Warnings, conflict.String())
	}
	c.JSON(http.StatusOK, resp)
}

// sniff detects the content type of an upload and rewinds it.
func sniff(f multipart.File) (*mimetype.MIME, error) {
	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return mt, nil
}

// isText reports whether mt is text/plain or one of its descendants, such
// as text/csv.
func isText(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

func (s *Server) tooLargeMessage() string {
	return fmt.Sprintf("File exceeds the upload limit of %d bytes", s.opts.MaxUploadBytes)
}

// handleTemplate serves the empty import template.
// GET /api/template
func (s *Server) handleTemplate(c *gin.Context) {
	c.Header("Content-Disposition", `attachment; filename="import-template.csv"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if err := importer.WriteTemplate(c.Writer); err != nil {
		s.log.Error("writing template", zap.Error(err))
	}
}

// GET /api/projects
func (s *Server) handleListProjects(c *gin.Context) {
	projects, err := s.projects.List(c.Request.Context())
	if err != nil {
		s.log.Error("listing projects", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	views := make([]projectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, newProjectView(p))
	}
	c.JSON(http.StatusOK, gin.H{"projects": views})
}

// GET /api/projects/:id
func (s *Server) handleGetProject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid project id"})
		return
	}
	detail, err := s.projects.Inspect(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		s.log.Error("inspecting project", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, newProjectDetailView(detail))
}

// GET /api/runs?limit=N
func (s *Server) handleListRuns(c *gin.Context) {
	limit, err := strconv.ParseUint(c.DefaultQuery("limit", "20"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid limit"})
		return
	}
	runs, err := s.projects.ListRuns(c.Request.Context(), limit)
	if err != nil {
		s.log.Error("listing import runs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	views := make([]runView, 0, len(runs))
	for _, r := range runs {
		views = append(views, runView{ID: r.ID, Source: r.Source, Stats: r.Summary, Conflicts: r.Conflicts, CreatedAt: r.CreatedAt})
	}
	c.JSON(http.StatusOK, gin.H{"runs": views})
}

type fileInfo struct {
	Name        string `json:"name"`
	ContentType string `json:"type"`
	Size        int64  `json:"size"`
	Detected    string `json:"detectedType,omitempty"`
}

type uploadDiagnostics struct {
	Timestamp      time.Time         `json:"timestamp"`
	RequestMethod  string            `json:"requestMethod"`
	MaxUploadBytes int64             `json:"maxUploadBytes"`
	ContentLength  int64             `json:"contentLength"`
	RequestHeaders map[string]string `json:"requestHeaders"`
	FilesReceived  int               `json:"filesReceived"`
	FileInfo       *fileInfo         `json:"fileInfo,omitempty"`
	UploadError    string            `json:"uploadError,omitempty"`
}

// handleUploadCheck reports what the server received, to debug uploads
// rejected by proxies or clients.
// GET|POST /api/upload-check
func (s *Server) handleUploadCheck(c *gin.Context) {
	diag := uploadDiagnostics{
		Timestamp:      time.Now().UTC(),
		RequestMethod:  c.Request.Method,
		MaxUploadBytes: s.opts.MaxUploadBytes,
		ContentLength:  c.Request.ContentLength,
		RequestHeaders: make(map[string]string, len(c.Request.Header)),
	}
	for name, values := range c.Request.Header {
		diag.RequestHeaders[name] = strings.Join(values, ", ")
	}

	if c.Request.Method != http.MethodPost {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Only POST requests are accepted", "diagnostics": diag})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxUploadBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		diag.UploadError = err.Error()
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "No file received", "diagnostics": diag})
		return
	}
	diag.FilesReceived = len(c.Request.MultipartForm.File)
	diag.FileInfo = &fileInfo{Name: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Size: fh.Size}
	if f, err := fh.Open(); err == nil {
		if mt, err := sniff(f); err == nil {
			diag.FileInfo.Detected = mt.String()
		}
		f.Close()
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "File upload received successfully!", "diagnostics": diag})
}
