// Package ui exposes the analysis engine over HTTP.
package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"statcanvas/adapters/excel"
	"statcanvas/app"
	"statcanvas/domain/core"
	"statcanvas/domain/stats"
	"statcanvas/internal"
	"statcanvas/internal/config"
	"statcanvas/internal/report"
)

// Server wires the analyzer behind a gin router.
type Server struct {
	router         *gin.Engine
	analyzer       *app.Analyzer
	log            *internal.Logger
	maxUploadBytes int64
}

// NewServer creates the web server with its routes registered.
func NewServer(analyzer *app.Analyzer, cfg *config.Config, log *internal.Logger) *Server {
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}
	if log == nil {
		log = internal.NewDefaultLogger()
	}
	s := &Server{
		router:         gin.Default(),
		analyzer:       analyzer,
		log:            log,
		maxUploadBytes: cfg.Upload.MaxUploadBytes,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	api.POST("/analyze", s.handleAnalyze)
	api.POST("/analyze/upload", s.handleAnalyzeUpload)
	api.GET("/conversations/:id/report", s.handleConversationReport)
}

// Start runs the HTTP server on the given address.
func (s *Server) Start(addr string) error {
	s.log.Info("listening on %s", addr)
	return s.router.Run(addr)
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// analyzeRequest is the POST /api/analyze body. Data and Groups stay raw so
// variable order can be preserved; json.Unmarshal into a Go map would
// scramble it and change which variables a correlation or chi-square picks.
type analyzeRequest struct {
	ConversationID string          `json:"conversation_id"`
	AnalysisType   string          `json:"analysis_type"`
	OutputFormat   string          `json:"output_format"`
	Data           json.RawMessage `json:"data"`
	Groups         json.RawMessage `json:"groups"`
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	data, err := decodeSamples(req.Data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data: " + err.Error()})
		return
	}
	groups, err := decodeSamples(req.Groups)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid groups: " + err.Error()})
		return
	}

	s.runAnalysis(c, app.AnalyzeRequest{
		ConversationID: core.ConversationID(req.ConversationID),
		Data:           data,
		Groups:         groups,
		AnalysisType:   stats.AnalysisType(req.AnalysisType),
	}, req.OutputFormat)
}

func (s *Server) handleAnalyzeUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}
	if fileHeader.Size > s.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("file exceeds %d byte limit", s.maxUploadBytes)})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read upload: " + err.Error()})
		return
	}
	defer f.Close()

	reader := excel.NewDataReader(fileHeader.Filename)
	data, err := reader.ReadSamples(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.runAnalysis(c, app.AnalyzeRequest{
		ConversationID: core.ConversationID(c.PostForm("conversation_id")),
		Data:           data,
		AnalysisType:   stats.AnalysisType(c.PostForm("analysis_type")),
	}, c.PostForm("output_format"))
}

func (s *Server) runAnalysis(c *gin.Context, req app.AnalyzeRequest, outputFormat string) {
	record, err := s.analyzer.Analyze(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if outputFormat == "report" {
		c.JSON(http.StatusOK, report.FormatAnalysis(record))
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) handleConversationReport(c *gin.Context) {
	id := core.ConversationID(c.Param("id"))
	records := s.analyzer.History(id)
	c.JSON(http.StatusOK, report.BuildConversationReport(id, records))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// decodeSamples parses a JSON object of name -> value array while keeping
// the object's key order.
func decodeSamples(raw json.RawMessage) (*core.Samples, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object of variable arrays")
	}

	samples := core.NewSamples()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected variable name")
		}
		var values []interface{}
		if err := dec.Decode(&values); err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		sample, err := core.SampleFromValues(values)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		samples.Set(name, sample)
	}
	return samples, nil
}
