// Package server exposes the dashboard as a single HTTP page.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/KaramelBytes/didia-cli/internal/diagnosis"
	"github.com/KaramelBytes/didia-cli/internal/report"
	"github.com/KaramelBytes/didia-cli/internal/survey"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Options configures the HTTP server.
type Options struct {
	Addr             string
	MaxUploadBytes   int64
	TemplateFileName string
}

// Server serves the dashboard page, the JSON API and the CSV template.
type Server struct {
	opt Options
	svc *diagnosis.Service
	log *zap.Logger
}

// New returns a server backed by svc.
func New(opt Options, svc *diagnosis.Service, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opt.MaxUploadBytes <= 0 {
		opt.MaxUploadBytes = 10 << 20
	}
	if opt.TemplateFileName == "" {
		opt.TemplateFileName = "plantilla_didia_ba.csv"
	}
	return &Server{opt: opt, svc: svc, log: logger}
}

// Router builds the gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.MaxMultipartMemory = s.opt.MaxUploadBytes

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/", s.handlePage)
	r.POST("/", s.handlePage)
	r.POST("/api/diagnose", s.handleAPI)
	r.GET("/template.csv", s.handleTemplate)
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opt.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("dashboard listening", zap.String("addr", s.opt.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	s.log.Info("shutting down dashboard")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

// formOverhead is the multipart framing and field budget allowed on top of
// the upload itself.
const formOverhead = 64 << 10

// input extracts the optional upload, seed and diagnose flag from a request.
func (s *Server) input(c *gin.Context) (*survey.Source, uint64, bool, error) {
	if c.Request.Method == http.MethodPost {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.opt.MaxUploadBytes+formOverhead)
		if err := c.Request.ParseMultipartForm(s.opt.MaxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				return nil, 0, false, errTooLarge
			}
			return nil, 0, false, fmt.Errorf("%w: %v", errBadUpload, err)
		}
	}
	diagnose := c.Query("diagnose") == "1" || c.PostForm("diagnose") == "1"
	seed, err := parseSeed(c.DefaultPostForm("seed", c.Query("seed")))
	if err != nil {
		return nil, 0, false, err
	}
	if c.Request.Method != http.MethodPost || c.Request.MultipartForm == nil {
		return nil, seed, diagnose, nil
	}
	fh, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, seed, diagnose, nil
		}
		return nil, 0, false, fmt.Errorf("%w: %v", errBadUpload, err)
	}
	if fh.Size > s.opt.MaxUploadBytes {
		return nil, 0, false, errTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, 0, false, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, s.opt.MaxUploadBytes+1))
	if err != nil {
		return nil, 0, false, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.opt.MaxUploadBytes {
		return nil, 0, false, errTooLarge
	}
	return &survey.Source{Name: fh.Filename, Data: data}, seed, diagnose, nil
}

var (
	errTooLarge  = errors.New("upload exceeds size limit")
	errBadUpload = errors.New("malformed upload")
)

func (s *Server) handlePage(c *gin.Context) {
	page := report.NewPage(s.svc.Theme())
	src, seed, diagnose, err := s.input(c)
	if err == nil {
		var d *report.Dashboard
		d, err = s.svc.Run(src, seed, diagnose)
		if err == nil {
			page.Dashboard = d
			if d.Origin == survey.OriginSimulated {
				page.TemplateURL = "/template.csv?seed=" + strconv.FormatUint(d.Seed, 10)
			}
		}
	}
	status := http.StatusOK
	if err != nil {
		status = statusFor(err)
		page.Error = err.Error()
	}
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if rerr := page.Render(c.Writer); rerr != nil {
		s.log.Error("render page", zap.Error(rerr))
	}
}

func (s *Server) handleAPI(c *gin.Context) {
	src, seed, _, err := s.input(c)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	d, err := s.svc.Run(src, seed, true)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, d)
}

func (s *Server) handleTemplate(c *gin.Context) {
	seed, err := parseSeed(c.Query("seed"))
	if err != nil || seed == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "seed query parameter is required"})
		return
	}
	b, err := s.svc.Template(seed)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.opt.TemplateFileName))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", b)
}

func parseSeed(raw string) (uint64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errBadSeed
	}
	return v, nil
}

var errBadSeed = errors.New("seed must be a non-negative integer")

func statusFor(err error) int {
	var se *survey.SchemaError
	switch {
	case errors.As(err, &se), errors.Is(err, survey.ErrEmptyDataset):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errBadSeed), errors.Is(err, errBadUpload):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
