package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/davetashner/tally/internal/checklist"
	"github.com/davetashner/tally/internal/config"
	"github.com/davetashner/tally/internal/output"
	"github.com/davetashner/tally/internal/pipeline"
)

// Form field names.
const (
	fieldFiles        = "files"
	fieldDeliveryDate = "delivery_date"
	fieldTeamSize     = "team_size"
)

// MsgNoFiles is shown when a request carries no documents.
const MsgNoFiles = "Please upload at least one JSON file."

// maxMemory is the multipart form size kept in memory before spilling to disk.
const maxMemory = 8 << 20

// requestError is an error with the HTTP status it maps to.
type requestError struct {
	status int
	msg    string
}

func (e *requestError) Error() string { return e.msg }

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	s.renderIndex(w, r, http.StatusOK, "")
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	res, err := s.run(w, r)
	if err != nil {
		status, msg := classify(err)
		logFailure(r, status, err)
		s.renderIndex(w, r, status, msg)
		return
	}

	var buf strings.Builder
	if err := output.NewHTMLFormatter().Format(res.View, &buf); err != nil {
		logFailure(r, http.StatusInternalServerError, err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, buf.String())
}

func (s *Server) apiDashboard(w http.ResponseWriter, r *http.Request) {
	res, err := s.run(w, r)
	if err != nil {
		status, msg := classify(err)
		logFailure(r, status, err)
		respondJSON(w, status, map[string]string{"error": msg})
		return
	}

	data, err := output.NewJSONFormatter().Marshal(res.View, true)
	if err != nil {
		logFailure(r, http.StatusInternalServerError, err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "render failed"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

// run reads the uploaded documents and computes the dashboard.
func (s *Server) run(w http.ResponseWriter, r *http.Request) (*pipeline.Result, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &requestError{status: http.StatusRequestEntityTooLarge, msg: fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit)}
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, checklist.ErrNoInput
		}
		return nil, &requestError{status: http.StatusBadRequest, msg: "invalid form: " + err.Error()}
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	cfg, err := s.requestConfig(r)
	if err != nil {
		return nil, err
	}

	sources, err := readUploads(r.MultipartForm.File[fieldFiles])
	if err != nil {
		return nil, err
	}

	cfg.Today = s.nowFunc()
	res, err := pipeline.New(cfg).Run(r.Context(), sources)
	if err != nil {
		return nil, err
	}
	slog.Info("dashboard served",
		"request_id", RequestID(r.Context()),
		"documents", len(sources),
		"records", len(res.Records),
		"anomalies", len(res.Anomalies),
	)
	return res, nil
}

// requestConfig applies optional form overrides to the server defaults.
func (s *Server) requestConfig(r *http.Request) (pipeline.Config, error) {
	cfg := s.opts.Pipeline
	if v := strings.TrimSpace(r.FormValue(fieldDeliveryDate)); v != "" {
		d, err := config.ParseDate(v)
		if err != nil {
			return cfg, &requestError{status: http.StatusBadRequest, msg: fmt.Sprintf("%s must be YYYY-MM-DD, got %q", fieldDeliveryDate, v)}
		}
		cfg.DeliveryDate = d
	}
	if v := strings.TrimSpace(r.FormValue(fieldTeamSize)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return cfg, &requestError{status: http.StatusBadRequest, msg: fmt.Sprintf("%s must be a positive integer, got %q", fieldTeamSize, v)}
		}
		cfg.TeamSize = n
	}
	return cfg, nil
}

func readUploads(files []*multipart.FileHeader) ([]checklist.Source, error) {
	sources := make([]checklist.Source, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload %s: %w", fh.Filename, err)
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("read upload %s: %w", fh.Filename, err)
		}
		sources = append(sources, checklist.Source{Name: fh.Filename, Data: data})
	}
	return sources, nil
}

// classify maps a run error to a status code and a user-facing message.
func classify(err error) (int, string) {
	var reqErr *requestError
	var malformed *checklist.MalformedInputError
	switch {
	case errors.Is(err, checklist.ErrNoInput):
		return http.StatusBadRequest, MsgNoFiles
	case errors.As(err, &malformed):
		return http.StatusUnprocessableEntity, malformed.Error()
	case errors.As(err, &reqErr):
		return reqErr.status, reqErr.msg
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func logFailure(r *http.Request, status int, err error) {
	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(r.Context(), level, "dashboard request failed",
		"request_id", RequestID(r.Context()),
		"status", status,
		"error", err,
	)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode json response", "error", err)
	}
}
