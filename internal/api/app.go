// Package api serves analyses over HTTP.
//
//	GET  /health              liveness
//	POST /analyze             {"files":[{path,content,contentHash}]} or {"code":"...","path":"..."}
//	POST /analyze/repository  {"owner","repo","branch"} or {"url","branch"}
//
// Responses are report JSON; ?pretty=true indents them. Errors are
// {"message","status"}.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"mcpscan/internal/annotation"
	"mcpscan/internal/core"
	"mcpscan/internal/filemanager"
	"mcpscan/internal/logging"
	"mcpscan/internal/report"
	"mcpscan/internal/repository"
	"mcpscan/pkg/fileops"
)

// MaxRequestBytes caps request bodies.
const MaxRequestBytes = 32 << 20

type App struct {
	svc    *core.Service
	logger *logging.AppLogger
	origin string
	pretty bool
}

func NewApp(svc *core.Service, logger *logging.AppLogger) *App {
	cfg := svc.Config()
	origin := cfg.Server.AllowedOrigin
	if origin == "" {
		origin = "*"
	}
	return &App{
		svc:    svc,
		logger: logger,
		origin: origin,
		pretty: cfg.Output.Pretty,
	}
}

func (a *App) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(a.requestLogger)
	r.Use(Cors(a.origin))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { writeText(w, http.StatusOK, "ok\n") })
	r.Post("/analyze", a.analyze)
	r.Post("/analyze/repository", a.analyzeRepository)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

type analyzeRequest struct {
	Files []annotation.FileContent `json:"files"`
	Code  *string                  `json:"code"`
	Path  string                   `json:"path"`
}

func (a *App) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	files := req.Files
	if req.Code != nil {
		files = append(files, filemanager.FromString(req.Path, *req.Code))
	}
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "request must contain files or code")
		return
	}
	for i, f := range files {
		if strings.TrimSpace(f.Path) == "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("files[%d]: path cannot be empty", i))
			return
		}
		if strings.HasPrefix(f.Path, "/") {
			continue
		}
		if err := fileops.ValidateRelativePath(f.Path); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("files[%d]: %v", i, err))
			return
		}
	}

	a.writeReport(w, r, a.svc.AnalyzeFiles(files))
}

type repositoryRequest struct {
	URL    string `json:"url"`
	Owner  string `json:"owner"`
	Repo   string `json:"repo"`
	Branch string `json:"branch"`
}

func (a *App) analyzeRepository(w http.ResponseWriter, r *http.Request) {
	var req repositoryRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rc := repository.RepositoryConfig{Owner: req.Owner, Repo: req.Repo, Branch: req.Branch}
	if req.URL != "" {
		parsed, err := repository.ParseRepositoryURL(req.URL)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		rc = parsed
		if req.Branch != "" {
			rc.Branch = req.Branch
		}
	}
	if err := rc.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rep, err := a.svc.AnalyzeRepository(r.Context(), rc)
	if err != nil {
		status := repository.StatusOf(err)
		if a.logger != nil {
			a.logger.Warn("Repository analysis failed", "repo", rc.String(), "status", status, "error", err)
		}
		writeError(w, status, err.Error())
		return
	}
	a.writeReport(w, r, rep)
}

// encodeReport is replaced in tests.
var encodeReport = report.Encode

func (a *App) writeReport(w http.ResponseWriter, r *http.Request, rep *report.Report) {
	pretty := a.pretty
	if v := r.URL.Query().Get("pretty"); v != "" {
		pretty, _ = strconv.ParseBool(v)
	}

	var buf bytes.Buffer
	if err := encodeReport(&buf, rep, report.FormatJSON, pretty); err != nil {
		if a.logger != nil {
			a.logger.Error("Failed to encode report", "error", err)
		}
		writeError(w, http.StatusInternalServerError, "failed to encode report")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil && a.logger != nil {
		a.logger.Error("Failed to write response", "error", err)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBytes))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

// errorBody mirrors repository.FetchError on the wire.
type errorBody struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Message: message, Status: status})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, s string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(s))
}
