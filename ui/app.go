package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gridsense/adapters/excel"
	"gridsense/domain/core"
	"gridsense/domain/structure"
	"gridsense/internal"
	"gridsense/internal/config"
	"gridsense/ports"
)

// App represents the HTTP analysis service
type App struct {
	router   *chi.Mux
	analyzer ports.AnalyzerPort
	renderer ports.RendererPort
	cfg      *config.Config
	log      *internal.Logger
}

// NewApp creates the HTTP application around an analyzer and renderer
func NewApp(cfg *config.Config, analyzer ports.AnalyzerPort, renderer ports.RendererPort) *App {
	app := &App{
		router:   chi.NewRouter(),
		analyzer: analyzer,
		renderer: renderer,
		cfg:      cfg,
		log:      internal.NewLogger(cfg.LogLevel).WithComponent("ui"),
	}

	app.setupMiddleware()
	app.setupRoutes()
	return app
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/api/health", a.handleHealth)
	a.router.Post("/api/analyze", a.handleAnalyze)
}

// Router exposes the mux for tests
func (a *App) Router() http.Handler {
	return a.router
}

// Start runs the web server
func (a *App) Start() error {
	addr := ":" + a.cfg.Server.Port
	a.log.Info("listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze accepts a workbook upload and returns the structure
// reports. The "format" query selects json (default), markdown or html.
func (a *App) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("workbook")
	if err != nil {
		a.respondError(w, http.StatusBadRequest, "missing workbook file upload")
		return
	}
	defer file.Close()

	path, err := a.saveUpload(file, header.Filename)
	if err != nil {
		a.respondError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	defer os.Remove(path)

	workbook, err := excel.OpenWorkbook(path)
	if err != nil {
		status := http.StatusInternalServerError
		if core.IsInputError(err) {
			status = http.StatusUnprocessableEntity
		}
		a.respondError(w, status, err.Error())
		return
	}
	defer workbook.Close()

	cfg := a.cfg.ToAnalysisConfig()
	if r.URL.Query().Get("quick") == "true" {
		cfg = structure.QuickConfig().Normalize()
	}

	reports, err := a.analyzer.AnalyzeWorkbook(r.Context(), workbook, cfg)
	if err != nil {
		status := http.StatusInternalServerError
		if core.IsInputError(err) {
			status = http.StatusUnprocessableEntity
		}
		a.respondError(w, status, err.Error())
		return
	}

	switch r.URL.Query().Get("format") {
	case "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		fmt.Fprint(w, a.renderer.RenderMarkdown(reports, header.Filename))
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(a.renderer.RenderHTML(reports, header.Filename))
	default:
		a.respondJSON(w, http.StatusOK, map[string]any{
			"file":   header.Filename,
			"sheets": reports,
		})
	}
}

// saveUpload writes the multipart stream to a temp file; the loader
// needs a seekable path on disk.
func (a *App) saveUpload(file io.Reader, name string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	tmp, err := os.CreateTemp("", "gridsense-*"+ext)
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func (a *App) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.log.Error("response encode failed: %v", err)
	}
}

func (a *App) respondError(w http.ResponseWriter, status int, msg string) {
	a.respondJSON(w, status, map[string]string{"error": msg})
}
