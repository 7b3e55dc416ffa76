// Package ui serves the artifacts of the latest analysis run over
// HTTP: the rendered report, the manifest and the raw files.
package ui

import (
	"html/template"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"randmodel/app"
	"randmodel/internal"
	"randmodel/internal/errors"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>randmodel report</title>
<style>
body { font-family: Georgia, serif; max-width: 72rem; margin: 2rem auto; padding: 0 1rem; color: #1a1a1a; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #bbb; padding: 0.3rem 0.7rem; font-variant-numeric: tabular-nums; }
th { background: #f2f2f2; }
code { background: #f6f6f6; padding: 0.1rem 0.3rem; }
nav { margin-bottom: 1.5rem; }
nav a { margin-right: 1rem; }
</style>
</head>
<body>
<nav><a href="/">report</a><a href="/api/run">manifest</a></nav>
{{.Body}}
</body>
</html>
`

// App is the report server. It owns no run state; every request reads
// the artifact directory, so a new analysis run shows up on refresh.
type App struct {
	router *chi.Mux
	outDir string
	page   *template.Template
	logger *internal.Logger
}

// Config holds the report server configuration
type Config struct {
	OutDir string
	Logger *internal.Logger
}

// NewApp creates the report server over an artifact directory.
func NewApp(config Config) (*App, error) {
	if config.OutDir == "" {
		return nil, errors.ConfigInvalid("report server requires an artifact directory")
	}
	if config.Logger == nil {
		config.Logger = internal.DefaultLogger
	}

	page, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, errors.InternalError("failed to parse page template: " + err.Error())
	}

	a := &App{
		router: chi.NewRouter(),
		outDir: config.OutDir,
		page:   page,
		logger: config.Logger,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleReport)
	a.router.Get("/api/run", a.handleManifest)

	files := http.StripPrefix("/artifacts/", http.FileServer(http.Dir(a.outDir)))
	a.router.Handle("/artifacts/*", files)
}

// Router exposes the handler for embedding and tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start(port string) error {
	addr := ":" + port
	a.logger.Info("report server listening on %s, serving %s", addr, a.outDir)
	return http.ListenAndServe(addr, a.router)
}

// handleReport renders the run report markdown as HTML.
func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	source, err := os.ReadFile(filepath.Join(a.outDir, app.ReportFile))
	if os.IsNotExist(err) {
		http.Error(w, "no report yet; run analyze first", http.StatusNotFound)
		return
	}
	if err != nil {
		a.logger.Error("reading report: %v", err)
		http.Error(w, "failed to read report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct{ Body template.HTML }{Body: template.HTML(renderMarkdown(source))}
	if err := a.page.Execute(w, data); err != nil {
		a.logger.Error("rendering report page: %v", err)
	}
}

// handleManifest serves the run manifest verbatim.
func (a *App) handleManifest(w http.ResponseWriter, r *http.Request) {
	payload, err := os.ReadFile(filepath.Join(a.outDir, app.ManifestFile))
	if os.IsNotExist(err) {
		http.Error(w, "no run manifest yet", http.StatusNotFound)
		return
	}
	if err != nil {
		a.logger.Error("reading manifest: %v", err)
		http.Error(w, "failed to read manifest", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// renderMarkdown converts report markdown to HTML. The report uses
// tables, so the parser needs the extended dialect.
func renderMarkdown(source []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return markdown.Render(p.Parse(source), renderer)
}
