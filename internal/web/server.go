// Package web serves the bigram counter as an HTML form.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cognicore/bigrams/pkg/bigram"
	"github.com/cognicore/bigrams/pkg/bigram/internalerr"
	"github.com/cognicore/bigrams/pkg/bigram/store"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	msgEmpty   = "Paste text to find bigrams."
	msgFailed  = "Parsing failed. Try different options or smaller input."
	msgNoPairs = "No bigrams found."
	msgNoRun   = "Run not found."
)

// Config controls the server.
type Config struct {
	Debug    bool
	Logger   *slog.Logger
	Store    store.Store
	Observer Observer
	// Gatherer serves /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

// Server renders the form and its results.
type Server struct {
	engine   *gin.Engine
	logger   *slog.Logger
	store    store.Store
	observer Observer
	ids      *store.IDs
	// count is replaceable so counting failures can be injected.
	count func(lines []string, cfg bigram.Config) bigram.Counts
}

// New builds a server with its routes registered.
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("web server requires a run store: %w", internalerr.ErrInvalidConfig)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := template.New("").Funcs(template.FuncMap{
		"label": func(p bigram.Pair) string { return p.Label() },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	engine := gin.New()
	engine.SetHTMLTemplate(tmpl)
	engine.Use(gin.Recovery())
	if cfg.Debug {
		engine.Use(gin.Logger())
	}

	s := &Server{
		engine:   engine,
		logger:   logger,
		store:    cfg.Store,
		observer: cfg.Observer,
		ids:      store.NewIDs(),
		count:    bigram.CountLines,
	}

	engine.GET("/", s.handleForm)
	engine.POST("/", s.handleSubmit)
	engine.GET("/runs/:id", s.handleRun)
	if cfg.Gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}
	return s, nil
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// page is the data of index.html.
type page struct {
	Options []option
	Checked map[string]bool
	TopN    int
	Text    string
	Error   string
	Notice  string
	Run     *store.Run
	Saved   bool
}

func newPage() page {
	return page{Options: formOptions, Checked: map[string]bool{}, TopN: TopNDefault}
}

func (s *Server) handleForm(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", newPage())
}

func (s *Server) handleSubmit(c *gin.Context) {
	p := newPage()

	text := strings.TrimSpace(c.PostForm("text"))
	if text == "" {
		p.Error = msgEmpty
		s.record(outcomeEmpty, 0)
		c.HTML(http.StatusOK, "index.html", p)
		return
	}
	text = truncateChars(text, TextMaxChars)
	chars := len([]rune(text))
	p.Text = text

	opts, checked := optionsFromForm(c.PostForm)
	p.Checked = checked
	p.TopN = parseTopN(c.PostForm("top_n"))
	cfg := bigram.NewConfig(opts)

	counts, err := s.safeCount(bigram.SplitLines(text), cfg)
	if err != nil {
		s.logger.Error("count bigrams failed", "err", err, "chars", chars)
		p.Error = msgFailed
		s.record(outcomeFailed, chars)
		c.HTML(http.StatusOK, "index.html", p)
		return
	}
	if len(counts) == 0 {
		p.Notice = msgNoPairs
		s.record(outcomeNoPairs, chars)
		c.HTML(http.StatusOK, "index.html", p)
		return
	}

	run := s.ids.NewRun("web", cfg, counts, p.TopN)
	p.Run = &run
	if err := s.store.SaveRun(c.Request.Context(), run); err != nil {
		s.logger.Warn("save run failed", "id", run.ID, "err", err)
	} else {
		p.Saved = true
	}
	s.record(outcomeCounted, chars)
	c.HTML(http.StatusOK, "index.html", p)
}

func (s *Server) handleRun(c *gin.Context) {
	run, err := s.store.GetRun(c.Request.Context(), c.Param("id"))
	if errors.Is(err, internalerr.ErrNotFound) {
		p := newPage()
		p.Error = msgNoRun
		c.HTML(http.StatusNotFound, "index.html", p)
		return
	}
	if err != nil {
		s.logger.Error("load run failed", "id", c.Param("id"), "err", err)
		c.String(http.StatusInternalServerError, "failed to load run")
		return
	}

	p := newPage()
	p.Run = &run
	p.Saved = true
	p.TopN = len(run.Pairs)
	p.Checked = checkedNames(run.Options)
	c.HTML(http.StatusOK, "index.html", p)
}

// safeCount turns a panic in counting into an error.
func (s *Server) safeCount(lines []string, cfg bigram.Config) (counts bigram.Counts, err error) {
	defer func() {
		if r := recover(); r != nil {
			counts, err = nil, fmt.Errorf("count panicked: %v", r)
		}
	}()
	return s.count(lines, cfg), nil
}

func (s *Server) record(outcome string, chars int) {
	if s.observer != nil {
		s.observer.RecordSubmission(outcome, chars)
	}
}

func checkedNames(opts bigram.Options) map[string]bool {
	checked := make(map[string]bool)
	for _, o := range formOptions {
		if *o.field(&opts) {
			checked[o.Name] = true
		}
	}
	return checked
}
