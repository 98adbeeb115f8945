// Package server exposes projections over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rgehrsitz/ilpgo/internal/calculation"
	"github.com/rgehrsitz/ilpgo/internal/compare"
	"github.com/rgehrsitz/ilpgo/internal/config"
	"github.com/rgehrsitz/ilpgo/internal/domain"
	"github.com/rgehrsitz/ilpgo/internal/output"
	"github.com/rgehrsitz/ilpgo/internal/transform"
	"github.com/valyala/fasthttp"
)

const (
	defaultRequestTimeout = 30 * time.Second
	maxRequestBodySize    = 1 << 20
)

var errLocalTables = errors.New("local table paths are not accepted; use s3:// URIs or omit for defaults")

// Server serves projections and comparisons.
type Server struct {
	Parser         *config.InputParser
	Tables         *config.TableLoader
	Engine         *calculation.ProjectionEngine
	Logger         calculation.Logger
	RequestTimeout time.Duration
}

// New creates a server. tables may be nil when no S3 access is configured.
func New(engine *calculation.ProjectionEngine, tables *config.TableLoader, logger calculation.Logger) *Server {
	if tables == nil {
		tables = config.NewTableLoader(nil)
	}
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	return &Server{
		Parser:         config.NewInputParser(),
		Tables:         tables,
		Engine:         engine,
		Logger:         logger,
		RequestTimeout: defaultRequestTimeout,
	}
}

// Handler routes requests.
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		path := string(ctx.Path())

		switch path {
		case "/healthz":
			s.route(ctx, fasthttp.MethodGet, s.handleHealth)
		case "/v1/projections":
			s.route(ctx, fasthttp.MethodPost, s.handleProjection)
		case "/v1/comparisons":
			s.route(ctx, fasthttp.MethodPost, s.handleComparison)
		default:
			writeProblem(ctx, Problem{
				Type:   "about:blank",
				Title:  "Not found",
				Status: fasthttp.StatusNotFound,
				Detail: fmt.Sprintf("no route for %s", path),
			})
		}

		s.Logger.Infof("%s %s %d %s", ctx.Method(), path, ctx.Response.StatusCode(), time.Since(start))
	}
}

func (s *Server) route(ctx *fasthttp.RequestCtx, method string, h func(*fasthttp.RequestCtx) error) {
	if string(ctx.Method()) != method {
		ctx.Response.Header.Set("Allow", method)
		writeProblem(ctx, Problem{
			Type:   "about:blank",
			Title:  "Method not allowed",
			Status: fasthttp.StatusMethodNotAllowed,
			Detail: fmt.Sprintf("%s requires %s", ctx.Path(), method),
		})
		return
	}
	if err := h(ctx); err != nil {
		p := problemFor(err)
		if p.Status >= fasthttp.StatusInternalServerError {
			s.Logger.Errorf("%s failed: %v", ctx.Path(), err)
		}
		writeProblem(ctx, p)
	}
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) error {
	ctx.SetContentType("application/json")
	ctx.SetBodyString(`{"status":"ok"}`)
	return nil
}

// handleProjection runs one scenario. ?format= selects console, csv, html or
// json (the default).
func (s *Server) handleProjection(ctx *fasthttp.RequestCtx) error {
	format := string(ctx.QueryArgs().Peek("format"))
	if format == "" {
		format = "json"
	}
	formatter := output.GetFormatterByName(format)
	if formatter == nil {
		return badRequest("Unknown format", fmt.Errorf("%q is not one of %s", format, strings.Join(output.AvailableFormatterNames(), ", ")))
	}

	cfg, err := s.parseScenario(ctx)
	if err != nil {
		return err
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), s.RequestTimeout)
	defer cancel()

	ref, err := s.Tables.LoadReferenceData(reqCtx, cfg)
	if err != nil {
		if errors.Is(err, calculation.ErrConfiguration) {
			return err
		}
		return badRequest("Tables could not be loaded", err)
	}

	engine := s.Engine
	if cfg.ProjectionYears > 0 {
		engine = engine.WithHorizon(cfg.ProjectionYears)
	}
	projection, err := engine.RunReference(cfg.Policy, ref)
	if err != nil {
		return err
	}
	projection.Name = cfg.Name

	var body []byte
	if formatter.Name() == "json" {
		body, err = json.Marshal(projection)
	} else {
		body, err = formatter.Format(projection)
	}
	if err != nil {
		return err
	}

	ctx.SetContentType(contentTypeFor(formatter))
	ctx.SetBody(body)
	return nil
}

// handleComparison runs the scenario plus one variant per template named in
// ?with=.
func (s *Server) handleComparison(ctx *fasthttp.RequestCtx) error {
	cfg, err := s.parseScenario(ctx)
	if err != nil {
		return err
	}
	templates := transform.ParseTemplateList(string(ctx.QueryArgs().Peek("with")))

	reqCtx, cancel := context.WithTimeout(context.Background(), s.RequestTimeout)
	defer cancel()

	ce := compare.NewCompareEngine(s.Engine, s.Tables)
	for _, name := range templates {
		if _, ok := ce.TemplateRegistry.Get(name); !ok {
			return badRequest("Unknown template", fmt.Errorf("template %s not found", name))
		}
	}

	set, err := ce.Compare(reqCtx, cfg, compare.CompareOptions{Templates: templates})
	if err != nil {
		return err
	}

	body, err := json.Marshal(set)
	if err != nil {
		return err
	}
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
	return nil
}

func (s *Server) parseScenario(ctx *fasthttp.RequestCtx) (*domain.Configuration, error) {
	body := ctx.PostBody()
	if len(body) == 0 {
		return nil, badRequest("Invalid scenario", errors.New("request body is empty"))
	}
	cfg, err := s.Parser.ParseJSON(body)
	if err != nil {
		return nil, badRequest("Invalid scenario", err)
	}
	for _, src := range []string{cfg.Tables.Base, cfg.Tables.CI, cfg.Tables.ECI} {
		if src != "" && !strings.HasPrefix(src, "s3://") {
			return nil, badRequest("Invalid scenario", errLocalTables)
		}
	}
	return cfg, nil
}

func contentTypeFor(f output.Formatter) string {
	switch f.Name() {
	case "csv":
		return "text/csv; charset=utf-8"
	case "html":
		return "text/html; charset=utf-8"
	case "console":
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &fasthttp.Server{
		Handler:            s.Handler(),
		Name:               "ilpgo",
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       s.RequestTimeout,
		MaxRequestBodySize: maxRequestBodySize,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Infof("listening on %s", addr)
		errCh <- srv.ListenAndServe(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.Logger.Infof("shutting down")
		return srv.Shutdown()
	}
}
