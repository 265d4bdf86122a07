//
// Articles
// ========
// A JSON API over a blog: articles, categories and their authors.
//
// Also check the generated docs from passing the -routes flag,
// to run yourself do: `go run . -routes`
//
// Boot the server:
// ----------------
// $ DB_SEED=1 go run .
//
// Client requests:
// ----------------
// $ curl http://localhost:3333/articles/featured
// [{"id":1,"title":"Free coding courses worth your time",...}]
//
// $ curl http://localhost:3333/articles/1
// {"id":1,...,"category":{"name":"technology",...},"author":{"id":"seed-editor",...}}
//
// $ curl -X POST http://localhost:3333/articles/1/views
//
// $ curl 'http://localhost:3333/articles?search=essay&category=3'
// [{"id":2,"title":"How to write a scholarship essay",...}]
//
// $ curl http://localhost:3333/articles/42
// {"message":"Article not found"}
//
// $ curl http://localhost:9999/metrics
//
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/docgen"
	"github.com/go-chi/render"
	"go.opentelemetry.io/otel/metric/global"
	"go.uber.org/zap"

	"github.com/SergeyParamoshkin/articles/internal/article"
	"github.com/SergeyParamoshkin/articles/internal/category"
	"github.com/SergeyParamoshkin/articles/internal/config"
	"github.com/SergeyParamoshkin/articles/internal/cors"
	"github.com/SergeyParamoshkin/articles/internal/errresponse"
	"github.com/SergeyParamoshkin/articles/internal/logctx"
	"github.com/SergeyParamoshkin/articles/internal/storage"
	"github.com/SergeyParamoshkin/articles/internal/telemetry"
	"github.com/SergeyParamoshkin/articles/internal/user"
)

type App struct {
	sugarLogger *zap.SugaredLogger
	config      config.Config
	store       *storage.Store
	metrics     *telemetry.Metrics
}

func init() {
	render.Respond = errresponse.Respond
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var (
		routes   = flag.Bool("routes", false, "Generate router documentation")
		addr     = flag.String("addr", cfg.Addr, "application port")
		diagPort = flag.String("diag_addr", cfg.DiagAddr, "diag port")
	)

	flag.Parse()

	cfg.Addr, cfg.DiagAddr = *addr, *diagPort

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck // flushes buffer, if any
	sugar := logger.Sugar()

	if *routes {
		// Docs only need the route tree, not a database.
		a := &App{sugarLogger: sugar, config: cfg}
		fmt.Println(docgen.MarkdownRoutesDoc(a.Router(), docgen.MarkdownOpts{
			ProjectPath: "github.com/SergeyParamoshkin/articles",
			Intro:       "Routes of the articles API.",
		}))

		return
	}

	if err := run(cfg, sugar); err != nil {
		sugar.Errorw("service stopped", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.Development() {
		return zap.NewDevelopment()
	}

	return zap.NewProduction()
}

func run(cfg config.Config, sugar *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	exporter, err := telemetry.NewPrometheusExporter()
	if err != nil {
		return err
	}

	db, err := storage.Open(ctx, cfg.OpenConfig(), sugar)
	if err != nil {
		return err
	}

	a := &App{
		sugarLogger: sugar,
		config:      cfg,
		store:       storage.New(db, cfg.StorageOptions(), sugar),
		metrics:     telemetry.New(global.Meter(config.ServiceName)),
	}
	defer a.store.Close()

	if cfg.Seed {
		if err := storage.Seed(ctx, a.store); err != nil {
			return err
		}
		sugar.Infow("seed data applied")
	}

	diagRouter := chi.NewRouter()
	diagRouter.Get("/metrics", exporter.ServeHTTP)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      a.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	diag := &http.Server{
		Addr:              cfg.DiagAddr,
		Handler:           diagRouter,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 2)
	for _, s := range []*http.Server{srv, diag} {
		go func() {
			sugar.Infow("listening", "addr", s.Addr)
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- fmt.Errorf("serve %s: %w", s.Addr, err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		sugar.Infow("shutting down")
	case err = <-errc:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	for _, s := range []*http.Server{srv, diag} {
		if serr := s.Shutdown(shutdownCtx); serr != nil {
			sugar.Errorw("shutdown", "addr", s.Addr, zap.Error(serr))
		}
	}

	return err
}

// Router is the public API. NotFound and MethodNotAllowed are set before
// the resources are mounted so the subrouters inherit them.
func (a *App) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logctx.Middleware(a.sugarLogger))
	r.Use(middleware.Logger)
	r.Use(errresponse.Recoverer)
	if a.metrics != nil {
		r.Use(a.metrics.Middleware)
	}
	r.Use(cors.Handler)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.NotFound(errresponse.NotFound)
	r.MethodNotAllowed(errresponse.MethodNotAllowed)

	r.Get("/ping", a.Ping)

	articles := article.NewHandler(a.store)
	r.Mount("/articles", articles.Routes())
	r.Get("/search", articles.Search) // GET /search?q=

	r.Mount("/categories", category.NewHandler(a.store).Routes())
	r.Mount("/users", user.NewHandler(a.store).Routes())

	return r
}

// Ping reports whether the database answers.
func (a *App) Ping(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := a.store.DB().DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		logctx.FromContext(r.Context()).Errorw("ping", zap.Error(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, render.M{"status": "unavailable"})

		return
	}

	render.JSON(w, r, render.M{"status": "ok"})
}
