package main

import (
	"context"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/russross/blackfriday/v2"
	"golang.org/x/sync/errgroup"

	"github.com/KnuggetDeveloper/Carousel-Test/internal/ai"
	"github.com/KnuggetDeveloper/Carousel-Test/internal/carousel"
	"github.com/KnuggetDeveloper/Carousel-Test/internal/config"
	"github.com/KnuggetDeveloper/Carousel-Test/internal/i18n"
	"github.com/KnuggetDeveloper/Carousel-Test/internal/logger"
	"github.com/KnuggetDeveloper/Carousel-Test/internal/prompt"
	"github.com/KnuggetDeveloper/Carousel-Test/internal/usage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logg, err := logger.New(cfg.Application.Mode)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Directories
	os.MkdirAll(cfg.Application.Storage.Carousel, 0755)
	os.MkdirAll(cfg.Application.Storage.Prompts, 0755)

	i18n.Init("resources")

	client, err := ai.New(ctx, cfg, logg)
	if err != nil {
		logg.Fatal("ai client", "error", err)
	}

	library, err := prompt.NewLibrary(cfg.Application.Storage.Prompts, logg)
	if err != nil {
		logg.Fatal("prompt library", "error", err)
	}

	tracker := usage.NewTracker()
	gen := carousel.New(cfg, client, tracker, logg)

	// Templates
	funcMap := template.FuncMap{
		"T": i18n.T,
		"markdown": func(s string) template.HTML {
			return template.HTML(blackfriday.Run([]byte(s)))
		},
	}
	tmpl := template.Must(template.New("").Funcs(funcMap).ParseGlob("ui/templates/*.html"))

	srv := &server{
		cfg:     cfg,
		log:     logg,
		gen:     gen,
		prompts: library,
		tracker: tracker,
		tmpl:    tmpl,
	}

	// Routes
	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("ui/static"))))
	mux.Handle(carousel.URLPrefix, http.StripPrefix(carousel.URLPrefix, http.FileServer(http.Dir(cfg.Application.Storage.Carousel))))

	mux.HandleFunc("/", srv.handleIndex)
	mux.HandleFunc("/preview", srv.handlePreview)
	mux.HandleFunc("/healthz", srv.handleHealthz)
	mux.HandleFunc("/api/prompts", srv.handlePrompts)
	mux.HandleFunc("/api/usage", srv.handleUsage)
	mux.HandleFunc("/api/generate-content", srv.handleGenerateContent)
	mux.HandleFunc("/api/generate-first-image", srv.handleGenerateFirstImage)
	mux.HandleFunc("/api/generate-remaining-images", srv.handleGenerateRemainingImages)

	httpSrv := &http.Server{
		Addr:    cfg.Application.Addr(),
		Handler: mux,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return library.Watch(gctx)
	})
	g.Go(func() error {
		logg.Info("carousel test bench starting",
			"addr", cfg.Application.Addr(),
			"provider", cfg.AI.ActiveProvider,
			"mode", cfg.Application.Mode)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logg.Fatal("server stopped", "error", err)
	}
	logg.Info("server stopped")
}
