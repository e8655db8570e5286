package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abianche/uoo-cooldown-manager/internal/config"
	"github.com/abianche/uoo-cooldown-manager/internal/httpapi"
	"github.com/abianche/uoo-cooldown-manager/internal/loader"
	"github.com/abianche/uoo-cooldown-manager/internal/store"
)

func main() {
	cfgPath := flag.String("config", "cooldownd.yaml", "config file path")
	filePath := flag.String("file", "", "cooldowns file to open instead of the startup source")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		log.Fatalf("log level: %v", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	st := store.New()
	st.Subscribe(func(snap store.Snapshot) {
		entries := 0
		if snap.Document != nil {
			entries = len(snap.Document.Entries)
		}
		slog.Debug("document changed", "session", snap.Session, "revision", snap.Revision, "entries", entries)
	})

	ld := loader.New(st)
	if *filePath != "" {
		// Unlike the startup source, a named file that fails to load is
		// reported through the store error.
		if _, err := ld.LoadFile(*filePath); err != nil {
			slog.Warn("could not open cooldowns file", "path", *filePath, "error", err)
		}
	} else {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.StartupTimeout)
			defer cancel()
			ld.LoadStartup(ctx, cfg.StartupSource)
		}()
	}

	router := httpapi.NewRouter(cfg, st, ld)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("cooldown editor listening", "addr", cfg.ListenAddr, "session", st.Session())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
}
