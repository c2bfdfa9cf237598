package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	configPath := flag.String("config", "", "JSON config file")
	addr := flag.String("addr", "", "listen address (overrides the config file)")
	flag.Parse()

	log.SetPrefix("[analysis] ")
	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx.Done())
	s := newServer(cfg, hub)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: s.routes(),
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	log.Printf("listening on %s", cfg.Addr)
	select {
	case <-sigCtx.Done():
		log.Printf("shutdown signal received: %v", sigCtx.Err())
	case err, ok := <-serverErrCh:
		if ok {
			log.Printf("server error: %v", err)
		}
	}

	// A running search would hold its request open past the shutdown deadline.
	s.stop()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			log.Printf("forced close failed: %v", closeErr)
		}
	}
}
