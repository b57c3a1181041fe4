package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eaterno-pos/backoffice/internal/config"
	"github.com/eaterno-pos/backoffice/internal/localstate"
	"github.com/eaterno-pos/backoffice/internal/notify"
	"github.com/eaterno-pos/backoffice/internal/router"
	"github.com/eaterno-pos/backoffice/internal/upstream"
	"github.com/eaterno-pos/backoffice/internal/ws"
)

func main() {
	cfg := config.Load()

	store, err := localstate.Open(cfg.StateDBPath)
	if err != nil {
		log.Fatalf("open state store: %v", err)
	}
	defer store.Close()

	up := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)

	hub := ws.NewHub()
	go hub.Run()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifier := notify.New(up, store, hub, cfg.NotifyInterval)
	go notifier.Run(ctx)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router.New(cfg, up, store, hub, notifier),
	}

	go func() {
		log.Printf("Starting server on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("ERROR: shutdown: %v", err)
	}
}
