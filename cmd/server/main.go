package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mapsnap/internal/env"
	"mapsnap/internal/history"
	"mapsnap/internal/observability"
	"mapsnap/pkg/fetch"
	"mapsnap/pkg/graceful"
	"mapsnap/pkg/kafkaclient"
	"mapsnap/pkg/staticmap"
)

func main() {
	env.Load()
	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	collector, err := observability.NewCollector(nil)
	if err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}

	s := &server{
		provider:  staticmap.NewProvider(env.MustGet("MAPS_API_KEY")),
		fetcher:   fetch.New(5, 5, 30*time.Second),
		collector: collector,
	}

	// the snapshot queue and history are optional surfaces; the URL and image
	// endpoints work without them
	if broker := env.Get("KAFKA_BROKER", ""); broker != "" {
		topic := env.MustGet("KAFKA_TOPIC")
		s.publisher = kafkaclient.NewPublisher(broker, topic)
		defer s.publisher.Close()
		log.Printf("Publishing snapshot requests to %s on %s", topic, broker)
	}
	if dsn := env.Get("POSTGRES_DSN", ""); dsn != "" {
		store, err := history.New(ctx, dsn)
		if err != nil {
			log.Fatalf("Failed to open snapshot history: %v", err)
		}
		defer store.Close()
		s.history = store
	}

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:    ":" + env.Get("PORT", "8080"),
		Handler: s.routes(),
	}

	go func() {
		log.Printf("mapsnap server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Server stopped.")
}
