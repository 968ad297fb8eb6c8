package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"staffhub.dev/internal/auth"
	"staffhub.dev/internal/config"
	"staffhub.dev/internal/gql"
	"staffhub.dev/internal/httpapi"
	"staffhub.dev/internal/obs"
	"staffhub.dev/internal/store/mongodb"
)

var version = "0.3.1"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	obs.Init(version)

	// A database that cannot be reached at startup is fatal; everything
	// after this point only returns request-level errors.
	st, err := mongodb.Open(context.Background(), cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	tokens, err := auth.NewTokens(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("auth: %v", err)
	}

	schema := gql.NewSchema(gql.NewResolver(st, tokens))
	api := httpapi.New(st, tokens, schema, version)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting staffhub-api %s on %s (GraphQL at /graphql)", version, srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	_ = st.Close(ctx)
	log.Println("Stopped")
}
