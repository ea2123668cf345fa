package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/weiwei-tsao/catalog-stats/internal/business/stats"
	"github.com/weiwei-tsao/catalog-stats/internal/platform/catalog"
	"github.com/weiwei-tsao/catalog-stats/internal/platform/config"
	firestoreclient "github.com/weiwei-tsao/catalog-stats/internal/platform/firestore"
	apirouter "github.com/weiwei-tsao/catalog-stats/internal/platform/http"
	"github.com/weiwei-tsao/catalog-stats/internal/repository"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	gin.SetMode(cfg.GinMode)

	var (
		store  stats.SnapshotStore
		reader apirouter.SnapshotReader
	)
	firestoreClient, credsSource, err := firestoreclient.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("firestore init: %v", err)
	}
	if firestoreClient != nil {
		defer firestoreClient.Close()
		log.Printf("connected to Firestore project %s using %s credentials", cfg.FirebaseProjectID, credsSource)
		snapshotRepo := repository.NewSnapshotRepository(firestoreClient)
		store = snapshotRepo
		reader = snapshotRepo
	} else {
		log.Println("FIREBASE_PROJECT_ID not set; snapshot history disabled")
	}

	client := catalog.New(nil, catalog.Config{URL: cfg.CatalogURL, Timeout: cfg.CatalogTimeout})
	statsService := stats.NewService(client, store, client.URL(), func(msg string) { log.Println(msg) })

	router := apirouter.NewRouter(statsService, reader, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on :%s (catalog %s)", cfg.Port, client.URL())

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
	log.Println("server exited")
}
