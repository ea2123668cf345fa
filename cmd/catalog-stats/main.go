package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/weiwei-tsao/catalog-stats/internal/business/stats"
	"github.com/weiwei-tsao/catalog-stats/internal/platform/catalog"
	"github.com/weiwei-tsao/catalog-stats/internal/platform/config"
	firestoreclient "github.com/weiwei-tsao/catalog-stats/internal/platform/firestore"
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

	client := catalog.New(nil, catalog.Config{URL: cfg.CatalogURL, Timeout: cfg.CatalogTimeout})

	var store stats.SnapshotStore
	firestoreClient, credsSource, err := firestoreclient.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("firestore init: %v", err)
	}
	if firestoreClient != nil {
		defer firestoreClient.Close()
		log.Printf("recording snapshots to Firestore project %s using %s credentials", cfg.FirebaseProjectID, credsSource)
		store = repository.NewSnapshotRepository(firestoreClient)
	}

	svc := stats.NewService(client, store, client.URL(), func(msg string) { log.Println(msg) })

	snapshot, err := svc.Run(ctx)
	if err != nil {
		log.Fatalf("catalog stats: %v", err)
	}

	out, err := json.MarshalIndent(snapshot.Result, "", "  ")
	if err != nil {
		log.Fatalf("encode result: %v", err)
	}
	fmt.Println(string(out))
}
