package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/weiwei-tsao/catalog-stats/internal/platform/config"
	firestoreclient "github.com/weiwei-tsao/catalog-stats/internal/platform/firestore"
	"github.com/weiwei-tsao/catalog-stats/internal/repository"
)

func main() {
	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}
	if !cfg.FirestoreEnabled() {
		log.Fatal("FIREBASE_PROJECT_ID environment variable not set")
	}

	limit := 10
	if v := os.Getenv("SNAPSHOT_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	ctx := context.Background()
	client, _, err := firestoreclient.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer client.Close()

	repo := repository.NewSnapshotRepository(client)
	snapshots, err := repo.ListSnapshots(ctx, limit)
	if err != nil {
		log.Fatalf("Failed to list snapshots: %v", err)
	}

	fmt.Printf("Found %d snapshots:\n\n", len(snapshots))
	for _, s := range snapshots {
		fmt.Printf("%s  %s  products=%d  avg=%.2f  hash=%s\n",
			s.CapturedAt.Format("2006-01-02 15:04:05"), s.RunID, s.ProductCount, s.Result.AveragePrice, s.DataHash)
	}

	if len(snapshots) > 0 {
		latest, err := repo.GetLatest(ctx)
		if err != nil {
			log.Printf("latest snapshot unavailable, using newest listed run: %v", err)
			latest = snapshots[0]
		}
		out, err := json.MarshalIndent(latest.Result, "", "  ")
		if err != nil {
			log.Fatalf("encode result: %v", err)
		}
		fmt.Println("\nLatest result:")
		fmt.Println(string(out))
	}
}
