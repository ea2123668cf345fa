package firestore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/weiwei-tsao/catalog-stats/internal/platform/config"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Open connects to Firestore when snapshot persistence is configured.
// It returns a nil client and no error when FIREBASE_PROJECT_ID is unset, so callers
// can run without persistence. The returned string names the credential source used.
func Open(ctx context.Context, cfg config.Config) (*firestore.Client, string, error) {
	if !cfg.FirestoreEnabled() {
		return nil, "", nil
	}
	creds, source, err := cfg.FirebaseCredentialsJSON()
	if err != nil {
		return nil, "", err
	}

	client, err := firestore.NewClient(ctx, cfg.FirebaseProjectID, option.WithCredentialsJSON(creds))
	if err != nil {
		return nil, "", fmt.Errorf("init firestore client: %w", err)
	}
	if err := ping(ctx, client); err != nil {
		client.Close()
		return nil, "", fmt.Errorf("firestore ping: %w", err)
	}
	return client, source, nil
}

// ping performs a lightweight check by attempting to iterate collections.
func ping(ctx context.Context, client *firestore.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	iter := client.Collections(ctx)
	_, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil
	}
	return err
}
