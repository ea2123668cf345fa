package repository

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/weiwei-tsao/catalog-stats/pkg/model"
	"google.golang.org/api/iterator"
)

const (
	snapshotsCollection = "catalog_snapshots"
	systemCollection    = "system"
	latestDocID         = "catalog_stats"
)

// SnapshotRepository persists computed catalog statistics.
type SnapshotRepository struct {
	client *firestore.Client
}

func NewSnapshotRepository(client *firestore.Client) *SnapshotRepository {
	return &SnapshotRepository{client: client}
}

// SaveSnapshot stores the snapshot under its run ID and replaces the system/catalog_stats
// singleton in the same batch.
func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, snapshot model.StatsSnapshot) error {
	if snapshot.RunID == "" {
		return errors.New("runId is required")
	}
	batch := r.client.Batch()
	batch.Set(r.client.Collection(snapshotsCollection).Doc(snapshot.RunID), snapshot)
	batch.Set(r.client.Collection(systemCollection).Doc(latestDocID), snapshot)
	if _, err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("save snapshot %s: %w", snapshot.RunID, err)
	}
	return nil
}

// GetLatest returns the most recently saved snapshot.
func (r *SnapshotRepository) GetLatest(ctx context.Context) (model.StatsSnapshot, error) {
	snap, err := r.client.Collection(systemCollection).Doc(latestDocID).Get(ctx)
	if err != nil {
		return model.StatsSnapshot{}, fmt.Errorf("get latest snapshot: %w", err)
	}
	var snapshot model.StatsSnapshot
	if err := snap.DataTo(&snapshot); err != nil {
		return model.StatsSnapshot{}, fmt.Errorf("decode latest snapshot: %w", err)
	}
	return snapshot, nil
}

// ListSnapshots returns up to limit snapshots, newest first.
func (r *SnapshotRepository) ListSnapshots(ctx context.Context, limit int) ([]model.StatsSnapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	iter := r.client.Collection(snapshotsCollection).
		OrderBy("capturedAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var snapshots []model.StatsSnapshot
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate snapshots: %w", err)
		}
		var s model.StatsSnapshot
		if err := doc.DataTo(&s); err != nil {
			return nil, fmt.Errorf("decode snapshot %s: %w", doc.Ref.ID, err)
		}
		if s.RunID == "" {
			s.RunID = doc.Ref.ID
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, nil
}
