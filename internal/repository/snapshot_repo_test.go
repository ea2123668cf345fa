package repository

import (
	"context"
	"testing"

	"github.com/weiwei-tsao/catalog-stats/pkg/model"
)

func TestSaveSnapshotRequiresRunID(t *testing.T) {
	repo := NewSnapshotRepository(nil)

	err := repo.SaveSnapshot(context.Background(), model.StatsSnapshot{ProductCount: 3})
	if err == nil {
		t.Fatal("expected error for snapshot without runId")
	}
}
