package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/weiwei-tsao/catalog-stats/pkg/model"
	"github.com/weiwei-tsao/catalog-stats/pkg/util"
)

// ProductSource abstracts how the catalog is fetched so the service can be tested without network calls.
type ProductSource interface {
	FetchProducts(ctx context.Context) ([]model.Product, error)
}

// SnapshotStore abstracts the persistence layer for computed statistics.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, snapshot model.StatsSnapshot) error
}

// Service fetches the catalog and reduces it to price statistics.
// Every call performs its own fetch; nothing is kept between calls.
type Service struct {
	source     ProductSource
	snapshots  SnapshotStore
	sourceName string
	logFn      func(string)
	now        func() time.Time
}

// NewService wires a Service. snapshots may be nil to disable persistence,
// and logFn may be nil to discard log lines.
func NewService(source ProductSource, snapshots SnapshotStore, sourceName string, logFn func(string)) *Service {
	return &Service{
		source:     source,
		snapshots:  snapshots,
		sourceName: sourceName,
		logFn:      logFn,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Compute fetches the catalog and aggregates it.
func (s *Service) Compute(ctx context.Context) (model.AggregateResult, error) {
	products, err := s.source.FetchProducts(ctx)
	if err != nil {
		return model.AggregateResult{}, err
	}
	return Aggregate(products)
}

// Categories fetches the catalog and lists its distinct categories.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	products, err := s.source.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}
	return DistinctCategories(products), nil
}

// Products fetches the catalog, narrowed to category when it is non-empty.
func (s *Service) Products(ctx context.Context, category string) ([]model.Product, error) {
	products, err := s.source.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return products, nil
	}
	return FilterByCategory(category, products), nil
}

// Run computes a snapshot of the catalog statistics and records it when a store is configured.
// A failed save is logged; the computed snapshot is still returned.
func (s *Service) Run(ctx context.Context) (model.StatsSnapshot, error) {
	products, err := s.source.FetchProducts(ctx)
	if err != nil {
		return model.StatsSnapshot{}, err
	}
	result, err := Aggregate(products)
	if err != nil {
		return model.StatsSnapshot{}, err
	}

	snapshot := model.StatsSnapshot{
		RunID:        uuid.NewString(),
		Source:       s.sourceName,
		ProductCount: len(products),
		DataHash:     util.HashProducts(products),
		Result:       result,
		CapturedAt:   s.now(),
	}
	s.log(fmt.Sprintf("run %s aggregated %d products across %d categories", snapshot.RunID, len(products), len(result.AveragePricesByCategories)))

	if s.snapshots != nil {
		if err := s.snapshots.SaveSnapshot(ctx, snapshot); err != nil {
			s.log(fmt.Sprintf("save snapshot %s error: %v", snapshot.RunID, err))
		}
	}
	return snapshot, nil
}

func (s *Service) log(msg string) {
	if s.logFn != nil {
		s.logFn(msg)
	}
}
