package ingest

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/optcg-tools/catalog/backend/internal/metrics"
	"github.com/optcg-tools/catalog/backend/internal/optcg"
)

// setFetchInterval spaces per-set card fetches as a courtesy to the upstream
// API. Not a correctness requirement.
const setFetchInterval = 300 * time.Millisecond

// Runner drives a full ingestion run: sets first, then every set's cards.
// Errors abort the run; this is a fire-once batch tool with no retry or
// checkpointing.
type Runner struct {
	client  *optcg.Client
	store   *Store
	limiter *rate.Limiter
}

func NewRunner(client *optcg.Client, store *Store) *Runner {
	return &Runner{
		client:  client,
		store:   store,
		limiter: rate.NewLimiter(rate.Every(setFetchInterval), 1),
	}
}

// SyncSets fetches the full set list and saves it. Existing sets are left
// untouched.
func (r *Runner) SyncSets(ctx context.Context) (int, error) {
	sets, err := r.client.FetchSets(ctx)
	if err != nil {
		return 0, err
	}

	saved, err := r.store.SaveSets(sets)
	if err != nil {
		return 0, err
	}

	metrics.SetsIngestedTotal.Add(float64(saved))
	log.Printf("Saved %d sets (%d fetched)", saved, len(sets))
	return saved, nil
}

// SyncCards fetches and saves cards for every set currently known, pausing
// between sets.
func (r *Runner) SyncCards(ctx context.Context) error {
	setIDs, err := r.store.ListSetIDs()
	if err != nil {
		return err
	}

	for _, setID := range setIDs {
		if err := r.limiter.Wait(ctx); err != nil {
			return err
		}

		start := time.Now()
		cards, err := r.client.FetchCardsForSet(ctx, setID)
		if err != nil {
			return err
		}

		saved, err := r.store.SaveCards(cards, setID)
		if err != nil {
			return err
		}

		metrics.CardsIngestedTotal.Add(float64(saved))
		metrics.IngestBatchDuration.Observe(time.Since(start).Seconds())
		log.Printf("Fetched cards for set %s (%d cards)", setID, saved)
	}

	return nil
}

// Run executes a full ingestion run: set list, then every set's cards.
func (r *Runner) Run(ctx context.Context) error {
	runID := uuid.New().String()
	start := time.Now()
	log.Printf("Ingestion run %s started", runID)

	if _, err := r.SyncSets(ctx); err != nil {
		return err
	}
	if err := r.SyncCards(ctx); err != nil {
		return err
	}

	metrics.IngestRunDuration.Observe(time.Since(start).Seconds())
	log.Printf("Ingestion run %s finished in %v", runID, time.Since(start).Round(time.Millisecond))
	return nil
}
