package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/fundscope/internal/clients/mfapi"
)

// CatalogRefreshJob re-fetches the scheme catalog so the cached copy
// stays warm and listing requests never wait on the provider.
type CatalogRefreshJob struct {
	client  *mfapi.Client
	timeout time.Duration
	log     zerolog.Logger
}

// NewCatalogRefreshJob creates a new catalog refresh job.
func NewCatalogRefreshJob(client *mfapi.Client, log zerolog.Logger) *CatalogRefreshJob {
	return &CatalogRefreshJob{
		client:  client,
		timeout: 2 * time.Minute,
		log:     log.With().Str("job", "catalog_refresh").Logger(),
	}
}

// Run fetches the full catalog. The client stores the result in the
// cache as a side effect; an error here leaves the previous copy in
// place.
func (j *CatalogRefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	entries, err := j.client.List(ctx)
	if err != nil {
		j.log.Error().Err(err).Msg("Catalog refresh failed")
		return err
	}

	j.log.Info().Int("schemes", len(entries)).Msg("Catalog refreshed")
	return nil
}

// Name returns the job name for scheduling and logging.
func (j *CatalogRefreshJob) Name() string {
	return "catalog_refresh"
}
