// Standalone batch run: fixed criteria, a hard enrichment ceiling, and a
// durable JSON artifact instead of an HTTP response.
package sample

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"leadengine/internal/apify"
	"leadengine/internal/config"
	"leadengine/internal/domain"
	"leadengine/internal/enrich"
	"leadengine/internal/pipeline"
	"leadengine/internal/search"
)

// EnrichmentCap is the batch path's fixed ceiling, independent of
// criteria.MaxResults.
const EnrichmentCap = 5

const artifactName = "sample-output.json"

// Criteria is the fixed sample search.
func Criteria() domain.SearchCriteria {
	return domain.SearchCriteria{
		Industry:     "Food",
		Location:     "United Kingdom",
		TargetTitles: []string{"Chief Marketing Officer"},
		EmailStatus:  domain.EmailStatusAll,
		MaxResults:   5,
	}
}

// Run executes the sample pipeline against the real provider and writes the
// artifact into the data dir. Returns the artifact path.
func Run(ctx context.Context, cfg config.Config, token string) (string, error) {
	client := apify.New(apify.Config{
		Token:   token,
		BaseURL: cfg.Apify.BaseURL,
		Timeout: time.Duration(cfg.Apify.RunTimeoutSeconds) * time.Second,
	})

	ctrl := search.NewController(client, cfg.Apify.LeadActor)
	fetcher := enrich.NewFetcher(client, cfg.Apify.PostActor, time.Duration(cfg.Enrich.TimeoutSeconds)*time.Second)
	p := pipeline.New(ctrl, fetcher, pipeline.Options{
		EnrichmentCap:    EnrichmentCap,
		StrictProfile:    true,
		KeepOnlyEligible: true,
		CountMode:        true,
	})

	leads, err := p.Run(ctx, Criteria())
	if err != nil {
		return "", err
	}

	outPath := filepath.Join(cfg.App.DataDir, artifactName)
	if err := writeArtifact(outPath, leads); err != nil {
		return "", fmt.Errorf("write sample artifact: %w", err)
	}

	log.Printf("level=info msg=\"sample run complete\" total_leads=%d path=%s", len(leads), outPath)
	return outPath, nil
}

// writeArtifact serializes the leads under a file lock so a concurrently
// running engine can't interleave writes to the same artifact.
func writeArtifact(path string, leads []domain.Lead) error {
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	if leads == nil {
		leads = []domain.Lead{}
	}
	b, err := json.MarshalIndent(leads, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
