package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"leadengine/internal/apify"
	"leadengine/internal/config"
	"leadengine/internal/domain"
	"leadengine/internal/enrich"
	"leadengine/internal/events"
	"leadengine/internal/httpapi"
	"leadengine/internal/pipeline"
	"leadengine/internal/search"
	"leadengine/internal/secrets"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	dir := dataDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	userCfgPath, err := config.EnsureUserConfig(dir, filepath.Join("config", "config.yml"))
	if err != nil {
		return fmt.Errorf("config bootstrap failed: %w", err)
	}

	loadCfg := func() (config.Config, error) {
		c, err := config.Load(userCfgPath)
		if err == nil && c.App.DataDir == "" {
			c.App.DataDir = dir
		}
		return c, err
	}

	var cfgVal atomic.Value // stores config.Config
	cfg, err := loadCfg()
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	hub := events.NewHub()

	mux := httpapi.NewMux(httpapi.Deps{
		Hub:         hub,
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
		LookupToken: secrets.APIFYToken,
		RunSearch:   runSearch,
	})
	handler := httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.Recover,
		httpapi.AccessLog,
		httpapi.Cors,
	)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Printf("level=info msg=\"engine listening\" addr=http://%s cfg=%s", addr, userCfgPath)

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.Serve(ln)
}

// runSearch wires the real provider stack for a single request.
func runSearch(ctx context.Context, cfg config.Config, token string, criteria domain.SearchCriteria) ([]domain.Lead, error) {
	client := apify.New(apify.Config{
		Token:   token,
		BaseURL: cfg.Apify.BaseURL,
		Timeout: time.Duration(cfg.Apify.RunTimeoutSeconds) * time.Second,
	})

	ctrl := search.NewController(client, cfg.Apify.LeadActor)
	fetcher := enrich.NewFetcher(client, cfg.Apify.PostActor, time.Duration(cfg.Enrich.TimeoutSeconds)*time.Second)
	p := pipeline.New(ctrl, fetcher, pipeline.Options{EnrichmentCap: cfg.Enrich.Cap})

	return p.Run(ctx, criteria)
}
