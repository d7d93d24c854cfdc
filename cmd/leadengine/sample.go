package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"leadengine/internal/config"
	"leadengine/internal/sample"
	"leadengine/internal/secrets"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Run a fixed sample search and write sample-output.json",
	RunE:  runSample,
}

func runSample(cmd *cobra.Command, _ []string) error {
	dir := dataDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	userCfgPath, err := config.EnsureUserConfig(dir, filepath.Join("config", "config.yml"))
	if err != nil {
		return fmt.Errorf("config bootstrap failed: %w", err)
	}
	cfg, err := config.Load(userCfgPath)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", userCfgPath, err)
	}
	if cfg.App.DataDir == "" {
		cfg.App.DataDir = dir
	}

	token, err := secrets.APIFYToken(cfg.App.DataDir)
	if err != nil {
		return err
	}

	_, err = sample.Run(cmd.Context(), cfg, token)
	return err
}
