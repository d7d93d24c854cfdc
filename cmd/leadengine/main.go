package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "leadengine",
	Short:         "B2B lead search, enrichment and outreach engine",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, sampleCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("level=error msg=\"fatal\" err=%v", err)
		os.Exit(1)
	}
}

// dataDir resolves the engine data dir: env if provided (the desktop shell
// can pass one), else the working directory.
func dataDir() string {
	if d := os.Getenv("LEADENGINE_DATA_DIR"); d != "" {
		return d
	}
	return "."
}
