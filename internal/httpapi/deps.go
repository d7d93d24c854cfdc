package httpapi

import (
	"context"
	"sync/atomic"

	"leadengine/internal/config"
	"leadengine/internal/domain"
	"leadengine/internal/events"
)

type Deps struct {
	Hub *events.Hub

	// Atomic store of config.Config so PUT /config swaps are race-free.
	CfgVal *atomic.Value

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Credential resolution (inject for testability)
	LookupToken func(dataDir string) (string, error)

	// Pipeline entrypoint (inject for testability)
	RunSearch func(ctx context.Context, cfg config.Config, token string, criteria domain.SearchCriteria) ([]domain.Lead, error)
}
