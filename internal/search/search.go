package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"leadengine/internal/domain"
)

// Runner runs a provider actor and lists its cleaned output items.
// apify.Client satisfies it; tests inject fakes.
type Runner interface {
	RunAndList(ctx context.Context, actorID string, input map[string]any, limit int) ([]json.RawMessage, error)
}

// Controller performs the tiered lead search: tiers are tried in decreasing
// specificity and the first non-empty result set wins. Broader tiers run
// only when the prior tier returned exactly zero items, never on provider
// errors (those abort the whole search) and never on partial results.
type Controller struct {
	runner  Runner
	actorID string
}

func NewController(r Runner, actorID string) *Controller {
	return &Controller{runner: r, actorID: actorID}
}

// Search returns up to criteria.MaxResults leads, or nil when every tier
// came back empty. Criteria must already be normalized.
func (s *Controller) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.RawLead, error) {
	for _, tier := range Tiers() {
		input := tier.Build(criteria)

		items, err := s.runner.RunAndList(ctx, s.actorID, input, criteria.MaxResults)
		if err != nil {
			return nil, fmt.Errorf("lead search (%s tier): %w", tier.Name, err)
		}
		if len(items) == 0 {
			log.Printf("level=info msg=\"search tier empty\" tier=%s", tier.Name)
			continue
		}
		log.Printf("level=info msg=\"search tier hit\" tier=%s items=%d", tier.Name, len(items))
		return decodeLeads(items), nil
	}
	return nil, nil
}

// decodeLeads tolerantly decodes dataset items; an item that is not an
// object is skipped rather than failing the run.
func decodeLeads(items []json.RawMessage) []domain.RawLead {
	leads := make([]domain.RawLead, 0, len(items))
	for _, raw := range items {
		var lead domain.RawLead
		if err := json.Unmarshal(raw, &lead); err != nil {
			log.Printf("level=warn msg=\"skipping undecodable lead item\" err=%v", err)
			continue
		}
		leads = append(leads, lead)
	}
	return leads
}
