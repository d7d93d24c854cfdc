// Pipeline sequences the whole request: normalize criteria, tiered search,
// bounded per-lead enrichment, email generation, record assembly.
package pipeline

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"leadengine/internal/domain"
	"leadengine/internal/outreach"
)

const defaultConcurrency = 4

type Searcher interface {
	Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.RawLead, error)
}

// Enricher never returns an error: enrichment failures degrade to an empty
// result at the fetch boundary, so one bad profile can't abort siblings.
type Enricher interface {
	FetchPosts(ctx context.Context, profileURL string) []string
	FetchPostCount(ctx context.Context, profileURL string) int
}

type Options struct {
	// EnrichmentCap limits how many leads get enriched per run.
	// 0 means unlimited (the request path); the batch path sets 5.
	EnrichmentCap int

	// StrictProfile requires the profile URL to look like a real LinkedIn
	// URL, not just be non-empty.
	StrictProfile bool

	// KeepOnlyEligible drops leads without an eligible profile from the
	// output entirely (batch mode) instead of passing them through
	// unenriched.
	KeepOnlyEligible bool

	// CountMode uses the count-based email variant instead of quoting
	// post text.
	CountMode bool

	// Concurrency bounds the enrichment fan-out. Defaults to 4.
	Concurrency int
}

type Pipeline struct {
	searcher Searcher
	enricher Enricher
	opts     Options
}

func New(s Searcher, e Enricher, opts Options) *Pipeline {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	return &Pipeline{searcher: s, enricher: e, opts: opts}
}

// Run executes the full pipeline. Output order always matches the order
// leads came back from the search tier, regardless of enrichment completion
// order. Search errors and context cancellation propagate; enrichment
// errors never do.
func (p *Pipeline) Run(ctx context.Context, criteria domain.SearchCriteria) ([]domain.Lead, error) {
	criteria = criteria.Normalize()

	raws, err := p.searcher.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}

	if p.opts.KeepOnlyEligible {
		kept := make([]domain.RawLead, 0, len(raws))
		for _, r := range raws {
			if p.profileEligible(r.LinkedinURL) {
				kept = append(kept, r)
			}
			if p.opts.EnrichmentCap > 0 && len(kept) >= p.opts.EnrichmentCap {
				break
			}
		}
		raws = kept
	}

	// Eligibility and the cap are decided up front in input order so the
	// concurrent fan-out can't change which leads get enriched.
	eligible := make([]bool, len(raws))
	enrichable := 0
	for i, r := range raws {
		if !p.profileEligible(r.LinkedinURL) {
			continue
		}
		if p.opts.EnrichmentCap > 0 && enrichable >= p.opts.EnrichmentCap {
			break
		}
		eligible[i] = true
		enrichable++
	}

	posts := make([][]string, len(raws))
	counts := make([]int, len(raws))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.Concurrency)
	for i := range raws {
		if !eligible[i] {
			continue
		}
		i := i
		g.Go(func() error {
			url := raws[i].LinkedinURL
			if p.opts.CountMode {
				counts[i] = p.enricher.FetchPostCount(gctx, url)
			} else {
				posts[i] = p.enricher.FetchPosts(gctx, url)
			}
			return nil
		})
	}
	_ = g.Wait() // goroutines only write their own slot; none return errors
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	leads := make([]domain.Lead, len(raws))
	for i, r := range raws {
		lead := domain.NewLead(r)
		if posts[i] != nil {
			lead.Posts = posts[i]
		}
		if p.opts.CountMode {
			lead.GeneratedEmail = outreach.GenerateWithCount(r.FullName, r.OrgName, r.Position, counts[i])
		} else {
			lead.GeneratedEmail = outreach.Generate(r.FullName, r.OrgName, r.Position, lead.Posts)
		}
		leads[i] = lead
	}
	return leads, nil
}

func (p *Pipeline) profileEligible(profileURL string) bool {
	if strings.TrimSpace(profileURL) == "" {
		return false
	}
	if p.opts.StrictProfile {
		return strings.Contains(profileURL, "linkedin.com")
	}
	return true
}
