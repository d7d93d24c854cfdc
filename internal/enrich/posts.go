// Per-lead LinkedIn post enrichment. Failures here must never take down the
// rest of a request: the public methods coerce every error to an empty
// result, so one dead profile doesn't abort sibling leads.
package enrich

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// PostLimit is the max recent items requested per profile.
const PostLimit = 3

// postTextAliases are the item fields that may carry the post body,
// checked in order; the first non-empty one wins.
var postTextAliases = []string{"text", "content", "caption", "description"}

// Runner runs a provider actor and lists its cleaned output items.
type Runner interface {
	RunAndList(ctx context.Context, actorID string, input map[string]any, limit int) ([]json.RawMessage, error)
}

type Fetcher struct {
	runner  Runner
	actorID string
	timeout time.Duration
}

func NewFetcher(r Runner, actorID string, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Fetcher{runner: r, actorID: actorID, timeout: timeout}
}

// FetchPosts returns up to PostLimit recent post texts for the profile,
// most recent first. Any failure degrades to an empty slice.
func (f *Fetcher) FetchPosts(ctx context.Context, profileURL string) []string {
	items, err := f.fetchItems(ctx, profileURL)
	if err != nil {
		log.Printf("level=warn msg=\"post enrichment failed\" url=%s err=%v", profileURL, err)
		return []string{}
	}

	texts := []string{}
	for _, raw := range items {
		var item map[string]any
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}
		if t := extractText(item); t != "" {
			texts = append(texts, t)
		}
	}
	return texts
}

// FetchPostCount returns how many recent items the profile has (0 to
// PostLimit), counting items whether or not they carry usable text.
// Any failure degrades to zero.
func (f *Fetcher) FetchPostCount(ctx context.Context, profileURL string) int {
	items, err := f.fetchItems(ctx, profileURL)
	if err != nil {
		log.Printf("level=warn msg=\"post count failed\" url=%s err=%v", profileURL, err)
		return 0
	}
	return len(items)
}

func (f *Fetcher) fetchItems(ctx context.Context, profileURL string) ([]json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	input := map[string]any{
		"urls":           []string{profileURL},
		"limitPerSource": PostLimit,
	}
	return f.runner.RunAndList(ctx, f.actorID, input, PostLimit)
}

// extractText pulls the post body out of an item, trying each alias field.
// Items yielding no text are dropped by the caller, not kept as "".
func extractText(item map[string]any) string {
	for _, key := range postTextAliases {
		s, ok := item[key].(string)
		if !ok {
			continue
		}
		if t := strings.TrimSpace(stripMarkup(s)); t != "" {
			return t
		}
	}
	return ""
}

// stripMarkup flattens HTML-formatted post bodies to plain text. Plain
// strings pass through untouched.
func stripMarkup(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}
