// Minimal Apify v2 REST connector: run an actor synchronously, then list
// cleaned items from its default dataset.
package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.apify.com"

// waitForFinishSeconds is the max server-side wait on a run call. The API
// caps this at 300; longer runs come back RUNNING and are treated as errors.
const waitForFinishSeconds = 300

type Config struct {
	Token   string
	BaseURL string        // DefaultBaseURL when empty
	Timeout time.Duration // per-call HTTP timeout
}

type Client struct {
	cfg Config
	hc  *http.Client
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Client{
		cfg: cfg,
		hc:  &http.Client{Timeout: timeout},
	}
}

// Run is the subset of the actor-run resource we care about.
type Run struct {
	ID               string `json:"id"`
	Status           string `json:"status"`
	DefaultDatasetID string `json:"defaultDatasetId"`
}

// CallActor starts a run and waits for it to finish.
// actorID is "username/actor-name"; the API path wants "username~actor-name".
func (c *Client) CallActor(ctx context.Context, actorID string, input any) (Run, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return Run{}, fmt.Errorf("apify encode input: %w", err)
	}

	u := fmt.Sprintf("%s/v2/acts/%s/runs?waitForFinish=%d",
		c.cfg.BaseURL, url.PathEscape(strings.ReplaceAll(actorID, "/", "~")), waitForFinishSeconds)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return Run{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return Run{}, fmt.Errorf("apify run actor %s: %w", actorID, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return Run{}, fmt.Errorf("apify run actor %s: status %d: %s", actorID, res.StatusCode, readErrBody(res.Body))
	}

	var envelope struct {
		Data Run `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return Run{}, fmt.Errorf("apify decode run %s: %w", actorID, err)
	}
	if envelope.Data.Status != "SUCCEEDED" {
		return Run{}, fmt.Errorf("apify run %s finished with status %s", actorID, envelope.Data.Status)
	}
	return envelope.Data, nil
}

// DatasetItems lists up to limit cleaned items from a dataset.
func (c *Client) DatasetItems(ctx context.Context, datasetID string, limit int) ([]json.RawMessage, error) {
	u := fmt.Sprintf("%s/v2/datasets/%s/items?clean=true&format=json&limit=%s",
		c.cfg.BaseURL, url.PathEscape(datasetID), strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("apify list dataset %s: %w", datasetID, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("apify list dataset %s: status %d: %s", datasetID, res.StatusCode, readErrBody(res.Body))
	}

	var items []json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("apify decode dataset %s items: %w", datasetID, err)
	}
	return items, nil
}

// RunAndList is the "run actor with input, then list up to limit cleaned
// items" call shape both upstream collaborators share.
func (c *Client) RunAndList(ctx context.Context, actorID string, input map[string]any, limit int) ([]json.RawMessage, error) {
	run, err := c.CallActor(ctx, actorID, input)
	if err != nil {
		return nil, err
	}
	return c.DatasetItems(ctx, run.DefaultDatasetID, limit)
}

func readErrBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 512))
	return strings.TrimSpace(string(b))
}
