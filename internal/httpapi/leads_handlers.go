package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"leadengine/internal/config"
	"leadengine/internal/domain"
	"leadengine/internal/events"
)

const maxBodyBytes = 1 << 20

type LeadsHandler struct {
	Hub    *events.Hub
	CfgVal *atomic.Value // stores config.Config

	LookupToken func(dataDir string) (string, error)
	RunSearch   func(ctx context.Context, cfg config.Config, token string, criteria domain.SearchCriteria) ([]domain.Lead, error)
}

type leadsResponse struct {
	Leads []domain.Lead `json:"leads"`
}

func (h LeadsHandler) Run(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)

	token, err := h.LookupToken(cfg.App.DataDir)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Missing APIFY_API_TOKEN")
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}

	criteria, err := parseCriteria(raw)
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, APIError{Error: err.Error(), RawBody: string(raw)})
		return
	}

	leads, err := h.RunSearch(r.Context(), cfg, token, criteria)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if leads == nil {
		leads = []domain.Lead{}
	}

	if h.Hub != nil {
		h.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), "search_completed", 1,
			map[string]any{"leads": len(leads)}))
	}

	WriteJSON(w, http.StatusOK, leadsResponse{Leads: leads})
}

// parseCriteria decodes the request body. Some clients send the criteria as
// a quoted JSON string with escaped inner quotes (sometimes wrapped in
// single quotes); a second unwrap-and-unescape pass recovers those before
// giving up.
func parseCriteria(raw []byte) (domain.SearchCriteria, error) {
	var criteria domain.SearchCriteria
	if err := json.Unmarshal(raw, &criteria); err == nil {
		return criteria, nil
	}

	s := strings.TrimSpace(string(raw))
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, `\"`, `"`)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' && strings.HasPrefix(strings.TrimSpace(s[1:]), "{") {
		s = s[1 : len(s)-1]
	}

	if err := json.Unmarshal([]byte(s), &criteria); err != nil {
		return domain.SearchCriteria{}, fmt.Errorf("invalid JSON body: %w", err)
	}
	return criteria, nil
}
