package httpapi

import "net/http"

func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Lead search pipeline
	lh := LeadsHandler{
		Hub:         d.Hub,
		CfgVal:      d.CfgVal,
		LookupToken: d.LookupToken,
		RunSearch:   d.RunSearch,
	}
	mux.HandleFunc("/run-search", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: lh.Run,
	}))

	// Health
	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// Secrets
	sh := SecretsHandler{}
	mux.HandleFunc("/api/secrets/apify", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.SetAPIFYToken,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}
