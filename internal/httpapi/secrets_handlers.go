package httpapi

import (
	"encoding/json"
	"net/http"

	"leadengine/internal/secrets"
)

type SecretsHandler struct{}

type setTokenReq struct {
	Token string `json:"token"`
}

func (h SecretsHandler) SetAPIFYToken(w http.ResponseWriter, r *http.Request) {
	var req setTokenReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	if err := secrets.SetAPIFYToken(req.Token); err != nil {
		http.Error(w, "failed to store token: "+err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
