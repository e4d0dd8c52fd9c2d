package handlers

import (
	"encoding/json"
	"net/http"

	"softphonix/internal/config"
	"softphonix/internal/relay"
	"softphonix/internal/twilio"
	"softphonix/pkg/logger"
)

type TokenHandler struct {
	Relay *relay.Relay
	Cfg   *config.Config
}

type TokenRequest struct {
	Identity string `json:"identity"`
}

type TokenResponse struct {
	Token    string `json:"token"`
	Identity string `json:"identity"`
}

// Token godoc
//
// @Summary      Mint a browser Device access token
// @Tags         Auth
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body TokenRequest true "Client identity"
// @Success      200 {object} TokenResponse
// @Failure      400 {string} string "identity required"
// @Failure      503 {string} string "vendor not configured"
// @Router       /api/token [post]
func (h *TokenHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Identity == "" {
		http.Error(w, "identity is required", http.StatusBadRequest)
		return
	}

	tw := h.Cfg.Twilio
	if tw.AccountSID == "" || tw.APIKey == "" || tw.APISecret == "" {
		http.Error(w, "telephony service not configured", http.StatusServiceUnavailable)
		return
	}

	token, err := twilio.AccessToken(twilio.TokenConfig{
		AccountSID:  tw.AccountSID,
		APIKey:      tw.APIKey,
		APISecret:   tw.APISecret,
		TwimlAppSID: tw.TwimlAppSID,
	}, req.Identity)
	if err != nil {
		logger.Errorf("❌ access token: %v", err)
		http.Error(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, TokenResponse{Token: token, Identity: req.Identity})
}

// RegisterIdentity remembers which browser identity inbound calls and
// messages should be attributed to.
func (h *TokenHandler) RegisterIdentity(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Identity == "" {
		http.Error(w, "identity is required", http.StatusBadRequest)
		return
	}

	h.Relay.SetIdentity(req.Identity)
	logger.Infof("📱 client identity registered: %s", req.Identity)
	writeJSON(w, map[string]any{"success": true, "message": "identity registered"})
}
