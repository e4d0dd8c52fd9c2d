package handlers

import (
	"encoding/json"
	"net/http"

	"softphonix/internal/config"
	"softphonix/internal/relay"
	"softphonix/internal/twilio"
	"softphonix/pkg/logger"
)

type CallsHandler struct {
	Relay  *relay.Relay
	Twilio twilio.Client
	Cfg    *config.Config
}

type PlaceCallRequest struct {
	To       string `json:"to"`
	From     string `json:"from"`
	Identity string `json:"identity"`
}

type HangupRequest struct {
	CallSid string `json:"callSid"`
}

type TransferRequest struct {
	CallSid string `json:"callSid"`
	To      string `json:"to"`
}

// PlaceCall godoc
//
// @Summary      Place an outbound call
// @Description  Creates the call via the vendor REST API and starts tracking it
// @Tags         Calls
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        call body PlaceCallRequest true "Call parameters"
// @Success      200 {object} map[string]any
// @Failure      400 {string} string "missing parameters"
// @Failure      503 {string} string "vendor not configured"
// @Router       /api/call [post]
func (h *CallsHandler) PlaceCall(w http.ResponseWriter, r *http.Request) {
	var req PlaceCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	if req.To == "" || req.From == "" || req.Identity == "" {
		http.Error(w, "to, from and identity are required", http.StatusBadRequest)
		return
	}

	if h.Twilio == nil {
		http.Error(w, "telephony service not configured", http.StatusServiceUnavailable)
		return
	}

	call, err := h.Twilio.CreateCall(
		req.To,
		req.From,
		h.Cfg.Twilio.PublicURL+"/twiml/voice",
		h.Cfg.Twilio.PublicURL+"/api/call-status",
	)
	if err != nil {
		// user-initiated action: the UI needs to see this one
		logger.Errorf("❌ place call: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.Relay.RecordOutboundCallStart(call.SID, req.From, req.To, req.Identity)

	writeJSON(w, map[string]any{"success": true, "callSid": call.SID})
}

func (h *CallsHandler) Hangup(w http.ResponseWriter, r *http.Request) {
	var req HangupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CallSid == "" {
		http.Error(w, "callSid is required", http.StatusBadRequest)
		return
	}

	if h.Twilio == nil {
		http.Error(w, "telephony service not configured", http.StatusServiceUnavailable)
		return
	}

	if err := h.Twilio.CompleteCall(req.CallSid); err != nil {
		logger.Errorf("❌ hangup %s: %v", req.CallSid, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.Relay.EndCall(req.CallSid)
	writeJSON(w, map[string]any{"success": true})
}

func (h *CallsHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CallSid == "" || req.To == "" {
		http.Error(w, "callSid and to are required", http.StatusBadRequest)
		return
	}

	if h.Twilio == nil {
		http.Error(w, "telephony service not configured", http.StatusServiceUnavailable)
		return
	}

	doc, err := twilio.TransferTwiML(req.To)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.Twilio.RedirectCall(req.CallSid, doc); err != nil {
		logger.Errorf("❌ transfer %s: %v", req.CallSid, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{"success": true, "message": "call transferred"})
}
