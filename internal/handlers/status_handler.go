package handlers

import (
	"net/http"

	"softphonix/internal/config"
	"softphonix/internal/relay"
)

type StatusHandler struct {
	Relay *relay.Relay
	Cfg   *config.Config
}

func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":           "online",
		"activeCalls":      h.Relay.ActiveCallCount(),
		"totalCalls":       h.Relay.TotalCalls(),
		"twilioConfigured": h.Cfg.TwilioConfigured(),
	})
}

// ClientConfig tells the UI which number it owns and where the vendor
// webhooks should point.
func (h *StatusHandler) ClientConfig(w http.ResponseWriter, r *http.Request) {
	base := h.Cfg.Twilio.PublicURL
	writeJSON(w, map[string]any{
		"defaultPhoneNumber": h.Cfg.Twilio.PhoneNumber,
		"twilioConfigured":   h.Cfg.TwilioConfigured(),
		"webhooks": map[string]string{
			"calls":  base + "/handle_calls",
			"sms":    base + "/handle_sms",
			"mms":    base + "/handle_mms",
			"status": base + "/message-status",
		},
	})
}
