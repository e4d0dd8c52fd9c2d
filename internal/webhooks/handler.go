package webhooks

import (
	"net/http"

	"softphonix/internal/config"
	"softphonix/internal/logstore"
	"softphonix/internal/relay"
	"softphonix/internal/twilio"
	"softphonix/pkg/logger"
)

// Handler serves the vendor-facing endpoints. These are unauthenticated by
// contract and must always answer 200 (or TwiML) — an error response would
// trigger the vendor's retry storm.
type Handler struct {
	Relay *relay.Relay
	Cfg   *config.Config
}

func (h *Handler) statusCallbackURL() string {
	return h.Cfg.Twilio.PublicURL + "/api/call-status"
}

func writeTwiML(w http.ResponseWriter, doc string, err error) {
	if err != nil {
		logger.Errorf("❌ twiml render: %v", err)
		// still 200, empty body beats a retry storm
		w.WriteHeader(http.StatusOK)
		return
	}
	w.Header().Set("Content-Type", "text/xml")
	w.Write([]byte(doc))
}

// CallStatus handles POST /api/call-status, the voice status callback.
func (h *Handler) CallStatus(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()

	h.Relay.ApplyCallStatus(
		r.PostFormValue("CallSid"),
		r.PostFormValue("CallStatus"),
		r.PostFormValue("From"),
		r.PostFormValue("To"),
		r.PostFormValue("Direction"),
	)

	w.WriteHeader(http.StatusOK)
}

// Voice handles POST /twiml/voice: inbound legs are bridged to the browser
// client, outbound REST-placed legs get the greeting.
func (h *Handler) Voice(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()

	if r.PostFormValue("Direction") == string(logstore.DirectionInbound) {
		doc, err := twilio.InboundCallTwiML(
			r.PostFormValue("From"),
			h.Relay.Identity(),
			h.statusCallbackURL(),
		)
		writeTwiML(w, doc, err)
		return
	}

	doc, err := twilio.GreetingTwiML()
	writeTwiML(w, doc, err)
}

// HandleCalls handles POST /handle_calls, the number's voice webhook.
func (h *Handler) HandleCalls(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()

	from := r.PostFormValue("From")
	to := r.PostFormValue("To")
	sid := r.PostFormValue("CallSid")

	if r.PostFormValue("Direction") == string(logstore.DirectionInbound) {
		logger.Infof("📱 inbound call from %s (sid=%s)", from, sid)
		h.Relay.RecordInboundCallStart(sid, from, to)

		doc, err := twilio.InboundCallTwiML(from, h.Relay.Identity(), h.statusCallbackURL())
		writeTwiML(w, doc, err)
		return
	}

	logger.Infof("📤 outbound call to %s", to)
	doc, err := twilio.OutboundDialTwiML(to, h.Cfg.Twilio.PhoneNumber, h.statusCallbackURL())
	writeTwiML(w, doc, err)
}

// Outgoing handles POST /twiml/outgoing, calls placed by the browser Device
// through the TwiML application.
func (h *Handler) Outgoing(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()

	to := r.PostFormValue("To")
	sid := r.PostFormValue("CallSid")

	logger.Infof("📤 device call to %s (sid=%s)", to, sid)
	h.Relay.RecordOutboundCallStart(sid, h.Cfg.Twilio.PhoneNumber, to, "")

	doc, err := twilio.OutboundDialTwiML(to, h.Cfg.Twilio.PhoneNumber, h.statusCallbackURL())
	writeTwiML(w, doc, err)
}

// HandleSMS handles POST /handle_sms.
func (h *Handler) HandleSMS(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()

	entry := logstore.Entry{
		ID:     r.PostFormValue("MessageSid"),
		From:   r.PostFormValue("From"),
		To:     r.PostFormValue("To"),
		Body:   r.PostFormValue("Body"),
		Status: r.PostFormValue("MessageStatus"),
	}
	entry = h.Relay.RecordInboundMessage(logstore.KindSMS, entry)
	logger.Infof("📱 inbound sms %s from %s", entry.ID, entry.From)

	doc, err := twilio.EmptyMessagingTwiML()
	writeTwiML(w, doc, err)
}

// HandleMMS handles POST /handle_mms.
func (h *Handler) HandleMMS(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()

	sid := r.PostFormValue("MessageSid")
	entry := logstore.Entry{
		ID:        sid,
		From:      r.PostFormValue("From"),
		To:        r.PostFormValue("To"),
		Body:      r.PostFormValue("Body"),
		MediaURL:  r.PostFormValue("MediaUrl0"),
		MediaType: r.PostFormValue("MediaContentType0"),
		FileName:  "mms_" + sid,
		Status:    r.PostFormValue("MessageStatus"),
	}
	entry = h.Relay.RecordInboundMessage(logstore.KindMMS, entry)
	logger.Infof("📷 inbound mms %s from %s", entry.ID, entry.From)

	doc, err := twilio.EmptyMessagingTwiML()
	writeTwiML(w, doc, err)
}

// MessageStatus handles POST /message-status, the messaging status callback.
func (h *Handler) MessageStatus(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()

	h.Relay.ApplyMessageStatus(
		r.PostFormValue("MessageSid"),
		r.PostFormValue("MessageStatus"),
	)

	w.WriteHeader(http.StatusOK)
}
