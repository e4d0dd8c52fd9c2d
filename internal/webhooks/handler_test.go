package webhooks

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"softphonix/internal/config"
	"softphonix/internal/logstore"
	"softphonix/internal/relay"
)

type countingHub struct {
	mu     sync.Mutex
	topics map[string]int
}

func (h *countingHub) Publish(topic string, data any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.topics == nil {
		h.topics = make(map[string]int)
	}
	h.topics[topic]++
}

func (h *countingHub) count(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.topics[topic]
}

func newTestHandler(t *testing.T) (*Handler, *relay.Relay, *countingHub) {
	t.Helper()
	dir := t.TempDir()
	hub := &countingHub{}
	rel := relay.New(
		logstore.New(filepath.Join(dir, "call_log.json"), 1000, false),
		logstore.New(filepath.Join(dir, "sms_log.json"), 1000, false),
		logstore.New(filepath.Join(dir, "mms_log.json"), 500, false),
		hub,
	)

	cfg := &config.Config{}
	cfg.ApplyDefaults()
	cfg.Twilio.PhoneNumber = "+15550001111"
	cfg.Twilio.PublicURL = "https://hooks.example"

	return &Handler{Relay: rel, Cfg: cfg}, rel, hub
}

func postForm(t *testing.T, h http.HandlerFunc, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestCallStatusAlwaysAnswers200(t *testing.T) {
	h, rel, _ := newTestHandler(t)

	// unknown sid, non-ringing: must stay a 200 no-op
	w := postForm(t, h.CallStatus, url.Values{
		"CallSid":    {"CAghost"},
		"CallStatus": {"answered"},
		"Direction":  {"outbound"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, rel.ActiveCallCount())

	// garbage body is absorbed too
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("%%%"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.CallStatus(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCallStatusInboundRinging(t *testing.T) {
	h, rel, hub := newTestHandler(t)

	w := postForm(t, h.CallStatus, url.Values{
		"CallSid":    {"CAin"},
		"CallStatus": {"ringing"},
		"From":       {"+4000"},
		"To":         {"+15550001111"},
		"Direction":  {"inbound"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, rel.ActiveCallCount())
	assert.Equal(t, 1, hub.count("call-status-update"))
}

func TestHandleCallsInboundRespondsWithDial(t *testing.T) {
	h, rel, _ := newTestHandler(t)

	w := postForm(t, h.HandleCalls, url.Values{
		"CallSid":   {"CAin2"},
		"From":      {"+4000"},
		"To":        {"+15550001111"},
		"Direction": {"inbound"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/xml")
	assert.Contains(t, w.Body.String(), "<Dial")
	assert.Contains(t, w.Body.String(), "softphone-user")
	assert.Equal(t, 1, rel.ActiveCallCount())
}

func TestOutgoingTracksCall(t *testing.T) {
	h, rel, _ := newTestHandler(t)

	w := postForm(t, h.Outgoing, url.Values{
		"CallSid": {"CAout"},
		"To":      {"+16001112222"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "+16001112222")

	require.Equal(t, 1, rel.ActiveCallCount())
	call := rel.ActiveCalls()[0]
	assert.Equal(t, "outbound", call.Direction)
	assert.Equal(t, "initiated", call.Status)
	assert.Equal(t, "+15550001111", call.From)
}

func TestHandleSMSStoresAndAcks(t *testing.T) {
	h, rel, hub := newTestHandler(t)

	w := postForm(t, h.HandleSMS, url.Values{
		"MessageSid": {"SM1"},
		"From":       {"+111"},
		"To":         {"+222"},
		"Body":       {"hi there"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/xml")
	assert.Contains(t, w.Body.String(), "<Response")

	logs, _ := rel.MessageLogs(logstore.KindSMS)
	require.Len(t, logs, 1)
	assert.Equal(t, "SM1", logs[0].ID)
	assert.Equal(t, "inbound", logs[0].Direction)
	assert.Equal(t, "received", logs[0].Status)
	assert.Equal(t, 1, hub.count("incoming-sms"))
}

func TestHandleMMSCapturesMedia(t *testing.T) {
	h, rel, hub := newTestHandler(t)

	w := postForm(t, h.HandleMMS, url.Values{
		"MessageSid":        {"MM1"},
		"From":              {"+111"},
		"To":                {"+222"},
		"NumMedia":          {"1"},
		"MediaUrl0":         {"https://media.example/x"},
		"MediaContentType0": {"image/jpeg"},
	})

	assert.Equal(t, http.StatusOK, w.Code)

	logs, _ := rel.MessageLogs(logstore.KindMMS)
	require.Len(t, logs, 1)
	assert.Equal(t, "https://media.example/x", logs[0].MediaURL)
	assert.Equal(t, "image/jpeg", logs[0].MediaType)
	assert.Equal(t, "mms_MM1", logs[0].FileName)
	assert.Equal(t, 1, hub.count("incoming-mms"))
}

func TestMessageStatusUpdatesStoredEntry(t *testing.T) {
	h, rel, hub := newTestHandler(t)

	postForm(t, h.HandleSMS, url.Values{
		"MessageSid": {"SM2"},
		"From":       {"+111"},
		"To":         {"+222"},
		"Body":       {"x"},
	})

	w := postForm(t, h.MessageStatus, url.Values{
		"MessageSid":    {"SM2"},
		"MessageStatus": {"delivered"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	logs, _ := rel.MessageLogs(logstore.KindSMS)
	assert.Equal(t, "delivered", logs[0].Status)
	assert.Equal(t, 1, hub.count("sms-status-update"))
}

func TestMessageStatusUnknownSidStill200(t *testing.T) {
	h, _, hub := newTestHandler(t)

	w := postForm(t, h.MessageStatus, url.Values{
		"MessageSid":    {"SMghost"},
		"MessageStatus": {"delivered"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, hub.count("sms-status-update"))
	assert.Equal(t, 0, hub.count("mms-status-update"))
}
