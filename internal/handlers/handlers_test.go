package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"softphonix/internal/config"
	"softphonix/internal/logstore"
	"softphonix/internal/relay"
	"softphonix/internal/twilio"
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

type mockTwilio struct {
	createCallErr error
	lastTo        string
	lastFrom      string
	lastBody      string
	lastMedia     []string
	completed     []string
	redirected    map[string]string
}

func (m *mockTwilio) CreateCall(to, from, voiceURL, statusCallback string) (*twilio.Call, error) {
	if m.createCallErr != nil {
		return nil, m.createCallErr
	}
	m.lastTo, m.lastFrom = to, from
	return &twilio.Call{SID: "CAmock", Status: "queued"}, nil
}

func (m *mockTwilio) CompleteCall(sid string) error {
	m.completed = append(m.completed, sid)
	return nil
}

func (m *mockTwilio) RedirectCall(sid, doc string) error {
	if m.redirected == nil {
		m.redirected = make(map[string]string)
	}
	m.redirected[sid] = doc
	return nil
}

func (m *mockTwilio) SendMessage(to, from, body string, mediaURLs []string) (*twilio.Message, error) {
	m.lastTo, m.lastFrom, m.lastBody, m.lastMedia = to, from, body, mediaURLs
	return &twilio.Message{SID: "SMmock", Status: "queued"}, nil
}

func newTestEnv(t *testing.T) (*relay.Relay, *countingHub, *config.Config) {
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
	return rel, hub, cfg
}

func postJSON(t *testing.T, h http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

// =======================
// LOGS
// =======================

func TestGetCallLogsShape(t *testing.T) {
	rel, _, _ := newTestEnv(t)
	h := &LogsHandler{Relay: rel}

	rel.ApplyCallStatus("CA1", "ringing", "+1", "+2", "inbound")

	req := httptest.NewRequest(http.MethodGet, "/api/call-logs", nil)
	w := httptest.NewRecorder()
	h.GetCallLogs(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Logs       []logstore.Entry        `json:"logs"`
		Statistics logstore.CallStatistics `json:"statistics"`
		Total      int                     `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, 1, resp.Statistics.Inbound)
}

func TestDeleteSMSLogsClearsAndBroadcasts(t *testing.T) {
	rel, hub, _ := newTestEnv(t)
	h := &LogsHandler{Relay: rel}

	rel.RecordInboundMessage(logstore.KindSMS, logstore.Entry{ID: "m1"})
	before := hub.count("sms-log-updated")

	req := httptest.NewRequest(http.MethodDelete, "/api/sms-logs", nil)
	w := httptest.NewRecorder()
	h.DeleteSMSLogs(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)

	logs, _ := rel.MessageLogs(logstore.KindSMS)
	assert.Empty(t, logs)
	assert.Equal(t, before+1, hub.count("sms-log-updated"))
}

// =======================
// CALLS
// =======================

func TestPlaceCall(t *testing.T) {
	rel, _, cfg := newTestEnv(t)
	mock := &mockTwilio{}
	h := &CallsHandler{Relay: rel, Twilio: mock, Cfg: cfg}

	w := postJSON(t, h.PlaceCall, PlaceCallRequest{
		To: "+16005554444", From: "+15550001111", Identity: "agent-1",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "CAmock")
	assert.Equal(t, "+16005554444", mock.lastTo)
	assert.Equal(t, 1, rel.ActiveCallCount())
}

func TestPlaceCallMissingParams(t *testing.T) {
	rel, _, cfg := newTestEnv(t)
	h := &CallsHandler{Relay: rel, Twilio: &mockTwilio{}, Cfg: cfg}

	w := postJSON(t, h.PlaceCall, PlaceCallRequest{To: "+1600"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, rel.ActiveCallCount())
}

func TestPlaceCallVendorErrorPropagates(t *testing.T) {
	rel, _, cfg := newTestEnv(t)
	mock := &mockTwilio{createCallErr: errors.New("vendor down")}
	h := &CallsHandler{Relay: rel, Twilio: mock, Cfg: cfg}

	w := postJSON(t, h.PlaceCall, PlaceCallRequest{
		To: "+1600", From: "+1555", Identity: "agent-1",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "vendor down")
	assert.Equal(t, 0, rel.ActiveCallCount(), "failed call is never tracked")
}

func TestPlaceCallUnconfigured(t *testing.T) {
	rel, _, cfg := newTestEnv(t)
	h := &CallsHandler{Relay: rel, Twilio: nil, Cfg: cfg}

	w := postJSON(t, h.PlaceCall, PlaceCallRequest{
		To: "+1600", From: "+1555", Identity: "agent-1",
	})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHangupEndsTrackedCall(t *testing.T) {
	rel, _, cfg := newTestEnv(t)
	mock := &mockTwilio{}
	h := &CallsHandler{Relay: rel, Twilio: mock, Cfg: cfg}

	rel.RecordOutboundCallStart("CAup", "+1", "+2", "agent-1")

	w := postJSON(t, h.Hangup, HangupRequest{CallSid: "CAup"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"CAup"}, mock.completed)
	assert.Equal(t, 0, rel.ActiveCallCount())
}

func TestTransferRedirects(t *testing.T) {
	rel, _, cfg := newTestEnv(t)
	mock := &mockTwilio{}
	h := &CallsHandler{Relay: rel, Twilio: mock, Cfg: cfg}

	w := postJSON(t, h.Transfer, TransferRequest{CallSid: "CAx", To: "+17771112222"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, mock.redirected["CAx"], "+17771112222")
}

// =======================
// MESSAGES
// =======================

func TestSendSMS(t *testing.T) {
	rel, hub, cfg := newTestEnv(t)
	mock := &mockTwilio{}
	h := &MessagesHandler{Relay: rel, Twilio: mock, Cfg: cfg}

	w := postJSON(t, h.SendSMS, SendSMSRequest{To: "+16005554444", Body: "hello"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "SMmock")
	assert.Equal(t, "+15550001111", mock.lastFrom, "falls back to the configured number")

	logs, _ := rel.MessageLogs(logstore.KindSMS)
	require.Len(t, logs, 1)
	assert.Equal(t, "outbound", logs[0].Direction)
	assert.Equal(t, 1, hub.count("sms-log-updated"))
}

func TestSendSMSValidation(t *testing.T) {
	rel, _, cfg := newTestEnv(t)
	h := &MessagesHandler{Relay: rel, Twilio: &mockTwilio{}, Cfg: cfg}

	w := postJSON(t, h.SendSMS, SendSMSRequest{To: "+1600"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =======================
// TOKEN / IDENTITY / STATUS
// =======================

func TestRegisterIdentity(t *testing.T) {
	rel, _, cfg := newTestEnv(t)
	h := &TokenHandler{Relay: rel, Cfg: cfg}

	w := postJSON(t, h.RegisterIdentity, TokenRequest{Identity: "operator-9"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "operator-9", rel.Identity())
}

func TestTokenUnconfigured(t *testing.T) {
	rel, _, cfg := newTestEnv(t)
	h := &TokenHandler{Relay: rel, Cfg: cfg}

	w := postJSON(t, h.Token, TokenRequest{Identity: "operator-9"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestStatusEndpoint(t *testing.T) {
	rel, _, cfg := newTestEnv(t)
	h := &StatusHandler{Relay: rel, Cfg: cfg}

	rel.RecordOutboundCallStart("CA1", "+1", "+2", "")

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	h.Status(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "online", resp["status"])
	assert.Equal(t, float64(1), resp["activeCalls"])
	assert.Equal(t, false, resp["twilioConfigured"])
}

func TestClientConfigWebhookURLs(t *testing.T) {
	rel, _, cfg := newTestEnv(t)
	h := &StatusHandler{Relay: rel, Cfg: cfg}

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil)
	w := httptest.NewRecorder()
	h.ClientConfig(w, req)

	assert.Contains(t, w.Body.String(), "https://hooks.example/handle_calls")
	assert.Contains(t, w.Body.String(), "https://hooks.example/message-status")
}
