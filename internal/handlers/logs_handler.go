package handlers

import (
	"encoding/json"
	"net/http"

	"softphonix/internal/logstore"
	"softphonix/internal/relay"
)

type LogsHandler struct {
	Relay *relay.Relay
}

type LogsResponse struct {
	Logs       []logstore.Entry `json:"logs"`
	Statistics any              `json:"statistics"`
	Total      int              `json:"total"`
}

type ClearResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// GetCallLogs godoc
//
// @Summary      Call log with statistics
// @Tags         Logs
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} LogsResponse
// @Router       /api/call-logs [get]
func (h *LogsHandler) GetCallLogs(w http.ResponseWriter, r *http.Request) {
	logs, stats := h.Relay.CallLogs()
	writeJSON(w, LogsResponse{Logs: logs, Statistics: stats, Total: len(logs)})
}

// GetCallStats godoc
//
// @Summary      Call statistics only
// @Tags         Logs
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} logstore.CallStatistics
// @Router       /api/call-stats [get]
func (h *LogsHandler) GetCallStats(w http.ResponseWriter, r *http.Request) {
	_, stats := h.Relay.CallLogs()
	writeJSON(w, stats)
}

func (h *LogsHandler) DeleteCallLogs(w http.ResponseWriter, r *http.Request) {
	h.Relay.ClearLogs(logstore.KindCall)
	writeJSON(w, ClearResponse{Success: true, Message: "call logs cleared"})
}

func (h *LogsHandler) GetSMSLogs(w http.ResponseWriter, r *http.Request) {
	logs, stats := h.Relay.MessageLogs(logstore.KindSMS)
	writeJSON(w, LogsResponse{Logs: logs, Statistics: stats, Total: len(logs)})
}

func (h *LogsHandler) DeleteSMSLogs(w http.ResponseWriter, r *http.Request) {
	h.Relay.ClearLogs(logstore.KindSMS)
	writeJSON(w, ClearResponse{Success: true, Message: "sms logs cleared"})
}

func (h *LogsHandler) GetMMSLogs(w http.ResponseWriter, r *http.Request) {
	logs, stats := h.Relay.MessageLogs(logstore.KindMMS)
	writeJSON(w, LogsResponse{Logs: logs, Statistics: stats, Total: len(logs)})
}

func (h *LogsHandler) DeleteMMSLogs(w http.ResponseWriter, r *http.Request) {
	h.Relay.ClearLogs(logstore.KindMMS)
	writeJSON(w, ClearResponse{Success: true, Message: "mms logs cleared"})
}
