package relay

import (
	"sync"
	"time"

	"softphonix/internal/logstore"
	"softphonix/pkg/logger"
)

// Twilio's call lifecycle vocabulary evolves; keep the terminal set in one
// place so an added status is a one-line change, not a stale session hunt.
var terminalCallStatuses = map[string]bool{
	"completed": true,
	"failed":    true,
	"busy":      true,
	"no-answer": true,
}

func IsTerminalCallStatus(status string) bool {
	return terminalCallStatuses[status]
}

// Broadcaster is what the relay needs from the realtime channel.
type Broadcaster interface {
	Publish(topic string, data any)
}

// Relay owns every mutation of the active call registry and the three log
// stores, and fans the resulting state out to connected clients. Webhook
// paths never return errors: an unknown sid or duplicate delivery degrades
// to a logged no-op.
type Relay struct {
	calls   *ActiveCallStore
	callLog *logstore.Store
	smsLog  *logstore.Store
	mmsLog  *logstore.Store
	hub     Broadcaster

	mu         sync.RWMutex
	identity   string
	totalCalls int
}

func New(callLog, smsLog, mmsLog *logstore.Store, hub Broadcaster) *Relay {
	return &Relay{
		calls:    NewActiveCallStore(),
		callLog:  callLog,
		smsLog:   smsLog,
		mmsLog:   mmsLog,
		hub:      hub,
		identity: "softphone-user",
	}
}

// =======================
// CLIENT IDENTITY
// =======================

func (r *Relay) Identity() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.identity
}

func (r *Relay) SetIdentity(identity string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.identity = identity
}

// =======================
// COUNTERS / SNAPSHOTS
// =======================

func (r *Relay) ActiveCalls() []ActiveCall {
	return r.calls.Snapshot()
}

func (r *Relay) ActiveCallCount() int {
	return r.calls.Len()
}

func (r *Relay) TotalCalls() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.totalCalls
}

// =======================
// CALLS
// =======================

// RecordOutboundCallStart tracks a freshly placed call and writes the
// initial log entry. The REST caller gets its ack from the handler, no
// extra broadcast here beyond the log refresh.
func (r *Relay) RecordOutboundCallStart(sid, from, to, identity string) ActiveCall {
	if identity == "" {
		identity = r.Identity()
	}

	call := r.calls.Upsert(sid, func(c *ActiveCall) {
		c.From = from
		c.To = to
		c.Status = "initiated"
		c.Direction = string(logstore.DirectionOutbound)
		c.ClientIdentity = identity
		c.StartTime = time.Now()
	})

	r.mu.Lock()
	r.totalCalls++
	r.mu.Unlock()

	r.appendCallEntry(call, nil)
	return call
}

// RecordInboundCallStart tracks a ringing inbound call announced by the
// voice webhook.
func (r *Relay) RecordInboundCallStart(sid, from, to string) ActiveCall {
	call := r.calls.Upsert(sid, func(c *ActiveCall) {
		c.From = from
		c.To = to
		c.Status = "ringing"
		c.Direction = string(logstore.DirectionInbound)
		c.ClientIdentity = r.Identity()
		c.StartTime = time.Now()
	})

	r.mu.Lock()
	r.totalCalls++
	r.mu.Unlock()

	r.appendCallEntry(call, nil)
	return call
}

// ApplyCallStatus is the status-callback path. Known sid: patch or, on a
// terminal status, archive. Unknown sid: only an inbound "ringing" starts a
// new session, anything else is a no-op. Always broadcasts the raw update.
func (r *Relay) ApplyCallStatus(sid, status, from, to, direction string) {
	logger.Infof("📞 call status: sid=%s status=%s from=%s to=%s direction=%s",
		sid, status, from, to, direction)

	if _, known := r.calls.Get(sid); known {
		if IsTerminalCallStatus(status) {
			r.finishCall(sid, status)
		} else {
			r.calls.Upsert(sid, func(c *ActiveCall) {
				c.Status = status
			})
		}
	} else if direction == string(logstore.DirectionInbound) && status == "ringing" {
		call := r.calls.Upsert(sid, func(c *ActiveCall) {
			c.From = from
			c.To = to
			c.Status = status
			c.Direction = direction
			c.ClientIdentity = r.Identity()
			c.StartTime = time.Now()
		})

		r.mu.Lock()
		r.totalCalls++
		r.mu.Unlock()

		r.appendCallEntry(call, nil)
		r.broadcastCallLogs()
	}

	r.hub.Publish("call-status-update", map[string]any{
		"callSid":   sid,
		"status":    status,
		"from":      from,
		"to":        to,
		"direction": direction,
	})
}

// EndCall is the user-initiated hangup path; it runs the same terminal
// transition a "completed" callback would.
func (r *Relay) EndCall(sid string) {
	r.finishCall(sid, "completed")
}

func (r *Relay) finishCall(sid, status string) {
	call, ok := r.calls.Remove(sid)
	if !ok {
		logger.Warnf("⚠️ terminal status for unknown call %s, ignoring", sid)
		return
	}

	call.Status = status
	call.EndTime = time.Now()
	call.Duration = call.EndTime.Sub(call.StartTime).Milliseconds()

	end := call.EndTime.UTC().Format(time.RFC3339)
	r.appendCallEntry(call, &end)
	r.broadcastCallLogs()
}

func (r *Relay) appendCallEntry(call ActiveCall, endTime *string) {
	entry := logstore.Entry{
		ID:             call.SID,
		Direction:      call.Direction,
		From:           call.From,
		To:             call.To,
		Status:         call.Status,
		Duration:       call.Duration,
		StartTime:      call.StartTime.UTC().Format(time.RFC3339),
		ClientIdentity: call.ClientIdentity,
	}
	if endTime != nil {
		entry.EndTime = *endTime
	}
	entry.Normalize(logstore.KindCall)

	logs := r.callLog.Append(entry)
	r.hub.Publish("call-log-updated", map[string]any{"logs": logs})
}

func (r *Relay) broadcastCallLogs() {
	logs := r.callLog.Load()
	r.hub.Publish("call-log-updated", map[string]any{
		"logs":       logs,
		"statistics": logstore.ComputeCallStatistics(logs),
	})
}

// =======================
// MESSAGES
// =======================

func (r *Relay) messageStore(kind logstore.Kind) *logstore.Store {
	if kind == logstore.KindMMS {
		return r.mmsLog
	}
	return r.smsLog
}

// RecordInboundMessage archives a message webhook payload and announces it.
// Messages are atomic, there is no session to track.
func (r *Relay) RecordInboundMessage(kind logstore.Kind, entry logstore.Entry) logstore.Entry {
	entry.Direction = string(logstore.DirectionInbound)
	if entry.Status == "" {
		entry.Status = "received"
	}
	entry.Normalize(kind)

	logs := r.messageStore(kind).Append(entry)
	r.hub.Publish("incoming-"+string(kind), entry)
	r.hub.Publish(string(kind)+"-log-updated", map[string]any{"logs": logs})
	return entry
}

// RecordOutboundMessage archives a message the UI just sent via the vendor.
func (r *Relay) RecordOutboundMessage(kind logstore.Kind, entry logstore.Entry) logstore.Entry {
	entry.Direction = string(logstore.DirectionOutbound)
	if entry.ClientIdentity == "" {
		entry.ClientIdentity = r.Identity()
	}
	entry.Normalize(kind)

	logs := r.messageStore(kind).Append(entry)
	r.hub.Publish(string(kind)+"-log-updated", map[string]any{"logs": logs})
	return entry
}

// ApplyMessageStatus patches the status of a stored message. The sid is
// looked up in the SMS log first, then MMS. A miss is logged, never an error.
func (r *Relay) ApplyMessageStatus(messageSid, status string) {
	if r.smsLog.UpdateStatus(messageSid, status) {
		r.hub.Publish("sms-status-update", map[string]any{
			"messageSid": messageSid,
			"status":     status,
		})
		return
	}
	if r.mmsLog.UpdateStatus(messageSid, status) {
		r.hub.Publish("mms-status-update", map[string]any{
			"messageSid": messageSid,
			"status":     status,
		})
		return
	}
	logger.Warnf("⚠️ status for unknown message %s, ignoring", messageSid)
}

// =======================
// LOG ACCESS
// =======================

func (r *Relay) CallLogs() ([]logstore.Entry, logstore.CallStatistics) {
	logs := r.callLog.Load()
	return logs, logstore.ComputeCallStatistics(logs)
}

func (r *Relay) MessageLogs(kind logstore.Kind) ([]logstore.Entry, logstore.MessageStatistics) {
	logs := r.messageStore(kind).Load()
	return logs, logstore.ComputeMessageStatistics(logs)
}

// ClearLogs empties the store for kind and pushes the empty log list.
func (r *Relay) ClearLogs(kind logstore.Kind) {
	switch kind {
	case logstore.KindCall:
		r.callLog.Clear()
	case logstore.KindSMS:
		r.smsLog.Clear()
	case logstore.KindMMS:
		r.mmsLog.Clear()
	}
	r.hub.Publish(string(kind)+"-log-updated", map[string]any{"logs": []logstore.Entry{}})
}
