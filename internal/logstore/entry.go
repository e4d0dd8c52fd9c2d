package logstore

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindCall Kind = "call"
	KindSMS  Kind = "sms"
	KindMMS  Kind = "mms"
)

type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// Entry is one persisted call/SMS/MMS record. Kind-specific fields are
// omitted from JSON when empty so the three log files keep their original
// per-kind shapes.
type Entry struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Direction string `json:"direction"`
	From      string `json:"from"`
	To        string `json:"to"`
	Status    string `json:"status"`

	// calls
	Duration  int64  `json:"duration,omitempty"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`

	// sms / mms
	Body      string `json:"body,omitempty"`
	MediaURL  string `json:"mediaUrl,omitempty"`
	MediaType string `json:"mediaType,omitempty"`
	FileName  string `json:"fileName,omitempty"`

	ClientIdentity string `json:"clientIdentity"`
}

// FallbackID builds a local id for records the vendor never assigned a sid to.
func FallbackID(kind Kind) string {
	return fmt.Sprintf("%s_%d_%s", kind, time.Now().UnixMilli(), uuid.NewString()[:8])
}

func orUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

// Normalize fills the defaults the relay guarantees on every stored entry.
func (e *Entry) Normalize(kind Kind) {
	if e.ID == "" {
		e.ID = FallbackID(kind)
	}
	if e.Timestamp == "" {
		e.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	e.Direction = orUnknown(e.Direction)
	e.From = orUnknown(e.From)
	e.To = orUnknown(e.To)
	e.Status = orUnknown(e.Status)
	e.ClientIdentity = orUnknown(e.ClientIdentity)
}
