// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package preview implements the versioned message envelope exchanged
// between the page editor and the preview frame.
package preview

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	// Namespace tags every bridge message.
	Namespace = "cms.previewBridge"
	// Version is the envelope version this server speaks.
	Version = 1
)

// MessageType names a bridge message.
type MessageType string

const (
	TypeReady         MessageType = "preview:ready"
	TypeUpdate        MessageType = "preview:update"
	TypeAck           MessageType = "preview:ack"
	TypeError         MessageType = "preview:error"
	TypeScrollToBlock MessageType = "preview:scroll-to-block"
	TypeSelectBlock   MessageType = "preview:select-block"
)

var messageTypes = map[MessageType]bool{
	TypeReady:         true,
	TypeUpdate:        true,
	TypeAck:           true,
	TypeError:         true,
	TypeScrollToBlock: true,
	TypeSelectBlock:   true,
}

// Valid reports whether t is one of the bridge message types.
func (t MessageType) Valid() bool { return messageTypes[t] }

// Message is the bridge envelope.
type Message struct {
	V         int             `json:"v"`
	NS        string          `json:"ns"`
	Type      MessageType     `json:"type"`
	PageID    string          `json:"pageId"`
	RequestID string          `json:"requestId"`
	Timestamp int64           `json:"timestamp"`
	SessionID string          `json:"sessionId,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

// now is replaced in tests.
var now = time.Now

// NewMessage builds an envelope with a fresh request id and the current
// time in milliseconds. A nil payload is encoded as null.
func NewMessage(t MessageType, pageID string, payload any) (*Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		V:         Version,
		NS:        Namespace,
		Type:      t,
		PageID:    pageID,
		RequestID: uuid.NewString(),
		Timestamp: now().UnixMilli(),
		Payload:   raw,
	}, nil
}

// Reply builds a response envelope that echoes the request id and
// session of req.
func Reply(req *Message, t MessageType, payload any) (*Message, error) {
	msg, err := NewMessage(t, req.PageID, payload)
	if err != nil {
		return nil, err
	}
	msg.RequestID = req.RequestID
	msg.SessionID = req.SessionID
	return msg, nil
}

// IsBridgeMessage reports whether raw is a well-formed envelope: v is 1,
// ns matches, type is known, pageId and requestId are non-empty strings,
// timestamp is an integer number of milliseconds, sessionId is a string
// when present and payload is present (null allowed). Whatever passes
// decodes into Message.
func IsBridgeMessage(raw []byte) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return false
	}

	var v int
	if !decodeField(fields, "v", &v) || v != Version {
		return false
	}
	var ns string
	if !decodeField(fields, "ns", &ns) || ns != Namespace {
		return false
	}
	var typ string
	if !decodeField(fields, "type", &typ) || !MessageType(typ).Valid() {
		return false
	}
	for _, key := range []string{"pageId", "requestId"} {
		var s string
		if !decodeField(fields, key, &s) || s == "" {
			return false
		}
	}
	var ts int64
	if !decodeField(fields, "timestamp", &ts) {
		return false
	}
	if _, ok := fields["sessionId"]; ok {
		var s string
		if !decodeField(fields, "sessionId", &s) {
			return false
		}
	}
	_, ok := fields["payload"]
	return ok
}

// Parse validates raw with IsBridgeMessage and decodes it.
func Parse(raw []byte) (*Message, bool) {
	if !IsBridgeMessage(raw) {
		return nil, false
	}
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, false
	}
	return &msg, true
}

// decodeField decodes fields[key] into dst. JSON null never matches, and
// numbers with a fraction or exponent do not decode into integer targets.
func decodeField(fields map[string]json.RawMessage, key string, dst any) bool {
	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}
