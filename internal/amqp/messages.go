package amqp

import (
	"encoding/json"
	"time"

	"pocketbook/internal/worker"
)

// PersistEventMessage is the wire form of a worker.Event.
type PersistEventMessage struct {
	Type      string    `json:"type"`
	Key       string    `json:"key"`
	Records   int       `json:"records"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewPersistEventMessage converts ev for publishing. A zero event timestamp
// is replaced by the current time.
func NewPersistEventMessage(ev worker.Event) *PersistEventMessage {
	msg := &PersistEventMessage{
		Type:      string(ev.Type),
		Key:       ev.Key,
		Records:   ev.Records,
		Timestamp: ev.Timestamp,
	}
	if ev.Err != nil {
		msg.Error = ev.Err.Error()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	return msg
}

// Failed reports whether the message describes a failure.
func (m *PersistEventMessage) Failed() bool {
	return m.Type != string(worker.EventPersisted)
}

// ToJSON converts the message to JSON bytes
func (m *PersistEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// PersistEventMessageFromJSON creates a message from JSON bytes
func PersistEventMessageFromJSON(data []byte) (*PersistEventMessage, error) {
	var msg PersistEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
