package amqp

import (
	"encoding/json"
	"time"
)

// AuditEvent describes a single record mutation. Consumers receive only
// identifiers, never record contents.
type AuditEvent struct {
	Collection string    `json:"collection"` // "transactions", "customers", "users"
	Action     string    `json:"action"`     // "add", "update", "delete"
	RecordID   string    `json:"record_id"`
	Username   string    `json:"username,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewAuditEvent(collection, action, recordID, username string) *AuditEvent {
	return &AuditEvent{
		Collection: collection,
		Action:     action,
		RecordID:   recordID,
		Username:   username,
		Timestamp:  time.Now(),
	}
}

func (e *AuditEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func AuditEventFromJSON(data []byte) (*AuditEvent, error) {
	var event AuditEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
