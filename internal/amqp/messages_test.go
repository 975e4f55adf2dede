package amqp

import (
	"testing"
	"time"
)

func TestNewAuditEvent(t *testing.T) {
	event := NewAuditEvent("transactions", "add", "t1", "amin")

	if event.Collection != "transactions" || event.Action != "add" || event.RecordID != "t1" || event.Username != "amin" {
		t.Fatalf("unexpected event: %+v", event)
	}
	if event.Timestamp.IsZero() {
		t.Fatal("timestamp should not be zero")
	}
	if time.Since(event.Timestamp) > time.Second {
		t.Fatal("timestamp should be recent")
	}
}

func TestAuditEventJSON(t *testing.T) {
	event := &AuditEvent{
		Collection: "customers",
		Action:     "delete",
		RecordID:   "c1",
		Username:   "amin",
		Timestamp:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	raw, err := event.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	parsed, err := AuditEventFromJSON(raw)
	if err != nil {
		t.Fatalf("AuditEventFromJSON: %v", err)
	}
	if parsed.Collection != event.Collection || parsed.Action != event.Action ||
		parsed.RecordID != event.RecordID || !parsed.Timestamp.Equal(event.Timestamp) {
		t.Fatalf("round trip changed event: %+v", parsed)
	}
}

func TestAuditEventInvalidJSON(t *testing.T) {
	if _, err := AuditEventFromJSON([]byte(`{"collection": 42}`)); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
