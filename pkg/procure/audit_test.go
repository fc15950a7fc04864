package procure

import (
	"errors"
	"testing"
)

func TestRecordSwallowsStoreFailure(t *testing.T) {
	store := &memAuditStore{err: errors.New("backend down")}
	r := NewRecorder(store)

	// Must not panic or surface the error.
	r.Record("PO Created", "user-1", "Purchase Team", "PO PO20240115042 created")

	store.err = nil
	r.Record("PO Approved", "user-2", "Manager", "PO PO20240115042 approved")
	if len(store.entries) != 1 {
		t.Fatalf("have %d entries, want 1", len(store.entries))
	}
	if store.entries[0].Action != "PO Approved" {
		t.Errorf("action = %q", store.entries[0].Action)
	}
	if store.entries[0].Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestFeedDegradesToEmpty(t *testing.T) {
	store := &memAuditStore{err: errors.New("backend down")}
	r := NewRecorder(store)

	entries := r.Feed(10)
	if entries == nil || len(entries) != 0 {
		t.Errorf("expected empty slice, got %v", entries)
	}
}

func TestFeedHonorsLimit(t *testing.T) {
	store := &memAuditStore{}
	r := NewRecorder(store)
	for i := 0; i < 5; i++ {
		r.Record("PO Created", "user-1", "Purchase Team", "details")
	}

	if got := r.Feed(3); len(got) != 3 {
		t.Errorf("have %d entries, want 3", len(got))
	}
}
