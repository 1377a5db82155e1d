package models

import (
	"encoding/json"
	"fmt"
	"testing"
)

func TestParseSnapshot(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKind SnapshotKind
		wantKeys []string
		wantErr  bool
	}{
		{name: "empty body", raw: "", wantKind: SnapshotAbsent},
		{name: "null", raw: " null ", wantKind: SnapshotAbsent},
		{name: "empty mapping", raw: "{}", wantKind: SnapshotMapping},
		{
			name:     "mapping keeps document order",
			raw:      `{"zeta":{"a":1},"alpha":{"a":2},"mid":{"a":3}}`,
			wantKind: SnapshotMapping,
			wantKeys: []string{"zeta", "alpha", "mid"},
		},
		{
			name:     "list skips null holes",
			raw:      `[null,{"a":1},null,{"a":2}]`,
			wantKind: SnapshotList,
			wantKeys: []string{"1", "3"},
		},
		{name: "scalar string", raw: `"hello"`, wantKind: SnapshotInvalid, wantErr: true},
		{name: "number", raw: `42`, wantKind: SnapshotInvalid, wantErr: true},
		{name: "truncated", raw: `{"a":`, wantKind: SnapshotInvalid, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := ParseSnapshot("education", []byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if snap.Kind != tt.wantKind {
				t.Errorf("Expected kind %s, got %s", tt.wantKind, snap.Kind)
			}
			if snap.Path != "education" {
				t.Errorf("Expected path to be kept, got %q", snap.Path)
			}
			if len(snap.Entries) != len(tt.wantKeys) {
				t.Fatalf("Expected %d entries, got %d", len(tt.wantKeys), len(snap.Entries))
			}
			for i, key := range tt.wantKeys {
				if snap.Entries[i].Key != key {
					t.Errorf("entry %d: expected key %q, got %q", i, key, snap.Entries[i].Key)
				}
			}
		})
	}
}

func TestSnapshot_AppendAndMarshal(t *testing.T) {
	snap := AbsentSnapshot("contact")
	snap.Append("b-key", json.RawMessage(`{"n":1}`))
	snap.Append("a-key", json.RawMessage(`{"n":2}`))

	if snap.Kind != SnapshotMapping {
		t.Fatalf("Expected absent snapshot to become a mapping, got %s", snap.Kind)
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if got, want := string(raw), `{"b-key":{"n":1},"a-key":{"n":2}}`; got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	list, _ := ParseSnapshot("skills", []byte(`[{"n":1}]`))
	list.Append("ignored", json.RawMessage(`{"n":2}`))
	if list.Entries[1].Key != "1" {
		t.Errorf("Expected list append to use the next index, got %q", list.Entries[1].Key)
	}
	raw, _ = json.Marshal(list)
	if got, want := string(raw), `[{"n":1},{"n":2}]`; got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	absent, _ := json.Marshal(AbsentSnapshot("x"))
	if string(absent) != "null" {
		t.Errorf("Expected absent snapshot to marshal as null, got %s", absent)
	}
}

func TestSnapshot_SparseListKeepsIndexes(t *testing.T) {
	snap, _ := ParseSnapshot("education", []byte(`[{"n":0},null,{"n":2},null,null,{"n":5}]`))

	snap.Append("ignored", json.RawMessage(`{"n":6}`))
	if got := snap.Entries[len(snap.Entries)-1].Key; got != "6" {
		t.Errorf("Expected append after the last index to use 6, got %q", got)
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `[{"n":0},null,{"n":2},null,null,{"n":5},{"n":6}]`
	if string(raw) != want {
		t.Errorf("Expected %s, got %s", want, raw)
	}

	// a round trip keeps every record id
	again, _ := ParseSnapshot("education", raw)
	var keys []string
	for _, e := range again.Entries {
		keys = append(keys, e.Key)
	}
	if got := fmt.Sprint(keys); got != "[0 2 5 6]" {
		t.Errorf("Expected keys [0 2 5 6] after round trip, got %s", got)
	}
}
