package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// SnapshotKind describes the shape of a payload delivered by a feed
type SnapshotKind string

const (
	SnapshotAbsent  SnapshotKind = "absent"
	SnapshotMapping SnapshotKind = "mapping"
	SnapshotList    SnapshotKind = "list"
	SnapshotInvalid SnapshotKind = "invalid"
)

// Entry is one child of a snapshot. Key is the record id for mappings and
// the index for lists.
type Entry struct {
	Key   string
	Value json.RawMessage
}

// Snapshot is one payload delivered by a feed at a point in time. Entries
// keep the document order of the stored JSON.
type Snapshot struct {
	Path    string
	Kind    SnapshotKind
	Entries []Entry
}

// AbsentSnapshot is what a path with no payload yields
func AbsentSnapshot(path string) Snapshot {
	return Snapshot{Path: path, Kind: SnapshotAbsent}
}

// IsEmpty reports whether there is nothing to normalize
func (s Snapshot) IsEmpty() bool {
	return len(s.Entries) == 0
}

// ParseSnapshot decodes raw JSON into a Snapshot. It never fails: scalar or
// undecodable payloads come back as SnapshotInvalid and the cause is
// returned alongside for diagnostics.
func ParseSnapshot(path string, raw []byte) (Snapshot, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return AbsentSnapshot(path), nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return Snapshot{Path: path, Kind: SnapshotInvalid}, fmt.Errorf("decode snapshot %q: %w", path, err)
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return Snapshot{Path: path, Kind: SnapshotInvalid}, fmt.Errorf("snapshot %q is a scalar (%T)", path, tok)
	}

	snap := Snapshot{Path: path}
	switch delim {
	case '{':
		snap.Kind = SnapshotMapping
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return Snapshot{Path: path, Kind: SnapshotInvalid}, fmt.Errorf("decode snapshot %q key: %w", path, err)
			}
			key, _ := keyTok.(string)
			var value json.RawMessage
			if err := dec.Decode(&value); err != nil {
				return Snapshot{Path: path, Kind: SnapshotInvalid}, fmt.Errorf("decode snapshot %q value %q: %w", path, key, err)
			}
			snap.Entries = append(snap.Entries, Entry{Key: key, Value: value})
		}
	case '[':
		snap.Kind = SnapshotList
		for i := 0; dec.More(); i++ {
			var value json.RawMessage
			if err := dec.Decode(&value); err != nil {
				return Snapshot{Path: path, Kind: SnapshotInvalid}, fmt.Errorf("decode snapshot %q index %d: %w", path, i, err)
			}
			// sparse lists come back with null holes
			if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
				continue
			}
			snap.Entries = append(snap.Entries, Entry{Key: strconv.Itoa(i), Value: value})
		}
	default:
		return Snapshot{Path: path, Kind: SnapshotInvalid}, fmt.Errorf("snapshot %q has unexpected delimiter %q", path, delim)
	}

	return snap, nil
}

// Append adds a child under key, turning an absent snapshot into a mapping.
// Appending to a list uses the index after the last one, holes included.
func (s *Snapshot) Append(key string, value json.RawMessage) {
	switch s.Kind {
	case SnapshotList:
		key = strconv.Itoa(s.listLen())
	case SnapshotMapping:
	default:
		s.Kind = SnapshotMapping
		s.Entries = nil
	}
	s.Entries = append(s.Entries, Entry{Key: key, Value: value})
}

// MarshalJSON writes the snapshot back in document order
func (s Snapshot) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	switch s.Kind {
	case SnapshotMapping:
		buf.WriteByte('{')
		for i, e := range s.Entries {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(e.Key)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(rawOrNull(e.Value))
		}
		buf.WriteByte('}')
	case SnapshotList:
		// holes are written back as null so every entry keeps its index
		buf.WriteByte('[')
		pos := 0
		for _, e := range s.Entries {
			idx := listIndex(e.Key, pos)
			for ; pos < idx; pos++ {
				if pos > 0 {
					buf.WriteByte(',')
				}
				buf.WriteString("null")
			}
			if pos > 0 {
				buf.WriteByte(',')
			}
			buf.Write(rawOrNull(e.Value))
			pos++
		}
		buf.WriteByte(']')
	default:
		buf.WriteString("null")
	}
	return buf.Bytes(), nil
}

// listLen is the length of a list snapshot counting its holes
func (s Snapshot) listLen() int {
	pos := 0
	for _, e := range s.Entries {
		pos = listIndex(e.Key, pos) + 1
	}
	return pos
}

// listIndex reads an entry key as a list index. Keys that are not an index
// at or after next take the next free slot.
func listIndex(key string, next int) int {
	idx, err := strconv.Atoi(key)
	if err != nil || idx < next {
		return next
	}
	return idx
}

func rawOrNull(v json.RawMessage) []byte {
	if len(bytes.TrimSpace(v)) == 0 {
		return []byte("null")
	}
	return v
}
