package normalize

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/portfolio-content-api/internal/models"
)

// record is one snapshot entry decoded as a JSON object
type record struct {
	id     string
	fields map[string]json.RawMessage
}

// records turns a snapshot into its object entries, in document order.
// Entries that are not objects are dropped and logged.
func (n *Normalizer) records(snap models.Snapshot) []record {
	switch snap.Kind {
	case models.SnapshotMapping, models.SnapshotList:
	case models.SnapshotAbsent:
		return nil
	default:
		n.log.Warn().Str("path", snap.Path).Str("kind", string(snap.Kind)).Msg("Unrecognized snapshot shape, treating as empty")
		return nil
	}

	out := make([]record, 0, len(snap.Entries))
	for _, e := range snap.Entries {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(e.Value, &fields); err != nil || fields == nil {
			n.log.Warn().Str("path", snap.Path).Str("key", e.Key).Msg("Dropping non-object record")
			continue
		}
		out = append(out, record{id: e.Key, fields: fields})
	}
	return out
}

func (r record) has(name string) bool {
	v, ok := r.fields[name]
	return ok && !isNull(v)
}

// status is the visibility flag, empty when missing or not a string
func (r record) status() string {
	return r.str("status")
}

// str reads a string field. Numbers and booleans keep their JSON text;
// anything else reads as empty.
func (r record) str(name string) string {
	return rawString(r.fields[name])
}

// number reads a JSON number or a numeric string. Non-finite values such as
// "NaN" or "Infinity" are unreadable.
func (r record) number(name string) (float64, bool) {
	raw, ok := r.fields[name]
	if !ok || isNull(raw) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f, true
		}
	}
	return 0, false
}

// strings reads a list of strings. Arrays, index-keyed objects and
// comma-separated strings are accepted; blank items are skipped.
func (r record) strings(name string) []string {
	raw, ok := r.fields[name]
	if !ok || isNull(raw) {
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}

	items := r.list(name)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if v := strings.TrimSpace(rawString(item.Value)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// list reads an array or index-keyed object field as ordered entries
func (r record) list(name string) []models.Entry {
	raw, ok := r.fields[name]
	if !ok {
		return nil
	}
	snap, err := models.ParseSnapshot(name, raw)
	if err != nil || snap.Kind == models.SnapshotInvalid {
		return nil
	}
	return snap.Entries
}

// stringMap reads a flat object of scalar values, e.g. a style position
func (r record) stringMap(name string) map[string]string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(r.fields[name], &fields); err != nil || len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		if s := rawString(v); s != "" {
			out[k] = s
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 || isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}
	switch trimmed[0] {
	case '{', '[', '"':
		return ""
	}
	// number or boolean literal
	return string(trimmed)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
