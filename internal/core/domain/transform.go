package domain

import (
	"strings"
	"time"
)

// SystemCreator is the fixed creator identity stamped on every transformed
// record. The server resolves the actual operator from the bearer token;
// this value only marks the record as CLI-captured.
const SystemCreator = "gramasurvey-cli"

// Transform converts a draft into the server-shaped record. It is pure and
// total: identity fields are always emitted with zero defaults, each of the
// survey sections is emitted only if it passes the presence predicate, and
// values of unexpected type coerce to their field default instead of
// failing. A malformed partial draft therefore still yields a syntactically
// valid record for its well-formed sections.
func Transform(d *Draft, now time.Time) Record {
	rec := make(Record, len(IdentityFields)+2+len(Sections))

	var identity map[string]any
	if d != nil {
		identity = d.Identity
	}
	for _, f := range IdentityFields {
		rec[f.Target] = coerce(identity[f.Source], f)
	}
	rec["survey_date"] = now.UTC().Format(time.RFC3339)
	rec["created_by"] = SystemCreator

	if d == nil {
		return rec
	}

	for i := range Sections {
		spec := &Sections[i]
		if spec.Repeatable {
			var out []map[string]any
			for _, item := range d.Items(spec.Key) {
				if SectionPresent(item, spec) {
					out = append(out, convertSection(item, spec))
				}
			}
			// An empty list is omitted entirely, never emitted as [].
			if len(out) > 0 {
				rec[spec.Target] = out
			}
		} else {
			obj := d.Object(spec.Key)
			if SectionPresent(obj, spec) {
				rec[spec.Target] = []map[string]any{convertSection(obj, spec)}
			}
		}
	}
	return rec
}

// SectionPresent is the presence predicate: a section (or one record of a
// repeatable section) is included if and only if at least one of its
// catalogued fields is non-zero after coercion. A section whose fields are
// all at their zero value is indistinguishable from one never filled in
// and is omitted.
func SectionPresent(fields map[string]any, spec *SectionSpec) bool {
	if len(fields) == 0 {
		return false
	}
	for _, f := range spec.Fields {
		if !isZero(coerce(fields[f.Source], f), f.Kind) {
			return true
		}
	}
	return false
}

// convertSection renames every catalogued field of src to its server key,
// coercing values as it goes. Fields outside the catalog are dropped.
func convertSection(src map[string]any, spec *SectionSpec) map[string]any {
	out := make(map[string]any, len(spec.Fields))
	for _, f := range spec.Fields {
		out[f.Target] = coerce(src[f.Source], f)
	}
	return out
}

// coerce converts a raw draft value to the field's wire type. Values of
// unexpected type become the field default. JSON decoding hands back
// float64 for every number, so numeric kinds accept float64 alongside the
// native Go types the reducer writes.
func coerce(v any, f FieldSpec) any {
	switch f.Kind {
	case KindBool:
		if b, ok := v.(bool); ok {
			return b
		}
		return false
	case KindInt:
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
		return 0
	case KindFloat:
		switch n := v.(type) {
		case float64:
			return n
		case float32:
			return float64(n)
		case int:
			return float64(n)
		case int64:
			return float64(n)
		}
		return 0.0
	case KindStringList:
		switch list := v.(type) {
		case []string:
			return strings.Join(list, ", ")
		case []any:
			parts := make([]string, 0, len(list))
			for _, item := range list {
				if s, ok := item.(string); ok {
					parts = append(parts, s)
				}
			}
			return strings.Join(parts, ", ")
		}
		return ""
	default:
		if s, ok := v.(string); ok {
			return s
		}
		return ""
	}
}

// isZero reports whether a coerced value equals its kind's default.
func isZero(v any, kind FieldKind) bool {
	switch kind {
	case KindBool:
		return v == false
	case KindInt:
		return v == 0
	case KindFloat:
		return v == 0.0
	default:
		return v == ""
	}
}
