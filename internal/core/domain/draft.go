package domain

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Draft is the single in-progress survey for one household. Identity holds
// the flat household scalars keyed by their client-side camelCase names;
// Sections holds singular sections as objects and repeatable sections as
// slices of objects, keyed by section key.
//
// A Draft serialises flat: identity keys and section keys all appear at the
// top level of the JSON object, alongside the locally generated draftId.
type Draft struct {
	// ID is a device-local identifier, also sent as the idempotency key
	// when the draft is pushed.
	ID       string
	Identity map[string]any
	Sections map[string]any
}

// NewDraft creates an empty draft with a fresh identifier.
func NewDraft() *Draft {
	return &Draft{
		ID:       uuid.NewString(),
		Identity: make(map[string]any),
		Sections: make(map[string]any),
	}
}

// SetField sets one field of the draft. An empty section (or "household")
// addresses the identity block; otherwise section must name a singular
// section. Keys are validated against the catalog.
func (d *Draft) SetField(section, fieldKey string, value any) error {
	if section == "" || section == "household" {
		if _, ok := IdentityField(fieldKey); !ok {
			return fmt.Errorf("%w: unknown identity field %q", ErrUnknownField, fieldKey)
		}
		d.Identity[fieldKey] = value
		return nil
	}

	spec, ok := SectionByKey(section)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	if spec.Repeatable {
		return fmt.Errorf("%w: section %q is repeatable, use SetItemField", ErrInvalidInput, section)
	}
	if _, ok := spec.Field(fieldKey); !ok {
		return fmt.Errorf("%w: %q has no field %q", ErrUnknownField, section, fieldKey)
	}

	obj, _ := d.Sections[section].(map[string]any)
	if obj == nil {
		obj = make(map[string]any)
		d.Sections[section] = obj
	}
	obj[fieldKey] = value
	return nil
}

// AppendItem appends an empty record to a repeatable section and returns
// its index.
func (d *Draft) AppendItem(section string) (int, error) {
	spec, ok := SectionByKey(section)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	if !spec.Repeatable {
		return 0, fmt.Errorf("%w: section %q is not repeatable", ErrInvalidInput, section)
	}
	items, _ := d.Sections[section].([]map[string]any)
	items = append(items, make(map[string]any))
	d.Sections[section] = items
	return len(items) - 1, nil
}

// SetItemField sets one field of record index in a repeatable section.
func (d *Draft) SetItemField(section string, index int, fieldKey string, value any) error {
	spec, ok := SectionByKey(section)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	if !spec.Repeatable {
		return fmt.Errorf("%w: section %q is not repeatable", ErrInvalidInput, section)
	}
	if _, ok := spec.Field(fieldKey); !ok {
		return fmt.Errorf("%w: %q has no field %q", ErrUnknownField, section, fieldKey)
	}
	items, _ := d.Sections[section].([]map[string]any)
	if index < 0 || index >= len(items) {
		return fmt.Errorf("%w: %s[%d] out of range", ErrInvalidInput, section, index)
	}
	items[index][fieldKey] = value
	return nil
}

// Object returns the singular section's fields, or nil if untouched.
func (d *Draft) Object(section string) map[string]any {
	obj, _ := d.Sections[section].(map[string]any)
	return obj
}

// Items returns the repeatable section's records, or nil if untouched.
func (d *Draft) Items(section string) []map[string]any {
	items, _ := d.Sections[section].([]map[string]any)
	return items
}

// IsEmpty reports whether the draft carries no data at all.
func (d *Draft) IsEmpty() bool {
	if d == nil {
		return true
	}
	return len(d.Identity) == 0 && len(d.Sections) == 0
}

// Clone returns a deep copy of the draft.
func (d *Draft) Clone() *Draft {
	c := &Draft{
		ID:       d.ID,
		Identity: make(map[string]any, len(d.Identity)),
		Sections: make(map[string]any, len(d.Sections)),
	}
	for k, v := range d.Identity {
		c.Identity[k] = v
	}
	for k, v := range d.Sections {
		switch val := v.(type) {
		case map[string]any:
			obj := make(map[string]any, len(val))
			for fk, fv := range val {
				obj[fk] = fv
			}
			c.Sections[k] = obj
		case []map[string]any:
			items := make([]map[string]any, len(val))
			for i, it := range val {
				obj := make(map[string]any, len(it))
				for fk, fv := range it {
					obj[fk] = fv
				}
				items[i] = obj
			}
			c.Sections[k] = items
		default:
			c.Sections[k] = v
		}
	}
	return c
}

// MarshalJSON serialises the draft flat: draftId, identity keys and section
// keys all at the top level, matching the capture form's shape.
func (d *Draft) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, 1+len(d.Identity)+len(d.Sections))
	if d.ID != "" {
		out["draftId"] = d.ID
	}
	for k, v := range d.Identity {
		out[k] = v
	}
	for k, v := range d.Sections {
		out[k] = v
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores a flat draft object, routing known identity keys
// to the identity block and known section keys to their sections. Unknown
// keys are dropped rather than rejected, so drafts written by newer form
// versions still load.
func (d *Draft) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.Identity = make(map[string]any)
	d.Sections = make(map[string]any)

	for key, msg := range raw {
		if key == "draftId" {
			var id string
			if err := json.Unmarshal(msg, &id); err == nil {
				d.ID = id
			}
			continue
		}
		if _, ok := IdentityField(key); ok {
			var v any
			if err := json.Unmarshal(msg, &v); err != nil {
				return fmt.Errorf("decode identity field %q: %w", key, err)
			}
			d.Identity[key] = v
			continue
		}
		spec, ok := SectionByKey(key)
		if !ok {
			continue
		}
		if spec.Repeatable {
			var items []map[string]any
			if err := json.Unmarshal(msg, &items); err != nil {
				return fmt.Errorf("decode section %q: %w", key, err)
			}
			d.Sections[key] = items
		} else {
			var obj map[string]any
			if err := json.Unmarshal(msg, &obj); err != nil {
				return fmt.Errorf("decode section %q: %w", key, err)
			}
			d.Sections[key] = obj
		}
	}

	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
