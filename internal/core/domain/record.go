package domain

// Record is the server-shaped household record: flat snake_case identity
// fields plus, for each section that passed the presence predicate, an
// array of snake_cased objects under the section's target key. It is
// derived statelessly from a Draft and never mutated afterwards.
type Record map[string]any

// Section returns the array emitted for a server-side section key,
// or nil if the section was omitted.
func (r Record) Section(target string) []map[string]any {
	items, _ := r[target].([]map[string]any)
	return items
}

// HasSection reports whether a section key is present in the record.
func (r Record) HasSection(target string) bool {
	_, ok := r[target]
	return ok
}
