// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// VisibilityMap records, per field key, whether the section is switched on in the editor.
//
// A nil map means no visibility preferences were supplied and every field is visible.
// Once a map is supplied, a field is visible only when its key is set to true, with one
// exception: the name is implicitly on unless explicitly set to false.
type VisibilityMap map[string]bool

// Visible reports whether field should be considered for rendering at all.
func (v VisibilityMap) Visible(field string) bool {
	if v == nil {
		return true
	}
	on, ok := v[field]
	if !ok {
		return field == FieldFullName
	}
	return on
}

// Shows reports whether field is both visible and populated in data.
func (v VisibilityMap) Shows(data *ResumeData, field string) bool {
	return v.Visible(field) && data.Has(field)
}

// Clone returns an independent copy of the map. A nil map stays nil.
func (v VisibilityMap) Clone() VisibilityMap {
	if v == nil {
		return nil
	}
	out := make(VisibilityMap, len(v))
	for k, on := range v {
		out[k] = on
	}
	return out
}

// AllVisible returns a map with every known field switched on.
func AllVisible() VisibilityMap {
	v := make(VisibilityMap, len(AllFields))
	for _, f := range AllFields {
		v[f] = true
	}
	return v
}

// NoneVisible returns a map with every known field switched off, the name included.
func NoneVisible() VisibilityMap {
	v := make(VisibilityMap, len(AllFields))
	for _, f := range AllFields {
		v[f] = false
	}
	return v
}
