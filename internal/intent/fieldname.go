package intent

import "strings"

// Identifiers the platform reserves on every document; a generated fieldname
// may not collide with them.
var reservedFieldnames = map[string]bool{
	"name":        true,
	"owner":       true,
	"creation":    true,
	"modified":    true,
	"modified_by": true,
	"docstatus":   true,
	"parent":      true,
	"parentfield": true,
	"parenttype":  true,
	"idx":         true,
}

// Fieldname converts a human field label into its machine identifier:
// lower-cased, spaces to underscores, and a fixed "_field" suffix appended
// when the result collides with a reserved identifier. Deterministic, so a
// label always yields the same fieldname.
func Fieldname(label string) string {
	fieldname := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "_")
	if reservedFieldnames[fieldname] {
		fieldname += "_field"
	}
	return fieldname
}
