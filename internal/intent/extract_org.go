package intent

import (
	"regexp"
	"strings"
)

// Extraction rules for departments, users, roles and custom doctypes. Each
// rule is one named function so its failure modes can be pinned down in
// isolation; several are deliberately loose and keep the source behavior of
// grabbing the first plausible token (see the tests for the misfire cases).

var (
	departmentRe = regexp.MustCompile(`(?i)department\s+(?:named|called)?\s*(\w+)`)

	// The optional named/called prefix makes this match the first word of
	// the text when the expected template is absent.
	userNameRe       = regexp.MustCompile(`(?i)(?:named|called)?\s*(\w+)`)
	userDepartmentRe = regexp.MustCompile(`(?i)to\s+(.*?)\s+as`)
	userRoleRe       = regexp.MustCompile(`(?i)as\s+(.*)`)

	roleNameRe       = regexp.MustCompile(`(?i)create\s+a\s+(.*?)\s+role`)
	roleAllowedRe    = regexp.MustCompile(`(?i)allows?\s+access\s+to\s+(.*?)(?:$|,|but)`)
	roleRestrictedRe = regexp.MustCompile(`(?i)not\s+access\s+(.*?)(?:$|,|and)`)
	doctypeSplitRe   = regexp.MustCompile(`,|and`)

	doctypeNameRe   = regexp.MustCompile(`(?i)(?:called|named)\s+(.+?)\s+(?:with\s+fields|having\s+fields)`)
	doctypeFieldsRe = regexp.MustCompile(`(?i)fields[:\s]+(.+)`)
	docFieldRe      = regexp.MustCompile(`(.+?)\s*\((.+?)\)`)

	pendingDeptRe = regexp.MustCompile(`for\s+([\w\s]+?)\s+department`)
)

// ExtractDepartment pulls the department name following "department
// [named|called]". No parent is ever extracted; the validator supplies the
// default parent.
func ExtractDepartment(text string) DepartmentFields {
	f := DepartmentFields{}
	if m := departmentRe.FindStringSubmatch(text); m != nil {
		f.Name = strp(title(strings.TrimSpace(m[1])))
	}
	return f
}

// ExtractUserAssignment parses phrasing like "Add a user named Ali to
// Interior Design as HOD".
func ExtractUserAssignment(text string) UserFields {
	f := UserFields{}
	if m := userNameRe.FindStringSubmatch(text); m != nil {
		f.Name = strp(title(strings.TrimSpace(m[1])))
	}
	if m := userDepartmentRe.FindStringSubmatch(text); m != nil {
		f.Department = strp(title(strings.TrimSpace(m[1])))
	}
	if m := userRoleRe.FindStringSubmatch(text); m != nil {
		f.Role = strp(title(strings.TrimSpace(m[1])))
	}
	return f
}

// ExtractRolePermissions parses "Create a Finance role that only allows
// access to Claims but not Projects".
func ExtractRolePermissions(text string) RoleFields {
	f := RoleFields{Name: "New Role"}
	if m := roleNameRe.FindStringSubmatch(text); m != nil {
		f.Name = title(strings.TrimSpace(m[1]))
	}
	if m := roleAllowedRe.FindStringSubmatch(text); m != nil {
		f.Allowed = splitDoctypeList(m[1])
	}
	if m := roleRestrictedRe.FindStringSubmatch(text); m != nil {
		f.Restricted = splitDoctypeList(m[1])
	}
	return f
}

func splitDoctypeList(raw string) []string {
	var out []string
	for _, part := range doctypeSplitRe.Split(raw, -1) {
		name := strings.TrimRight(strings.TrimSpace(part), "s")
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// ExtractDoctype parses "Create a Doctype called X with fields A (Data),
// B (Int)". Field labels become machine fieldnames via Fieldname.
func ExtractDoctype(text string) DoctypeFields {
	f := DoctypeFields{Name: "UnnamedDoctype"}
	if m := doctypeNameRe.FindStringSubmatch(text); m != nil {
		f.Name = strings.TrimSpace(m[1])
	}
	if m := doctypeFieldsRe.FindStringSubmatch(text); m != nil {
		for _, raw := range strings.Split(m[1], ",") {
			fm := docFieldRe.FindStringSubmatch(strings.TrimSpace(raw))
			if fm == nil {
				continue
			}
			label := strings.TrimSpace(fm[1])
			f.Fields = append(f.Fields, DocField{
				Label:     label,
				Fieldname: Fieldname(label),
				Fieldtype: strings.TrimSpace(fm[2]),
			})
		}
	}
	return f
}

// ExtractPendingPRFDepartment finds an optional department filter in a
// pending-PRF listing request.
func ExtractPendingPRFDepartment(text string) DepartmentFields {
	f := DepartmentFields{}
	if m := pendingDeptRe.FindStringSubmatch(strings.ToLower(text)); m != nil {
		f.Name = strp(title(strings.TrimSpace(m[1])))
	}
	return f
}
