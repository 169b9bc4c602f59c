package intent

import (
	"fmt"
	"strings"
)

// Disposition says what may happen to a command after validation.
type Disposition string

const (
	// Ready commands may be dispatched immediately.
	Ready Disposition = "ready"
	// NeedsConfirmation commands are complete but must be acknowledged by
	// the user before dispatch.
	NeedsConfirmation Disposition = "needs_confirmation"
	// Rejected commands are missing required fields and are never dispatched.
	Rejected Disposition = "rejected"
)

// Validated is a command that has been through required-field checks.
// Defaults allowed by the field table are applied here, never inside the
// extractors.
type Validated struct {
	Kind        Kind
	Fields      Fields
	Disposition Disposition
	// Missing names the absent required fields when Rejected.
	Missing []string
}

func (v Validated) Reason() string {
	if v.Disposition != Rejected {
		return ""
	}
	return fmt.Sprintf("missing required field(s): %s", strings.Join(v.Missing, ", "))
}

// Intents whose dispatch creates records the user must acknowledge first.
var confirmable = map[Kind]bool{
	KindCreateVehicle:       true,
	KindScheduleMaintenance: true,
	KindAddInventoryItem:    true,
	KindAddSupplier:         true,
	KindCreateContract:      true,
}

// Validate checks the required-field set for the intent and applies the
// permitted defaults. All required fields present yields Ready (or
// NeedsConfirmation for acknowledged-only intents); any missing field yields
// Rejected naming every absent field.
func Validate(kind Kind, fields Fields) Validated {
	v := Validated{Kind: kind, Fields: fields}
	switch f := fields.(type) {
	case DepartmentFields:
		if kind == KindCreateDepartment {
			requireStr(&v, "department_name", f.Name)
			if f.Parent == nil {
				f.Parent = strp("Management")
				v.Fields = f
			}
		}
	case UserFields:
		requireStr(&v, "user_name", f.Name)
		if f.Role == nil {
			f.Role = strp("Employee")
			v.Fields = f
		}
	case FinancialFields:
		switch kind {
		case KindCreateManagementFeeRule:
			requireStr(&v, "department", f.Department)
			requireNum(&v, "amount", f.Amount)
		case KindCreateProfitSharingRule:
			requireStr(&v, "role", f.Role)
			requireNum(&v, "amount", f.Amount)
			if f.Department == nil {
				f.Department = strp("General")
				v.Fields = f
			}
		}
	case PRFFields:
		requireStr(&v, "project_name", f.Project)
		requireStr(&v, "item_name", f.Item)
		requireNum(&v, "quantity", f.Quantity)
	case ClaimFields:
		if kind == KindCreateClaim {
			requireStr(&v, "project_name", f.Project)
			requireStr(&v, "claim_name", f.Claim)
			requireNum(&v, "amount", f.Amount)
		}
	case ProjectFields:
		requireStr(&v, "project_name", f.Name)
	case VehicleFields:
		requireStr(&v, "vehicle_name", f.Vehicle)
		if kind == KindScheduleMaintenance {
			if f.IntervalMonths == nil {
				v.Missing = append(v.Missing, "maintenance_interval_months")
			}
		}
	case InventoryFields:
		switch kind {
		case KindAddInventoryItem:
			requireStr(&v, "item_name", f.Item)
			if f.Quantity == nil {
				v.Missing = append(v.Missing, "quantity")
			}
		case KindAddSupplier:
			requireStr(&v, "supplier_name", f.Supplier)
		}
	case WorkflowFields:
		if len(distinct(f.Roles)) < 2 {
			v.Missing = append(v.Missing, "roles")
		}
	case ContractFields:
		requireStr(&v, "employee_name", f.Employee)
		requireNum(&v, "monthly_salary", f.Salary)
		requireStr(&v, "start_date", f.StartDate)
	}

	if len(v.Missing) > 0 {
		v.Disposition = Rejected
		return v
	}
	if confirmable[kind] {
		v.Disposition = NeedsConfirmation
		return v
	}
	v.Disposition = Ready
	return v
}

func requireStr(v *Validated, name string, value *string) {
	if value == nil || strings.TrimSpace(*value) == "" {
		v.Missing = append(v.Missing, name)
	}
}

func requireNum(v *Validated, name string, value *float64) {
	if value == nil {
		v.Missing = append(v.Missing, name)
	}
}

func distinct(roles []string) []string {
	seen := make(map[string]bool, len(roles))
	var out []string
	for _, r := range roles {
		key := strings.ToLower(strings.TrimSpace(r))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
