package intent

import "strings"

// Kind identifies one command family an instruction maps to.
type Kind string

const (
	KindUnknown                 Kind = "unknown"
	KindCreateDoctype           Kind = "create_doctype"
	KindCreateDepartment        Kind = "create_department"
	KindCreateUser              Kind = "create_user"
	KindCreatePRF               Kind = "create_prf"
	KindListPendingPRFs         Kind = "list_pending_prfs"
	KindCreateClaim             Kind = "create_claim"
	KindListClaims              Kind = "list_claims"
	KindCreateProject           Kind = "create_project"
	KindCreateVehicle           Kind = "create_vehicle"
	KindScheduleMaintenance     Kind = "schedule_maintenance"
	KindListAssets              Kind = "list_assets"
	KindAddInventoryItem        Kind = "add_inventory_item"
	KindAddSupplier             Kind = "add_supplier"
	KindCreateManagementFeeRule Kind = "create_management_fee_rule"
	KindCreateProfitSharingRule Kind = "create_profit_sharing_rule"
	KindCreateWorkflow          Kind = "create_workflow"
	KindCreateRole              Kind = "create_role"
	KindCreateNotification      Kind = "create_notification"
	KindCreateReminder          Kind = "create_reminder"
	KindCreateBOQEntry          Kind = "create_boq_entry"
	KindQueryBOQ                Kind = "query_boq"
	KindCreateContract          Kind = "create_contract"
	KindGenerateReport          Kind = "generate_report"
	KindListRecords             Kind = "list_records"
)

// trigger is one independent keyword test. Rules never exclude each other:
// an instruction that mentions both a department and a user activates both
// families and each is processed on its own.
type trigger struct {
	kind Kind
	test func(m string) bool
}

var triggers = []trigger{
	{KindCreateDoctype, func(m string) bool {
		return strings.Contains(m, "doctype") && containsAny(m, []string{"create", "new"})
	}},
	{KindCreateDepartment, func(m string) bool {
		return strings.Contains(m, "department") && containsAny(m, []string{"create", "add"})
	}},
	{KindCreateUser, func(m string) bool {
		return strings.Contains(m, "user") && containsAny(m, []string{"add", "create"})
	}},
	{KindCreatePRF, func(m string) bool {
		return strings.Contains(m, "prf") && containsAny(m, []string{"create", "submit"})
	}},
	{KindListPendingPRFs, func(m string) bool {
		return strings.Contains(m, "list") && strings.Contains(m, "pending prf")
	}},
	{KindCreateClaim, func(m string) bool {
		return strings.Contains(m, "claim") && containsAny(m, []string{"submit", "create"})
	}},
	{KindListClaims, func(m string) bool {
		return strings.Contains(m, "claim") && containsAny(m, []string{"due", "status", "list"})
	}},
	{KindCreateProject, func(m string) bool {
		return strings.Contains(m, "project") && containsAny(m, []string{"create", "assign"})
	}},
	{KindCreateVehicle, func(m string) bool {
		return vehicleish(m) && containsAny(m, []string{"add", "new vehicle"})
	}},
	{KindScheduleMaintenance, func(m string) bool {
		return vehicleish(m) && strings.Contains(m, "schedule") && strings.Contains(m, "maintenance")
	}},
	{KindListAssets, func(m string) bool {
		return strings.Contains(m, "list") && containsAny(m, []string{"vehicles", "assets"})
	}},
	{KindAddInventoryItem, func(m string) bool {
		return containsAny(m, []string{"inventory", "stock"}) && strings.Contains(m, "item")
	}},
	{KindAddSupplier, func(m string) bool {
		return strings.Contains(m, "supplier") && containsAny(m, []string{"add", "create", "new"})
	}},
	{KindCreateManagementFeeRule, func(m string) bool {
		return strings.Contains(m, "management fee")
	}},
	{KindCreateProfitSharingRule, func(m string) bool {
		return containsAny(m, []string{"profit sharing", "profit rule"})
	}},
	{KindCreateWorkflow, func(m string) bool {
		return containsAny(m, []string{"approval workflow", "create workflow"})
	}},
	{KindCreateRole, func(m string) bool {
		return strings.Contains(m, "create") && strings.Contains(m, "role") &&
			!strings.Contains(m, "profit")
	}},
	{KindCreateNotification, func(m string) bool {
		return containsAny(m, []string{"notify", "send email"})
	}},
	{KindCreateReminder, func(m string) bool {
		return strings.Contains(m, "reminder")
	}},
	{KindCreateBOQEntry, func(m string) bool {
		return strings.Contains(m, "boq") && containsAny(m, []string{"create", "add"})
	}},
	{KindQueryBOQ, func(m string) bool {
		return strings.Contains(m, "boq") && containsAny(m, []string{"balance", "list"})
	}},
	{KindCreateContract, func(m string) bool {
		return strings.Contains(m, "contract") && containsAny(m, []string{"create", "generate", "new"})
	}},
	{KindGenerateReport, func(m string) bool {
		return containsAny(m, []string{"dashboard", "report", "summary"})
	}},
	{KindListRecords, func(m string) bool {
		return strings.Contains(m, "list") && strings.Contains(m, "records")
	}},
}

// Detect returns every command family whose trigger fires, in a fixed order.
// An empty result is not an error; the caller decides what to surface.
func Detect(message string) []Kind {
	m := strings.ToLower(strings.TrimSpace(message))
	if m == "" {
		return nil
	}
	var kinds []Kind
	for _, t := range triggers {
		if t.test(m) {
			kinds = append(kinds, t.kind)
		}
	}
	return kinds
}

func vehicleish(m string) bool {
	return strings.Contains(m, "vehicle") || strings.Contains(m, "asset")
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
