package erpnext

import (
	"context"
	"fmt"
	"sort"
)

// Thin typed wrappers over the generic client, one per ERP operation the
// assistant dispatches. Payload shapes are part of the ERP's interface.

func CreateDoctype(ctx context.Context, c Client, name string, fields []DocField) (Response, error) {
	return c.Create(ctx, "DocType", Doctype{
		Doctype: "DocType",
		Name:    name,
		Module:  "Custom",
		Custom:  1,
		Fields:  fields,
	})
}

// ListDoctypes fetches the browsable doctype names, skipping singles, child
// tables and framework modules.
func ListDoctypes(ctx context.Context, c Client) ([]string, error) {
	resp, err := c.Method(ctx, "frappe.client.get_list", map[string]any{
		"doctype":           "DocType",
		"fields":            []string{"name", "module", "issingle", "istable", "custom"},
		"limit_page_length": 999,
	})
	if err != nil {
		return nil, err
	}
	rows, ok := resp["message"].([]any)
	if !ok {
		return nil, fmt.Errorf("doctype listing: unexpected response shape")
	}
	hidden := map[string]bool{"Core": true, "Custom": true, "Email": true, "Workflow": true, "Website": true}
	var names []string
	for _, r := range rows {
		row, ok := r.(map[string]any)
		if !ok {
			continue
		}
		if truthy(row["issingle"]) || truthy(row["istable"]) {
			continue
		}
		if mod, _ := row["module"].(string); hidden[mod] {
			continue
		}
		if name, _ := row["name"].(string); name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	}
	return false
}

func CreateDepartment(ctx context.Context, c Client, name, company, parent string) (Response, error) {
	return c.Create(ctx, "Department", Department{
		Doctype:          "Department",
		DepartmentName:   name,
		Company:          company,
		Department:       name,
		ParentDepartment: parent,
	})
}

func CreateUser(ctx context.Context, c Client, firstName, email string) (Response, error) {
	return c.Create(ctx, "User", User{
		Doctype:     "User",
		FirstName:   firstName,
		Email:       email,
		Enabled:     1,
		NewPassword: "password123",
	})
}

func AssignRole(ctx context.Context, c Client, userEmail, roleName string) (Response, error) {
	return c.Method(ctx, "frappe.core.doctype.user.user.add_role", map[string]any{
		"user": userEmail,
		"role": roleName,
	})
}

func CreateWorkflow(ctx context.Context, c Client, name, documentType string, states []WorkflowState, transitions []WorkflowTransition) (Response, error) {
	return c.Create(ctx, "Workflow", Workflow{
		Doctype:            "Workflow",
		WorkflowName:       name,
		DocumentType:       documentType,
		IsActive:           1,
		WorkflowStateField: "workflow_state",
		States:             states,
		Transitions:        transitions,
	})
}

func CreateRole(ctx context.Context, c Client, roleName string) (Response, error) {
	return c.Create(ctx, "Role", Role{Doctype: "Role", RoleName: roleName})
}

func SetPermission(ctx context.Context, c Client, doctype, role string, read, write, create int) (Response, error) {
	return c.Create(ctx, "Custom DocPerm", DocPerm{
		Doctype:    "Custom DocPerm",
		ParentType: "DocType",
		Parent:     doctype,
		Role:       role,
		Read:       read,
		Write:      write,
		Create:     create,
	})
}

func CreateNotification(ctx context.Context, c Client, subject, documentType, condition, message string) (Response, error) {
	return c.Create(ctx, "Notification", Notification{
		Doctype:          "Notification",
		Subject:          subject,
		DocumentType:     documentType,
		Event:            "Value Change",
		Condition:        condition,
		RecipientByField: "owner",
		Message:          message,
	})
}

func CreateReminder(ctx context.Context, c Client, doctype, condition, message, cron string) (Response, error) {
	return c.Create(ctx, "Auto Repeat", Reminder{
		Doctype:          "Auto Repeat",
		ReferenceDoctype: doctype,
		CronExpression:   cron,
		Status:           "Active",
		NotifyByEmail:    1,
		Subject:          fmt.Sprintf("Reminder for %s", doctype),
		Message:          message,
		Filters:          condition,
	})
}

func CreateManagementFeeRule(ctx context.Context, c Client, department string, fee float64) (Response, error) {
	return c.Create(ctx, "Management Fee Rule", ManagementFeeRule{
		Doctype:    "Management Fee Rule",
		Department: department,
		MonthlyFee: fee,
	})
}

func CreateProfitSharingRule(ctx context.Context, c Client, department, role string, percentage float64) (Response, error) {
	return c.Create(ctx, "Profit Sharing Rule", ProfitSharingRule{
		Doctype:          "Profit Sharing Rule",
		Department:       department,
		Role:             role,
		ProfitPercentage: percentage,
	})
}

func CreatePRF(ctx context.Context, c Client, project, itemName string, quantity float64) (Response, error) {
	return c.Create(ctx, "Purchase Request", PRF{
		Doctype:  "Purchase Request",
		Project:  project,
		ItemName: itemName,
		Quantity: quantity,
		Status:   "Draft",
	})
}

// PendingPRFs lists Draft/Open purchase requests, optionally for one department.
func PendingPRFs(ctx context.Context, c Client, department string) ([]map[string]any, error) {
	filters := []Filter{In("Purchase Request", "status", "Draft", "Open")}
	if department != "" {
		filters = append(filters, Eq("Purchase Request", "department", department))
	}
	return c.Records(ctx, "Purchase Request", filters)
}

func CreateClaim(ctx context.Context, c Client, projectName, claimName string, amount float64) (Response, error) {
	return c.Create(ctx, "Project Claim", Claim{
		Doctype:     "Project Claim",
		ProjectName: projectName,
		ClaimName:   claimName,
		Amount:      amount,
		Status:      "Draft",
	})
}

func Claims(ctx context.Context, c Client, projectName, status string) ([]map[string]any, error) {
	var filters []Filter
	if projectName != "" {
		filters = append(filters, Eq("Project Claim", "project_name", projectName))
	}
	if status != "" {
		filters = append(filters, Eq("Project Claim", "status", status))
	}
	return c.Records(ctx, "Project Claim", filters)
}

func CreateProject(ctx context.Context, c Client, name, expectedEndDate string, estimatedCost float64) (Response, error) {
	return c.Create(ctx, "Project", Project{
		Doctype:         "Project",
		ProjectName:     name,
		ProjectType:     "External",
		Status:          "Open",
		ExpectedEndDate: expectedEndDate,
		EstimatedCost:   estimatedCost,
	})
}

// AssignProjectRoles updates a project's team member table. The project must
// already exist; a missing project is a failure response, not an error.
func AssignProjectRoles(ctx context.Context, c Client, projectName string, userRolePairs [][2]string) (Response, error) {
	exists, err := c.Exists(ctx, "Project", projectName)
	if err != nil {
		return nil, err
	}
	if !exists {
		return Response{"error": fmt.Sprintf("project %q not found", projectName)}, nil
	}
	team := make([]TeamMember, 0, len(userRolePairs))
	for _, pair := range userRolePairs {
		team = append(team, TeamMember{Doctype: "Project Team", User: pair[0], Role: pair[1]})
	}
	return c.Update(ctx, "Project", projectName, map[string]any{
		"project_name": projectName,
		"team_members": team,
	})
}

func AddVehicle(ctx context.Context, c Client, vehicleName, department string) (Response, error) {
	return c.Create(ctx, "Asset", Asset{
		Doctype:       "Asset",
		AssetName:     vehicleName,
		AssetCategory: "Vehicle",
		Department:    department,
		Status:        "Active",
	})
}

func ScheduleMaintenance(ctx context.Context, c Client, vehicleName string, intervalMonths int) (Response, error) {
	return c.Create(ctx, "Maintenance Schedule", MaintenanceSchedule{
		Doctype:     "Maintenance Schedule",
		AssetName:   vehicleName,
		Periodicity: fmt.Sprintf("%d Months", intervalMonths),
		Status:      "Planned",
	})
}

func Assets(ctx context.Context, c Client) ([]map[string]any, error) {
	return c.Records(ctx, "Asset", nil)
}

func AddInventoryItem(ctx context.Context, c Client, itemName string, quantity int, department string) (Response, error) {
	return c.Create(ctx, "Item", Item{
		Doctype:          "Item",
		ItemName:         itemName,
		OpeningStock:     quantity,
		StockUOM:         "Nos",
		DefaultWarehouse: department,
	})
}

func AddSupplier(ctx context.Context, c Client, supplierName, contactNumber string) (Response, error) {
	return c.Create(ctx, "Supplier", Supplier{
		Doctype:       "Supplier",
		SupplierName:  supplierName,
		SupplierGroup: "All Supplier Groups",
		SupplierType:  "Company",
		ContactNumber: contactNumber,
	})
}

func CreateBOQEntry(ctx context.Context, c Client, itemName string, quantity, price float64) (Response, error) {
	return c.Create(ctx, "Project BOQ", BOQEntry{
		Doctype:         "Project BOQ",
		ItemDescription: itemName,
		Quantity:        quantity,
		BudgetAmountRM:  price,
	})
}

func BOQRecords(ctx context.Context, c Client, projectName string) ([]map[string]any, error) {
	var filters []Filter
	if projectName != "" {
		filters = append(filters, Eq("Project BOQ", "project_name", projectName))
	}
	return c.Records(ctx, "Project BOQ", filters)
}

func CreateContract(ctx context.Context, c Client, employeeName string, monthlySalary float64, startDate string) (Response, error) {
	return c.Create(ctx, "Employment Contract", EmploymentContract{
		Doctype:       "Employment Contract",
		EmployeeName:  employeeName,
		MonthlySalary: monthlySalary,
		StartDate:     startDate,
		Status:        "Active",
	})
}

// SummaryCounts fetches record counts for the summary report. Collections
// that cannot be fetched report -1 rather than aborting the whole summary.
func SummaryCounts(ctx context.Context, c Client) map[string]int {
	summary := make(map[string]int, 4)
	for label, doctype := range map[string]string{
		"total_prfs":     "PRF",
		"total_claims":   "Claim",
		"total_expenses": "Expense Claim",
		"total_projects": "Project",
	} {
		records, err := c.Records(ctx, doctype, nil)
		if err != nil {
			summary[label] = -1
			continue
		}
		summary[label] = len(records)
	}
	return summary
}
