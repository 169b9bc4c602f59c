package assistant

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"erp-assistant-backend/internal/erpnext"
	"erp-assistant-backend/internal/intent"
)

// Dispatch executes one validated command against the ERP. Multi-step
// commands stop at the first failed step and report which step failed;
// earlier steps are not rolled back.
func (a *Assistant) Dispatch(ctx context.Context, v intent.Validated) Outcome {
	out := a.dispatch(ctx, v)
	if !out.OK {
		a.Log.Warn("command failed",
			zap.String("intent", string(v.Kind)),
			zap.String("detail", out.Detail))
	}
	return out
}

func (a *Assistant) dispatch(ctx context.Context, v intent.Validated) Outcome {
	switch v.Kind {
	case intent.KindCreateDoctype:
		f := v.Fields.(intent.DoctypeFields)
		resp, err := erpnext.CreateDoctype(ctx, a.Client, f.Name, docFields(f.Fields))
		return a.created(v.Kind, resp, err, fmt.Sprintf("Doctype %q created.", f.Name))

	case intent.KindCreateDepartment:
		f := v.Fields.(intent.DepartmentFields)
		resp, err := erpnext.CreateDepartment(ctx, a.Client, deref(f.Name), a.Company, deref(f.Parent))
		return a.created(v.Kind, resp, err, fmt.Sprintf("Department %q created under %q.", deref(f.Name), deref(f.Parent)))

	case intent.KindCreateUser:
		return a.dispatchUser(ctx, v.Fields.(intent.UserFields))

	case intent.KindCreateManagementFeeRule:
		f := v.Fields.(intent.FinancialFields)
		resp, err := erpnext.CreateManagementFeeRule(ctx, a.Client, deref(f.Department), derefNum(f.Amount))
		return a.created(v.Kind, resp, err,
			fmt.Sprintf("Management fee of RM %.2f applied to %s.", derefNum(f.Amount), deref(f.Department)))

	case intent.KindCreateProfitSharingRule:
		f := v.Fields.(intent.FinancialFields)
		resp, err := erpnext.CreateProfitSharingRule(ctx, a.Client, deref(f.Department), deref(f.Role), derefNum(f.Amount))
		return a.created(v.Kind, resp, err,
			fmt.Sprintf("Profit sharing of %.0f%% to %s recorded.", derefNum(f.Amount), deref(f.Role)))

	case intent.KindCreatePRF:
		f := v.Fields.(intent.PRFFields)
		resp, err := erpnext.CreatePRF(ctx, a.Client, deref(f.Project), deref(f.Item), derefNum(f.Quantity))
		return a.created(v.Kind, resp, err,
			fmt.Sprintf("PRF for %s (%s x %.0f) submitted.", deref(f.Project), deref(f.Item), derefNum(f.Quantity)))

	case intent.KindListPendingPRFs:
		f := v.Fields.(intent.DepartmentFields)
		rows, err := erpnext.PendingPRFs(ctx, a.Client, deref(f.Name))
		return a.listed(v.Kind, "pending PRFs", rows, err)

	case intent.KindCreateClaim:
		f := v.Fields.(intent.ClaimFields)
		resp, err := erpnext.CreateClaim(ctx, a.Client, deref(f.Project), deref(f.Claim), derefNum(f.Amount))
		return a.created(v.Kind, resp, err,
			fmt.Sprintf("Claim %q for %s submitted.", deref(f.Claim), deref(f.Project)))

	case intent.KindListClaims:
		f := v.Fields.(intent.ClaimFields)
		rows, err := erpnext.Claims(ctx, a.Client, deref(f.Project), "")
		return a.listed(v.Kind, "claims", rows, err)

	case intent.KindCreateProject:
		return a.dispatchProject(ctx, v.Fields.(intent.ProjectFields))

	case intent.KindCreateVehicle:
		f := v.Fields.(intent.VehicleFields)
		resp, err := erpnext.AddVehicle(ctx, a.Client, deref(f.Vehicle), deref(f.Department))
		return a.created(v.Kind, resp, err, fmt.Sprintf("Vehicle %q registered.", deref(f.Vehicle)))

	case intent.KindScheduleMaintenance:
		f := v.Fields.(intent.VehicleFields)
		resp, err := erpnext.ScheduleMaintenance(ctx, a.Client, deref(f.Vehicle), derefInt(f.IntervalMonths))
		return a.created(v.Kind, resp, err,
			fmt.Sprintf("Maintenance for %q scheduled every %d months.", deref(f.Vehicle), derefInt(f.IntervalMonths)))

	case intent.KindListAssets:
		rows, err := erpnext.Assets(ctx, a.Client)
		return a.listed(v.Kind, "assets", rows, err)

	case intent.KindAddInventoryItem:
		f := v.Fields.(intent.InventoryFields)
		resp, err := erpnext.AddInventoryItem(ctx, a.Client, deref(f.Item), derefInt(f.Quantity), deref(f.Department))
		return a.created(v.Kind, resp, err,
			fmt.Sprintf("Item %q added with opening stock %d.", deref(f.Item), derefInt(f.Quantity)))

	case intent.KindAddSupplier:
		f := v.Fields.(intent.InventoryFields)
		resp, err := erpnext.AddSupplier(ctx, a.Client, deref(f.Supplier), deref(f.Contact))
		return a.created(v.Kind, resp, err, fmt.Sprintf("Supplier %q added.", deref(f.Supplier)))

	case intent.KindCreateWorkflow:
		return a.dispatchWorkflow(ctx, v.Fields.(intent.WorkflowFields))

	case intent.KindCreateRole:
		return a.dispatchRole(ctx, v.Fields.(intent.RoleFields))

	case intent.KindCreateNotification:
		f := v.Fields.(intent.NotificationFields)
		resp, err := erpnext.CreateNotification(ctx, a.Client, f.Subject, f.DocumentType, f.Condition, f.Message)
		return a.created(v.Kind, resp, err, fmt.Sprintf("Notification %q set up.", f.Subject))

	case intent.KindCreateReminder:
		f := v.Fields.(intent.ReminderFields)
		resp, err := erpnext.CreateReminder(ctx, a.Client, f.DocumentType, f.Condition, f.Message, f.Cron)
		return a.created(v.Kind, resp, err, fmt.Sprintf("Recurring reminder for %s created.", f.DocumentType))

	case intent.KindCreateBOQEntry:
		f := v.Fields.(intent.BOQFields)
		resp, err := erpnext.CreateBOQEntry(ctx, a.Client, deref(f.Item), derefNum(f.Quantity), derefNum(f.Price))
		return a.created(v.Kind, resp, err, fmt.Sprintf("BOQ entry %q recorded.", deref(f.Item)))

	case intent.KindQueryBOQ:
		f := v.Fields.(intent.BOQQueryFields)
		rows, err := erpnext.BOQRecords(ctx, a.Client, deref(f.Project))
		return a.listed(v.Kind, "BOQ entries", rows, err)

	case intent.KindCreateContract:
		f := v.Fields.(intent.ContractFields)
		resp, err := erpnext.CreateContract(ctx, a.Client, deref(f.Employee), derefNum(f.Salary), deref(f.StartDate))
		return a.created(v.Kind, resp, err, fmt.Sprintf("Employment contract for %s created.", deref(f.Employee)))

	case intent.KindGenerateReport:
		f := v.Fields.(intent.DashboardFields)
		summary := erpnext.SummaryCounts(ctx, a.Client)
		payload := map[string]any{"summary": summary}
		if f.Audience != nil {
			payload["audience"] = *f.Audience
		}
		if f.Frequency != nil {
			payload["frequency"] = *f.Frequency
		}
		return Outcome{Kind: intent.KindGenerateReport, OK: true, Message: "Summary report generated.", Payload: payload}

	case intent.KindListRecords:
		names, err := erpnext.ListDoctypes(ctx, a.Client)
		if err != nil {
			return Outcome{Kind: v.Kind, Message: "Could not fetch record types.", Detail: err.Error()}
		}
		return Outcome{
			Kind:    v.Kind,
			OK:      true,
			Message: fmt.Sprintf("%d record types available.", len(names)),
			Payload: map[string]any{"doctypes": names},
		}
	}

	return Outcome{Kind: v.Kind, Message: "This command is not supported."}
}

// dispatchUser creates the account, then assigns the role. A failed create
// skips the role step entirely.
func (a *Assistant) dispatchUser(ctx context.Context, f intent.UserFields) Outcome {
	name := deref(f.Name)
	email := userEmail(name, a.UserDomain)
	resp, err := erpnext.CreateUser(ctx, a.Client, name, email)
	if out, ok := a.stepFailed(intent.KindCreateUser, "user creation", resp, err); !ok {
		return out
	}
	resp, err = erpnext.AssignRole(ctx, a.Client, email, deref(f.Role))
	if out, ok := a.stepFailed(intent.KindCreateUser, "role assignment", resp, err); !ok {
		return out
	}
	return Outcome{
		Kind:    intent.KindCreateUser,
		OK:      true,
		Message: fmt.Sprintf("User %s added as %s.", name, deref(f.Role)),
		Payload: map[string]any{"email": email},
	}
}

// dispatchRole creates the role, then writes one permission row per doctype
// it touches: full rights on allowed doctypes, explicit no-access rows on
// restricted ones.
func (a *Assistant) dispatchRole(ctx context.Context, f intent.RoleFields) Outcome {
	resp, err := erpnext.CreateRole(ctx, a.Client, f.Name)
	if out, ok := a.stepFailed(intent.KindCreateRole, "role creation", resp, err); !ok {
		return out
	}
	for _, doctype := range f.Allowed {
		resp, err := erpnext.SetPermission(ctx, a.Client, doctype, f.Name, 1, 1, 1)
		if out, ok := a.stepFailed(intent.KindCreateRole, fmt.Sprintf("granting access to %s", doctype), resp, err); !ok {
			return out
		}
	}
	for _, doctype := range f.Restricted {
		resp, err := erpnext.SetPermission(ctx, a.Client, doctype, f.Name, 0, 0, 0)
		if out, ok := a.stepFailed(intent.KindCreateRole, fmt.Sprintf("restricting access to %s", doctype), resp, err); !ok {
			return out
		}
	}
	return Outcome{
		Kind:    intent.KindCreateRole,
		OK:      true,
		Message: fmt.Sprintf("Role %q created with %d permission rule(s).", f.Name, len(f.Allowed)+len(f.Restricted)),
	}
}

func (a *Assistant) dispatchProject(ctx context.Context, f intent.ProjectFields) Outcome {
	resp, err := erpnext.CreateProject(ctx, a.Client, deref(f.Name), deref(f.StartDate), derefNum(f.Budget))
	if out, ok := a.stepFailed(intent.KindCreateProject, "project creation", resp, err); !ok {
		return out
	}
	if len(f.Assignments) > 0 {
		resp, err := erpnext.AssignProjectRoles(ctx, a.Client, deref(f.Name), f.Assignments)
		if out, ok := a.stepFailed(intent.KindCreateProject, "team assignment", resp, err); !ok {
			return out
		}
	}
	return Outcome{
		Kind:    intent.KindCreateProject,
		OK:      true,
		Message: fmt.Sprintf("Project %q created with %d assignment(s).", deref(f.Name), len(f.Assignments)),
	}
}

func (a *Assistant) dispatchWorkflow(ctx context.Context, f intent.WorkflowFields) Outcome {
	plan := intent.BuildWorkflow(f)
	states := make([]erpnext.WorkflowState, 0, len(plan.States))
	for _, s := range plan.States {
		states = append(states, erpnext.WorkflowState{
			State:       s.State,
			DocStatus:   s.DocStatus,
			AllowEdit:   s.AllowEdit,
			UpdateField: s.UpdateField,
			UpdateValue: s.UpdateValue,
		})
	}
	transitions := make([]erpnext.WorkflowTransition, 0, len(plan.Transitions))
	for _, t := range plan.Transitions {
		transitions = append(transitions, erpnext.WorkflowTransition{
			State:       t.State,
			Action:      t.Action,
			NextState:   t.NextState,
			AllowedRole: t.AllowedRole,
		})
	}
	resp, err := erpnext.CreateWorkflow(ctx, a.Client, plan.Name, plan.DocumentType, states, transitions)
	return a.created(intent.KindCreateWorkflow, resp, err,
		fmt.Sprintf("Workflow %q created with %d states.", plan.Name, len(states)))
}

// created folds the uniform success predicate into an Outcome: a response
// without a "data" key is a failure, same as a transport error.
func (a *Assistant) created(kind intent.Kind, resp erpnext.Response, err error, successMsg string) Outcome {
	if err != nil {
		return Outcome{Kind: kind, Message: "ERP request failed.", Detail: err.Error()}
	}
	if !resp.HasData() {
		return Outcome{Kind: kind, Message: "ERP rejected the request.", Detail: resp.ErrorDetail()}
	}
	return Outcome{Kind: kind, OK: true, Message: successMsg}
}

func (a *Assistant) listed(kind intent.Kind, what string, rows []map[string]any, err error) Outcome {
	if err != nil {
		return Outcome{Kind: kind, Message: fmt.Sprintf("Could not fetch %s.", what), Detail: err.Error()}
	}
	return Outcome{
		Kind:    kind,
		OK:      true,
		Message: fmt.Sprintf("Found %d %s.", len(rows), what),
		Payload: map[string]any{"records": rows},
	}
}

// stepFailed reports a false ok when a chain step did not succeed, with the
// step named in the outcome.
func (a *Assistant) stepFailed(kind intent.Kind, step string, resp erpnext.Response, err error) (Outcome, bool) {
	if err != nil {
		return Outcome{Kind: kind, Message: fmt.Sprintf("Step %q failed.", step), Detail: err.Error()}, false
	}
	if !resp.HasData() {
		return Outcome{Kind: kind, Message: fmt.Sprintf("Step %q failed.", step), Detail: resp.ErrorDetail()}, false
	}
	return Outcome{}, true
}

func docFields(in []intent.DocField) []erpnext.DocField {
	out := make([]erpnext.DocField, 0, len(in))
	for _, f := range in {
		out = append(out, erpnext.DocField{Label: f.Label, Fieldname: f.Fieldname, Fieldtype: f.Fieldtype})
	}
	return out
}

func userEmail(name, domain string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", ".")
	return slug + "@" + domain
}
