package assistant

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"erp-assistant-backend/internal/erpnext"
	"erp-assistant-backend/internal/intent"
)

// fakeClient records every call and replays scripted responses per doctype
// or method name.
type fakeClient struct {
	calls     []string
	created   map[string][]any
	responses map[string]erpnext.Response
	recordSet map[string][]map[string]any
	exists    map[string]bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		created:   make(map[string][]any),
		responses: make(map[string]erpnext.Response),
		recordSet: make(map[string][]map[string]any),
		exists:    make(map[string]bool),
	}
}

func (f *fakeClient) respond(key string) erpnext.Response {
	if r, ok := f.responses[key]; ok {
		return r
	}
	return erpnext.Response{"data": map[string]any{"name": key + "-001"}}
}

func (f *fakeClient) Create(_ context.Context, doctype string, payload any) (erpnext.Response, error) {
	f.calls = append(f.calls, "create:"+doctype)
	f.created[doctype] = append(f.created[doctype], payload)
	return f.respond(doctype), nil
}

func (f *fakeClient) Update(_ context.Context, doctype, name string, payload any) (erpnext.Response, error) {
	f.calls = append(f.calls, "update:"+doctype+"/"+name)
	return f.respond(doctype), nil
}

func (f *fakeClient) Records(_ context.Context, doctype string, _ []erpnext.Filter) ([]map[string]any, error) {
	f.calls = append(f.calls, "records:"+doctype)
	rows, ok := f.recordSet[doctype]
	if !ok {
		return nil, fmt.Errorf("no records scripted for %s", doctype)
	}
	return rows, nil
}

func (f *fakeClient) Method(_ context.Context, method string, _ any) (erpnext.Response, error) {
	f.calls = append(f.calls, "method:"+method)
	return f.respond(method), nil
}

func (f *fakeClient) Exists(_ context.Context, doctype, name string) (bool, error) {
	f.calls = append(f.calls, "exists:"+doctype+"/"+name)
	return f.exists[doctype+"/"+name], nil
}

func testAssistant(c erpnext.Client) *Assistant {
	return &Assistant{
		Client:     c,
		Extractor:  intent.PatternExtractor{},
		Company:    "S&I Urban Designers",
		UserDomain: "example.com",
		Log:        zap.NewNop(),
	}
}

func TestDispatch_CreateDepartment(t *testing.T) {
	fc := newFakeClient()
	a := testAssistant(fc)

	out := a.Dispatch(context.Background(), intent.Validate(
		intent.KindCreateDepartment,
		intent.ExtractDepartment("Create a department called Signage"),
	))
	assert.True(t, out.OK)
	assert.Contains(t, out.Message, "Signage")
	require.Len(t, fc.created["Department"], 1)
	dept := fc.created["Department"][0].(erpnext.Department)
	assert.Equal(t, "Signage", dept.DepartmentName)
	assert.Equal(t, "Management", dept.ParentDepartment)
	assert.Equal(t, "S&I Urban Designers", dept.Company)
}

// A response without the "data" key is a failure even on HTTP success.
func TestDispatch_MissingDataKeyIsFailure(t *testing.T) {
	fc := newFakeClient()
	fc.responses["Department"] = erpnext.Response{"exc_type": "ValidationError"}
	a := testAssistant(fc)

	out := a.Dispatch(context.Background(), intent.Validate(
		intent.KindCreateDepartment,
		intent.ExtractDepartment("Create a department called Signage"),
	))
	assert.False(t, out.OK)
	assert.Contains(t, out.Detail, "ValidationError")
}

func TestDispatch_UserChain(t *testing.T) {
	fc := newFakeClient()
	a := testAssistant(fc)

	out := a.Dispatch(context.Background(), intent.Validate(
		intent.KindCreateUser,
		intent.UserFields{Name: strPtr("Ali"), Role: strPtr("Supervisor")},
	))
	assert.True(t, out.OK)
	assert.Equal(t, "ali@example.com", out.Payload["email"])
	assert.Equal(t, []string{
		"create:User",
		"method:frappe.core.doctype.user.user.add_role",
	}, fc.calls)
}

// The first failed step short-circuits the chain; the role call never fires
// and the outcome names the step that failed.
func TestDispatch_UserChainShortCircuits(t *testing.T) {
	fc := newFakeClient()
	fc.responses["User"] = erpnext.Response{"error": "duplicate email"}
	a := testAssistant(fc)

	out := a.Dispatch(context.Background(), intent.Validate(
		intent.KindCreateUser,
		intent.UserFields{Name: strPtr("Ali"), Role: strPtr("Supervisor")},
	))
	assert.False(t, out.OK)
	assert.Contains(t, out.Message, "user creation")
	assert.Equal(t, []string{"create:User"}, fc.calls)
}

// The role step obeys the same success predicate as the create: a reply
// without the "data" key fails the whole chain even though the user record
// already exists.
func TestDispatch_UserChainRoleStepFailure(t *testing.T) {
	fc := newFakeClient()
	fc.responses["frappe.core.doctype.user.user.add_role"] = erpnext.Response{"error": "role does not exist"}
	a := testAssistant(fc)

	out := a.Dispatch(context.Background(), intent.Validate(
		intent.KindCreateUser,
		intent.UserFields{Name: strPtr("Ali"), Role: strPtr("Ghost Role")},
	))
	assert.False(t, out.OK)
	assert.Contains(t, out.Message, "role assignment")
	assert.Contains(t, out.Detail, "role does not exist")
	assert.Equal(t, []string{
		"create:User",
		"method:frappe.core.doctype.user.user.add_role",
	}, fc.calls)
}

func TestDispatch_RoleChainWritesPermissions(t *testing.T) {
	fc := newFakeClient()
	a := testAssistant(fc)

	out := a.Dispatch(context.Background(), intent.Validate(
		intent.KindCreateRole,
		intent.RoleFields{Name: "Finance", Allowed: []string{"Claim"}, Restricted: []string{"Project"}},
	))
	assert.True(t, out.OK)
	assert.Equal(t, []string{
		"create:Role",
		"create:Custom DocPerm",
		"create:Custom DocPerm",
	}, fc.calls)

	perms := fc.created["Custom DocPerm"]
	require.Len(t, perms, 2)
	allowed := perms[0].(erpnext.DocPerm)
	assert.Equal(t, "Claim", allowed.Parent)
	assert.Equal(t, 1, allowed.Read)
	restricted := perms[1].(erpnext.DocPerm)
	assert.Equal(t, "Project", restricted.Parent)
	assert.Equal(t, 0, restricted.Read)
}

func TestDispatch_ProjectAssignmentsRequireExistingProject(t *testing.T) {
	fc := newFakeClient()
	fc.exists["Project/tower a"] = true
	a := testAssistant(fc)

	out := a.Dispatch(context.Background(), intent.Validate(
		intent.KindCreateProject,
		intent.ProjectFields{
			Name:        strPtr("tower a"),
			Assignments: [][2]string{{"Ali", "Project Manager"}},
		},
	))
	assert.True(t, out.OK)
	assert.Contains(t, fc.calls, "exists:Project/tower a")
	assert.Contains(t, fc.calls, "update:Project/tower a")
}

func TestDispatch_WorkflowPayload(t *testing.T) {
	fc := newFakeClient()
	a := testAssistant(fc)

	out := a.Dispatch(context.Background(), intent.Validate(
		intent.KindCreateWorkflow,
		intent.WorkflowFields{DocumentType: "PRF", Roles: []string{"HOD", "Director"}},
	))
	assert.True(t, out.OK)

	require.Len(t, fc.created["Workflow"], 1)
	wf := fc.created["Workflow"][0].(erpnext.Workflow)
	assert.Equal(t, "PRF Approval Workflow", wf.WorkflowName)
	require.Len(t, wf.States, 2)
	assert.Equal(t, "Pending Hod Approval", wf.States[0].State)
	assert.Equal(t, "Approved", wf.States[1].State)
	require.Len(t, wf.Transitions, 1)
	assert.Equal(t, "Submit to Director", wf.Transitions[0].Action)
	assert.Equal(t, "HOD", wf.Transitions[0].AllowedRole)
}

func TestDispatch_ListPendingPRFs(t *testing.T) {
	fc := newFakeClient()
	fc.recordSet["Purchase Request"] = []map[string]any{{"name": "PRF-001"}}
	a := testAssistant(fc)

	out := a.Dispatch(context.Background(), intent.Validate(
		intent.KindListPendingPRFs,
		intent.ExtractPendingPRFDepartment("List pending PRFs for Signage department"),
	))
	assert.True(t, out.OK)
	rows := out.Payload["records"].([]map[string]any)
	require.Len(t, rows, 1)
	assert.Equal(t, "PRF-001", rows[0]["name"])
}

func TestDispatch_SummaryReportToleratesFetchErrors(t *testing.T) {
	fc := newFakeClient()
	fc.recordSet["PRF"] = []map[string]any{{"name": "PRF-001"}, {"name": "PRF-002"}}
	fc.recordSet["Project"] = []map[string]any{}
	// Claim and Expense Claim are not scripted, so their fetches fail.
	a := testAssistant(fc)

	out := a.Dispatch(context.Background(), intent.Validate(
		intent.KindGenerateReport,
		intent.ExtractDashboard("Show me the weekly summary"),
	))
	assert.True(t, out.OK)
	summary := out.Payload["summary"].(map[string]int)
	assert.Equal(t, 2, summary["total_prfs"])
	assert.Equal(t, 0, summary["total_projects"])
	assert.Equal(t, -1, summary["total_claims"])
	assert.Equal(t, -1, summary["total_expenses"])
}

func TestProcess_MultiCommandIndependence(t *testing.T) {
	fc := newFakeClient()
	fc.responses["Department"] = erpnext.Response{"error": "duplicate"}
	a := testAssistant(fc)

	outcomes := a.Process(context.Background(),
		"Create a department called Signage and apply RM 10,000 management fee for Signage department")
	require.Len(t, outcomes, 2)
	assert.False(t, outcomes[0].OK)
	assert.True(t, outcomes[1].OK)
}

func TestProcess_NoIntentsYieldsNoOutcomes(t *testing.T) {
	a := testAssistant(newFakeClient())
	assert.Empty(t, a.Process(context.Background(), "what is a PRF?"))
}

func TestProcess_ConfirmableParksCommand(t *testing.T) {
	a := testAssistant(newFakeClient())
	outcomes := a.Process(context.Background(), "Add supplier ABC Materials, contact 0123456789")
	require.Len(t, outcomes, 1)
	out := outcomes[0]
	assert.True(t, out.NeedsConfirmation)
	assert.False(t, out.OK)
	require.NotNil(t, out.Pending)
	assert.Equal(t, intent.KindAddSupplier, out.Pending.Kind)
}

func TestProcess_RejectedNamesMissingFields(t *testing.T) {
	a := testAssistant(newFakeClient())
	outcomes := a.Process(context.Background(), "Create a PRF for Project ABC")
	require.NotEmpty(t, outcomes)
	var prf *Outcome
	for i := range outcomes {
		if outcomes[i].Kind == intent.KindCreatePRF {
			prf = &outcomes[i]
		}
	}
	require.NotNil(t, prf)
	assert.False(t, prf.OK)
	assert.Contains(t, prf.Detail, "item_name")
	assert.Contains(t, prf.Detail, "quantity")
}

func strPtr(s string) *string { return &s }
