package intent

import "fmt"

// WorkflowState and WorkflowTransition describe the state machine derived
// from a participant list before it is shaped into the ERP payload.
type WorkflowState struct {
	State       string
	DocStatus   int
	AllowEdit   string
	UpdateField string
	UpdateValue string
}

type WorkflowTransition struct {
	State       string
	Action      string
	NextState   string
	AllowedRole string
}

// WorkflowPlan is the full derived workflow for one document type.
type WorkflowPlan struct {
	Name         string
	DocumentType string
	States       []WorkflowState
	Transitions  []WorkflowTransition
}

func pendingState(role string) string {
	return fmt.Sprintf("Pending %s Approval", title(role))
}

// BuildWorkflow synthesizes an approval state machine from an ordered role
// list: one pending state per non-terminal participant, a terminal
// "Approved" state, and a transition from each pending state to the next,
// gated to the participant who owns it. Fewer than two roles never reaches
// here; the extractor substitutes the fixed default pair first.
func BuildWorkflow(f WorkflowFields) WorkflowPlan {
	roles := f.Roles
	plan := WorkflowPlan{
		Name:         fmt.Sprintf("%s Approval Workflow", f.DocumentType),
		DocumentType: f.DocumentType,
	}
	for i, role := range roles {
		last := i == len(roles)-1
		state := WorkflowState{
			State:       pendingState(role),
			AllowEdit:   role,
			UpdateField: "workflow_state",
			UpdateValue: pendingState(roles[min(i+1, len(roles)-1)]),
		}
		if last {
			state.State = "Approved"
			state.DocStatus = 1
			state.UpdateValue = "Approved"
		}
		plan.States = append(plan.States, state)
	}
	for i := 0; i < len(roles)-1; i++ {
		next := "Approved"
		if i+1 < len(roles)-1 {
			next = pendingState(roles[i+1])
		}
		plan.Transitions = append(plan.Transitions, WorkflowTransition{
			State:       pendingState(roles[i]),
			Action:      fmt.Sprintf("Submit to %s", roles[i+1]),
			NextState:   next,
			AllowedRole: roles[i],
		})
	}
	return plan
}
