package assistant

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"erp-assistant-backend/internal/erpnext"
	"erp-assistant-backend/internal/intent"
)

// Assistant turns chat instructions into ERP operations. One instruction
// may carry several commands; each is classified, extracted, validated and
// dispatched independently, so one failing command never blocks the rest.
type Assistant struct {
	Client     erpnext.Client
	Extractor  intent.Extractor
	AI         *openai.Client
	Company    string
	UserDomain string
	Model      string
	Log        *zap.Logger
}

// Outcome is the result of one command within an instruction.
type Outcome struct {
	Kind    intent.Kind    `json:"intent"`
	OK      bool           `json:"ok"`
	Message string         `json:"message"`
	Detail  string         `json:"detail,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
	// NeedsConfirmation marks a complete command parked for the user's
	// acknowledgment; Pending carries it for later dispatch.
	NeedsConfirmation bool              `json:"needs_confirmation,omitempty"`
	Pending           *intent.Validated `json:"-"`
}

// Process runs the full pipeline for one instruction. An empty slice means
// no command was recognized; the caller decides what to do with free text.
func (a *Assistant) Process(ctx context.Context, text string) []Outcome {
	kinds := intent.Detect(text)
	outcomes := make([]Outcome, 0, len(kinds))
	for _, kind := range kinds {
		outcomes = append(outcomes, a.processOne(ctx, kind, text))
	}
	return outcomes
}

func (a *Assistant) processOne(ctx context.Context, kind intent.Kind, text string) Outcome {
	fields, err := a.Extractor.Extract(ctx, kind, text)
	if err != nil {
		a.Log.Error("field extraction failed", zap.String("intent", string(kind)), zap.Error(err))
		return Outcome{
			Kind:    kind,
			Message: "Could not read the details of this command.",
			Detail:  err.Error(),
		}
	}

	v := intent.Validate(kind, fields)
	switch v.Disposition {
	case intent.Rejected:
		return Outcome{
			Kind:    kind,
			Message: "Command is missing required details.",
			Detail:  v.Reason(),
		}
	case intent.NeedsConfirmation:
		return Outcome{
			Kind:              kind,
			NeedsConfirmation: true,
			Message:           confirmPrompt(v),
			Pending:           &v,
		}
	default:
		return a.Dispatch(ctx, v)
	}
}

func confirmPrompt(v intent.Validated) string {
	switch f := v.Fields.(type) {
	case intent.VehicleFields:
		if v.Kind == intent.KindScheduleMaintenance {
			return fmt.Sprintf("Schedule maintenance for %s every %d months?", deref(f.Vehicle), derefInt(f.IntervalMonths))
		}
		return fmt.Sprintf("Add vehicle %s to the asset register?", deref(f.Vehicle))
	case intent.InventoryFields:
		if v.Kind == intent.KindAddSupplier {
			return fmt.Sprintf("Add supplier %s?", deref(f.Supplier))
		}
		return fmt.Sprintf("Add %d x %s to inventory?", derefInt(f.Quantity), deref(f.Item))
	case intent.ContractFields:
		return fmt.Sprintf("Create an employment contract for %s at RM %.2f monthly?", deref(f.Employee), derefNum(f.Salary))
	}
	return "Confirm this command?"
}

// Ask answers free-form questions that carry no recognizable command.
func (a *Assistant) Ask(ctx context.Context, prompt string) (string, error) {
	if a.AI == nil {
		return "", fmt.Errorf("no language model configured")
	}
	resp, err := a.AI.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are an expert ERPNext assistant and business consultant."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty model reply")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefNum(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
