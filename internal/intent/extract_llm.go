package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ExtractSpec is the YAML-driven description of what the model must return
// for each intent: the exact JSON field names and their types.
type ExtractSpec struct {
	System  string                  `yaml:"system"`
	Intents map[string]IntentSchema `yaml:"intents"`
}

type IntentSchema struct {
	Description string            `yaml:"description"`
	Fields      map[string]string `yaml:"fields"`
}

// ModelExtractor is the delegated strategy: it sends the instruction to the
// text-completion collaborator with a fixed schema message and parses the
// reply. Any failure along the way degrades to all-null fields with a logged
// diagnostic; a raw parse error never escapes. Unlike the pattern strategy
// it is not idempotent across calls.
type ModelExtractor struct {
	client   *openai.Client
	model    string
	spec     ExtractSpec
	fallback PatternExtractor
	log      *zap.Logger
}

func LoadModelExtractor(path string, client *openai.Client, model string, log *zap.Logger) (*ModelExtractor, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var spec ExtractSpec
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return nil, fmt.Errorf("parsing extract spec %s: %w", path, err)
	}
	return &ModelExtractor{client: client, model: model, spec: spec, log: log}, nil
}

func (e *ModelExtractor) Extract(ctx context.Context, kind Kind, text string) (Fields, error) {
	schema, ok := e.spec.Intents[string(kind)]
	if !ok {
		// Intents without a schema entry (synthesized or listing families)
		// stay on the pattern rules.
		return e.fallback.Extract(ctx, kind, text)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: 0.1,
		MaxTokens:   300,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: e.systemMessage(schema)},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		e.log.Warn("model extraction call failed", zap.String("kind", string(kind)), zap.Error(err))
		return zeroFields(kind), nil
	}
	if len(resp.Choices) == 0 {
		e.log.Warn("model extraction returned no choices", zap.String("kind", string(kind)))
		return zeroFields(kind), nil
	}

	raw := StripCodeFences(resp.Choices[0].Message.Content)
	wire, err := decodeExtraction(raw, schema)
	if err != nil {
		e.log.Warn("model extraction unparsable", zap.String("kind", string(kind)), zap.Error(err))
		return zeroFields(kind), nil
	}
	return fieldsFromWire(kind, wire), nil
}

func (e *ModelExtractor) systemMessage(schema IntentSchema) string {
	names := make([]string, 0, len(schema.Fields))
	for name := range schema.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteString(e.spec.System)
	if schema.Description != "" {
		b.WriteString("\n\nTask: ")
		b.WriteString(schema.Description)
	}
	b.WriteString("\n\nRespond with ONLY a JSON object containing exactly these fields; use null for anything the text does not state:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "- %q (%s)\n", name, schema.Fields[name])
	}
	return b.String()
}

// decodeExtraction validates the model reply against the intent's JSON
// schema before trusting any of it.
func decodeExtraction(raw string, schema IntentSchema) (map[string]any, error) {
	schemaJSON, err := schema.jsonSchema()
	if err != nil {
		return nil, err
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaJSON),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return nil, err
	}
	if !result.Valid() {
		var reasons []string
		for _, e := range result.Errors() {
			reasons = append(reasons, e.String())
		}
		return nil, fmt.Errorf("schema violation: %s", strings.Join(reasons, "; "))
	}
	var wire map[string]any
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, err
	}
	return wire, nil
}

func (s IntentSchema) jsonSchema() (string, error) {
	props := make(map[string]any, len(s.Fields))
	for name, typ := range s.Fields {
		switch typ {
		case "string", "number", "integer", "boolean":
			props[name] = map[string]any{"type": []string{typ, "null"}}
		case "string_list":
			props[name] = map[string]any{
				"type":  []string{"array", "null"},
				"items": map[string]any{"type": "string"},
			}
		default:
			return "", fmt.Errorf("unknown field type %q for %q", typ, name)
		}
	}
	b, err := json.Marshal(map[string]any{
		"type":       "object",
		"properties": props,
	})
	return string(b), err
}

// StripCodeFences removes a markdown fence wrapping the model's JSON reply.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if idx := strings.Index(s, "\n"); idx != -1 {
		s = s[idx+1:]
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// fieldsFromWire maps the validated JSON object onto the intent's typed
// record. Absent or mistyped values stay nil.
func fieldsFromWire(kind Kind, m map[string]any) Fields {
	switch kind {
	case KindCreateDepartment:
		return DepartmentFields{
			Name:   wireString(m, "department_name"),
			Parent: wireString(m, "parent_department"),
		}
	case KindCreateUser:
		return UserFields{
			Name:       wireString(m, "user_name"),
			Department: wireString(m, "department"),
			Role:       wireString(m, "role"),
		}
	case KindCreateManagementFeeRule, KindCreateProfitSharingRule:
		return FinancialFields{
			Department: wireString(m, "department"),
			Role:       wireString(m, "role"),
			Amount:     wireFloat(m, "amount"),
		}
	case KindCreatePRF:
		return PRFFields{
			Project:  wireString(m, "project_name"),
			Item:     wireString(m, "item_name"),
			Quantity: wireFloat(m, "quantity"),
		}
	case KindCreateClaim, KindListClaims:
		return ClaimFields{
			Project: wireString(m, "project_name"),
			Claim:   wireString(m, "claim_name"),
			Amount:  wireFloat(m, "amount"),
		}
	case KindCreateProject:
		return ProjectFields{
			Name:      wireString(m, "project_name"),
			StartDate: wireString(m, "start_date"),
			Budget:    wireFloat(m, "budget_amount"),
		}
	case KindCreateVehicle, KindScheduleMaintenance:
		return VehicleFields{
			Vehicle:        wireString(m, "vehicle_name"),
			Department:     wireString(m, "department"),
			IntervalMonths: wireInt(m, "maintenance_interval_months"),
		}
	case KindAddInventoryItem, KindAddSupplier:
		return InventoryFields{
			Item:       wireString(m, "item_name"),
			Quantity:   wireInt(m, "quantity"),
			Department: wireString(m, "department"),
			Supplier:   wireString(m, "supplier_name"),
			Contact:    wireString(m, "contact_number"),
		}
	case KindCreateWorkflow:
		f := WorkflowFields{
			DocumentType: "Document",
			Roles:        wireStrings(m, "roles"),
		}
		if dt := wireString(m, "document_type"); dt != nil {
			f.DocumentType = *dt
		}
		if len(f.Roles) < 2 {
			f.Roles = []string{"HOD", "Director"}
		}
		return f
	case KindCreateBOQEntry:
		return BOQFields{
			Project:  wireString(m, "project_name"),
			Item:     wireString(m, "item_name"),
			Quantity: wireFloat(m, "quantity"),
			Price:    wireFloat(m, "price"),
		}
	case KindCreateContract:
		return ContractFields{
			Employee:  wireString(m, "employee_name"),
			Salary:    wireFloat(m, "monthly_salary"),
			StartDate: wireString(m, "start_date"),
		}
	default:
		return zeroFields(kind)
	}
}

// zeroFields is the all-null record for an intent, returned whenever the
// delegated strategy cannot produce anything trustworthy.
func zeroFields(kind Kind) Fields {
	switch kind {
	case KindCreateDoctype:
		return DoctypeFields{Name: "UnnamedDoctype"}
	case KindCreateDepartment:
		return DepartmentFields{}
	case KindCreateUser:
		return UserFields{}
	case KindCreateManagementFeeRule, KindCreateProfitSharingRule:
		return FinancialFields{}
	case KindCreatePRF:
		return PRFFields{}
	case KindCreateClaim, KindListClaims:
		return ClaimFields{}
	case KindCreateProject:
		return ProjectFields{}
	case KindCreateVehicle, KindScheduleMaintenance:
		return VehicleFields{}
	case KindAddInventoryItem, KindAddSupplier:
		return InventoryFields{}
	case KindCreateWorkflow:
		return WorkflowFields{DocumentType: "Document", Roles: []string{"HOD", "Director"}}
	case KindCreateRole:
		return RoleFields{Name: "New Role"}
	case KindCreateBOQEntry:
		return BOQFields{}
	case KindQueryBOQ:
		return BOQQueryFields{}
	case KindCreateContract:
		return ContractFields{}
	case KindGenerateReport:
		return DashboardFields{}
	default:
		return EmptyFields{}
	}
}

func wireString(m map[string]any, key string) *string {
	if v, ok := m[key].(string); ok && strings.TrimSpace(v) != "" {
		return &v
	}
	return nil
}

func wireFloat(m map[string]any, key string) *float64 {
	if v, ok := m[key].(float64); ok {
		return &v
	}
	return nil
}

func wireInt(m map[string]any, key string) *int {
	if v, ok := m[key].(float64); ok {
		n := int(v)
		return &n
	}
	return nil
}

func wireStrings(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
