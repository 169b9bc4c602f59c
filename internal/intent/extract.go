package intent

import (
	"context"
	"strconv"
	"strings"
	"unicode"
)

// Extractor turns raw text into the typed field record for one intent.
// Extraction is best effort: fields the text does not yield stay nil, and
// implementations never return an error for unparsable input alone.
type Extractor interface {
	Extract(ctx context.Context, kind Kind, text string) (Fields, error)
}

// PatternExtractor is the deterministic strategy: ordered regular-expression
// rules against the text, first match wins. It is pure, so re-running it on
// the same instruction always yields identical fields.
type PatternExtractor struct{}

func (PatternExtractor) Extract(_ context.Context, kind Kind, text string) (Fields, error) {
	return extractPattern(kind, text), nil
}

func extractPattern(kind Kind, text string) Fields {
	switch kind {
	case KindCreateDoctype:
		return ExtractDoctype(text)
	case KindCreateDepartment:
		return ExtractDepartment(text)
	case KindCreateUser:
		return ExtractUserAssignment(text)
	case KindCreateManagementFeeRule:
		return ExtractManagementFee(text)
	case KindCreateProfitSharingRule:
		return ExtractProfitSharing(text)
	case KindCreatePRF:
		return ExtractPRF(text)
	case KindCreateClaim, KindListClaims:
		return ExtractClaim(text)
	case KindCreateProject:
		return ExtractProject(text)
	case KindCreateVehicle, KindScheduleMaintenance:
		return ExtractVehicle(text)
	case KindAddInventoryItem, KindAddSupplier:
		return ExtractInventory(text)
	case KindCreateWorkflow:
		return ExtractWorkflowRoles(text)
	case KindCreateRole:
		return ExtractRolePermissions(text)
	case KindCreateNotification:
		return ExtractNotification(text)
	case KindCreateReminder:
		return ExtractReminder(text)
	case KindCreateBOQEntry:
		return ExtractBOQEntry(text)
	case KindQueryBOQ:
		return ExtractBOQQuery(text)
	case KindCreateContract:
		return ExtractContract(text)
	case KindGenerateReport:
		return ExtractDashboard(text)
	case KindListPendingPRFs:
		return ExtractPendingPRFDepartment(text)
	default:
		return EmptyFields{}
	}
}

// ---- shared helpers ----

func strp(s string) *string { return &s }

// title capitalizes the first letter of every word and lowers the rest,
// matching how the extraction rules normalize entity names.
func title(s string) string {
	var b strings.Builder
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}

// parseAmount strips thousands separators before parsing. The rules only
// capture digits that directly follow a currency prefix token.
func parseAmount(raw string) *float64 {
	cleaned := strings.ReplaceAll(raw, ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseInt(raw string) *int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
