package intent

import (
	"regexp"
	"strings"
)

// Financial, purchase-request, claim and BOQ extraction rules. These all
// operate on the lower-cased text; amounts must directly follow the "rm"
// currency token and lose their thousands separators.

var (
	feeDepartmentRe = regexp.MustCompile(`for\s+(.*?)\s+department`)
	amountRe        = regexp.MustCompile(`rm\s?([\d,\.]+)`)
	profitRoleRe    = regexp.MustCompile(`to\s+(.*?)\s+after`)
	percentRe       = regexp.MustCompile(`(\d+)%`)

	projectTokenRe = regexp.MustCompile(`project\s+(\w+)`)
	itemSectionRe  = regexp.MustCompile(`item[:\s]+([\w\s]+?)(?:,|quantity|$)`)
	quantityRe     = regexp.MustCompile(`quantity[:\s]+([\d\.]+)`)
	claimTokenRe   = regexp.MustCompile(`claim\s+(\w+)`)
	priceRe        = regexp.MustCompile(`price[:\s]*rm\s?([\d,\.]+)`)

	boqItemInProjectRe = regexp.MustCompile(`for\s+([\w\s]+)\s+in\s+project`)
)

// ExtractManagementFee parses "apply RM 10,000 management fee for Signage
// department".
func ExtractManagementFee(text string) FinancialFields {
	m := strings.ToLower(text)
	f := FinancialFields{}
	if match := feeDepartmentRe.FindStringSubmatch(m); match != nil {
		f.Department = strp(title(strings.TrimSpace(match[1])))
	}
	if match := amountRe.FindStringSubmatch(m); match != nil {
		f.Amount = parseAmount(match[1])
	}
	return f
}

// ExtractProfitSharing parses "set profit sharing rule 10% to HOD after
// project completion". The department stays nil when absent; the validator
// supplies the default.
func ExtractProfitSharing(text string) FinancialFields {
	m := strings.ToLower(text)
	f := FinancialFields{}
	if match := feeDepartmentRe.FindStringSubmatch(m); match != nil {
		f.Department = strp(title(strings.TrimSpace(match[1])))
	}
	if match := profitRoleRe.FindStringSubmatch(m); match != nil {
		f.Role = strp(title(strings.TrimSpace(match[1])))
	}
	if match := percentRe.FindStringSubmatch(m); match != nil {
		f.Amount = parseAmount(match[1])
	}
	return f
}

// ExtractPRF parses "Create a PRF for Project ABC, Item: Paint, Quantity: 100".
func ExtractPRF(text string) PRFFields {
	m := strings.ToLower(text)
	f := PRFFields{}
	if match := projectTokenRe.FindStringSubmatch(m); match != nil {
		f.Project = strp(match[1])
	}
	if match := itemSectionRe.FindStringSubmatch(m); match != nil {
		f.Item = strp(strings.TrimSpace(match[1]))
	}
	if match := quantityRe.FindStringSubmatch(m); match != nil {
		f.Quantity = parseAmount(match[1])
	}
	return f
}

// ExtractClaim parses claim creation or query phrasing.
func ExtractClaim(text string) ClaimFields {
	m := strings.ToLower(text)
	f := ClaimFields{}
	if match := projectTokenRe.FindStringSubmatch(m); match != nil {
		f.Project = strp(match[1])
	}
	if match := claimTokenRe.FindStringSubmatch(m); match != nil {
		f.Claim = strp(match[1])
	}
	if match := amountRe.FindStringSubmatch(m); match != nil {
		f.Amount = parseAmount(match[1])
	}
	return f
}

// ExtractBOQEntry parses "Add BOQ item: Cement, Quantity: 50, Price RM 2,000
// for project ABC".
func ExtractBOQEntry(text string) BOQFields {
	m := strings.ToLower(text)
	f := BOQFields{}
	if match := projectTokenRe.FindStringSubmatch(m); match != nil {
		f.Project = strp(match[1])
	}
	if match := itemSectionRe.FindStringSubmatch(m); match != nil {
		f.Item = strp(strings.TrimSpace(match[1]))
	}
	if match := quantityRe.FindStringSubmatch(m); match != nil {
		f.Quantity = parseAmount(match[1])
	}
	if match := priceRe.FindStringSubmatch(m); match != nil {
		f.Price = parseAmount(match[1])
	}
	return f
}

// ExtractBOQQuery parses BOQ usage questions like "Show balance for Cement
// in Project ABC" or "List BOQ items for project ABC".
func ExtractBOQQuery(text string) BOQQueryFields {
	m := strings.ToLower(text)
	f := BOQQueryFields{}
	if strings.Contains(m, "balance") {
		f.Action = "show_balance"
	} else if strings.Contains(m, "list") && strings.Contains(m, "boq") {
		f.Action = "list_boq_items"
	}
	if match := projectTokenRe.FindStringSubmatch(m); match != nil {
		f.Project = strp(match[1])
	}
	if match := boqItemInProjectRe.FindStringSubmatch(m); match != nil {
		f.Item = strp(strings.TrimSpace(match[1]))
	}
	return f
}
