package intent

import (
	"regexp"
	"strings"
)

// Project, vehicle, inventory, HR and report extraction rules.

var (
	projectNameRe   = regexp.MustCompile(`project\s+([\w\s]+)`)
	startSectionRe  = regexp.MustCompile(`start[:\s]+([\w\s\d]+)`)
	budgetRe        = regexp.MustCompile(`budget[:\s]*rm\s?([\d,\.]+)`)
	assignmentRe    = regexp.MustCompile(`assign\s+([\w\s]+?)\s+to\s+([\w\s]+)`)
	vehicleNameRe   = regexp.MustCompile(`vehicle\s+([\w\s]+)`)
	vehicleDeptRe   = regexp.MustCompile(`to\s+([\w\s]+)`)
	maintenanceRe   = regexp.MustCompile(`every\s+(\d+)\s+month`)
	inventoryItemRe = regexp.MustCompile(`item\s+([\w\s]+)`)
	inventoryQtyRe  = regexp.MustCompile(`quantity[:\s]+(\d+)`)
	inventoryDeptRe = regexp.MustCompile(`department[:\s]+([\w\s]+)`)
	supplierNameRe  = regexp.MustCompile(`supplier\s+([\w\s]+)`)
	contactRe       = regexp.MustCompile(`contact\s+(\d+)`)
	employeeRe      = regexp.MustCompile(`for\s+([\w\s]+)`)
)

// ExtractProject parses project creation and team assignment phrasing like
// "Create project ABC, Start May 1st, Budget RM 300,000" or "Assign Ali to
// Project Manager".
func ExtractProject(text string) ProjectFields {
	m := strings.ToLower(text)
	f := ProjectFields{}
	if match := projectNameRe.FindStringSubmatch(m); match != nil {
		f.Name = strp(strings.TrimSpace(match[1]))
	}
	if match := startSectionRe.FindStringSubmatch(m); match != nil {
		f.StartDate = strp(strings.TrimSpace(match[1]))
	}
	if match := budgetRe.FindStringSubmatch(m); match != nil {
		f.Budget = parseAmount(match[1])
	}
	if strings.Contains(m, "assign") && strings.Contains(m, "to") {
		for _, match := range assignmentRe.FindAllStringSubmatch(m, -1) {
			f.Assignments = append(f.Assignments, [2]string{
				title(strings.TrimSpace(match[1])),
				title(strings.TrimSpace(match[2])),
			})
		}
	}
	return f
}

// ExtractVehicle parses vehicle addition and maintenance scheduling, e.g.
// "Add vehicle Toyota Hilux to Facility Maintenance" or "Schedule
// maintenance for Toyota Hilux every 3 months".
func ExtractVehicle(text string) VehicleFields {
	m := strings.ToLower(text)
	f := VehicleFields{}
	if match := vehicleNameRe.FindStringSubmatch(m); match != nil {
		f.Vehicle = strp(title(strings.TrimSpace(match[1])))
	}
	if match := vehicleDeptRe.FindStringSubmatch(m); match != nil {
		f.Department = strp(title(strings.TrimSpace(match[1])))
	}
	if match := maintenanceRe.FindStringSubmatch(m); match != nil {
		f.IntervalMonths = parseInt(match[1])
	}
	return f
}

// ExtractInventory parses item addition and supplier creation, e.g. "Add
// inventory item Paint, Quantity 100, Department Signage" or "Add supplier
// ABC Materials, Contact 0123456789".
func ExtractInventory(text string) InventoryFields {
	m := strings.ToLower(text)
	f := InventoryFields{}
	if match := inventoryItemRe.FindStringSubmatch(m); match != nil {
		f.Item = strp(title(strings.TrimSpace(match[1])))
	}
	if match := inventoryQtyRe.FindStringSubmatch(m); match != nil {
		f.Quantity = parseInt(match[1])
	}
	if match := inventoryDeptRe.FindStringSubmatch(m); match != nil {
		f.Department = strp(title(strings.TrimSpace(match[1])))
	}
	if match := supplierNameRe.FindStringSubmatch(m); match != nil {
		f.Supplier = strp(title(strings.TrimSpace(match[1])))
	}
	if match := contactRe.FindStringSubmatch(m); match != nil {
		f.Contact = strp(match[1])
	}
	return f
}

// ExtractContract parses employment contract phrasing like "Generate a
// contract for Ali, RM 4,500 monthly, start June 1st".
func ExtractContract(text string) ContractFields {
	m := strings.ToLower(text)
	f := ContractFields{}
	if match := employeeRe.FindStringSubmatch(m); match != nil {
		f.Employee = strp(title(strings.TrimSpace(match[1])))
	}
	if match := amountRe.FindStringSubmatch(m); match != nil {
		f.Salary = parseAmount(match[1])
	}
	if match := startSectionRe.FindStringSubmatch(m); match != nil {
		f.StartDate = strp(strings.TrimSpace(match[1]))
	}
	return f
}

// ExtractDashboard picks the report audience, type and frequency out of
// report and dashboard requests.
func ExtractDashboard(text string) DashboardFields {
	m := strings.ToLower(text)
	f := DashboardFields{}
	switch {
	case strings.Contains(m, "hod"):
		f.Audience = strp("HOD")
	case strings.Contains(m, "director"):
		f.Audience = strp("Director")
	case strings.Contains(m, "finance"):
		f.Audience = strp("Finance")
	}
	switch {
	case strings.Contains(m, "prf"):
		f.ReportType = strp("PRF")
	case strings.Contains(m, "claim"):
		f.ReportType = strp("Claim")
	case strings.Contains(m, "expense"):
		f.ReportType = strp("Expense")
	case strings.Contains(m, "project"):
		f.ReportType = strp("Project")
	case strings.Contains(m, "summary"):
		f.ReportType = strp("Summary")
	}
	switch {
	case strings.Contains(m, "weekly"):
		f.Frequency = strp("Weekly")
	case strings.Contains(m, "monthly"):
		f.Frequency = strp("Monthly")
	case strings.Contains(m, "daily"):
		f.Frequency = strp("Daily")
	}
	return f
}
