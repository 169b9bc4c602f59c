package erpnext

// Payload types mirror the field names the ERPNext resource API expects.
// Every create call carries its doctype name in the "doctype" key.

type DocField struct {
	Label     string `json:"label"`
	Fieldname string `json:"fieldname"`
	Fieldtype string `json:"fieldtype"`
}

type Doctype struct {
	Doctype string     `json:"doctype"`
	Name    string     `json:"name"`
	Module  string     `json:"module"`
	Custom  int        `json:"custom"`
	Fields  []DocField `json:"fields"`
}

type Department struct {
	Doctype          string `json:"doctype"`
	DepartmentName   string `json:"department_name"`
	Company          string `json:"company"`
	Department       string `json:"department"`
	ParentDepartment string `json:"parent_department"`
	IsGroup          int    `json:"is_group"`
}

type User struct {
	Doctype          string `json:"doctype"`
	FirstName        string `json:"first_name"`
	Email            string `json:"email"`
	Enabled          int    `json:"enabled"`
	NewPassword      string `json:"new_password"`
	SendWelcomeEmail int    `json:"send_welcome_email"`
}

type WorkflowState struct {
	State       string `json:"state"`
	DocStatus   int    `json:"doc_status"`
	AllowEdit   string `json:"allow_edit"`
	UpdateField string `json:"update_field"`
	UpdateValue string `json:"update_value"`
}

type WorkflowTransition struct {
	State       string `json:"state"`
	Action      string `json:"action"`
	NextState   string `json:"next_state"`
	AllowedRole string `json:"allowed_role"`
}

type Workflow struct {
	Doctype            string               `json:"doctype"`
	WorkflowName       string               `json:"workflow_name"`
	DocumentType       string               `json:"document_type"`
	IsActive           int                  `json:"is_active"`
	WorkflowStateField string               `json:"workflow_state_field"`
	States             []WorkflowState      `json:"states"`
	Transitions        []WorkflowTransition `json:"transitions"`
}

type Role struct {
	Doctype  string `json:"doctype"`
	RoleName string `json:"role_name"`
}

type DocPerm struct {
	Doctype    string `json:"doctype"`
	ParentType string `json:"parenttype"`
	Parent     string `json:"parent"`
	Role       string `json:"role"`
	PermLevel  int    `json:"permlevel"`
	Read       int    `json:"read"`
	Write      int    `json:"write"`
	Create     int    `json:"create"`
	Delete     int    `json:"delete"`
	Submit     int    `json:"submit"`
}

type Notification struct {
	Doctype           string `json:"doctype"`
	Subject           string `json:"subject"`
	DocumentType      string `json:"document_type"`
	Event             string `json:"event"`
	Condition         string `json:"condition"`
	RecipientByField  string `json:"recipient_by_document_field"`
	Message           string `json:"message"`
}

// Reminder maps onto the Auto Repeat doctype.
type Reminder struct {
	Doctype           string `json:"doctype"`
	ReferenceDoctype  string `json:"reference_doctype"`
	ReferenceDocument string `json:"reference_document"`
	CronExpression    string `json:"cron_expression"`
	Status            string `json:"status"`
	NotifyByEmail     int    `json:"notify_by_email"`
	Subject           string `json:"subject"`
	Message           string `json:"message"`
	Filters           string `json:"filters"`
}

type ManagementFeeRule struct {
	Doctype    string  `json:"doctype"`
	Department string  `json:"department"`
	MonthlyFee float64 `json:"monthly_fee"`
}

type ProfitSharingRule struct {
	Doctype          string  `json:"doctype"`
	Department       string  `json:"department"`
	Role             string  `json:"role"`
	ProfitPercentage float64 `json:"profit_percentage"`
}

type PRF struct {
	Doctype  string  `json:"doctype"`
	Project  string  `json:"project"`
	ItemName string  `json:"item_name"`
	Quantity float64 `json:"quantity"`
	Status   string  `json:"status"`
}

type Claim struct {
	Doctype     string  `json:"doctype"`
	ProjectName string  `json:"project_name"`
	ClaimName   string  `json:"claim_name"`
	Amount      float64 `json:"amount"`
	DueDate     string  `json:"due_date,omitempty"`
	Status      string  `json:"status"`
}

type Project struct {
	Doctype         string  `json:"doctype"`
	ProjectName     string  `json:"project_name"`
	ProjectType     string  `json:"project_type"`
	Status          string  `json:"status"`
	ExpectedEndDate string  `json:"expected_end_date,omitempty"`
	EstimatedCost   float64 `json:"estimated_costing,omitempty"`
}

type TeamMember struct {
	Doctype string `json:"doctype"`
	User    string `json:"user"`
	Role    string `json:"role"`
}

type Asset struct {
	Doctype       string `json:"doctype"`
	AssetName     string `json:"asset_name"`
	AssetCategory string `json:"asset_category"`
	Department    string `json:"department,omitempty"`
	Status        string `json:"status"`
}

type MaintenanceSchedule struct {
	Doctype     string `json:"doctype"`
	AssetName   string `json:"asset_name"`
	Periodicity string `json:"periodicity"`
	Status      string `json:"status"`
}

type Item struct {
	Doctype          string `json:"doctype"`
	ItemName         string `json:"item_name"`
	OpeningStock     int    `json:"opening_stock"`
	StockUOM         string `json:"stock_uom"`
	DefaultWarehouse string `json:"default_warehouse,omitempty"`
}

type Supplier struct {
	Doctype       string `json:"doctype"`
	SupplierName  string `json:"supplier_name"`
	SupplierGroup string `json:"supplier_group"`
	SupplierType  string `json:"supplier_type"`
	ContactNumber string `json:"contact_number,omitempty"`
}

type BOQEntry struct {
	Doctype         string  `json:"doctype"`
	ItemDescription string  `json:"boq_item_description"`
	Quantity        float64 `json:"quantity"`
	BudgetAmountRM  float64 `json:"budget_amount_rm"`
}

type EmploymentContract struct {
	Doctype       string  `json:"doctype"`
	EmployeeName  string  `json:"employee_name"`
	MonthlySalary float64 `json:"monthly_salary"`
	StartDate     string  `json:"start_date"`
	Status        string  `json:"status"`
}
