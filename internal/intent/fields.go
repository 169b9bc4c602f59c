package intent

// Fields is the intent-specific record of extracted values. Every value is
// optional; presence of required values is the validator's job, never the
// extractor's.
type Fields interface {
	isFields()
}

type DocField struct {
	Label     string
	Fieldname string
	Fieldtype string
}

type DoctypeFields struct {
	Name   string
	Fields []DocField
}

type DepartmentFields struct {
	Name   *string
	Parent *string
}

type UserFields struct {
	Name       *string
	Department *string
	Role       *string
}

type FinancialFields struct {
	Department *string
	Role       *string
	Amount     *float64
}

type PRFFields struct {
	Project  *string
	Item     *string
	Quantity *float64
}

type ClaimFields struct {
	Project *string
	Claim   *string
	Amount  *float64
}

type ProjectFields struct {
	Name        *string
	StartDate   *string
	Budget      *float64
	Assignments [][2]string
}

type VehicleFields struct {
	Vehicle        *string
	Department     *string
	IntervalMonths *int
}

type InventoryFields struct {
	Item       *string
	Quantity   *int
	Department *string
	Supplier   *string
	Contact    *string
}

type WorkflowFields struct {
	DocumentType string
	Roles        []string
}

type RoleFields struct {
	Name       string
	Allowed    []string
	Restricted []string
}

type NotificationFields struct {
	Subject      string
	DocumentType string
	Condition    string
	Message      string
}

type ReminderFields struct {
	DocumentType string
	Condition    string
	Message      string
	Cron         string
}

type BOQFields struct {
	Project  *string
	Item     *string
	Quantity *float64
	Price    *float64
}

type BOQQueryFields struct {
	Action  string
	Project *string
	Item    *string
}

type ContractFields struct {
	Employee  *string
	Salary    *float64
	StartDate *string
}

type DashboardFields struct {
	Audience   *string
	ReportType *string
	Frequency  *string
}

// EmptyFields covers intents with nothing to extract (plain listings).
type EmptyFields struct{}

func (DoctypeFields) isFields()      {}
func (DepartmentFields) isFields()   {}
func (UserFields) isFields()         {}
func (FinancialFields) isFields()    {}
func (PRFFields) isFields()          {}
func (ClaimFields) isFields()        {}
func (ProjectFields) isFields()      {}
func (VehicleFields) isFields()      {}
func (InventoryFields) isFields()    {}
func (WorkflowFields) isFields()     {}
func (RoleFields) isFields()         {}
func (NotificationFields) isFields() {}
func (ReminderFields) isFields()     {}
func (BOQFields) isFields()          {}
func (BOQQueryFields) isFields()     {}
func (ContractFields) isFields()     {}
func (DashboardFields) isFields()    {}
func (EmptyFields) isFields()        {}
