package core

import "errors"

const (
	KindExpense  Kind = "expense"
	KindIncome   Kind = "income"
	KindCategory Kind = "category"
	KindGoal     Kind = "goal"
)

const (
	OneOff    Recurrence = "one-off"
	Recurring Recurrence = "recurring"
)

const (
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

const (
	CategoryExpense CategoryKind = "expense"
	CategoryIncome  CategoryKind = "income"
)

const (
	PriorityUnset  Priority = ""
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Field names, shared by form input and the serialized record format.
const (
	FieldName         = "name"
	FieldAmount       = "amount"
	FieldDueDate      = "dueDate"
	FieldRecurrence   = "recurrence"
	FieldCategory     = "category"
	FieldFrequency    = "frequency"
	FieldReceivedDate = "receivedDate"
	FieldNote         = "note"
	FieldDescription  = "description"
	FieldKind         = "kind"
	FieldBudget       = "budget"
	FieldPriority     = "priority"
	FieldTargetAmount = "targetAmount"
	FieldDeadline     = "deadline"
	FieldStartDate    = "startDate"
	FieldAccumulated  = "accumulated"
	FieldContribution = "contribution"
)

// DefaultExpenseCategory is preselected on every new expense draft.
const DefaultExpenseCategory = "Alimentação"

// ExpenseCategories is the preset picker offered for expenses. It is a
// suggestion list only; any category string is accepted.
var ExpenseCategories = []string{
	"Alimentação",
	"Moradia",
	"Higiene",
	"Contas",
	"Vestuário",
	"Saúde",
	"Carro",
	"Entretenimento",
	"Combustível",
	"Geral",
	"Férias",
	"Presentes",
	"Manutenções",
	"Beleza",
}

type (
	Kind         string
	Recurrence   string
	Frequency    string
	CategoryKind string
	Priority     string

	// Expense is used for both fixed and variable expenses; they live in
	// separate collections.
	Expense struct {
		Name       string     `json:"name"`
		Amount     string     `json:"amount"`
		DueDate    string     `json:"dueDate"`
		Recurrence Recurrence `json:"recurrence"`
		Category   string     `json:"category"`
		Frequency  Frequency  `json:"frequency,omitempty"`
	}

	Income struct {
		Name         string `json:"name"`
		Amount       string `json:"amount"`
		ReceivedDate string `json:"receivedDate"`
		Note         string `json:"note"`
	}

	Category struct {
		Name        string       `json:"name"`
		Description string       `json:"description"`
		Kind        CategoryKind `json:"kind"`
		Budget      string       `json:"budget"`
		Priority    Priority     `json:"priority"`
	}

	// Goal is a savings target. Contribution is a scratch field holding the
	// not yet applied contribution typed next to the goal.
	Goal struct {
		Name         string  `json:"name"`
		TargetAmount string  `json:"targetAmount"`
		Deadline     string  `json:"deadline"`
		StartDate    string  `json:"startDate"`
		Accumulated  float64 `json:"accumulated"`
		Contribution string  `json:"contribution"`
	}
)

var (
	ErrValidation          = errors.New("missing required fields")
	ErrInvalidContribution = errors.New("invalid contribution")
	ErrInvalidAmount       = errors.New("invalid amount")
)

// NewExpense returns an expense draft with its defaults applied.
func NewExpense() Expense {
	return Expense{
		Recurrence: Recurring,
		Category:   DefaultExpenseCategory,
		Frequency:  Monthly,
	}
}

func NewIncome() Income {
	return Income{}
}

func NewCategory() Category {
	return Category{}
}

func NewGoal() Goal {
	return Goal{Contribution: "0"}
}

// TogglePriority selects p, or clears the priority when p is already selected.
func (c Category) TogglePriority(p Priority) Category {
	if c.Priority == p {
		c.Priority = PriorityUnset
		return c
	}
	c.Priority = p
	return c
}

func (r Recurrence) IsValid() bool {
	switch r {
	case OneOff, Recurring:
		return true
	default:
		return false
	}
}

func (f Frequency) IsValid() bool {
	switch f {
	case Monthly, Yearly:
		return true
	default:
		return false
	}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}
