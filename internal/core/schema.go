package core

// Schema bundles everything a form session needs to know about one record
// type: how to build a blank draft, which fields are required, and how raw
// input lands on the draft.
type Schema[T any] struct {
	Kind Kind

	// Defaults returns a fresh draft.
	Defaults func() T

	// Validate returns the names of missing required fields.
	Validate func(T) []string

	// SetField assigns value to the named field. It reports false when the
	// field is unknown, in which case the record is returned unchanged.
	SetField func(r T, name, value string) (T, bool)

	// Prepare, when set, is applied to a validated draft right before it is
	// stored.
	Prepare func(T) T
}

var ExpenseSchema = Schema[Expense]{
	Kind:     KindExpense,
	Defaults: NewExpense,
	Validate: ValidateExpense,
	SetField: setExpenseField,
}

var IncomeSchema = Schema[Income]{
	Kind:     KindIncome,
	Defaults: NewIncome,
	Validate: ValidateIncome,
	SetField: setIncomeField,
}

var CategorySchema = Schema[Category]{
	Kind:     KindCategory,
	Defaults: NewCategory,
	Validate: ValidateCategory,
	SetField: setCategoryField,
}

var GoalSchema = Schema[Goal]{
	Kind:     KindGoal,
	Defaults: NewGoal,
	Validate: ValidateGoal,
	SetField: setGoalField,
	Prepare: func(g Goal) Goal {
		g.Contribution = "0"
		return g
	},
}

func setExpenseField(e Expense, name, value string) (Expense, bool) {
	switch name {
	case FieldName:
		e.Name = value
	case FieldAmount:
		e.Amount = value
	case FieldDueDate:
		e.DueDate = value
	case FieldRecurrence:
		e.Recurrence = Recurrence(value)
	case FieldCategory:
		e.Category = value
	case FieldFrequency:
		e.Frequency = Frequency(value)
	default:
		return e, false
	}
	return e, true
}

func setIncomeField(in Income, name, value string) (Income, bool) {
	switch name {
	case FieldName:
		in.Name = value
	case FieldAmount:
		in.Amount = value
	case FieldReceivedDate:
		in.ReceivedDate = value
	case FieldNote:
		in.Note = value
	default:
		return in, false
	}
	return in, true
}

func setCategoryField(c Category, name, value string) (Category, bool) {
	switch name {
	case FieldName:
		c.Name = value
	case FieldDescription:
		c.Description = value
	case FieldKind:
		c.Kind = CategoryKind(value)
	case FieldBudget:
		c.Budget = value
	case FieldPriority:
		c.Priority = Priority(value)
	default:
		return c, false
	}
	return c, true
}

// setGoalField does not expose accumulated: it only moves through Contribute.
func setGoalField(g Goal, name, value string) (Goal, bool) {
	switch name {
	case FieldName:
		g.Name = value
	case FieldTargetAmount:
		g.TargetAmount = value
	case FieldDeadline:
		g.Deadline = value
	case FieldStartDate:
		g.StartDate = value
	case FieldContribution:
		g.Contribution = value
	default:
		return g, false
	}
	return g, true
}
