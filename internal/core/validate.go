package core

import (
	"fmt"
	"strings"
)

// ValidationError lists the required fields a draft is missing.
type ValidationError struct {
	Kind    Kind
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Kind, ErrValidation, strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError returns nil when nothing is missing.
func NewValidationError(kind Kind, missing []string) error {
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Kind: kind, Missing: missing}
}

// Only presence is checked. Amounts and dates are not parsed here.

func ValidateExpense(e Expense) []string {
	return missing(
		FieldName, e.Name,
		FieldAmount, e.Amount,
		FieldDueDate, e.DueDate,
	)
}

func ValidateIncome(in Income) []string {
	return missing(
		FieldName, in.Name,
		FieldAmount, in.Amount,
		FieldReceivedDate, in.ReceivedDate,
	)
}

func ValidateCategory(c Category) []string {
	return missing(
		FieldName, c.Name,
		FieldDescription, c.Description,
		FieldKind, string(c.Kind),
		FieldPriority, string(c.Priority),
	)
}

func ValidateGoal(g Goal) []string {
	return missing(
		FieldName, g.Name,
		FieldTargetAmount, g.TargetAmount,
		FieldDeadline, g.Deadline,
		FieldStartDate, g.StartDate,
	)
}

// missing takes name/value pairs and returns the names whose value is blank,
// in the order given.
func missing(pairs ...string) []string {
	var out []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			out = append(out, pairs[i])
		}
	}
	return out
}
