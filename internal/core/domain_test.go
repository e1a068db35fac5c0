package core

import (
	"errors"
	"reflect"
	"testing"
)

func TestValidateExpense(t *testing.T) {
	good := Expense{Name: "Rent", Amount: "1200", DueDate: "05/11/2026"}
	if got := ValidateExpense(good); len(got) != 0 {
		t.Fatalf("expected valid, got missing %v", got)
	}

	got := ValidateExpense(NewExpense())
	want := []string{FieldName, FieldAmount, FieldDueDate}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	got = ValidateExpense(Expense{Name: "  ", Amount: "10", DueDate: "01/01/2026"})
	if !reflect.DeepEqual(got, []string{FieldName}) {
		t.Fatalf("blank name should be missing, got %v", got)
	}
}

func TestValidateIncome(t *testing.T) {
	got := ValidateIncome(Income{Name: "Salary", Note: "optional"})
	want := []string{FieldAmount, FieldReceivedDate}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := ValidateIncome(Income{Name: "Salary", Amount: "10", ReceivedDate: "01/01/2026"}); len(got) != 0 {
		t.Fatalf("note must be optional, got %v", got)
	}
}

func TestValidateCategory(t *testing.T) {
	c := Category{Name: "Food", Description: "Groceries", Kind: CategoryExpense}
	got := ValidateCategory(c)
	if !reflect.DeepEqual(got, []string{FieldPriority}) {
		t.Fatalf("expected only priority missing, got %v", got)
	}
	c.Priority = PriorityHigh
	if got := ValidateCategory(c); len(got) != 0 {
		t.Fatalf("budget must be optional, got %v", got)
	}
}

func TestValidateGoal(t *testing.T) {
	got := ValidateGoal(NewGoal())
	want := []string{FieldName, FieldTargetAmount, FieldDeadline, FieldStartDate}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNewValidationError(t *testing.T) {
	if err := NewValidationError(KindGoal, nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	err := NewValidationError(KindGoal, []string{FieldName})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Missing[0] != FieldName {
		t.Fatalf("unexpected error %#v", err)
	}
}

func TestCategoryTogglePriority(t *testing.T) {
	c := NewCategory()
	c = c.TogglePriority(PriorityLow)
	if c.Priority != PriorityLow {
		t.Fatalf("expected low, got %q", c.Priority)
	}
	c = c.TogglePriority(PriorityHigh)
	if c.Priority != PriorityHigh {
		t.Fatalf("expected high, got %q", c.Priority)
	}
	c = c.TogglePriority(PriorityHigh)
	if c.Priority != PriorityUnset {
		t.Fatalf("expected unset, got %q", c.Priority)
	}
}

func TestSchemaSetField(t *testing.T) {
	e, ok := ExpenseSchema.SetField(ExpenseSchema.Defaults(), FieldAmount, "10")
	if !ok || e.Amount != "10" || e.Category != DefaultExpenseCategory {
		t.Fatalf("unexpected expense %#v ok=%v", e, ok)
	}
	if _, ok := ExpenseSchema.SetField(e, "bogus", "x"); ok {
		t.Fatalf("unknown field should report false")
	}

	g, ok := GoalSchema.SetField(NewGoal(), FieldAccumulated, "1000")
	if ok || g.Accumulated != 0 {
		t.Fatalf("accumulated must not be settable, got %#v ok=%v", g, ok)
	}
	if got := GoalSchema.Prepare(Goal{Contribution: "25"}); got.Contribution != "0" {
		t.Fatalf("prepare should reset contribution, got %q", got.Contribution)
	}
}

func TestSumExpenses(t *testing.T) {
	totals := SumExpenses([]Expense{
		{Amount: "10,50", Category: "Contas"},
		{Amount: "4.50", Category: "Carro"},
		{Amount: "5", Category: "Contas"},
		{Amount: "n/a", Category: "Geral"},
	})
	if totals.Count != 4 || totals.Unparsed != 1 || totals.Total.Cents != 2000 {
		t.Fatalf("unexpected totals %#v", totals)
	}
	want := []CategoryAmount{
		{Name: "Contas", Amount: Money{Cents: 1550}},
		{Name: "Carro", Amount: Money{Cents: 450}},
	}
	if !reflect.DeepEqual(totals.ByCategory, want) {
		t.Fatalf("expected %v, got %v", want, totals.ByCategory)
	}
}
