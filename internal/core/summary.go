package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// Totals summarizes one collection. Records whose amount does not parse are
// counted in Unparsed and left out of the sums.
type Totals struct {
	Count      int
	Unparsed   int
	Total      Money
	ByCategory []CategoryAmount // first-seen order
}

// SumExpenses totals expenses overall and per category.
func SumExpenses(expenses []Expense) Totals {
	t := Totals{Count: len(expenses)}
	index := map[string]int{}
	for _, e := range expenses {
		cents, err := ParseDecimalToCents(e.Amount)
		if err != nil {
			t.Unparsed++
			continue
		}
		t.Total.Cents += cents
		i, ok := index[e.Category]
		if !ok {
			i = len(t.ByCategory)
			index[e.Category] = i
			t.ByCategory = append(t.ByCategory, CategoryAmount{Name: e.Category})
		}
		t.ByCategory[i].Amount.Cents += cents
	}
	return t
}

// SumIncomes totals incomes.
func SumIncomes(incomes []Income) Totals {
	t := Totals{Count: len(incomes)}
	for _, in := range incomes {
		cents, err := ParseDecimalToCents(in.Amount)
		if err != nil {
			t.Unparsed++
			continue
		}
		t.Total.Cents += cents
	}
	return t
}
