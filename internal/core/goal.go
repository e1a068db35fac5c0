package core

import (
	"errors"
	"fmt"
	"math"
)

// ContributionError is returned when contribution text cannot be applied to
// a goal.
type ContributionError struct {
	Input string
	Err   error
}

func (e *ContributionError) Error() string {
	return fmt.Sprintf("%v %q: %v", ErrInvalidContribution, e.Input, e.Err)
}

func (e *ContributionError) Unwrap() []error {
	return []error{ErrInvalidContribution, e.Err}
}

var (
	errNegativeContribution = errors.New("contributions cannot be negative")
	errContributionOverflow = errors.New("accumulated amount would overflow")
)

// Progress returns accumulated/target as a percentage. A target that does not
// parse or is zero yields 0. Values above 100 are returned as is.
func Progress(g Goal) float64 {
	target, err := ParseAmount(g.TargetAmount)
	if err != nil || target == 0 {
		return 0
	}
	return g.Accumulated / target * 100
}

// Contribute adds amountText to the goal's accumulated amount and clears the
// scratch contribution. On error the goal is returned unchanged.
func Contribute(g Goal, amountText string) (Goal, error) {
	amount, err := ParseAmount(amountText)
	if err != nil {
		return g, &ContributionError{Input: amountText, Err: err}
	}
	if amount < 0 {
		return g, &ContributionError{Input: amountText, Err: errNegativeContribution}
	}
	total := g.Accumulated + amount
	if math.IsInf(total, 0) {
		return g, &ContributionError{Input: amountText, Err: errContributionOverflow}
	}
	g.Accumulated = total
	g.Contribution = ""
	return g, nil
}
