// Package services wires the collections of a book together and answers
// questions that span records: totals, goal status, and what falls due.
//
// This file holds one dueness strategy per expense schedule. Each strategy
// decides whether an expense falls due in a given month and on which day.
package services

import (
	"fmt"
	"time"

	"pocketbook/internal/core"
)

// DuenessChecker decides whether an expense anchored at due falls due in the
// month starting at month.
type DuenessChecker interface {
	DueIn(due, month time.Time) (time.Time, bool)
}

// OneOffChecker matches only the month of the due date itself.
type OneOffChecker struct{}

func (OneOffChecker) DueIn(due, month time.Time) (time.Time, bool) {
	if due.Year() == month.Year() && due.Month() == month.Month() {
		return due, true
	}
	return time.Time{}, false
}

// MonthlyChecker matches every month from the due date's month on. A due day
// past the end of a short month moves to its last day.
type MonthlyChecker struct{}

func (MonthlyChecker) DueIn(due, month time.Time) (time.Time, bool) {
	if monthIndex(month) < monthIndex(due) {
		return time.Time{}, false
	}
	return clampDay(month.Year(), month.Month(), due.Day()), true
}

// YearlyChecker matches the due date's month in that year and every later one.
type YearlyChecker struct{}

func (YearlyChecker) DueIn(due, month time.Time) (time.Time, bool) {
	if month.Month() != due.Month() || month.Year() < due.Year() {
		return time.Time{}, false
	}
	return clampDay(month.Year(), month.Month(), due.Day()), true
}

var duenessStrategies = map[core.Frequency]DuenessChecker{
	core.Monthly: MonthlyChecker{},
	core.Yearly:  YearlyChecker{},
}

// GetDuenessChecker returns the checker for e's schedule. One-off expenses
// ignore their frequency; a recurring expense without one is monthly.
func GetDuenessChecker(e core.Expense) (DuenessChecker, error) {
	if e.Recurrence == core.OneOff {
		return OneOffChecker{}, nil
	}
	freq := e.Frequency
	if freq == "" {
		freq = core.Monthly
	}
	checker, ok := duenessStrategies[freq]
	if !ok {
		return nil, fmt.Errorf("unknown frequency: %s", freq)
	}
	return checker, nil
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

func clampDay(year int, month time.Month, day int) time.Time {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
