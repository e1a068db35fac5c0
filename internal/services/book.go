package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"pocketbook/internal/core"
	"pocketbook/internal/form"
	"pocketbook/internal/log"
	"pocketbook/internal/repository"
	"pocketbook/internal/storage"
	"pocketbook/internal/worker"
)

// Store keys, one per collection.
const (
	KeyFixedExpenses    = "expenses"
	KeyVariableExpenses = "variable_expenses"
	KeyIncomes          = "incomes"
	KeyCategories       = "categories"
	KeyGoals            = "goals"
)

// CorruptSuffix is appended to a key to keep an undecodable payload.
const CorruptSuffix = ".corrupt"

type Options struct {
	// PersistCategories controls whether category commits reach the store.
	PersistCategories bool
	// Notifier receives load_corrupt events.
	Notifier worker.Notifier
	Logger   *log.Logger
}

// Book owns one form session per collection.
type Book struct {
	store    storage.Store
	notifier worker.Notifier
	logger   *log.Logger
	opts     Options

	Fixed      *form.Session[core.Expense]
	Variable   *form.Session[core.Expense]
	Incomes    *form.Session[core.Income]
	Categories *form.Session[core.Category]
	Goals      *form.Session[core.Goal]
}

func NewBook(store storage.Store, persister worker.Persister, opts Options) *Book {
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}
	if opts.Notifier == nil {
		opts.Notifier = worker.Notifiers(nil)
	}
	logger := opts.Logger.WithComponent(log.ComponentBook)

	categoryPersister := persister
	if !opts.PersistCategories {
		categoryPersister = nil
	}

	return &Book{
		store:    store,
		notifier: opts.Notifier,
		logger:   logger,
		opts:     opts,

		Fixed:      form.New(core.ExpenseSchema, repository.New[core.Expense](KeyFixedExpenses), persister, opts.Logger).WithNotifier(opts.Notifier),
		Variable:   form.New(core.ExpenseSchema, repository.New[core.Expense](KeyVariableExpenses), persister, opts.Logger).WithNotifier(opts.Notifier),
		Incomes:    form.New(core.IncomeSchema, repository.New[core.Income](KeyIncomes), persister, opts.Logger).WithNotifier(opts.Notifier),
		Categories: form.New(core.CategorySchema, repository.New[core.Category](KeyCategories), categoryPersister, opts.Logger).WithNotifier(opts.Notifier),
		Goals:      form.New(core.GoalSchema, repository.New[core.Goal](KeyGoals), persister, opts.Logger).WithNotifier(opts.Notifier),
	}
}

// LoadAll reads every collection concurrently. A payload that does not decode
// is copied to <key>.corrupt, reported as a load_corrupt event, and its
// collection starts empty. Any other store error aborts the load.
func (b *Book) LoadAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return load(ctx, b, b.Fixed.Repository()) })
	g.Go(func() error { return load(ctx, b, b.Variable.Repository()) })
	g.Go(func() error { return load(ctx, b, b.Incomes.Repository()) })
	g.Go(func() error { return load(ctx, b, b.Goals.Repository()) })
	if b.opts.PersistCategories {
		g.Go(func() error { return load(ctx, b, b.Categories.Repository()) })
	}
	return g.Wait()
}

func load[T any](ctx context.Context, b *Book, repo *repository.Repository[T]) error {
	err := repo.Load(ctx, b.store)
	var corrupt *repository.CorruptDataError
	if !errors.As(err, &corrupt) {
		if err == nil {
			b.logger.DebugContext(ctx, "Collection loaded", log.FieldKey, repo.Key(), log.FieldRecords, repo.Len())
		}
		return err
	}

	repo.Reset()
	backup := repo.Key() + CorruptSuffix
	if werr := b.store.Set(ctx, backup, corrupt.Raw); werr != nil {
		b.logger.ErrorContext(ctx, "Failed to back up corrupt collection",
			log.FieldKey, repo.Key(),
			log.FieldError, werr)
	}
	b.logger.WarnContext(ctx, "Corrupt collection ignored",
		log.FieldKey, repo.Key(),
		"backup", backup,
		log.FieldError, corrupt.Err)
	b.notifier.Notify(ctx, worker.Event{
		Type:      worker.EventLoadCorrupt,
		Key:       repo.Key(),
		Err:       err,
		Timestamp: time.Now(),
	})
	return nil
}

// SetContribution stores text as the pending contribution of goal i.
func (b *Book) SetContribution(ctx context.Context, i int, text string) error {
	g, err := b.Goals.Repository().At(i)
	if err != nil {
		return err
	}
	g.Contribution = text
	return b.Goals.Replace(ctx, i, g)
}

// Contribute applies goal i's pending contribution. On a bad amount the goal
// is left as it was and a *core.ContributionError is returned.
func (b *Book) Contribute(ctx context.Context, i int) (core.Goal, error) {
	g, err := b.Goals.Repository().At(i)
	if err != nil {
		return core.Goal{}, err
	}
	next, err := core.Contribute(g, g.Contribution)
	if err != nil {
		b.logger.InfoContext(ctx, "Contribution rejected",
			log.FieldIndex, i,
			log.FieldError, err)
		return g, err
	}
	if err := b.Goals.Replace(ctx, i, next); err != nil {
		return g, err
	}
	b.logger.InfoContext(ctx, "Contribution applied",
		log.FieldIndex, i,
		log.FieldOperation, log.OpContribute,
		"accumulated", next.Accumulated)
	return next, nil
}

// GoalProgress returns the progress percentage of goal i.
func (b *Book) GoalProgress(i int) (float64, error) {
	g, err := b.Goals.Repository().At(i)
	if err != nil {
		return 0, err
	}
	return core.Progress(g), nil
}

// GoalStatus is a goal with its derived figures.
type GoalStatus struct {
	Index    int
	Goal     core.Goal
	Progress float64
	// MonthsLeft counts calendar months up to and including the deadline
	// month. Zero when the deadline has passed or does not parse.
	MonthsLeft int
	// MonthlyNeeded is the amount still missing spread over MonthsLeft.
	// Zero when MonthsLeft is zero or the target is already reached.
	MonthlyNeeded float64
}

// GoalStatuses returns every goal with its progress as of now.
func (b *Book) GoalStatuses(now time.Time) []GoalStatus {
	goals := b.Goals.Repository().List()
	out := make([]GoalStatus, len(goals))
	for i, g := range goals {
		st := GoalStatus{Index: i, Goal: g, Progress: core.Progress(g)}
		if deadline, err := core.ParseMonthYear(g.Deadline); err == nil {
			st.MonthsLeft = max(core.MonthsBetween(now, deadline), 0)
		}
		if target, err := core.ParseAmount(g.TargetAmount); err == nil && st.MonthsLeft > 0 && target > g.Accumulated {
			st.MonthlyNeeded = (target - g.Accumulated) / float64(st.MonthsLeft)
		}
		out[i] = st
	}
	return out
}

// Summary is the whole book at a glance.
type Summary struct {
	Fixed      core.Totals
	Variable   core.Totals
	Incomes    core.Totals
	Categories int
	Goals      int
	// Balance is incomes minus both expense totals.
	Balance core.Money
}

func (b *Book) Summary() Summary {
	s := Summary{
		Fixed:      core.SumExpenses(b.Fixed.Repository().List()),
		Variable:   core.SumExpenses(b.Variable.Repository().List()),
		Incomes:    core.SumIncomes(b.Incomes.Repository().List()),
		Categories: b.Categories.Repository().Len(),
		Goals:      b.Goals.Repository().Len(),
	}
	s.Balance.Cents = s.Incomes.Total.Cents - s.Fixed.Total.Cents - s.Variable.Total.Cents
	return s
}

// DueExpense is a fixed expense falling due in the requested month.
type DueExpense struct {
	Index   int
	Expense core.Expense
	DueOn   time.Time
}

// DueThisMonth lists the fixed expenses that fall due in now's month, in
// collection order. Expenses whose due date does not parse are skipped.
func (b *Book) DueThisMonth(now time.Time) []DueExpense {
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	var out []DueExpense
	for i, e := range b.Fixed.Repository().List() {
		due, err := core.ParseDate(e.DueDate)
		if err != nil {
			b.logger.Debug("Skipping expense with unreadable due date", log.FieldIndex, i, log.FieldError, err)
			continue
		}
		checker, err := GetDuenessChecker(e)
		if err != nil {
			b.logger.Debug("Skipping expense with unknown schedule", log.FieldIndex, i, log.FieldError, err)
			continue
		}
		if on, ok := checker.DueIn(due, month); ok {
			out = append(out, DueExpense{Index: i, Expense: e, DueOn: on})
		}
	}
	return out
}

// Collections lists the names KeyFor accepts.
var Collections = []string{"fixed", "variable", "incomes", "categories", "goals"}

// KeyFor maps a collection name onto its store key.
func KeyFor(name string) (string, error) {
	switch name {
	case "fixed":
		return KeyFixedExpenses, nil
	case "variable":
		return KeyVariableExpenses, nil
	case "incomes":
		return KeyIncomes, nil
	case "categories":
		return KeyCategories, nil
	case "goals":
		return KeyGoals, nil
	}
	return "", fmt.Errorf("unknown collection %q", name)
}
