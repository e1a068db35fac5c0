package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pocketbook/internal/core"
	"pocketbook/internal/repository"
	"pocketbook/internal/storage"
	"pocketbook/internal/worker"
)

type events struct {
	mu  sync.Mutex
	got []worker.Event
}

func (e *events) Notify(_ context.Context, ev worker.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.got = append(e.got, ev)
}

func (e *events) all() []worker.Event {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]worker.Event(nil), e.got...)
}

func newBook(t *testing.T, store storage.Store, persistCategories bool) (*Book, *worker.PersistWorker, *events) {
	t.Helper()
	ev := &events{}
	w := worker.NewPersistWorker(store, worker.Options{QueueSize: 16, Notifier: ev})
	t.Cleanup(func() { w.Close() })
	b := NewBook(store, w, Options{PersistCategories: persistCategories, Notifier: ev})
	return b, w, ev
}

func addGoal(t *testing.T, b *Book, name, target string) int {
	t.Helper()
	b.Goals.SetField(core.FieldName, name)
	b.Goals.SetField(core.FieldTargetAmount, target)
	b.Goals.SetField(core.FieldDeadline, "12/2027")
	b.Goals.SetField(core.FieldStartDate, "01/01/2026")
	i, err := b.Goals.Commit(context.Background())
	require.NoError(t, err)
	return i
}

func addFixed(t *testing.T, b *Book, name, amount, due string, rec core.Recurrence, freq core.Frequency) {
	t.Helper()
	b.Fixed.SetField(core.FieldName, name)
	b.Fixed.SetField(core.FieldAmount, amount)
	b.Fixed.SetField(core.FieldDueDate, due)
	b.Fixed.SetField(core.FieldRecurrence, string(rec))
	b.Fixed.SetField(core.FieldFrequency, string(freq))
	_, err := b.Fixed.Commit(context.Background())
	require.NoError(t, err)
}

func TestBookRoundTripThroughStore(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(nil)

	b, w, _ := newBook(t, store, true)
	addGoal(t, b, "Trip", "5000")
	addFixed(t, b, "Rent", "1.500,00", "05/01/2026", core.Recurring, core.Monthly)
	b.Incomes.SetField(core.FieldName, "Salary")
	b.Incomes.SetField(core.FieldAmount, "4000")
	b.Incomes.SetField(core.FieldReceivedDate, "01/10/2026")
	_, err := b.Incomes.Commit(ctx)
	require.NoError(t, err)
	require.NoError(t, w.Flush(ctx))

	reloaded, _, _ := newBook(t, store, true)
	require.NoError(t, reloaded.LoadAll(ctx))

	if diff := cmp.Diff(b.Goals.Repository().List(), reloaded.Goals.Repository().List()); diff != "" {
		t.Errorf("goals mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(b.Fixed.Repository().List(), reloaded.Fixed.Repository().List()); diff != "" {
		t.Errorf("fixed expenses mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(b.Incomes.Repository().List(), reloaded.Incomes.Repository().List()); diff != "" {
		t.Errorf("incomes mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 0, reloaded.Variable.Repository().Len())
}

func TestLoadAllCorruptCollectionStartsEmpty(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(map[string]string{
		KeyGoals:   "not json",
		KeyIncomes: `[{"name":"Salary","amount":"3000","receivedDate":"05/10/2026"}]`,
	})

	b, _, ev := newBook(t, store, true)
	require.NoError(t, b.LoadAll(ctx))

	assert.Equal(t, 0, b.Goals.Repository().Len())
	assert.Equal(t, 1, b.Incomes.Repository().Len(), "legacy array still loads")

	backup, err := store.Get(ctx, KeyGoals+CorruptSuffix)
	require.NoError(t, err)
	assert.Equal(t, "not json", backup)

	got := ev.all()
	require.Len(t, got, 1)
	assert.Equal(t, worker.EventLoadCorrupt, got[0].Type)
	assert.Equal(t, KeyGoals, got[0].Key)
	assert.ErrorIs(t, got[0].Err, repository.ErrCorruptData)
}

type brokenStore struct {
	*storage.MemoryStore
	err error
}

func (s brokenStore) Get(context.Context, string) (string, error) { return "", s.err }

func TestLoadAllStoreFailureAborts(t *testing.T) {
	cause := errors.New("database is locked")
	store := brokenStore{MemoryStore: storage.NewMemoryStore(nil), err: cause}

	b, _, _ := newBook(t, store, true)
	assert.ErrorIs(t, b.LoadAll(context.Background()), cause)
}

func TestCategoriesNotPersistedWhenDisabled(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(map[string]string{
		KeyCategories: `{"version":1,"records":[{"name":"Old","description":"d","kind":"expense","budget":"","priority":"low"}]}`,
	})

	b, w, _ := newBook(t, store, false)
	require.NoError(t, b.LoadAll(ctx))
	assert.Equal(t, 0, b.Categories.Repository().Len(), "categories are not loaded when not persisted")

	b.Categories.SetField(core.FieldName, "Casa")
	b.Categories.SetField(core.FieldDescription, "Rent")
	b.Categories.SetField(core.FieldKind, string(core.CategoryExpense))
	b.Categories.SetField(core.FieldPriority, string(core.PriorityHigh))
	_, err := b.Categories.Commit(ctx)
	require.NoError(t, err)
	require.NoError(t, w.Flush(ctx))

	raw, err := store.Get(ctx, KeyCategories)
	require.NoError(t, err)
	assert.Contains(t, raw, `"Old"`, "stored categories untouched")
}

func TestContribute(t *testing.T) {
	ctx := context.Background()
	b, w, _ := newBook(t, storage.NewMemoryStore(nil), true)
	i := addGoal(t, b, "Trip", "200")

	require.NoError(t, b.SetContribution(ctx, i, "100"))
	g, err := b.Contribute(ctx, i)
	require.NoError(t, err)
	assert.Equal(t, 100.0, g.Accumulated)
	assert.Equal(t, "", g.Contribution)

	require.NoError(t, b.SetContribution(ctx, i, "50"))
	g, err = b.Contribute(ctx, i)
	require.NoError(t, err)
	assert.Equal(t, 150.0, g.Accumulated)

	require.NoError(t, b.SetContribution(ctx, i, "abc"))
	_, err = b.Contribute(ctx, i)
	var cerr *core.ContributionError
	require.ErrorAs(t, err, &cerr)
	assert.ErrorIs(t, err, core.ErrInvalidContribution)

	stored, _ := b.Goals.Repository().At(i)
	assert.Equal(t, 150.0, stored.Accumulated, "failed contribution leaves accumulated")
	assert.Equal(t, "abc", stored.Contribution)

	require.NoError(t, b.SetContribution(ctx, i, "-10"))
	_, err = b.Contribute(ctx, i)
	assert.ErrorIs(t, err, core.ErrInvalidContribution)

	p, err := b.GoalProgress(i)
	require.NoError(t, err)
	assert.InDelta(t, 75.0, p, 1e-9)

	_, err = b.Contribute(ctx, 9)
	assert.ErrorIs(t, err, repository.ErrIndexOutOfRange)
	_, err = b.GoalProgress(9)
	assert.ErrorIs(t, err, repository.ErrIndexOutOfRange)
	assert.ErrorIs(t, b.SetContribution(ctx, 9, "1"), repository.ErrIndexOutOfRange)

	require.NoError(t, w.Flush(ctx))
}

func TestContributeOverflowKeepsGoalsSaving(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(nil)
	b, w, ev := newBook(t, store, true)
	i := addGoal(t, b, "Moon", "1")

	require.NoError(t, b.SetContribution(ctx, i, "1e308"))
	_, err := b.Contribute(ctx, i)
	require.NoError(t, err)

	require.NoError(t, b.SetContribution(ctx, i, "1e308"))
	_, err = b.Contribute(ctx, i)
	assert.ErrorIs(t, err, core.ErrInvalidContribution)

	addGoal(t, b, "Car", "20000")
	require.NoError(t, w.Flush(ctx))

	for _, e := range ev.all() {
		assert.NotEqual(t, worker.EventPersistFailed, e.Type, "unexpected failure for %s: %v", e.Key, e.Err)
	}
	payload, err := store.Get(ctx, KeyGoals)
	require.NoError(t, err)
	goals, err := repository.Decode[core.Goal](payload)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, 1e308, goals[0].Accumulated)
	assert.Equal(t, "Car", goals[1].Name)
}

func TestGoalStatuses(t *testing.T) {
	b, _, _ := newBook(t, storage.NewMemoryStore(nil), true)
	ctx := context.Background()

	addGoal(t, b, "Trip", "1.500,00")
	require.NoError(t, b.SetContribution(ctx, 0, "300"))
	_, err := b.Contribute(ctx, 0)
	require.NoError(t, err)

	addGoal(t, b, "Broken", "zero")

	now := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	got := b.GoalStatuses(now)
	require.Len(t, got, 2)

	assert.InDelta(t, 20.0, got[0].Progress, 1e-9)
	assert.Equal(t, 15, got[0].MonthsLeft)
	assert.InDelta(t, 80.0, got[0].MonthlyNeeded, 1e-9)

	assert.Equal(t, 0.0, got[1].Progress)
	assert.Equal(t, 0.0, got[1].MonthlyNeeded)
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	b, _, _ := newBook(t, storage.NewMemoryStore(nil), true)

	addFixed(t, b, "Rent", "1.000,00", "05/01/2026", core.Recurring, core.Monthly)
	addFixed(t, b, "Gym", "oops", "05/01/2026", core.Recurring, core.Monthly)
	b.Variable.SetField(core.FieldName, "Dinner")
	b.Variable.SetField(core.FieldAmount, "50,25")
	b.Variable.SetField(core.FieldDueDate, "12/10/2026")
	b.Variable.SetField(core.FieldCategory, "Entretenimento")
	_, err := b.Variable.Commit(ctx)
	require.NoError(t, err)
	b.Incomes.SetField(core.FieldName, "Salary")
	b.Incomes.SetField(core.FieldAmount, "3000")
	b.Incomes.SetField(core.FieldReceivedDate, "01/10/2026")
	_, err = b.Incomes.Commit(ctx)
	require.NoError(t, err)

	s := b.Summary()
	assert.Equal(t, 2, s.Fixed.Count)
	assert.Equal(t, 1, s.Fixed.Unparsed)
	assert.Equal(t, int64(100000), s.Fixed.Total.Cents)
	assert.Equal(t, int64(5025), s.Variable.Total.Cents)
	assert.Equal(t, []core.CategoryAmount{{Name: "Entretenimento", Amount: core.Money{Cents: 5025}}}, s.Variable.ByCategory)
	assert.Equal(t, int64(300000-100000-5025), s.Balance.Cents)
}

func TestDueThisMonth(t *testing.T) {
	b, _, _ := newBook(t, storage.NewMemoryStore(nil), true)

	addFixed(t, b, "Rent", "1000", "05/01/2026", core.Recurring, core.Monthly)
	addFixed(t, b, "Insurance", "900", "20/03/2025", core.Recurring, core.Yearly)
	addFixed(t, b, "Repair", "300", "15/10/2026", core.OneOff, core.Monthly)
	addFixed(t, b, "Card", "80", "31/01/2026", core.Recurring, core.Monthly)
	addFixed(t, b, "Unreadable", "10", "someday", core.Recurring, core.Monthly)

	due := b.DueThisMonth(time.Date(2026, 10, 18, 9, 30, 0, 0, time.Local))
	var got []string
	for _, d := range due {
		got = append(got, d.Expense.Name+"@"+d.DueOn.Format(core.DateLayout))
	}
	assert.Equal(t, []string{"Rent@05/10/2026", "Repair@15/10/2026", "Card@31/10/2026"}, got)

	due = b.DueThisMonth(time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC))
	got = nil
	for _, d := range due {
		got = append(got, d.Expense.Name)
	}
	assert.Equal(t, []string{"Rent", "Insurance", "Card"}, got)
}

func TestKeyFor(t *testing.T) {
	for _, name := range Collections {
		key, err := KeyFor(name)
		require.NoError(t, err)
		assert.NotEmpty(t, key)
	}
	_, err := KeyFor("budgets")
	assert.Error(t, err)
}
