package tracker

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/etnz/tracker/kv"
	"github.com/shopspring/decimal"
)

// failingKV simulates a persistence layer that accepts reads but refuses
// writes, like a full or disabled storage.
type failingKV struct{ *kv.Memory }

func (f failingKV) Set(key, value string) error { return errors.New("storage disabled") }

func newTestStore(t *testing.T) (*Store, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	s, err := Open(mem)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s, mem
}

func mustAdd(t *testing.T, s *Store, d Draft) Transaction {
	t.Helper()
	tx, err := s.Add(d)
	if err != nil {
		t.Fatalf("Add(%+v): %v", d, err)
	}
	return tx
}

func TestStore_Add(t *testing.T) {
	s, mem := newTestStore(t)
	now := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	tx := mustAdd(t, s, Draft{Description: "  Morning coffee  ", Amount: "3.50", Category: "Food", Date: "2024-05-01"})

	if tx.Description != "Morning coffee" {
		t.Errorf("description not trimmed: %q", tx.Description)
	}
	if !tx.Amount.Equal(decimal.RequireFromString("3.50")) {
		t.Errorf("amount = %s, want 3.50", tx.Amount)
	}
	if len(tx.ID) != 32 {
		t.Errorf("id %q is not a 128-bit hex identifier", tx.ID)
	}
	if !tx.CreatedAt.Equal(now) || !tx.UpdatedAt.Equal(now) {
		t.Errorf("timestamps not stamped to the same instant: %v / %v", tx.CreatedAt, tx.UpdatedAt)
	}

	// the snapshot must be durable immediately.
	blob, ok, _ := mem.Get("transactions")
	if !ok {
		t.Fatal("no transactions blob persisted after Add")
	}
	var persisted []Transaction
	if err := json.Unmarshal([]byte(blob), &persisted); err != nil {
		t.Fatalf("persisted blob does not decode: %v", err)
	}
	if len(persisted) != 1 || persisted[0].ID != tx.ID {
		t.Errorf("persisted snapshot = %+v, want the added transaction", persisted)
	}
}

func TestStore_UniqueIDs(t *testing.T) {
	s, _ := newTestStore(t)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tx := mustAdd(t, s, Draft{Description: "Coffee run", Amount: "1", Category: "Food", Date: "2024-05-01"})
		if seen[tx.ID] {
			t.Fatalf("duplicate id generated: %s", tx.ID)
		}
		seen[tx.ID] = true
	}
}

func TestStore_Update(t *testing.T) {
	s, _ := newTestStore(t)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return created }
	tx := mustAdd(t, s, Draft{Description: "Lunch", Amount: "12", Category: "Food", Date: "2024-05-01"})

	edited := created.Add(2 * time.Hour)
	s.now = func() time.Time { return edited }

	found, err := s.Update(tx.ID, Draft{Description: "Team lunch", Amount: "15.50", Category: "Food", Date: "2024-05-02"})
	if err != nil || !found {
		t.Fatalf("Update = (%v, %v), want found with no error", found, err)
	}

	got := s.Transactions()[0]
	if got.Description != "Team lunch" || !got.Amount.Equal(decimal.RequireFromString("15.50")) {
		t.Errorf("fields not updated: %+v", got)
	}
	if got.ID != tx.ID {
		t.Errorf("id changed on update: %q -> %q", tx.ID, got.ID)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("createdAt changed on update: %v", got.CreatedAt)
	}
	if !got.UpdatedAt.Equal(edited) {
		t.Errorf("updatedAt not refreshed: %v", got.UpdatedAt)
	}
}

func TestStore_UpdateAndRemove_NotFound(t *testing.T) {
	s, _ := newTestStore(t)
	mustAdd(t, s, Draft{Description: "Lunch", Amount: "12", Category: "Food", Date: "2024-05-01"})

	if found, err := s.Update("missing", Draft{Description: "x", Amount: "1", Category: "y", Date: "2024-05-01"}); found || err != nil {
		t.Errorf("Update(missing) = (%v, %v), want (false, nil)", found, err)
	}
	if found, err := s.Remove("missing"); found || err != nil {
		t.Errorf("Remove(missing) = (%v, %v), want (false, nil)", found, err)
	}
	if got := len(s.Transactions()); got != 1 {
		t.Errorf("collection changed by not-found operations: %d records", got)
	}
}

func TestStore_Remove(t *testing.T) {
	s, _ := newTestStore(t)
	a := mustAdd(t, s, Draft{Description: "Lunch", Amount: "12", Category: "Food", Date: "2024-05-01"})
	b := mustAdd(t, s, Draft{Description: "Dinner", Amount: "20", Category: "Food", Date: "2024-05-01"})

	if found, err := s.Remove(a.ID); !found || err != nil {
		t.Fatalf("Remove = (%v, %v), want (true, nil)", found, err)
	}
	got := s.Transactions()
	if len(got) != 1 || got[0].ID != b.ID {
		t.Errorf("collection after remove = %+v, want only %s", got, b.ID)
	}
}

func TestStore_NotifiesAfterEveryMutation(t *testing.T) {
	s, _ := newTestStore(t)

	var calls []int
	s.Subscribe(func(st State) { calls = append(calls, len(st.Transactions)) })

	tx := mustAdd(t, s, Draft{Description: "Lunch", Amount: "12", Category: "Food", Date: "2024-05-01"})
	s.Update(tx.ID, Draft{Description: "Team lunch", Amount: "15", Category: "Food", Date: "2024-05-01"})
	s.Remove(tx.ID)
	s.ImportAll([]Transaction{tx})
	s.ClearAll()

	want := []int{1, 1, 0, 1, 0}
	if !reflect.DeepEqual(calls, want) {
		t.Errorf("listener saw collection sizes %v, want %v", calls, want)
	}
}

func TestStore_Unsubscribe(t *testing.T) {
	s, _ := newTestStore(t)
	var first, second int
	unsubscribe := s.Subscribe(func(State) { first++ })
	s.Subscribe(func(State) { second++ })

	mustAdd(t, s, Draft{Description: "Lunch", Amount: "12", Category: "Food", Date: "2024-05-01"})
	unsubscribe()
	mustAdd(t, s, Draft{Description: "Dinner", Amount: "20", Category: "Food", Date: "2024-05-01"})

	if first != 1 || second != 2 {
		t.Errorf("listener calls = (%d, %d), want (1, 2)", first, second)
	}
}

func TestStore_UnsubscribeDuringNotify(t *testing.T) {
	s, _ := newTestStore(t)

	var first, second int
	var unsubscribe func()
	unsubscribe = s.Subscribe(func(State) {
		first++
		unsubscribe()
	})
	s.Subscribe(func(State) { second++ })

	mustAdd(t, s, Draft{Description: "Lunch", Amount: "12", Category: "Food", Date: "2024-05-01"})
	mustAdd(t, s, Draft{Description: "Dinner", Amount: "20", Category: "Food", Date: "2024-05-01"})

	if first != 1 || second != 2 {
		t.Errorf("listener calls = (%d, %d), want (1, 2)", first, second)
	}
}

func TestStore_ViewStateIsEphemeral(t *testing.T) {
	s, mem := newTestStore(t)
	var last State
	notified := 0
	s.Subscribe(func(st State) { last, notified = st, notified+1 })

	s.SetSort(SortOrder{Field: ByAmount, Ascending: true})
	s.SetSearch(Compile("coffee", false))
	s.SetEditing("some-id")

	if notified != 3 {
		t.Errorf("view-state setters notified %d times, want 3", notified)
	}
	if last.Sort.Field != ByAmount || !last.Search.Active() || last.EditingID != "some-id" {
		t.Errorf("snapshot does not carry the view state: %+v", last)
	}
	// view state never reaches storage.
	for _, key := range []string{"transactions", "settings", "budget-cap"} {
		if _, ok, _ := mem.Get(key); ok {
			t.Errorf("key %q persisted by a view-state setter", key)
		}
	}
}

func TestStore_PersistFailurePropagatesAndRollsBack(t *testing.T) {
	mem := kv.NewMemory()
	s, err := Open(failingKV{mem})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	notified := false
	s.Subscribe(func(State) { notified = true })

	if _, err := s.Add(Draft{Description: "Lunch", Amount: "12", Category: "Food", Date: "2024-05-01"}); err == nil {
		t.Fatal("Add with failing storage succeeded, want error")
	}
	if notified {
		t.Error("listeners notified despite a failed persist")
	}
	if got := len(s.Transactions()); got != 0 {
		t.Errorf("in-memory collection kept %d un-persisted records", got)
	}
}

func TestStore_ListenerReceivesCopies(t *testing.T) {
	s, _ := newTestStore(t)
	var captured State
	s.Subscribe(func(st State) { captured = st })
	mustAdd(t, s, Draft{Description: "Lunch", Amount: "12", Category: "Food", Date: "2024-05-01"})

	captured.Transactions[0].Description = "tampered"
	captured.Settings.Categories[0] = "tampered"

	if s.Transactions()[0].Description == "tampered" {
		t.Error("listener mutated the store's own collection")
	}
	if s.Settings().Categories[0] == "tampered" {
		t.Error("listener mutated the store's own settings")
	}
}

func TestStore_OpenLoadsPersistedState(t *testing.T) {
	s, mem := newTestStore(t)
	tx := mustAdd(t, s, Draft{Description: "Lunch", Amount: "12", Category: "Food", Date: "2024-05-01"})
	if err := s.SetBudgetCap(decimal.RequireFromString("250")); err != nil {
		t.Fatalf("SetBudgetCap: %v", err)
	}
	if err := s.SetCategories([]string{"Food", "Travel"}); err != nil {
		t.Fatalf("SetCategories: %v", err)
	}

	// a second session over the same storage sees the same state.
	reopened, err := Open(mem)
	if err != nil {
		t.Fatalf("Open second session: %v", err)
	}
	if got := reopened.Transactions(); len(got) != 1 || got[0].ID != tx.ID {
		t.Errorf("reopened transactions = %+v", got)
	}
	if !reopened.BudgetCap().Equal(decimal.RequireFromString("250")) {
		t.Errorf("reopened budget cap = %s, want 250", reopened.BudgetCap())
	}
	if !reflect.DeepEqual(reopened.Settings().Categories, []string{"Food", "Travel"}) {
		t.Errorf("reopened categories = %v", reopened.Settings().Categories)
	}
	// view state is per-session and falls back to the default.
	if reopened.Sort() != DefaultSort() {
		t.Errorf("reopened sort = %+v, want default", reopened.Sort())
	}
}

func TestStore_OpenDefaults(t *testing.T) {
	s, _ := newTestStore(t)
	if got := s.Settings(); !reflect.DeepEqual(got.Categories, DefaultSettings().Categories) {
		t.Errorf("default categories = %v", got.Categories)
	}
	if !s.BudgetCap().IsZero() {
		t.Errorf("default budget cap = %s, want unset", s.BudgetCap())
	}
	if s.Sort() != DefaultSort() {
		t.Errorf("default sort = %+v", s.Sort())
	}
}

func TestStore_BudgetCap(t *testing.T) {
	s, mem := newTestStore(t)
	if err := s.SetBudgetCap(decimal.Zero); err == nil {
		t.Error("SetBudgetCap(0) succeeded, want error")
	}
	if err := s.SetBudgetCap(decimal.RequireFromString("300.50")); err != nil {
		t.Fatalf("SetBudgetCap: %v", err)
	}
	if blob, ok, _ := mem.Get("budget-cap"); !ok || blob != "300.5" {
		t.Errorf("persisted budget cap = %q, want a numeric string", blob)
	}
	if err := s.ClearBudgetCap(); err != nil {
		t.Fatalf("ClearBudgetCap: %v", err)
	}
	if _, ok, _ := mem.Get("budget-cap"); ok {
		t.Error("budget-cap key still present after clear")
	}
}

func TestStore_SortedView(t *testing.T) {
	s, _ := newTestStore(t)
	// insertion order: b, a, c — with a tie on amount between a and c.
	b := mustAdd(t, s, Draft{Description: "beta", Amount: "20", Category: "Books", Date: "2024-05-02"})
	a := mustAdd(t, s, Draft{Description: "Alpha", Amount: "10", Category: "food", Date: "2024-05-03"})
	c := mustAdd(t, s, Draft{Description: "gamma", Amount: "10", Category: "Transport", Date: "2024-05-01"})

	ids := func(txs []Transaction) []string {
		out := make([]string, len(txs))
		for i, tx := range txs {
			out[i] = tx.ID
		}
		return out
	}

	testCases := []struct {
		name  string
		order SortOrder
		want  []string
	}{
		{name: "date ascending", order: SortOrder{Field: ByDate, Ascending: true}, want: []string{c.ID, b.ID, a.ID}},
		{name: "date descending (default)", order: SortOrder{Field: ByDate}, want: []string{a.ID, b.ID, c.ID}},
		{name: "amount ascending keeps insertion order on ties", order: SortOrder{Field: ByAmount, Ascending: true}, want: []string{a.ID, c.ID, b.ID}},
		{name: "amount descending keeps insertion order on ties", order: SortOrder{Field: ByAmount}, want: []string{b.ID, a.ID, c.ID}},
		{name: "description ascending is case-insensitive", order: SortOrder{Field: ByDescription, Ascending: true}, want: []string{a.ID, b.ID, c.ID}},
		{name: "category ascending is case-insensitive", order: SortOrder{Field: ByCategory, Ascending: true}, want: []string{b.ID, a.ID, c.ID}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s.SetSort(tc.order)
			if got := ids(s.SortedView()); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("SortedView(%+v) = %v, want %v", tc.order, got, tc.want)
			}
		})
	}

	// SortedView hands out a fresh copy, not the store's own slice.
	view := s.SortedView()
	view[0].Description = "tampered"
	for _, tx := range s.Transactions() {
		if tx.Description == "tampered" {
			t.Error("SortedView exposed the store's own collection")
		}
	}
}

func TestStore_ExportImportRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	// second precision, the resolution the export format keeps.
	s.now = func() time.Time { return time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC) }
	mustAdd(t, s, Draft{Description: "Morning coffee", Amount: "3.50", Category: "Food", Date: "2024-05-01"})
	mustAdd(t, s, Draft{Description: "Train ticket", Amount: "12", Category: "Transport", Date: "2024-05-02"})
	mustAdd(t, s, Draft{Description: "Paperback", Amount: "9.90", Category: "Books", Date: "2024-05-03"})

	on := MustParseDate("2024-05-03")
	wantStats := s.StatisticsOn(on)
	wantView := s.SortedView()

	var buf bytes.Buffer
	if err := ExportTransactions(&buf, s.Transactions()); err != nil {
		t.Fatalf("ExportTransactions: %v", err)
	}
	imported, err := ImportTransactions(&buf)
	if err != nil {
		t.Fatalf("ImportTransactions: %v", err)
	}
	if err := s.ImportAll(imported); err != nil {
		t.Fatalf("ImportAll: %v", err)
	}

	if got := s.StatisticsOn(on); !reflect.DeepEqual(got, wantStats) {
		t.Errorf("statistics changed across the round trip:\n got %+v\nwant %+v", got, wantStats)
	}
	gotView := s.SortedView()
	if len(gotView) != len(wantView) {
		t.Fatalf("view size changed across the round trip: %d != %d", len(gotView), len(wantView))
	}
	for i := range gotView {
		if !gotView[i].Equal(wantView[i]) {
			t.Errorf("view[%d] changed across the round trip:\n got %+v\nwant %+v", i, gotView[i], wantView[i])
		}
	}
}

func TestStore_StatisticsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	mustAdd(t, s, Draft{Description: "Morning coffee", Amount: "3.50", Category: "Food", Date: "2024-05-01"})
	mustAdd(t, s, Draft{Description: "Train ticket", Amount: "12", Category: "Transport", Date: "2024-05-02"})

	on := MustParseDate("2024-05-02")
	first := s.StatisticsOn(on)
	second := s.StatisticsOn(on)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("statistics not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
}
