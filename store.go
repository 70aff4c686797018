package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/etnz/tracker/kv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// The three independent keys of the persisted state.
const (
	transactionsKey = "transactions"
	settingsKey     = "settings"
	budgetCapKey    = "budget-cap"
)

// State is the immutable snapshot handed to subscribers after every
// mutation. Slices and maps are copies; subscribers cannot reach back into
// the store's own collection.
type State struct {
	Transactions []Transaction
	Settings     Settings
	BudgetCap    decimal.Decimal
	Sort         SortOrder
	Search       Pattern
	EditingID    string
}

// Listener receives the full state after a mutation. A listener must not
// trigger a further store mutation synchronously from its own invocation:
// notification is not reentrant-safe.
type Listener func(State)

type subscription struct {
	id int
	fn Listener
}

// Store owns the authoritative in-memory transaction collection plus the
// derived view state. It is an explicit object, not a global: construct one
// with Open, pass it by handle.
//
// The store is single-writer by design. No mutation blocks internally, and
// every mutation persists the affected keys before notifying subscribers, so
// in-memory and durable state stay in sync: a failed persist rolls the
// in-memory change back and surfaces the error.
type Store struct {
	kv  kv.Store
	log zerolog.Logger
	now func() time.Time

	transactions []Transaction
	settings     Settings
	budgetCap    decimal.Decimal
	sort         SortOrder
	search       Pattern
	editingID    string

	subs   []subscription
	nextID int
}

// Open loads the persisted state from the key-value store, supplying
// defaults for absent keys, and returns a ready store.
func Open(kvs kv.Store) (*Store, error) {
	s := &Store{
		kv:       kvs,
		log:      zerolog.Nop(),
		now:      time.Now,
		settings: DefaultSettings(),
		sort:     DefaultSort(),
	}

	if blob, ok, err := kvs.Get(transactionsKey); err != nil {
		return nil, fmt.Errorf("cannot load transactions: %w", err)
	} else if ok && strings.TrimSpace(blob) != "" {
		if err := json.Unmarshal([]byte(blob), &s.transactions); err != nil {
			return nil, fmt.Errorf("cannot decode transactions: %w", err)
		}
	}

	if blob, ok, err := kvs.Get(settingsKey); err != nil {
		return nil, fmt.Errorf("cannot load settings: %w", err)
	} else if ok {
		if err := json.Unmarshal([]byte(blob), &s.settings); err != nil {
			return nil, fmt.Errorf("cannot decode settings: %w", err)
		}
	}

	if blob, ok, err := kvs.Get(budgetCapKey); err != nil {
		return nil, fmt.Errorf("cannot load budget cap: %w", err)
	} else if ok && strings.TrimSpace(blob) != "" {
		limit, err := decimal.NewFromString(strings.TrimSpace(blob))
		if err != nil {
			return nil, fmt.Errorf("cannot decode budget cap %q: %w", blob, err)
		}
		s.budgetCap = limit
	}

	return s, nil
}

// SetLogger replaces the store's logger (a no-op logger by default).
func (s *Store) SetLogger(log zerolog.Logger) { s.log = log }

// SeedIfEmpty fetches the bundled sample dataset and installs it as the
// initial collection, once, when nothing is persisted yet. A fetch failure is
// non-fatal and leaves the collection empty. This is the only operation in
// the store that touches the network.
func (s *Store) SeedIfEmpty(ctx context.Context, url string) error {
	if len(s.transactions) > 0 || url == "" {
		return nil
	}
	seed, err := FetchSeed(ctx, url)
	if err != nil {
		s.log.Warn().Err(err).Str("url", url).Msg("seed fetch failed, starting empty")
		return nil
	}
	return s.ImportAll(seed)
}

// Subscribe registers a listener and returns its unsubscribe function.
// Listeners are invoked synchronously, in subscription order, after every
// successful mutation.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	return func() {
		s.subs = slices.DeleteFunc(s.subs, func(sub subscription) bool { return sub.id == id })
	}
}

// snapshot builds the immutable state copy handed to listeners and callers.
func (s *Store) snapshot() State {
	return State{
		Transactions: slices.Clone(s.transactions),
		Settings:     s.settings.Clone(),
		BudgetCap:    s.budgetCap,
		Sort:         s.sort,
		Search:       s.search,
		EditingID:    s.editingID,
	}
}

func (s *Store) notify() {
	state := s.snapshot()
	// iterate over a copy: a listener may unsubscribe itself mid-notification.
	for _, sub := range slices.Clone(s.subs) {
		sub.fn(state)
	}
}

// persistTransactions writes the full collection snapshot. A single attempt,
// fail-fast: no retry.
func (s *Store) persistTransactions() error {
	data, err := json.Marshal(s.transactions)
	if err != nil {
		return fmt.Errorf("cannot encode transactions: %w", err)
	}
	if err := s.kv.Set(transactionsKey, string(data)); err != nil {
		return fmt.Errorf("cannot persist transactions: %w", err)
	}
	return nil
}

func (s *Store) persistSettings() error {
	data, err := json.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("cannot encode settings: %w", err)
	}
	if err := s.kv.Set(settingsKey, string(data)); err != nil {
		return fmt.Errorf("cannot persist settings: %w", err)
	}
	return nil
}

// Add appends a new transaction built from the draft. The draft is expected
// to have passed the validation engine already: Add only trims, parses and
// stamps. On success the new transaction is returned.
func (s *Store) Add(d Draft) (Transaction, error) {
	tx, err := newTransaction(d, s.now())
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid draft: %w", err)
	}
	s.transactions = append(s.transactions, tx)
	if err := s.persistTransactions(); err != nil {
		s.transactions = s.transactions[:len(s.transactions)-1]
		s.log.Error().Err(err).Msg("add rolled back")
		return Transaction{}, err
	}
	s.log.Debug().Str("id", tx.ID).Str("category", tx.Category).Msg("transaction added")
	s.notify()
	return tx, nil
}

// Update mutates the four editable fields of the identified transaction and
// refreshes its updatedAt stamp. A missing id is a routine outcome reported
// as found=false, not an error.
func (s *Store) Update(id string, d Draft) (found bool, err error) {
	i := slices.IndexFunc(s.transactions, func(t Transaction) bool { return t.ID == id })
	if i < 0 {
		return false, nil
	}
	amount, err := decimal.NewFromString(d.Amount)
	if err != nil {
		return true, fmt.Errorf("invalid draft: %w", err)
	}
	day, err := ParseDate(d.Date)
	if err != nil {
		return true, fmt.Errorf("invalid draft: %w", err)
	}

	prev := s.transactions[i]
	tx := &s.transactions[i]
	tx.Description = strings.TrimSpace(d.Description)
	tx.Amount = amount
	tx.Category = d.Category
	tx.Date = day
	tx.UpdatedAt = s.now()

	if err := s.persistTransactions(); err != nil {
		s.transactions[i] = prev
		s.log.Error().Err(err).Msg("update rolled back")
		return true, err
	}
	s.log.Debug().Str("id", id).Msg("transaction updated")
	s.notify()
	return true, nil
}

// Remove deletes the identified transaction. A missing id is reported as
// found=false, not an error.
func (s *Store) Remove(id string) (found bool, err error) {
	i := slices.IndexFunc(s.transactions, func(t Transaction) bool { return t.ID == id })
	if i < 0 {
		return false, nil
	}
	prev := s.transactions
	s.transactions = slices.Delete(slices.Clone(s.transactions), i, i+1)
	if err := s.persistTransactions(); err != nil {
		s.transactions = prev
		s.log.Error().Err(err).Msg("remove rolled back")
		return true, err
	}
	s.log.Debug().Str("id", id).Msg("transaction removed")
	s.notify()
	return true, nil
}

// ImportAll replaces the whole collection, no merge and no de-duplication
// against existing records.
func (s *Store) ImportAll(records []Transaction) error {
	prev := s.transactions
	s.transactions = slices.Clone(records)
	if err := s.persistTransactions(); err != nil {
		s.transactions = prev
		s.log.Error().Err(err).Msg("import rolled back")
		return err
	}
	s.log.Debug().Int("count", len(records)).Msg("collection replaced")
	s.notify()
	return nil
}

// ClearAll empties the collection.
func (s *Store) ClearAll() error {
	return s.ImportAll(nil)
}

// SetBudgetCap sets the monthly spending ceiling. The cap must be positive;
// use ClearBudgetCap to remove it.
func (s *Store) SetBudgetCap(limit decimal.Decimal) error {
	if !limit.IsPositive() {
		return fmt.Errorf("budget cap must be positive, got %s", limit)
	}
	prev := s.budgetCap
	s.budgetCap = limit
	if err := s.kv.Set(budgetCapKey, limit.String()); err != nil {
		s.budgetCap = prev
		return fmt.Errorf("cannot persist budget cap: %w", err)
	}
	s.notify()
	return nil
}

// ClearBudgetCap removes the monthly spending ceiling.
func (s *Store) ClearBudgetCap() error {
	prev := s.budgetCap
	s.budgetCap = decimal.Zero
	if err := s.kv.Delete(budgetCapKey); err != nil {
		s.budgetCap = prev
		return fmt.Errorf("cannot clear budget cap: %w", err)
	}
	s.notify()
	return nil
}

// BudgetCap returns the active cap, zero when unset.
func (s *Store) BudgetCap() decimal.Decimal { return s.budgetCap }

// Settings returns a copy of the active settings.
func (s *Store) Settings() Settings { return s.settings.Clone() }

// SetCategories replaces the configured category list.
func (s *Store) SetCategories(categories []string) error {
	prev := s.settings
	s.settings = s.settings.Clone()
	s.settings.Categories = slices.Clone(categories)
	if err := s.persistSettings(); err != nil {
		s.settings = prev
		return err
	}
	s.notify()
	return nil
}

// SetRate sets the exchange rate from the base currency to the given code.
func (s *Store) SetRate(code string, rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return fmt.Errorf("exchange rate must be positive, got %s", rate)
	}
	prev := s.settings
	s.settings = s.settings.Clone()
	s.settings.Rates[strings.ToUpper(code)] = rate
	if err := s.persistSettings(); err != nil {
		s.settings = prev
		return err
	}
	s.notify()
	return nil
}

// SetSort changes the active display order. View state is ephemeral: it
// notifies but never persists.
func (s *Store) SetSort(order SortOrder) {
	s.sort = order
	s.notify()
}

// SetSearch changes the active search pattern. Ephemeral, like SetSort.
func (s *Store) SetSearch(p Pattern) {
	s.search = p
	s.notify()
}

// SetEditing marks the transaction currently targeted for edit. Ephemeral.
func (s *Store) SetEditing(id string) {
	s.editingID = id
	s.notify()
}

// Search returns the active search pattern.
func (s *Store) Search() Pattern { return s.search }

// Sort returns the active display order.
func (s *Store) Sort() SortOrder { return s.sort }

// Editing returns the id of the transaction targeted for edit, if any.
func (s *Store) Editing() string { return s.editingID }

// Transactions returns a copy of the collection in insertion order.
func (s *Store) Transactions() []Transaction { return slices.Clone(s.transactions) }

// SortedView returns a freshly ordered copy of the collection per the active
// sort order. Ties keep insertion order (stable sort).
func (s *Store) SortedView() []Transaction {
	view := slices.Clone(s.transactions)
	sortTransactions(view, s.sort)
	return view
}

// Statistics derives all aggregates as of today. Derivation happens on every
// call; nothing is cached.
func (s *Store) Statistics() Statistics {
	return s.StatisticsOn(Today())
}

// StatisticsOn derives all aggregates as of the given day.
func (s *Store) StatisticsOn(on Date) Statistics {
	return statisticsOn(s.transactions, s.budgetCap, on)
}
