package tracker

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/etnz/tracker/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Transaction is a single recorded expense.
//
// Once created, its ID never changes. UpdatedAt is refreshed on every field
// mutation, CreatedAt is fixed at creation.
type Transaction struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	Category    string
	Date        date.Date
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Draft holds the raw user-supplied fields for a new or edited transaction.
// Callers are expected to run the validation engine on a draft before handing
// it to the store.
type Draft struct {
	Description string
	Amount      string
	Category    string
	Date        string
}

// newID returns a 128-bit random identifier encoded as 32 hex characters.
// Collision resistance replaces the weaker timestamp+suffix scheme some
// trackers use.
func newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms.
		panic("tracker: cannot read random bytes: " + err.Error())
	}
	return hex.EncodeToString(b[:])
}

// newTransaction builds a Transaction from a validated draft: the description
// is trimmed, the amount parsed to an exact decimal, and both timestamps are
// stamped to the same instant.
func newTransaction(d Draft, now time.Time) (Transaction, error) {
	amount, err := decimal.NewFromString(d.Amount)
	if err != nil {
		return Transaction{}, err
	}
	day, err := date.Parse(d.Date)
	if err != nil {
		return Transaction{}, err
	}
	return Transaction{
		ID:          newID(),
		Description: strings.TrimSpace(d.Description),
		Amount:      amount,
		Category:    d.Category,
		Date:        day,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Equal reports whether two transactions carry the same data.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.Description == o.Description &&
		t.Amount.Equal(o.Amount) &&
		t.Category == o.Category &&
		t.Date == o.Date &&
		t.CreatedAt.Equal(o.CreatedAt) &&
		t.UpdatedAt.Equal(o.UpdatedAt)
}

// MarshalJSON implements the json.Marshaler interface with a canonical field
// order, keeping persisted snapshots diffable.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("description", t.Description)
	w.Append("amount", t.Amount)
	w.Append("category", t.Category)
	w.Append("date", t.Date)
	w.Append("createdAt", t.CreatedAt.Format(time.RFC3339))
	w.Append("updatedAt", t.UpdatedAt.Format(time.RFC3339))
	return w.MarshalJSON()
}

// jtransaction is the loose wire form of a transaction.
type jtransaction struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        date.Date       `json:"date"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp jtransaction
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	// Timestamps are a presence-only contract on import: a value that does
	// not parse decodes as the zero time instead of failing the record.
	createdAt, _ := time.Parse(time.RFC3339, temp.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, temp.UpdatedAt)
	*t = Transaction{
		ID:          temp.ID,
		Description: temp.Description,
		Amount:      temp.Amount,
		Category:    temp.Category,
		Date:        temp.Date,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	return nil
}

var _ json.Marshaler = Transaction{}
var _ json.Unmarshaler = (*Transaction)(nil)
