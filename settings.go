package tracker

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// BaseCurrency is the currency all amounts are recorded in. Exchange rates in
// the settings convert from it.
const BaseCurrency = "EUR"

// Settings holds the user-tunable application settings: named exchange rates
// (from the base currency, keyed by target currency code) and the category
// list.
type Settings struct {
	Rates      map[string]decimal.Decimal
	Categories []string
}

// DefaultSettings returns the settings used when none are persisted yet.
func DefaultSettings() Settings {
	return Settings{
		Rates: map[string]decimal.Decimal{
			"USD": decimal.RequireFromString("1.09"),
			"GBP": decimal.RequireFromString("1.27"),
		},
		Categories: []string{"Food", "Books", "Transport", "Entertainment", "Fees", "Other"},
	}
}

// Clone returns a deep copy, so store snapshots never share mutable state.
func (s Settings) Clone() Settings {
	return Settings{
		Rates:      maps.Clone(s.Rates),
		Categories: slices.Clone(s.Categories),
	}
}

// HasCategory reports whether name is in the configured category list.
func (s Settings) HasCategory(name string) bool {
	return slices.Contains(s.Categories, name)
}

// Convert turns a base-currency amount into the given currency using the
// configured rate. It reports false when no rate is configured for the code.
func (s Settings) Convert(amount decimal.Decimal, code string) (Money, bool) {
	rate, ok := s.Rates[code]
	if !ok {
		return Money{}, false
	}
	return M(amount, BaseCurrency).Convert(rate, code), true
}

// MarshalJSON implements the json.Marshaler interface. Rates are flattened to
// top-level "<code>Rate" properties next to "categories", the historical wire
// layout of the settings blob.
func (s Settings) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for _, code := range slices.Sorted(maps.Keys(s.Rates)) {
		w.Append(strings.ToLower(code)+"Rate", s.Rates[code])
	}
	w.Append("categories", s.Categories)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for the layout
// described on MarshalJSON.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	out := Settings{Rates: make(map[string]decimal.Decimal)}
	for key, raw := range m {
		switch {
		case key == "categories":
			if err := json.Unmarshal(raw, &out.Categories); err != nil {
				return fmt.Errorf("invalid categories: %w", err)
			}
		case strings.HasSuffix(key, "Rate"):
			var rate decimal.Decimal
			if err := json.Unmarshal(raw, &rate); err != nil {
				return fmt.Errorf("invalid rate %q: %w", key, err)
			}
			code := strings.ToUpper(strings.TrimSuffix(key, "Rate"))
			out.Rates[code] = rate
		}
		// unknown keys are ignored, settings blobs from older versions may carry extras.
	}
	*s = out
	return nil
}

var _ json.Marshaler = Settings{}
var _ json.Unmarshaler = (*Settings)(nil)
