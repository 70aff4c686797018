package tracker

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money pairs an exact decimal amount with a currency code, for display and
// conversion. Arithmetic on raw amounts stays in decimal.Decimal; Money only
// enters the picture when a value is shown to the user.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M returns a Money value in the given currency.
func M(value decimal.Decimal, currency string) Money {
	return Money{value: value, cur: currency}
}

// Amount returns the exact decimal value.
func (m Money) Amount() decimal.Decimal { return m.value }

// Currency returns the money's currency code.
func (m Money) Currency() string { return m.cur }

// currency returns the full currency definition.
func (m Money) currency() money.Currency {
	// the Money constructor guarantees a non-nil currency.
	return *money.New(0, m.cur).Currency()
}

// String returns the localized string representation of the money value.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// Equal reports whether two money values are identical.
func (m Money) Equal(n Money) bool { return m.value.Equal(n.value) && m.cur == n.cur }

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool { return m.value.IsZero() }

// Add returns the sum of two money values of the same currency.
func (m Money) Add(n Money) Money {
	if m.cur != n.cur && m.cur != "" && n.cur != "" {
		panic("currency mismatch " + m.cur + "!=" + n.cur)
	}
	cur := m.cur
	if cur == "" {
		cur = n.cur
	}
	return Money{value: m.value.Add(n.value), cur: cur}
}

// Convert applies an exchange rate and returns the value in the target
// currency, rounded to that currency's fraction.
func (m Money) Convert(rate decimal.Decimal, currency string) Money {
	converted := m.value.Mul(rate)
	fraction := int32(money.New(0, currency).Currency().Fraction)
	return Money{value: converted.Round(fraction), cur: currency}
}

// Percent is a percentage value, e.g. 12.5 for 12.5%.
type Percent float64

// Equal compares two percentages with a fixed precision.
func (p Percent) Equal(q Percent) bool {
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}
