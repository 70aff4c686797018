package tracker

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
	"github.com/shopspring/decimal"
)

// Result is the outcome of a single field validation. Message is empty iff
// the field is valid, except for bulk import where a successful validation
// carries an informational message.
type Result struct {
	Valid   bool
	Message string
}

func valid() Result                            { return Result{Valid: true} }
func invalid(format string, a ...any) Result   { return Result{Message: fmt.Sprintf(format, a...)} }
func okMessage(format string, a ...any) Result { return Result{Valid: true, Message: fmt.Sprintf(format, a...)} }

// The fixed shape catalog. These patterns are static and RE2-safe, so the
// standard engine is enough here.
var (
	// single spaces between tokens, nothing leading or trailing.
	descShapeRe = regexp.MustCompile(`^\S+( \S+)*$`)
	// non-negative integer or decimal with 1-2 fractional digits, no leading zeros.
	amountShapeRe = regexp.MustCompile(`^(0|[1-9][0-9]*)(\.[0-9]{1,2})?$`)
	// strict YYYY-MM-DD with month 01-12 and day 01-31 at the pattern level.
	dateShapeRe = regexp.MustCompile(`^[0-9]{4}-(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$`)
)

// repeatedWordRe flags a case-insensitive immediately-repeated word; runs of
// repeats collapse into a single failure. Backreferences are beyond RE2, so
// this one rule uses the regexp2 engine.
var repeatedWordRe = regexp2.MustCompile(`\b(\w+)(\s+\1)+\b`, regexp2.IgnoreCase)

// maxAmount is the upper bound for a single transaction amount.
var maxAmount = decimal.RequireFromString("999999.99")

const (
	descMinLen = 3
	descMaxLen = 100
)

// ValidateDescription checks a raw description string. Rules are evaluated in
// order and the first failing rule wins.
func ValidateDescription(s string) Result {
	if strings.TrimSpace(s) == "" {
		return invalid("description is required")
	}
	if !descShapeRe.MatchString(s) {
		return invalid("description must not contain leading, trailing or double spaces")
	}
	if m, _ := repeatedWordRe.MatchString(s); m {
		return invalid("description must not repeat a word")
	}
	if n := utf8.RuneCountInString(s); n < descMinLen {
		return invalid("description must be at least %d characters long", descMinLen)
	} else if n > descMaxLen {
		return invalid("description must be at most %d characters long", descMaxLen)
	}
	return valid()
}

// ValidateAmount checks a raw amount string.
func ValidateAmount(s string) Result {
	if strings.TrimSpace(s) == "" {
		return invalid("amount is required")
	}
	if !amountShapeRe.MatchString(s) {
		return invalid("amount must be a number with at most 2 decimal places")
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		// The shape pattern guarantees a parseable number.
		return invalid("amount must be a number with at most 2 decimal places")
	}
	if !v.IsPositive() {
		return invalid("amount must be greater than 0")
	}
	if v.GreaterThan(maxAmount) {
		return invalid("amount must not exceed %s", maxAmount)
	}
	return valid()
}

// ValidateDate checks a raw date string. The shape pattern admits impossible
// days like 2025-02-30, so a calendar construction check follows it, and the
// result must not be later than today (day granularity, local time).
func ValidateDate(s string) Result {
	if strings.TrimSpace(s) == "" {
		return invalid("date is required")
	}
	if !dateShapeRe.MatchString(s) {
		return invalid("date must use the YYYY-MM-DD format")
	}
	d, err := ParseDate(s)
	if err != nil {
		return invalid("date must be a real calendar day")
	}
	if d.After(Today()) {
		return invalid("date must not be in the future")
	}
	return valid()
}

// ValidateCategory checks a raw category string. Only presence is enforced:
// the category field is a closed choice in practice, so the free-text shape
// rule in ValidateCategoryText stays inactive.
func ValidateCategory(s string) Result {
	if strings.TrimSpace(s) == "" {
		return invalid("category is required")
	}
	return valid()
}

// categoryShapeRe is the free-text shape for categories: letters, optionally
// separated by single spaces or ampersands.
var categoryShapeRe = regexp.MustCompile(`^[A-Za-z]+([ &][A-Za-z]+)*$`)

// ValidateCategoryText applies the free-text shape rule for categories. It is
// defined for completeness but unused as long as categories come from the
// configured closed list.
func ValidateCategoryText(s string) Result {
	if r := ValidateCategory(s); !r.Valid {
		return r
	}
	if !categoryShapeRe.MatchString(s) {
		return invalid("category must contain only letters, spaces and '&'")
	}
	return valid()
}

// RecordResult is the outcome of a whole-record validation: one message per
// failing field, keyed by field name.
type RecordResult struct {
	Valid  bool
	Fields map[string]string
}

// ValidateRecord runs all four field validators independently and collects
// every failure. Unlike single-field validation it does not short-circuit
// across fields.
func ValidateRecord(d Draft) RecordResult {
	fields := make(map[string]string)
	for field, r := range map[string]Result{
		"description": ValidateDescription(d.Description),
		"amount":      ValidateAmount(d.Amount),
		"date":        ValidateDate(d.Date),
		"category":    ValidateCategory(d.Category),
	} {
		if !r.Valid {
			fields[field] = r.Message
		}
	}
	return RecordResult{Valid: len(fields) == 0, Fields: fields}
}

// ValidateImport checks every candidate element of a bulk import. The
// contract is deliberately looser than interactive validation: types and
// presence only, with the date checked against the shape pattern but not the
// calendar or the future-date rule. The first failing element aborts with its
// 1-based position.
func ValidateImport(records []any) Result {
	for i, rec := range records {
		pos := i + 1
		m, ok := rec.(map[string]any)
		if !ok {
			return invalid("record %d is not an object", pos)
		}
		if s, ok := m["id"].(string); !ok || s == "" {
			return invalid("record %d is missing a valid id", pos)
		}
		if s, ok := m["description"].(string); !ok || s == "" {
			return invalid("record %d is missing a valid description", pos)
		}
		if v, ok := m["amount"].(float64); !ok || v <= 0 {
			return invalid("record %d is missing a valid amount", pos)
		}
		if s, ok := m["category"].(string); !ok || s == "" {
			return invalid("record %d is missing a valid category", pos)
		}
		if s, ok := m["date"].(string); !ok || !dateShapeRe.MatchString(s) {
			return invalid("record %d is missing a valid date", pos)
		}
		if _, ok := m["createdAt"]; !ok {
			return invalid("record %d is missing createdAt", pos)
		}
		if _, ok := m["updatedAt"]; !ok {
			return invalid("record %d is missing updatedAt", pos)
		}
	}
	return okMessage("%d records ready to import", len(records))
}
