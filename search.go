package tracker

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// Pattern is a compiled user-supplied search pattern. The zero value is the
// inactive "no pattern" result, which filters nothing and highlights nothing.
//
// Patterns follow ECMAScript regular expression semantics (regexp2), with a
// match timeout so a pathological pattern cannot stall the caller.
type Pattern struct {
	re *regexp2.Regexp
}

// matchTimeout bounds a single match attempt against one record.
const matchTimeout = 100 * time.Millisecond

// Compile turns a pattern string into a Pattern. It never fails: an empty or
// syntactically malformed pattern yields the inactive zero Pattern. The only
// exposed toggle besides the pattern itself is case sensitivity; matching is
// always global.
func Compile(pattern string, caseSensitive bool) Pattern {
	if pattern == "" {
		return Pattern{}
	}
	opts := regexp2.None
	if !caseSensitive {
		opts = regexp2.IgnoreCase
	}
	re, err := regexp2.Compile(pattern, opts)
	if err != nil {
		return Pattern{}
	}
	re.MatchTimeout = matchTimeout
	return Pattern{re: re}
}

// CheckPattern classifies a pattern string as syntactically valid or not,
// discarding the compiled object. It is meant for interactive feedback while
// the user types.
func CheckPattern(pattern string) Result {
	if _, err := regexp2.Compile(pattern, regexp2.None); err != nil {
		return Result{Message: ErrorMessage(pattern)}
	}
	return valid()
}

// ErrorMessage is the fixed user-facing message for a malformed pattern. It
// embeds the offending pattern verbatim rather than the engine's native
// diagnostic.
func ErrorMessage(pattern string) string {
	return fmt.Sprintf("invalid search pattern: %q", pattern)
}

// Active reports whether the pattern filters anything at all.
func (p Pattern) Active() bool { return p.re != nil }

// String returns the original pattern text, empty for the inactive pattern.
func (p Pattern) String() string {
	if !p.Active() {
		return ""
	}
	return p.re.String()
}

// searchText is the haystack a pattern is applied to: the concatenation of
// description, category and the amount with its two fraction digits, so a
// search for the amount exactly as entered ("12.50") finds the record.
func searchText(t Transaction) string {
	return strings.Join([]string{t.Description, t.Category, t.Amount.StringFixed(2)}, " ")
}

// Matches reports whether the transaction satisfies the pattern. Matching is
// existence-only. A matching fault (e.g. timeout) counts as no match.
func (p Pattern) Matches(t Transaction) bool {
	if !p.Active() {
		return true
	}
	ok, err := p.re.MatchString(searchText(t))
	return err == nil && ok
}

// Filter returns the subset of transactions satisfying the pattern. The
// inactive pattern is the identity: every record passes.
func Filter(txs []Transaction, p Pattern) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if p.Matches(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// Span is a segment of a display string, flagged when the pattern matched it.
type Span struct {
	Text  string
	Match bool
}

// Spans splits s into matched and unmatched segments against the original,
// unescaped string. With an inactive pattern, or when matching faults, the
// whole string comes back as a single unmatched span.
func (p Pattern) Spans(s string) []Span {
	whole := []Span{{Text: s}}
	if !p.Active() || s == "" {
		return whole
	}

	// regexp2 match positions count runes, not bytes, so the segmentation
	// has to run over runes too or multi-byte text shifts every boundary.
	rs := []rune(s)
	var spans []Span
	last := 0
	m, err := p.re.FindStringMatch(s)
	for m != nil && err == nil {
		if m.Length == 0 {
			// A zero-width match would loop forever; treat it as no match.
			return whole
		}
		if m.Index > last {
			spans = append(spans, Span{Text: string(rs[last:m.Index])})
		}
		spans = append(spans, Span{Text: m.String(), Match: true})
		last = m.Index + m.Length
		m, err = p.re.FindNextMatch(m)
	}
	if err != nil {
		return whole
	}
	if last < len(rs) {
		spans = append(spans, Span{Text: string(rs[last:])})
	}
	if len(spans) == 0 {
		return whole
	}
	return spans
}

// Highlight produces an HTML-safe rendition of s with every match wrapped in
// a <mark> element. Each segment is escaped independently before the markers
// are inserted, so attacker-controlled content cannot subvert the markup. No
// pattern, no match, or a matching fault all degrade to the escaped,
// unmarked string.
func (p Pattern) Highlight(s string) string {
	var b strings.Builder
	for _, span := range p.Spans(s) {
		if span.Match {
			b.WriteString("<mark>")
			b.WriteString(html.EscapeString(span.Text))
			b.WriteString("</mark>")
		} else {
			b.WriteString(html.EscapeString(span.Text))
		}
	}
	return b.String()
}
