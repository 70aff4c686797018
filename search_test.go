package tracker

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func tx(description, category, amount string) Transaction {
	return Transaction{
		ID:          newID(),
		Description: description,
		Category:    category,
		Amount:      decimal.RequireFromString(amount),
	}
}

func TestCompile_NeverFails(t *testing.T) {
	testCases := []struct {
		name       string
		pattern    string
		wantActive bool
	}{
		{name: "plain word", pattern: "coffee", wantActive: true},
		{name: "alternation", pattern: "coffee|tea", wantActive: true},
		{name: "empty pattern", pattern: "", wantActive: false},
		{name: "unbalanced group", pattern: "(", wantActive: false},
		{name: "unbalanced class", pattern: "[a-z", wantActive: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := Compile(tc.pattern, false)
			if p.Active() != tc.wantActive {
				t.Errorf("Compile(%q).Active() = %v, want %v", tc.pattern, p.Active(), tc.wantActive)
			}
		})
	}
}

func TestCheckPattern(t *testing.T) {
	if got := CheckPattern("a+b"); !got.Valid {
		t.Errorf("CheckPattern(\"a+b\") = %+v, want valid", got)
	}
	got := CheckPattern("(")
	if got.Valid {
		t.Fatal("CheckPattern(\"(\") reports valid")
	}
	if !strings.Contains(got.Message, `"("`) {
		t.Errorf("diagnostic %q does not embed the pattern verbatim", got.Message)
	}
}

func TestFilter(t *testing.T) {
	txs := []Transaction{
		tx("Morning coffee", "Food", "3.50"),
		tx("Train ticket", "Transport", "12"),
		tx("Espresso beans", "Food", "9.90"),
	}

	testCases := []struct {
		name          string
		pattern       string
		caseSensitive bool
		want          int
	}{
		{name: "no pattern is identity", pattern: "", want: 3},
		{name: "malformed pattern behaves as no filter", pattern: "(", want: 3},
		{name: "description match", pattern: "coffee", want: 1},
		{name: "category match", pattern: "Food", want: 2},
		{name: "amount match", pattern: "12", want: 1},
		{name: "amount matches as entered", pattern: "3.50", want: 1},
		{name: "integer amount searchable with fraction digits", pattern: "12.00", want: 1},
		{name: "case insensitive by default", pattern: "COFFEE", want: 1},
		{name: "case sensitive miss", pattern: "COFFEE", caseSensitive: true, want: 0},
		{name: "no match", pattern: "hotel", want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := Compile(tc.pattern, tc.caseSensitive)
			got := Filter(txs, p)
			if len(got) != tc.want {
				t.Errorf("Filter with %q matched %d records, want %d", tc.pattern, len(got), tc.want)
			}
		})
	}
}

func TestHighlight(t *testing.T) {
	testCases := []struct {
		name    string
		pattern string
		in      string
		want    string
	}{
		{
			name:    "single match",
			pattern: "coffee",
			in:      "Morning coffee run",
			want:    "Morning <mark>coffee</mark> run",
		},
		{
			name:    "multiple matches",
			pattern: "s",
			in:      "espresso",
			want:    "e<mark>s</mark>pre<mark>s</mark><mark>s</mark>o",
		},
		{
			name:    "no pattern returns escaped unmarked",
			pattern: "",
			in:      "a < b",
			want:    "a &lt; b",
		},
		{
			name:    "no match returns escaped unmarked",
			pattern: "zzz",
			in:      "a < b",
			want:    "a &lt; b",
		},
		{
			name:    "matched script tag stays escaped",
			pattern: "script",
			in:      "<script>",
			want:    "&lt;<mark>script</mark>&gt;",
		},
		{
			name:    "multi-byte text before the match",
			pattern: "x",
			in:      "café x",
			want:    "café <mark>x</mark>",
		},
		{
			name:    "multi-byte text inside the match",
			pattern: "café",
			in:      "a café break",
			want:    "a <mark>café</mark> break",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := Compile(tc.pattern, false)
			got := p.Highlight(tc.in)
			if got != tc.want {
				t.Errorf("Highlight(%q, %q) = %q, want %q", tc.in, tc.pattern, got, tc.want)
			}
			if strings.Contains(got, "<script>") {
				t.Errorf("Highlight output %q contains a raw script tag", got)
			}
		})
	}
}

func TestSpans_ZeroWidthMatchDegrades(t *testing.T) {
	p := Compile("x*", false) // matches the empty string anywhere
	got := p.Spans("abc")
	if len(got) != 1 || got[0].Match || got[0].Text != "abc" {
		t.Errorf("Spans with a zero-width pattern = %+v, want one unmatched span", got)
	}
}

func TestErrorMessage_EmbedsPattern(t *testing.T) {
	if msg := ErrorMessage("(oops"); !strings.Contains(msg, `"(oops"`) {
		t.Errorf("ErrorMessage = %q, want the pattern embedded verbatim", msg)
	}
}
