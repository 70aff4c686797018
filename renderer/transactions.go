package renderer

import (
	"strings"
	"text/template"

	"github.com/etnz/tracker"
	"github.com/shopspring/decimal"
)

// TransactionRow is a single line of the transaction report.
type TransactionRow struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
}

// TransactionList is the view behind the transaction report: the rows to
// show, in display order, plus the totals line.
type TransactionList struct {
	// Query is the active search pattern, empty when the list is unfiltered.
	Query string `json:"query,omitempty"`
	// Count is the number of rows shown.
	Count int `json:"count"`
	// TotalCount is the size of the whole collection, shown when a filter hides rows.
	TotalCount int `json:"totalCount"`
	// Total is the formatted sum of the shown rows.
	Total string           `json:"total"`
	Rows  []TransactionRow `json:"rows"`
}

// NewTransactionList builds the view for the given records, already sorted by
// the caller. The pattern both filters the rows and highlights its matches in
// the description and category cells.
func NewTransactionList(txs []tracker.Transaction, p tracker.Pattern) *TransactionList {
	shown := tracker.Filter(txs, p)
	v := &TransactionList{
		Query:      p.String(),
		Count:      len(shown),
		TotalCount: len(txs),
		Rows:       make([]TransactionRow, 0, len(shown)),
	}

	total := tracker.M(decimal.Zero, tracker.BaseCurrency)
	for _, tx := range shown {
		total = total.Add(tracker.M(tx.Amount, tracker.BaseCurrency))
		v.Rows = append(v.Rows, TransactionRow{
			ID:          tx.ID,
			Date:        tx.Date.String(),
			Description: cell(mark(p, tx.Description)),
			Category:    cell(mark(p, tx.Category)),
			Amount:      tracker.M(tx.Amount, tracker.BaseCurrency).String(),
		})
	}
	v.Total = total.String()
	return v
}

// mark wraps pattern matches in bold markers, the markdown rendition of the
// HTML highlighting used on the web side.
func mark(p tracker.Pattern, s string) string {
	var b strings.Builder
	for _, span := range p.Spans(s) {
		if span.Match {
			b.WriteString("**")
			b.WriteString(span.Text)
			b.WriteString("**")
		} else {
			b.WriteString(span.Text)
		}
	}
	return b.String()
}

const transactionsMarkdownTemplate = `# Transactions
{{- if .Query }}

{{ .Count }} of {{ .TotalCount }} matching ` + "`{{ .Query }}`" + `
{{- end }}
{{- if .Rows }}

| Date | Description | Category | Amount |
|:---|:---|:---|---:|
{{- range .Rows }}
| {{ .Date }} | {{ .Description }} | {{ .Category }} | {{ .Amount }} |
{{- end }}
| **Total** | | | **{{ .Total }}** |
{{- else }}

No transactions.
{{- end }}
`

var transactionsTmpl = template.Must(template.New("transactions").Parse(transactionsMarkdownTemplate))

// RenderTransactions renders the transaction list report to markdown.
func RenderTransactions(v *TransactionList) string {
	return render(transactionsTmpl, v)
}

// Transaction renders a single transaction as a one-line summary.
func Transaction(tx tracker.Transaction) string {
	return tx.Date.String() + " " + tracker.M(tx.Amount, tracker.BaseCurrency).String() + " " + tx.Category + ": " + tx.Description
}
