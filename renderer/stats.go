package renderer

import (
	"text/template"

	"github.com/etnz/tracker"
)

// StatsRow is one category line of the statistics report.
type StatsRow struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Share    string `json:"share"`
}

// Stats is the view behind the statistics report.
type Stats struct {
	Date        string `json:"date"`
	Count       int    `json:"count"`
	Total       string `json:"total"`
	TopCategory string `json:"topCategory,omitempty"`
	Last7Days   string `json:"last7Days"`
	MonthToDate string `json:"monthToDate"`
	// BudgetCap is empty when no cap is set.
	BudgetCap  string     `json:"budgetCap,omitempty"`
	OverBudget bool       `json:"overBudget"`
	Categories []StatsRow `json:"categories"`
}

// NewStats builds the statistics view for the given day.
func NewStats(s tracker.Statistics, on tracker.Date) *Stats {
	v := &Stats{
		Date:        on.String(),
		Count:       s.Count,
		Total:       tracker.M(s.Total, tracker.BaseCurrency).String(),
		TopCategory: s.TopCategory,
		Last7Days:   tracker.M(s.Last7Days, tracker.BaseCurrency).String(),
		MonthToDate: tracker.M(s.MonthToDate, tracker.BaseCurrency).String(),
		OverBudget:  s.OverBudget,
		Categories:  make([]StatsRow, 0, len(s.Categories)),
	}
	if s.BudgetCap.IsPositive() {
		v.BudgetCap = tracker.M(s.BudgetCap, tracker.BaseCurrency).String()
	}
	for _, c := range s.Categories {
		v.Categories = append(v.Categories, StatsRow{
			Category: cell(c.Category),
			Amount:   tracker.M(c.Amount, tracker.BaseCurrency).String(),
			Share:    c.Share.String(),
		})
	}
	return v
}

const statsMarkdownTemplate = `# Statistics on {{ .Date }}

{{ .Count }} transactions, {{ .Total }} in total.

| | |
|:---|---:|
| Last 7 days | {{ .Last7Days }} |
| Month to date | {{ .MonthToDate }} |
{{- if .BudgetCap }}
| Budget cap | {{ .BudgetCap }} |
{{- end }}
{{- if .TopCategory }}
| Top category | {{ .TopCategory }} |
{{- end }}
{{- if .OverBudget }}

**Over budget**: month-to-date spending exceeds the cap.
{{- end }}
{{- if .Categories }}

## By category

| Category | Amount | Share |
|:---|---:|---:|
{{- range .Categories }}
| {{ .Category }} | {{ .Amount }} | {{ .Share }} |
{{- end }}
{{- end }}
`

var statsTmpl = template.Must(template.New("stats").Parse(statsMarkdownTemplate))

// RenderStats renders the statistics report to markdown.
func RenderStats(v *Stats) string {
	return render(statsTmpl, v)
}
