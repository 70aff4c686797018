// Package renderer turns tracker data into markdown reports.
//
// Each report follows the same pattern: a view struct holds exactly the data
// the report needs, a New* constructor populates it from the domain objects,
// and a Render* function executes a markdown template over it.
package renderer

import (
	"fmt"
	"strings"
	"text/template"
)

// render executes a parsed template over data. Template errors surface in the
// output itself, a report is always returned.
func render(tmpl *template.Template, data any) string {
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", tmpl.Name(), err)
	}
	return b.String()
}

// cell makes a value safe inside a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
