// Package renderer turns folio computations into markdown reports.
package renderer

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/etnz/folio"
)

// funcs are the helpers available to every report template.
var funcs = template.FuncMap{
	"pct":    func(p float64) string { return folio.Percent(p).String() },
	"signed": func(p float64) string { return folio.Percent(p).SignedString() },
	"deref": func(p *float64) float64 {
		if p == nil {
			return 0
		}
		return *p
	},
	// hundred turns an optional ratio into a percentage.
	"hundred": func(p *float64) float64 {
		if p == nil {
			return 0
		}
		return *p * 100
	},
}

// renderTemplate parses and executes a report template. Errors are returned
// as the rendered text, templates are constants covered by tests.
func renderTemplate(name, text string, data any) string {
	tmpl, err := template.New(name).Funcs(funcs).Parse(text)
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", name, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", name, err)
	}
	return b.String()
}

// cell escapes s for use in a markdown table cell.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// quantity formats an optional quantity, empty when absent.
func quantity(q *float64) string {
	if q == nil {
		return ""
	}
	return strconv.FormatFloat(*q, 'f', -1, 64)
}

// money formats a base currency amount.
func money(v float64, currency string) folio.Money {
	return folio.M(v, strings.ToUpper(strings.TrimSpace(currency)))
}
