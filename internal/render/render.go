// Package render turns a report envelope into a self-contained HTML page.
package render

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/codescope-dev/codescope/internal/report"
)

// PageData is everything the report template can reference.
type PageData struct {
	Title    string
	Time     time.Time
	Envelope *report.Envelope
	Severity map[string]int
}

// add adds two integers and returns the result.
// helper function for html template
func add(a, b int) int {
	return a + b
}

// ordinalDate returns a string with the ordinal number of the day
// helper function for html template
func ordinalDate(day int) string {
	suffix := "th"
	switch day {
	case 1, 21, 31:
		suffix = "st"
	case 2, 22:
		suffix = "nd"
	case 3, 23:
		suffix = "rd"
	}
	return fmt.Sprintf("%d%s", day, suffix)
}

// formatDateTime formats a time.Time object into the specified string format.
// helper function for html template
func formatDateTime(t time.Time) string {
	day := ordinalDate(t.Day())
	return fmt.Sprintf("%s %s %d %d:%02d:%02d %s", day, t.Month(), t.Year(), t.Hour()%12, t.Minute(), t.Second(), t.Format("pm"))
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"add":            add,
		"formatDateTime": formatDateTime,
	}
}

// NewTemplate parses a custom template file with the report helpers bound.
func NewTemplate(templateFile string) (*template.Template, error) {
	return template.New("report.html").
		Funcs(funcMap()).
		ParseFiles(templateFile)
}

// NewPageData assembles the template payload for one envelope.
func NewPageData(title string, envelope *report.Envelope) *PageData {
	severity := map[string]int{}
	for _, f := range envelope.Result.Findings {
		severity[string(f.Severity)]++
		severity["total"]++
	}

	return &PageData{
		Title:    title,
		Time:     time.Now().UTC(),
		Envelope: envelope,
		Severity: severity,
	}
}

// Render writes the report page. An empty templateFile uses the built-in
// template.
func Render(w io.Writer, data *PageData, templateFile string) error {
	var tmpl *template.Template
	var err error

	if templateFile != "" {
		tmpl, err = NewTemplate(templateFile)
	} else {
		tmpl, err = template.New("report.html").Funcs(funcMap()).Parse(defaultTemplate)
	}
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}

	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}
