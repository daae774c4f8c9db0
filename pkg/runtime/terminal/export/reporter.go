package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/de-tools/roi-atlas/pkg/models/domain"
)

type TableConfig struct {
	MinColumnWidth int
	DateFormat     string
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		MinColumnWidth: 12,
		DateFormat:     "2006-01-02",
	}
}

// Reporter writes a ReportDocument as fixed width text.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

const reportTemplate = `{{.Title}}
Prepared on: {{.GeneratedAt.Format dateFormat}}
{{range .Sections}}
=== {{.Title}} ===
{{if .IsTable}}{{with table .Table}}{{.Separator}}
{{.Head}}
{{.Separator}}
{{range .Body}}{{.}}
{{end}}{{.Separator}}
{{end}}{{else}}{{range .Lines}}{{.}}
{{end}}{{end}}{{end}}
{{.Footer.Disclaimer}}
{{.Footer.Attribution}}
`

type renderedTable struct {
	Separator string
	Head      string
	Body      []string
}

func (c *Reporter) Handle(doc *domain.ReportDocument) error {
	funcMap := template.FuncMap{
		"dateFormat": func() string { return c.config.DateFormat },
		"table":      c.renderTable,
	}

	t, err := template.New("report").Funcs(funcMap).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, doc)
}

func (c *Reporter) renderTable(table *domain.Table) renderedTable {
	widths := make([]int, len(table.Header))
	for i, h := range table.Header {
		widths[i] = max(c.config.MinColumnWidth, utf8.RuneCountInString(h))
	}
	for _, row := range table.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(cell))
			}
		}
	}

	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w+2)
	}

	out := renderedTable{
		Separator: "+" + strings.Join(parts, "+") + "+",
		Head:      formatRow(table.Header, widths),
		Body:      make([]string, 0, len(table.Rows)),
	}
	for _, row := range table.Rows {
		out.Body = append(out.Body, formatRow(row, widths))
	}
	return out
}

func formatRow(cells []string, widths []int) string {
	var b strings.Builder
	b.WriteString("|")
	for i, w := range widths {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		pad := w - utf8.RuneCountInString(cell)
		b.WriteString(" ")
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", max(pad, 0)))
		b.WriteString(" |")
	}
	return b.String()
}
