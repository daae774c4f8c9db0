// Package pdf draws an assembled ReportDocument with fpdf. Placement comes
// from the document; the renderer only adds page breaks inside tables that
// run past the bottom margin.
package pdf

import (
	"fmt"
	"io"
	"strings"

	"github.com/de-tools/roi-atlas/pkg/models/domain"
	"github.com/de-tools/roi-atlas/pkg/services/report"
	"github.com/go-pdf/fpdf"
)

const (
	marginX       = 40.0
	ruleWidth     = 160.0
	bottomMargin  = 60.0
	fontFamily    = "Helvetica"
	titleFontSize = 24
	headFontSize  = 18
	bodyFontSize  = 12
	cellFontSize  = 10
)

var stripeFill = domain.Color{R: 242, G: 242, B: 242}

type Options struct {
	DateFormat string
	// Substitutions replace glyphs the core fonts cannot encode.
	Substitutions map[string]string
}

func DefaultOptions() Options {
	return Options{
		DateFormat:    "02/01/2006",
		Substitutions: map[string]string{"₹": "Rs."},
	}
}

type Renderer struct {
	layout  report.Layout
	options Options
}

func NewRenderer(layout report.Layout, options Options) *Renderer {
	return &Renderer{layout: layout, options: options}
}

// Render writes the document as PDF. Nothing is written to w when drawing
// fails part way, so callers can buffer and discard.
func (r *Renderer) Render(doc *domain.ReportDocument, w io.Writer) error {
	if doc == nil {
		return fmt.Errorf("nil report document")
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: doc.Page.Width, Ht: doc.Page.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(doc.Properties.Title, true)
	pdf.SetSubject(doc.Properties.Subject, true)
	pdf.SetAuthor(doc.Properties.Author, true)
	pdf.SetKeywords(doc.Properties.Keywords, true)
	pdf.SetCreator(doc.Properties.Creator, true)

	d := &drawer{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		subs:   r.options.Substitutions,
		layout: r.layout,
		page:   doc.Page,
	}

	d.header(doc, r.options.DateFormat)
	for _, section := range doc.Sections {
		for d.pageNo < section.Page {
			d.newPage()
		}
		d.section(section)
		if pdf.Err() {
			return fmt.Errorf("failed to draw section %q: %w", section.Title, pdf.Error())
		}
	}
	d.footer(doc.Footer)

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

type drawer struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	subs   map[string]string
	layout report.Layout
	page   domain.PageSize
	pageNo int
}

func (d *drawer) text(s string) string {
	for from, to := range d.subs {
		s = strings.ReplaceAll(s, from, to)
	}
	return d.tr(s)
}

func (d *drawer) newPage() {
	d.pdf.AddPage()
	d.pageNo++
}

func (d *drawer) header(doc *domain.ReportDocument, dateFormat string) {
	d.newPage()

	setFill(d.pdf, doc.Header.Color)
	d.pdf.Rect(0, 0, d.page.Width, doc.Header.Height, "F")

	setText(d.pdf, report.ColorWhite)
	d.pdf.SetFont(fontFamily, "B", titleFontSize)
	d.pdf.Text(marginX, 50, d.text(doc.Title))

	d.pdf.SetFont(fontFamily, "", bodyFontSize)
	d.pdf.Text(marginX, 70, d.text("Prepared on: "+doc.GeneratedAt.Format(dateFormat)))
}

func (d *drawer) section(s domain.ReportSection) {
	setText(d.pdf, s.Accent)
	d.pdf.SetFont(fontFamily, "", headFontSize)
	d.pdf.Text(marginX, s.Y, d.text(s.Title))

	setDraw(d.pdf, s.Accent)
	d.pdf.SetLineWidth(1)
	d.pdf.Line(marginX, s.Y+10, marginX+ruleWidth, s.Y+10)

	if s.IsTable() {
		d.table(s.Table, s.Y+d.layout.TableBodyOffset)
		return
	}

	setText(d.pdf, report.ColorText)
	d.pdf.SetFont(fontFamily, "", bodyFontSize)
	y := s.Y + d.layout.ProseBodyOffset
	for _, line := range s.Lines {
		d.pdf.Text(marginX, y, d.text(line))
		y += d.layout.LineHeight
	}
}

func (d *drawer) table(t *domain.Table, y float64) {
	if len(t.Header) == 0 {
		return
	}
	colWidth := (d.page.Width - 2*marginX) / float64(len(t.Header))

	y = d.tableRow(t.Header, y, colWidth, t.HeaderFill, t.HeaderText, "B")
	for i, row := range t.Rows {
		if y+d.layout.RowHeight > d.page.Height-bottomMargin {
			d.newPage()
			y = d.tableRow(t.Header, d.layout.TopMargin, colWidth, t.HeaderFill, t.HeaderText, "B")
		}
		fill := report.ColorWhite
		if i%2 == 1 {
			fill = stripeFill
		}
		y = d.tableRow(row, y, colWidth, fill, report.ColorText, "")
	}
}

func (d *drawer) tableRow(cells []string, y, colWidth float64, fill, text domain.Color, style string) float64 {
	setFill(d.pdf, fill)
	setText(d.pdf, text)
	d.pdf.SetFont(fontFamily, style, cellFontSize)
	d.pdf.SetXY(marginX, y)
	for _, cell := range cells {
		d.pdf.CellFormat(colWidth, d.layout.RowHeight, d.text(cell), "", 0, "L", true, 0, "")
	}
	return y + d.layout.RowHeight
}

func (d *drawer) footer(f domain.Footer) {
	d.pdf.SetFont(fontFamily, "", 10)
	setText(d.pdf, report.ColorPrimary)
	d.centered(f.Attribution, d.page.Height-40)

	d.pdf.SetFont(fontFamily, "", 8)
	setText(d.pdf, domain.Color{R: 128, G: 128, B: 128})
	d.centered(f.Disclaimer, d.page.Height-20)
}

func (d *drawer) centered(s string, y float64) {
	txt := d.text(s)
	d.pdf.Text(d.page.Width/2-d.pdf.GetStringWidth(txt)/2, y, txt)
}

func setFill(pdf *fpdf.Fpdf, c domain.Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func setText(pdf *fpdf.Fpdf, c domain.Color) {
	pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
}

func setDraw(pdf *fpdf.Fpdf, c domain.Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}
