// Package report maps calculation output onto a paginated document layout.
package report

import (
	"fmt"
	"time"

	"github.com/de-tools/roi-atlas/pkg/models/domain"
	"github.com/de-tools/roi-atlas/pkg/services/format"
	"github.com/de-tools/roi-atlas/pkg/services/projection"
)

const (
	DocumentTitle = "SEO ROI Analysis Report"
	Disclaimer    = "This report is based on projections and estimates. Actual results may vary."
	Attribution   = "Generated with SEO ROI Calculator • seoroicalculator.com"
)

var (
	ColorPrimary   = domain.Color{R: 36, G: 94, B: 79}
	ColorSecondary = domain.Color{R: 122, G: 201, B: 167}
	ColorAccent    = domain.Color{R: 233, G: 196, B: 106}
	ColorWhite     = domain.Color{R: 255, G: 255, B: 255}
	ColorText      = domain.Color{R: 51, G: 51, B: 51}
)

type Assembler struct {
	format format.Formatter
	layout Layout
}

func NewAssembler(f format.Formatter, layout Layout) *Assembler {
	return &Assembler{format: f, layout: layout}
}

func (a *Assembler) Layout() Layout {
	return a.layout
}

// BuildSummarySection renders the six line narrative; the fourth line is a
// paragraph break.
func (a *Assembler) BuildSummarySection(inputs domain.CalculatorInputs, result domain.CalculationResult) domain.ReportSection {
	return domain.ReportSection{
		Kind:   domain.SectionSummary,
		Title:  "Executive Summary",
		Accent: ColorPrimary,
		Lines: []string{
			"Based on your inputs, we forecast that your SEO campaign will generate",
			fmt.Sprintf("approximately %s monthly visitors with", a.format.Count(result.MonthlyTraffic)),
			fmt.Sprintf("potential monthly revenue of %s.", a.format.Currency(result.MonthlyRevenue)),
			"",
			fmt.Sprintf("Over a %d-month period, the projected total revenue is", inputs.Timeframe),
			fmt.Sprintf("%s with an estimated ROI of %s.",
				a.format.Currency(result.TotalRevenue), a.format.PercentFixed(result.ROI)),
		},
	}
}

func (a *Assembler) BuildInputsTable(inputs domain.CalculatorInputs) domain.ReportSection {
	return domain.ReportSection{
		Kind:   domain.SectionInputs,
		Title:  "Input Parameters",
		Accent: ColorPrimary,
		Table: &domain.Table{
			Header: []string{"Parameter", "Value"},
			Rows: [][]string{
				{"Monthly Search Volume", a.format.Count(inputs.MonthlySearchVolume)},
				{"Average Click-Through Rate", a.format.Percent(inputs.AvgClickThroughRate)},
				{"Conversion Rate", a.format.Percent(inputs.ConversionRate)},
				{"Average Order Value", a.format.Currency(inputs.AverageOrderValue)},
				{"Monthly Traffic Growth Rate", a.format.Percent(inputs.MonthlyGrowthRate)},
				{"Monthly SEO Investment", a.format.Currency(inputs.MonthlySEOCost)},
				{"Timeframe", fmt.Sprintf("%d months", inputs.Timeframe)},
			},
			HeaderFill: ColorPrimary,
			HeaderText: ColorWhite,
		},
	}
}

// TimeframeLabel renders a timeframe as used in result labels, e.g. "12-Month".
func TimeframeLabel(timeframe int) string {
	return fmt.Sprintf("%d-Month", timeframe)
}

func (a *Assembler) BuildResultsTable(result domain.CalculationResult, timeframeLabel string) domain.ReportSection {
	return domain.ReportSection{
		Kind:   domain.SectionResults,
		Title:  "Projected Results",
		Accent: ColorPrimary,
		Table: &domain.Table{
			Header: []string{"Metric", "Value"},
			Rows: [][]string{
				{"Monthly Organic Traffic", a.format.Count(result.MonthlyTraffic)},
				{"Monthly Revenue", a.format.Currency(result.MonthlyRevenue)},
				{timeframeLabel + " Revenue", a.format.Currency(result.TotalRevenue)},
				{"Return on Investment", a.format.PercentFixed(result.ROI)},
			},
			HeaderFill: ColorSecondary,
			HeaderText: ColorText,
		},
	}
}

// BuildProjectionsTable emits one row per month up to min(timeframe, len(projections)).
func (a *Assembler) BuildProjectionsTable(projections []domain.MonthlyProjection, timeframe int) domain.ReportSection {
	visible := projection.Truncate(projections, timeframe)

	rows := make([][]string, 0, len(visible))
	for _, p := range visible {
		rows = append(rows, []string{
			fmt.Sprintf("Month %d", p.Month),
			a.format.Count(p.Traffic),
			a.format.Currency(p.Revenue),
		})
	}

	return domain.ReportSection{
		Kind:   domain.SectionProjections,
		Title:  "Monthly Projections",
		Accent: ColorPrimary,
		Table: &domain.Table{
			Header:     []string{"Month", "Organic Traffic", "Revenue"},
			Rows:       rows,
			HeaderFill: ColorAccent,
			HeaderText: ColorText,
		},
	}
}

// Assemble places sections top to bottom. The only page break considered is
// before the projections section: when the running offset is past
// pageHeight - SafetyMargin the section starts a new page at TopMargin.
func (a *Assembler) Assemble(sections []domain.ReportSection) domain.ReportDocument {
	placed := make([]domain.ReportSection, 0, len(sections))
	page := 1
	offset := a.layout.FirstSectionY

	for i, section := range sections {
		if i > 0 {
			prev := placed[i-1]
			offset = prev.Y + prev.Height + a.layout.gapAfter(prev)
		}

		if section.Kind == domain.SectionProjections && offset > a.layout.breakThreshold() {
			page++
			offset = a.layout.TopMargin
		}

		section.Page = page
		section.Y = offset
		section.Height = a.layout.sectionHeight(section)
		placed = append(placed, section)
	}

	return domain.ReportDocument{
		Page:      a.layout.Page,
		Header:    domain.Band{Height: a.layout.HeaderHeight, Color: ColorPrimary},
		Sections:  placed,
		PageCount: page,
	}
}

// Build assembles the full export document for one calculation.
func (a *Assembler) Build(
	inputs domain.CalculatorInputs,
	result domain.CalculationResult,
	generatedAt time.Time,
) domain.ReportDocument {
	doc := a.Assemble([]domain.ReportSection{
		a.BuildSummarySection(inputs, result),
		a.BuildInputsTable(inputs),
		a.BuildResultsTable(result, TimeframeLabel(inputs.Timeframe)),
		a.BuildProjectionsTable(result.Projections, inputs.Timeframe),
	})

	doc.Title = DocumentTitle
	doc.GeneratedAt = generatedAt
	doc.Properties = domain.DocumentProperties{
		Title:    "SEO ROI Calculator Results",
		Subject:  "SEO Return on Investment Analysis",
		Author:   "SEO ROI Calculator",
		Keywords: "SEO, ROI, digital marketing, organic traffic",
		Creator:  "SEO ROI Calculator",
	}
	doc.Footer = domain.Footer{
		Disclaimer:  Disclaimer,
		Attribution: Attribution,
	}
	return doc
}
