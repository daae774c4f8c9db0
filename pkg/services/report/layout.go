package report

import "github.com/de-tools/roi-atlas/pkg/models/domain"

// Layout holds the vertical metrics, in points, used to place sections.
type Layout struct {
	Page domain.PageSize

	HeaderHeight  float64
	FirstSectionY float64
	// TopMargin is where content resumes after a page break.
	TopMargin float64
	// SafetyMargin is reserved at the bottom of the page before the
	// projections table; the check is a heuristic, not an exact fit.
	SafetyMargin float64

	LineHeight      float64
	RowHeight       float64
	ProseBodyOffset float64
	TableBodyOffset float64
	GapAfterProse   float64
	GapAfterTable   float64
}

// A4 portrait in points.
var A4 = domain.PageSize{Width: 595.28, Height: 841.89}

func DefaultLayout() Layout {
	return LayoutFor(A4)
}

func LayoutFor(page domain.PageSize) Layout {
	return Layout{
		Page:            page,
		HeaderHeight:    80,
		FirstSectionY:   120,
		TopMargin:       40,
		SafetyMargin:    150,
		LineHeight:      20,
		RowHeight:       20,
		ProseBodyOffset: 30,
		TableBodyOffset: 20,
		GapAfterProse:   20,
		GapAfterTable:   30,
	}
}

func (l Layout) sectionHeight(s domain.ReportSection) float64 {
	if s.IsTable() {
		return l.TableBodyOffset + float64(len(s.Table.Rows)+1)*l.RowHeight
	}
	return l.ProseBodyOffset + float64(len(s.Lines))*l.LineHeight
}

func (l Layout) gapAfter(s domain.ReportSection) float64 {
	if s.IsTable() {
		return l.GapAfterTable
	}
	return l.GapAfterProse
}

// breakThreshold is the offset past which the projections table moves to a
// new page.
func (l Layout) breakThreshold() float64 {
	return l.Page.Height - l.SafetyMargin
}
