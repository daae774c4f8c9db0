package domain

import "time"

// ReportDocument is the laid out, write-once representation of an export.
type ReportDocument struct {
	Properties  DocumentProperties
	Title       string
	GeneratedAt time.Time
	Page        PageSize
	Header      Band
	Sections    []ReportSection
	Footer      Footer
	PageCount   int
}

type DocumentProperties struct {
	Title    string
	Subject  string
	Author   string
	Keywords string
	Creator  string
}

// PageSize is expressed in points.
type PageSize struct {
	Width  float64
	Height float64
}

type Band struct {
	Height float64
	Color  Color
}

type Footer struct {
	Disclaimer  string
	Attribution string
}

type Color struct {
	R, G, B uint8
}

type SectionKind string

const (
	SectionSummary     SectionKind = "summary"
	SectionInputs      SectionKind = "inputs"
	SectionResults     SectionKind = "results"
	SectionProjections SectionKind = "projections"
)

// ReportSection represents a logical section in the report. Exactly one of
// Lines and Table is set.
type ReportSection struct {
	Kind   SectionKind
	Title  string
	Accent Color
	Lines  []string
	Table  *Table

	// Placement, filled in by the assembler.
	Page   int
	Y      float64
	Height float64
}

func (s ReportSection) IsTable() bool {
	return s.Table != nil
}

type Table struct {
	Header     []string
	Rows       [][]string
	HeaderFill Color
	HeaderText Color
}
