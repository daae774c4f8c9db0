// Package render turns an assembled ReportDocument into bytes in one of the
// supported output formats.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/roi-atlas/pkg/metrics"
	"github.com/de-tools/roi-atlas/pkg/models/domain"
	"github.com/de-tools/roi-atlas/pkg/runtime/pdf"
	"github.com/de-tools/roi-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/roi-atlas/pkg/services/report"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatText Format = "text"
)

const (
	PDFFileName  = "SEO_ROI_Analysis.pdf"
	TextFileName = "SEO_ROI_Analysis.txt"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatText, "txt":
		return FormatText, nil
	}
	return "", domain.NewStandardError(domain.ErrCodeUnsupportedFormat, "Unsupported report format", s)
}

func (f Format) ContentType() string {
	if f == FormatText {
		return "text/plain; charset=utf-8"
	}
	return "application/pdf"
}

func (f Format) FileName() string {
	if f == FormatText {
		return TextFileName
	}
	return PDFFileName
}

type Renderer struct {
	pdf *pdf.Renderer
}

func NewRenderer(layout report.Layout) *Renderer {
	return &Renderer{pdf: pdf.NewRenderer(layout, pdf.DefaultOptions())}
}

// Render produces the whole document or an EXPORT_FAILED error, never a
// partial output.
func (r *Renderer) Render(doc *domain.ReportDocument, format Format) ([]byte, error) {
	start := time.Now()

	var buf bytes.Buffer
	var err error
	switch format {
	case FormatPDF:
		err = r.pdf.Render(doc, &buf)
	case FormatText:
		if doc == nil {
			err = fmt.Errorf("nil report document")
		} else {
			err = export.NewReporter(&buf).Handle(doc)
		}
	default:
		return nil, domain.NewStandardError(domain.ErrCodeUnsupportedFormat, "Unsupported report format", string(format))
	}

	metrics.ReportRenderDuration.WithLabelValues(string(format)).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ReportExportsTotal.WithLabelValues(string(format), "failed").Inc()
		return nil, &ExportError{
			StandardError: domain.NewStandardError(domain.ErrCodeExportFailed, "report export failed", err.Error()),
			cause:         err,
		}
	}

	metrics.ReportExportsTotal.WithLabelValues(string(format), "ok").Inc()
	return buf.Bytes(), nil
}

// ExportError keeps the underlying rendering failure reachable through
// errors.Unwrap.
type ExportError struct {
	*domain.StandardError
	cause error
}

func (e *ExportError) Unwrap() []error {
	return []error{e.StandardError, e.cause}
}
