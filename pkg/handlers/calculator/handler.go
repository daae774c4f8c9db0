package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/de-tools/roi-atlas/pkg/metrics"
	"github.com/de-tools/roi-atlas/pkg/models/api"
	"github.com/de-tools/roi-atlas/pkg/models/domain"
	"github.com/de-tools/roi-atlas/pkg/runtime/render"
	"github.com/de-tools/roi-atlas/pkg/services/email"
	"github.com/de-tools/roi-atlas/pkg/services/format"
	"github.com/de-tools/roi-atlas/pkg/services/projection"
	"github.com/de-tools/roi-atlas/pkg/services/report"
	"github.com/de-tools/roi-atlas/pkg/services/scenario"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	scenarios  scenario.Registry
	deliveries email.Controller
	assembler  *report.Assembler
	renderer   *render.Renderer
	format     format.Formatter
	now        func() time.Time
}

func NewHandler(
	scenarios scenario.Registry,
	deliveries email.Controller,
	f format.Formatter,
	layout report.Layout,
) *Handler {
	return &Handler{
		scenarios:  scenarios,
		deliveries: deliveries,
		assembler:  report.NewAssembler(f, layout),
		renderer:   render.NewRenderer(layout),
		format:     f,
		now:        time.Now,
	}
}

func (h *Handler) GetDefaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, api.FromDomainInputs(domain.DefaultInputs()))
}

func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	inputs, err := decodeInputs(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, h.calculate(inputs))
}

func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	names, err := h.scenarios.GetScenarios(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, api.ScenarioList{Scenarios: names})
}

func (h *Handler) CalculateScenario(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	inputs, err := h.scenarios.GetInputs(r.Context(), name)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, h.calculate(inputs))
}

func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	f, err := render.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	inputs, err := decodeInputs(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	doc := h.document(inputs)
	data, err := h.renderer.Render(&doc, f)
	if err != nil {
		logger.Error().Err(err).Str("format", string(f)).Msg("report export failed")
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.FileName()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.Error().Err(err).Msg("failed to write report")
	}
}

func (h *Handler) StartDelivery(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, invalidRequest(err))
		return
	}
	if err := api.ValidateDeliveryRequest(body); err != nil {
		writeError(w, r, invalidRequest(err))
		return
	}

	var req api.DeliveryRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, r, invalidRequest(err))
		return
	}

	doc := h.document(req.InputsOrDefault())
	delivery, err := h.deliveries.Start(r.Context(), req.Email, &doc)
	if err != nil {
		writeError(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("delivery_id", delivery.ID).Msg("email delivery started")
	writeJSON(w, r, http.StatusAccepted, toAPIDelivery(delivery))
}

func (h *Handler) GetDelivery(w http.ResponseWriter, r *http.Request) {
	delivery, err := h.deliveries.Status(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toAPIDelivery(delivery))
}

func (h *Handler) CancelDelivery(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.deliveries.Cancel(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	delivery, err := h.deliveries.Status(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toAPIDelivery(delivery))
}

func (h *Handler) document(inputs domain.CalculatorInputs) domain.ReportDocument {
	metrics.CalculationsTotal.WithLabelValues("report").Inc()
	return h.assembler.Build(inputs, projection.Calculate(inputs), h.now())
}

func (h *Handler) calculate(inputs domain.CalculatorInputs) api.CalculationResponse {
	metrics.CalculationsTotal.WithLabelValues("api").Inc()

	result := projection.Calculate(inputs)
	yearly := projection.MonthlyToYearly(result.MonthlyRevenue)
	totalCost := inputs.TotalCost()

	projections := make([]api.MonthlyProjection, 0, len(result.Projections))
	for _, p := range result.Projections {
		projections = append(projections, api.MonthlyProjection{Month: p.Month, Traffic: p.Traffic, Revenue: p.Revenue})
	}

	series := projection.ChartSeries(result, inputs.Timeframe)
	chart := make([]api.ChartPoint, 0, len(series))
	for _, p := range series {
		chart = append(chart, api.ChartPoint{Label: p.Label, Traffic: p.Traffic, Revenue: p.Revenue})
	}

	return api.CalculationResponse{
		Inputs:         api.FromDomainInputs(inputs),
		MonthlyTraffic: result.MonthlyTraffic,
		MonthlyRevenue: result.MonthlyRevenue,
		YearlyRevenue:  yearly,
		TotalRevenue:   result.TotalRevenue,
		TotalCost:      totalCost,
		ROI:            result.ROI,
		Projections:    projections,
		Chart:          chart,
		Formatted: api.FormattedResult{
			MonthlyTraffic: h.format.Count(result.MonthlyTraffic),
			MonthlyRevenue: h.format.Currency(result.MonthlyRevenue),
			YearlyRevenue:  h.format.Currency(yearly),
			TotalRevenue:   h.format.Currency(result.TotalRevenue),
			TotalCost:      h.format.Currency(totalCost),
			ROI:            h.format.PercentFixed(result.ROI),
		},
	}
}

// decodeInputs reads calculator inputs from the body. An empty body means
// the default inputs.
func decodeInputs(r *http.Request) (domain.CalculatorInputs, error) {
	var in api.CalculatorInputs
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&in)
	if errors.Is(err, io.EOF) {
		return domain.DefaultInputs(), nil
	}
	if err != nil {
		return domain.CalculatorInputs{}, invalidRequest(err)
	}
	return in.ToDomain(), nil
}

func toAPIDelivery(d email.Delivery) api.Delivery {
	out := api.Delivery{
		ID:        d.ID,
		To:        d.To,
		Provider:  d.Provider,
		Status:    string(d.Status),
		Error:     d.Error,
		StartedAt: d.StartedAt.Format(time.RFC3339),
	}
	if !d.CompletedAt.IsZero() {
		out.CompletedAt = d.CompletedAt.Format(time.RFC3339)
	}
	return out
}

func invalidRequest(err error) error {
	return domain.NewStandardError(domain.ErrCodeInvalidRequest, "Invalid request", err.Error())
}

func statusFor(code domain.ErrorCode) int {
	switch code {
	case domain.ErrCodeInvalidEmail, domain.ErrCodeInvalidRequest, domain.ErrCodeUnsupportedFormat:
		return http.StatusBadRequest
	case domain.ErrCodeScenarioNotFound, domain.ErrCodeDeliveryNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var stdErr *domain.StandardError
	if !errors.As(err, &stdErr) {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, r, statusFor(stdErr.Code), stdErr)
}

// writeJSON encodes before writing the status so an unencodable value, such
// as a non-finite float, still produces a well formed error response.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
		status = http.StatusUnprocessableEntity
		data, _ = json.Marshal(domain.NewStandardError(
			domain.ErrCodeInvalidRequest,
			"Result cannot be represented",
			err.Error(),
		))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(data, '\n')); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write response")
	}
}
