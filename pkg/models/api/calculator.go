package api

import (
	"github.com/de-tools/roi-atlas/pkg/models/domain"
	"github.com/de-tools/roi-atlas/pkg/services/format"
)

type CalculatorInputs struct {
	MonthlySearchVolume Number `json:"monthlySearchVolume"`
	AvgClickThroughRate Number `json:"avgClickThroughRate"`
	ConversionRate      Number `json:"conversionRate"`
	AverageOrderValue   Number `json:"averageOrderValue"`
	MonthlyGrowthRate   Number `json:"monthlyGrowthRate"`
	MonthlySEOCost      Number `json:"monthlySeoCost"`
	Timeframe           Number `json:"timeframe"`
}

func (in CalculatorInputs) ToDomain() domain.CalculatorInputs {
	return domain.CalculatorInputs{
		MonthlySearchVolume: in.MonthlySearchVolume.Float64(),
		AvgClickThroughRate: in.AvgClickThroughRate.Float64(),
		ConversionRate:      in.ConversionRate.Float64(),
		AverageOrderValue:   in.AverageOrderValue.Float64(),
		MonthlyGrowthRate:   in.MonthlyGrowthRate.Float64(),
		MonthlySEOCost:      in.MonthlySEOCost.Float64(),
		Timeframe:           format.Truncate(in.Timeframe.Float64()),
	}
}

func FromDomainInputs(in domain.CalculatorInputs) CalculatorInputs {
	return CalculatorInputs{
		MonthlySearchVolume: Number(in.MonthlySearchVolume),
		AvgClickThroughRate: Number(in.AvgClickThroughRate),
		ConversionRate:      Number(in.ConversionRate),
		AverageOrderValue:   Number(in.AverageOrderValue),
		MonthlyGrowthRate:   Number(in.MonthlyGrowthRate),
		MonthlySEOCost:      Number(in.MonthlySEOCost),
		Timeframe:           Number(in.Timeframe),
	}
}

type MonthlyProjection struct {
	Month   int     `json:"month"`
	Traffic float64 `json:"traffic"`
	Revenue float64 `json:"revenue"`
}

type ChartPoint struct {
	Label   string  `json:"label"`
	Traffic float64 `json:"traffic"`
	Revenue float64 `json:"revenue"`
}

// FormattedResult carries the display strings shown next to the raw numbers.
type FormattedResult struct {
	MonthlyTraffic string `json:"monthlyTraffic"`
	MonthlyRevenue string `json:"monthlyRevenue"`
	YearlyRevenue  string `json:"yearlyRevenue"`
	TotalRevenue   string `json:"totalRevenue"`
	TotalCost      string `json:"totalCost"`
	ROI            string `json:"roi"`
}

type CalculationResponse struct {
	Inputs         CalculatorInputs    `json:"inputs"`
	MonthlyTraffic float64             `json:"monthlyTraffic"`
	MonthlyRevenue float64             `json:"monthlyRevenue"`
	YearlyRevenue  float64             `json:"yearlyRevenue"`
	TotalRevenue   float64             `json:"totalRevenue"`
	TotalCost      float64             `json:"totalCost"`
	ROI            float64             `json:"roi"`
	Projections    []MonthlyProjection `json:"projections"`
	Chart          []ChartPoint        `json:"chart"`
	Formatted      FormattedResult     `json:"formatted"`
}

type ScenarioList struct {
	Scenarios []string `json:"scenarios"`
}

type DeliveryRequest struct {
	Email  string            `json:"email"`
	Inputs *CalculatorInputs `json:"inputs,omitempty"`
}

// InputsOrDefault falls back to the default inputs when none were sent.
func (r DeliveryRequest) InputsOrDefault() domain.CalculatorInputs {
	if r.Inputs == nil {
		return domain.DefaultInputs()
	}
	return r.Inputs.ToDomain()
}

type Delivery struct {
	ID          string `json:"id"`
	To          string `json:"to"`
	Provider    string `json:"provider"`
	Status      string `json:"status"`
	Error       string `json:"error,omitempty"`
	StartedAt   string `json:"startedAt"`
	CompletedAt string `json:"completedAt,omitempty"`
}

type ExportResponse struct {
	Location string `json:"location"`
}
