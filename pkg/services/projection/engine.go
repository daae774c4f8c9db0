// Package projection implements the traffic, revenue and ROI math. Every
// function is pure; inputs are not validated and non-finite values propagate.
package projection

import (
	"fmt"

	"github.com/de-tools/roi-atlas/pkg/models/domain"
	"github.com/de-tools/roi-atlas/pkg/services/format"
)

// Horizon is the fixed number of months MonthlyProjections produces.
const Horizon = 12

func MonthlyTraffic(searchVolume, ctrPercent float64) float64 {
	return searchVolume * (ctrPercent / 100)
}

func MonthlyRevenue(traffic, conversionPercent, averageOrderValue float64) float64 {
	return traffic * (conversionPercent / 100) * averageOrderValue
}

// MonthlyProjections compounds traffic month over month for Horizon months.
// Month 1 uses initialTraffic as is; month k multiplies the unrounded traffic
// of month k-1. Stored traffic is rounded, revenue is taken from the unrounded
// value and kept as is.
func MonthlyProjections(
	initialTraffic float64,
	growthPercent float64,
	conversionPercent float64,
	averageOrderValue float64,
) []domain.MonthlyProjection {
	projections := make([]domain.MonthlyProjection, 0, Horizon)
	current := initialTraffic

	for month := 1; month <= Horizon; month++ {
		if month > 1 {
			current *= 1 + growthPercent/100
		}
		projections = append(projections, domain.MonthlyProjection{
			Month:   month,
			Traffic: format.RoundHalfUp(current),
			Revenue: MonthlyRevenue(current, conversionPercent, averageOrderValue),
		})
	}

	return projections
}

// TotalRevenue sums the revenue of the first months projections. Months past
// the horizon are not extrapolated.
func TotalRevenue(
	initialTraffic float64,
	growthPercent float64,
	conversionPercent float64,
	averageOrderValue float64,
	months int,
) float64 {
	projections := MonthlyProjections(initialTraffic, growthPercent, conversionPercent, averageOrderValue)

	var total float64
	for _, p := range Truncate(projections, months) {
		total += p.Revenue
	}
	return total
}

// ROI is defined as 0 when there is no investment.
func ROI(totalRevenue, totalInvestmentCost float64) float64 {
	if totalInvestmentCost == 0 {
		return 0
	}
	return ((totalRevenue - totalInvestmentCost) / totalInvestmentCost) * 100
}

func MonthlyToYearly(monthly float64) float64 {
	return monthly * 12
}

// TrafficGrowth returns months rounded values of the compounding series. Unlike
// MonthlyProjections it is not bounded by Horizon.
func TrafficGrowth(initialTraffic, growthPercent float64, months int) []float64 {
	if months <= 0 {
		return []float64{}
	}

	series := make([]float64, 0, months)
	current := initialTraffic
	for i := 0; i < months; i++ {
		series = append(series, format.RoundHalfUp(current))
		current *= 1 + growthPercent/100
	}
	return series
}

// Calculate recomputes the full result from scratch.
func Calculate(inputs domain.CalculatorInputs) domain.CalculationResult {
	traffic := MonthlyTraffic(inputs.MonthlySearchVolume, inputs.AvgClickThroughRate)
	revenue := MonthlyRevenue(traffic, inputs.ConversionRate, inputs.AverageOrderValue)

	total := TotalRevenue(
		traffic,
		inputs.MonthlyGrowthRate,
		inputs.ConversionRate,
		inputs.AverageOrderValue,
		inputs.Timeframe,
	)

	return domain.CalculationResult{
		MonthlyTraffic: traffic,
		MonthlyRevenue: revenue,
		TotalRevenue:   total,
		ROI:            ROI(total, inputs.TotalCost()),
		Projections: MonthlyProjections(
			traffic,
			inputs.MonthlyGrowthRate,
			inputs.ConversionRate,
			inputs.AverageOrderValue,
		),
	}
}

// ChartSeries is the month by month data behind the growth charts.
func ChartSeries(result domain.CalculationResult, timeframe int) []domain.ChartPoint {
	visible := Truncate(result.Projections, timeframe)

	points := make([]domain.ChartPoint, 0, len(visible))
	for _, p := range visible {
		points = append(points, domain.ChartPoint{
			Label:   fmt.Sprintf("Month %d", p.Month),
			Traffic: p.Traffic,
			Revenue: p.Revenue,
		})
	}
	return points
}

// Truncate keeps the first months entries, clamped to [0, len(projections)].
func Truncate(projections []domain.MonthlyProjection, months int) []domain.MonthlyProjection {
	if months <= 0 {
		return projections[:0]
	}
	if months > len(projections) {
		months = len(projections)
	}
	return projections[:months]
}
