package domain

// CalculatorInputs holds the user supplied assumptions. Rates are percentages
// (3.5 means 3.5%) and are only divided by 100 inside the projection formulas.
type CalculatorInputs struct {
	MonthlySearchVolume float64
	AvgClickThroughRate float64
	ConversionRate      float64
	AverageOrderValue   float64
	MonthlyGrowthRate   float64
	MonthlySEOCost      float64
	Timeframe           int // months
}

// DefaultInputs mirrors the calculator's initial form state.
func DefaultInputs() CalculatorInputs {
	return CalculatorInputs{
		MonthlySearchVolume: 10000,
		AvgClickThroughRate: 3.5,
		ConversionRate:      2.0,
		AverageOrderValue:   2500,
		MonthlyGrowthRate:   10,
		MonthlySEOCost:      25000,
		Timeframe:           12,
	}
}

// TotalCost is the campaign spend over the whole timeframe.
func (in CalculatorInputs) TotalCost() float64 {
	return in.MonthlySEOCost * float64(in.Timeframe)
}

type MonthlyProjection struct {
	Month   int     // 1-based
	Traffic float64 // rounded visitors
	Revenue float64
}

type CalculationResult struct {
	MonthlyTraffic float64
	MonthlyRevenue float64
	TotalRevenue   float64 // over the inputs timeframe, capped at the projection horizon
	ROI            float64 // percent, may be negative
	Projections    []MonthlyProjection
}

type ChartPoint struct {
	Label   string
	Traffic float64
	Revenue float64
}
