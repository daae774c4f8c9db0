package projection

import (
	"math"
	"testing"

	"github.com/de-tools/roi-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyTraffic(t *testing.T) {
	tests := []struct {
		volume, ctr, want float64
	}{
		{volume: 10000, ctr: 3.5, want: 350},
		{volume: 0, ctr: 3.5, want: 0},
		{volume: 2500, ctr: 0, want: 0},
		{volume: 1234, ctr: 10, want: 123.4},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.volume*tt.ctr/100, MonthlyTraffic(tt.volume, tt.ctr), 1e-9)
		assert.InDelta(t, tt.want, MonthlyTraffic(tt.volume, tt.ctr), 1e-9)
	}
}

func TestMonthlyTraffic_PropagatesNonFiniteInput(t *testing.T) {
	assert.True(t, math.IsNaN(MonthlyTraffic(math.NaN(), 3.5)))
	assert.Equal(t, -35.0, MonthlyTraffic(-1000, 3.5))
}

func TestMonthlyRevenue(t *testing.T) {
	assert.InDelta(t, 17500, MonthlyRevenue(350, 2.0, 2500), 1e-9)
	assert.Equal(t, 0.0, MonthlyRevenue(350, 0, 2500))
}

func TestMonthlyProjections_FixedHorizon(t *testing.T) {
	projections := MonthlyProjections(350, 10, 2.0, 2500)

	require.Len(t, projections, Horizon)
	for i, p := range projections {
		assert.Equal(t, i+1, p.Month)
	}
}

func TestMonthlyProjections_CompoundsFromPreviousMonth(t *testing.T) {
	projections := MonthlyProjections(350, 10, 2.0, 2500)

	assert.Equal(t, 350.0, projections[0].Traffic)
	assert.InDelta(t, 17500, projections[0].Revenue, 1e-6)
	assert.Equal(t, 385.0, projections[1].Traffic)
	assert.InDelta(t, 19250, projections[1].Revenue, 1e-6)
	// 423.5 unrounded: traffic rounds up, revenue keeps the fraction.
	assert.Equal(t, 424.0, projections[2].Traffic)
	assert.InDelta(t, 21175, projections[2].Revenue, 1e-6)

	current := 350.0
	for _, p := range projections {
		if p.Month > 1 {
			current *= 1.10
		}
		assert.Equal(t, math.Floor(current+0.5), p.Traffic, "month %d", p.Month)
		assert.InDelta(t, current*0.02*2500, p.Revenue, 1e-6, "month %d", p.Month)
	}
}

func TestMonthlyProjections_ZeroGrowthIsFlat(t *testing.T) {
	for _, p := range MonthlyProjections(120.4, 0, 5, 100) {
		assert.Equal(t, 120.0, p.Traffic)
		assert.InDelta(t, 602, p.Revenue, 1e-9)
	}
}

func TestTotalRevenue(t *testing.T) {
	projections := MonthlyProjections(350, 10, 2.0, 2500)

	t.Run("sums the first months", func(t *testing.T) {
		want := projections[0].Revenue + projections[1].Revenue + projections[2].Revenue
		assert.InDelta(t, want, TotalRevenue(350, 10, 2.0, 2500, 3), 1e-9)
	})

	t.Run("caps at the horizon", func(t *testing.T) {
		full := TotalRevenue(350, 10, 2.0, 2500, 12)
		assert.InDelta(t, 374224.96592617524, full, 1e-6)
		assert.Equal(t, full, TotalRevenue(350, 10, 2.0, 2500, 24))
	})

	t.Run("non positive months", func(t *testing.T) {
		assert.Equal(t, 0.0, TotalRevenue(350, 10, 2.0, 2500, 0))
		assert.Equal(t, 0.0, TotalRevenue(350, 10, 2.0, 2500, -4))
	})
}

func TestROI(t *testing.T) {
	assert.Equal(t, 100.0, ROI(1000, 500))
	assert.Equal(t, -50.0, ROI(250, 500))
	assert.Equal(t, 0.0, ROI(1000, 0))
	assert.Equal(t, 0.0, ROI(-1000, 0))
	assert.Equal(t, 0.0, ROI(math.Inf(1), 0))
}

func TestCalculate_DefaultInputs(t *testing.T) {
	result := Calculate(domain.DefaultInputs())

	assert.InDelta(t, 350, result.MonthlyTraffic, 1e-9)
	assert.InDelta(t, 17500, result.MonthlyRevenue, 1e-9)
	assert.InDelta(t, 374224.96592617524, result.TotalRevenue, 1e-6)
	assert.InDelta(t, (374224.96592617524-300000)/300000*100, result.ROI, 1e-9)
	assert.Len(t, result.Projections, Horizon)
}

func TestCalculate_TimeframeBeyondHorizon(t *testing.T) {
	inputs := domain.DefaultInputs()
	inputs.Timeframe = 30

	result := Calculate(inputs)

	// Revenue stops at 12 months while cost keeps accruing for 30.
	assert.InDelta(t, 374224.96592617524, result.TotalRevenue, 1e-6)
	assert.InDelta(t, (374224.96592617524-750000)/750000*100, result.ROI, 1e-9)
	assert.Len(t, result.Projections, Horizon)
}

func TestCalculate_ZeroCost(t *testing.T) {
	inputs := domain.DefaultInputs()
	inputs.MonthlySEOCost = 0

	assert.Equal(t, 0.0, Calculate(inputs).ROI)
}

func TestTrafficGrowth(t *testing.T) {
	assert.Equal(t, []float64{1000, 1050, 1103, 1158}, TrafficGrowth(1000, 5, 4))
	assert.Len(t, TrafficGrowth(1000, 5, 24), 24)
	assert.Empty(t, TrafficGrowth(1000, 5, 0))
}

func TestMonthlyToYearly(t *testing.T) {
	assert.Equal(t, 210000.0, MonthlyToYearly(17500))
}

func TestChartSeries(t *testing.T) {
	result := Calculate(domain.DefaultInputs())

	points := ChartSeries(result, 3)
	require.Len(t, points, 3)
	assert.Equal(t, "Month 1", points[0].Label)
	assert.Equal(t, 385.0, points[1].Traffic)

	assert.Len(t, ChartSeries(result, 30), Horizon)
	assert.Empty(t, ChartSeries(result, 0))
}
