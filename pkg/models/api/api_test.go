package api

import (
	"encoding/json"
	"testing"

	"github.com/de-tools/roi-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{name: "number", raw: `3.5`, want: 3.5},
		{name: "negative", raw: `-2`, want: -2},
		{name: "string", raw: `"2500"`, want: 2500},
		{name: "string prefix", raw: `"12 months"`, want: 12},
		{name: "garbage string", raw: `"abc"`, want: 0},
		{name: "empty string", raw: `""`, want: 0},
		{name: "null", raw: `null`, want: 0},
		{name: "bool", raw: `true`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &n))
			assert.Equal(t, tt.want, n.Float64())
		})
	}
}

func TestCalculatorInputs_ToDomain(t *testing.T) {
	var in CalculatorInputs
	body := `{
		"monthlySearchVolume": "10000",
		"avgClickThroughRate": 3.5,
		"conversionRate": "2",
		"averageOrderValue": 2500,
		"monthlyGrowthRate": "10%",
		"monthlySeoCost": "n/a",
		"timeframe": "12.7"
	}`
	require.NoError(t, json.Unmarshal([]byte(body), &in))

	assert.Equal(t, domain.CalculatorInputs{
		MonthlySearchVolume: 10000,
		AvgClickThroughRate: 3.5,
		ConversionRate:      2,
		AverageOrderValue:   2500,
		MonthlyGrowthRate:   10,
		MonthlySEOCost:      0,
		Timeframe:           12,
	}, in.ToDomain())
}

func TestFromDomainInputs_RoundTrip(t *testing.T) {
	defaults := domain.DefaultInputs()
	assert.Equal(t, defaults, FromDomainInputs(defaults).ToDomain())
}

func TestValidateDeliveryRequest(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "address only", body: `{"email": "user@example.com"}`},
		{name: "with inputs", body: `{"email": "user@example.com", "inputs": {"timeframe": "6", "monthlySeoCost": 1000}}`},
		{name: "missing email", body: `{"inputs": {}}`, wantErr: true},
		{name: "email not string", body: `{"email": 42}`, wantErr: true},
		{name: "input wrong type", body: `{"email": "a@b.co", "inputs": {"timeframe": [12]}}`, wantErr: true},
		{name: "not json", body: `email=user`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDeliveryRequest([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDeliveryRequest_InputsOrDefault(t *testing.T) {
	var withoutInputs DeliveryRequest
	require.NoError(t, json.Unmarshal([]byte(`{"email": "user@example.com"}`), &withoutInputs))
	assert.Equal(t, domain.DefaultInputs(), withoutInputs.InputsOrDefault())

	var withInputs DeliveryRequest
	require.NoError(t, json.Unmarshal([]byte(`{"email": "user@example.com", "inputs": {"timeframe": 6}}`), &withInputs))
	assert.Equal(t, 6, withInputs.InputsOrDefault().Timeframe)
	assert.Zero(t, withInputs.InputsOrDefault().MonthlySearchVolume)
}
