package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/roi-atlas/pkg/models/api"
	"github.com/de-tools/roi-atlas/pkg/models/domain"
	"github.com/de-tools/roi-atlas/pkg/services/email"
	"github.com/de-tools/roi-atlas/pkg/services/format"
	"github.com/de-tools/roi-atlas/pkg/services/report"
	"github.com/de-tools/roi-atlas/pkg/services/scenario"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	// Deliveries log from their own goroutine, which may outlive the test.
	logger := zerolog.New(io.Discard)

	scenarios, err := scenario.NewRegistryFromBytes([]byte("[agency]\nmonthly_search_volume = 2000\navg_click_through_rate = 5\nconversion_rate = 1\naverage_order_value = 1000\ntimeframe = 6\n"))
	require.NoError(t, err)

	sender := email.NewSender(email.NewSimulatedDispatcher(10*time.Millisecond), "reports@example.com")

	webAPI := NewWebAPI(logger, Config{
		Addr:            ":8080",
		ShutdownTimeout: time.Second,
		Dependencies: Dependencies{
			Scenarios:  scenarios,
			Deliveries: email.NewController(sender, email.DefaultRetention),
			Formatter:  format.Default(),
			Layout:     report.DefaultLayout(),
		},
	})

	testServer := httptest.NewServer(webAPI.Handler())
	t.Cleanup(testServer.Close)
	return testServer
}

func unmarshalResponse[T any]() func([]byte) (interface{}, error) {
	return func(data []byte) (interface{}, error) {
		var result T
		err := json.Unmarshal(data, &result)
		return result, err
	}
}

func TestWebAPI_Endpoints(t *testing.T) {
	testServer := newTestServer(t)

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
		expected       interface{}
		parseResponse  func([]byte) (interface{}, error)
	}{
		{
			name:           "GetDefaults",
			method:         http.MethodGet,
			path:           "/api/v1/defaults",
			expectedStatus: http.StatusOK,
			expected:       api.FromDomainInputs(domain.DefaultInputs()),
			parseResponse:  unmarshalResponse[api.CalculatorInputs](),
		},
		{
			name:           "ListScenarios",
			method:         http.MethodGet,
			path:           "/api/v1/scenarios",
			expectedStatus: http.StatusOK,
			expected:       api.ScenarioList{Scenarios: []string{"default", "agency"}},
			parseResponse:  unmarshalResponse[api.ScenarioList](),
		},
		{
			name:           "CalculateScenario",
			method:         http.MethodGet,
			path:           "/api/v1/scenarios/agency/calculation",
			expectedStatus: http.StatusOK,
			expected:       float64(100),
			parseResponse: func(data []byte) (interface{}, error) {
				var resp api.CalculationResponse
				err := json.Unmarshal(data, &resp)
				return resp.MonthlyTraffic, err
			},
		},
		{
			name:           "Calculate",
			method:         http.MethodPost,
			path:           "/api/v1/calculations",
			body:           `{"monthlySearchVolume": 1000, "avgClickThroughRate": 10, "conversionRate": 10, "averageOrderValue": 100, "timeframe": 3}`,
			expectedStatus: http.StatusOK,
			expected:       3,
			parseResponse: func(data []byte) (interface{}, error) {
				var resp api.CalculationResponse
				err := json.Unmarshal(data, &resp)
				return len(resp.Chart), err
			},
		},
		{
			name:           "StartDelivery_InvalidAddress",
			method:         http.MethodPost,
			path:           "/api/v1/deliveries",
			body:           `{"email": "not-an-address"}`,
			expectedStatus: http.StatusBadRequest,
			expected:       domain.ErrCodeInvalidEmail,
			parseResponse: func(data []byte) (interface{}, error) {
				var resp domain.StandardError
				err := json.Unmarshal(data, &resp)
				return resp.Code, err
			},
		},
		{
			name:           "GetDelivery_NotFound",
			method:         http.MethodGet,
			path:           "/api/v1/deliveries/unknown",
			expectedStatus: http.StatusNotFound,
			expected:       domain.ErrCodeDeliveryNotFound,
			parseResponse: func(data []byte) (interface{}, error) {
				var resp domain.StandardError
				err := json.Unmarshal(data, &resp)
				return resp.Code, err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, testServer.URL+tt.path, strings.NewReader(tt.body))
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			got, err := tt.parseResponse(body)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestWebAPI_DeliveryLifecycle(t *testing.T) {
	testServer := newTestServer(t)

	resp, err := http.Post(testServer.URL+"/api/v1/deliveries", "application/json",
		strings.NewReader(`{"email": "user@example.com", "inputs": {"timeframe": "6"}}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var started api.Delivery
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&started))
	require.NotEmpty(t, started.ID)
	assert.Equal(t, "pending", started.Status)

	assert.Eventually(t, func() bool {
		resp, err := http.Get(testServer.URL + "/api/v1/deliveries/" + started.ID)
		if err != nil {
			return false
		}
		defer resp.Body.Close()

		var d api.Delivery
		if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
			return false
		}
		return d.Status == "delivered"
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWebAPI_ExportReportAndMetrics(t *testing.T) {
	testServer := newTestServer(t)

	resp, err := http.Post(testServer.URL+"/api/v1/reports?format=pdf", "application/json", strings.NewReader(""))
	require.NoError(t, err)
	pdfBytes, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(pdfBytes, []byte("%PDF-")))

	resp, err = http.Get(testServer.URL + "/metrics")
	require.NoError(t, err)
	metricsBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(metricsBody), `roi_report_exports_total{format="pdf",status="ok"}`)
}
