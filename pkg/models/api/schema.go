package api

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

var numberOrString = map[string]interface{}{
	"type": []interface{}{"number", "string", "null"},
}

var inputsSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"monthlySearchVolume": numberOrString,
		"avgClickThroughRate": numberOrString,
		"conversionRate":      numberOrString,
		"averageOrderValue":   numberOrString,
		"monthlyGrowthRate":   numberOrString,
		"monthlySeoCost":      numberOrString,
		"timeframe":           numberOrString,
	},
}

var deliverySchema = gojsonschema.NewGoLoader(map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"email"},
	"properties": map[string]interface{}{
		"email":  map[string]interface{}{"type": "string"},
		"inputs": inputsSchema,
	},
})

// ValidateDeliveryRequest checks the shape of a raw delivery request body.
// Address syntax is checked separately by the email service.
func ValidateDeliveryRequest(body []byte) error {
	result, err := gojsonschema.Validate(deliverySchema, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("request validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}
