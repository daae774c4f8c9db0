package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/de-tools/roi-atlas/pkg/services/format"
)

// Number is a lenient numeric field. It accepts a JSON number, a string
// holding a numeric prefix, or null. Anything unparseable becomes 0.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*n = 0
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid numeric string: %w", err)
		}
		*n = Number(format.ParseNumber(s))
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("invalid number: %w", err)
		}
		*n = Number(f)
	default:
		*n = 0
	}
	return nil
}

func (n Number) Float64() float64 {
	return float64(n)
}
