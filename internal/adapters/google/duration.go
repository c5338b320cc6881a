package google

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// durationMinutes converts a Google duration into whole minutes, rounding up.
// Durations arrive either as "123s" strings or {"seconds": ...} objects.
// Anything unparseable counts as zero.
func durationMinutes(raw json.RawMessage) int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}

	var seconds float64

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "s"), 64)
		if err != nil {
			return 0
		}
		seconds = v
	} else {
		var obj struct {
			Seconds json.RawMessage `json:"seconds"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil || len(obj.Seconds) == 0 {
			return 0
		}

		v, err := strconv.ParseFloat(strings.Trim(string(obj.Seconds), `"`), 64)
		if err != nil {
			return 0
		}
		seconds = v
	}

	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return 0
	}

	return int(math.Ceil(seconds / 60))
}
