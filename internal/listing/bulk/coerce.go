package bulk

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// StringToBoolean is true only when the value, rendered as text, trimmed
// and lower-cased, is exactly "true". Anything else, nil included, is false.
func StringToBoolean(value any) bool {
	if value == nil {
		return false
	}
	return strings.ToLower(strings.TrimSpace(fmt.Sprint(value))) == "true"
}

// ToNumberOrZero parses value as a number, yielding 0 when it is missing or
// not numeric.
func ToNumberOrZero(value any) float64 {
	return ToNumberOrDefault(value, 0)
}

// ToNumberOrDefault parses value as a number, yielding fallback when it is
// missing, blank, not numeric or not finite.
func ToNumberOrDefault(value any, fallback float64) float64 {
	n, ok := toNumber(value)
	if !ok {
		return fallback
	}
	return n
}

func toNumber(value any) (float64, bool) {
	var n float64
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		n = v
	case float32:
		n = float64(v)
	case int:
		n = float64(v)
	case int8:
		n = float64(v)
	case int16:
		n = float64(v)
	case int32:
		n = float64(v)
	case int64:
		n = float64(v)
	case uint:
		n = float64(v)
	case uint8:
		n = float64(v)
	case uint16:
		n = float64(v)
	case uint32:
		n = float64(v)
	case uint64:
		n = float64(v)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// toText renders a cell as trimmed text. Whole numbers print without a
// decimal point, so a phone number read as 9876543210 stays intact.
func toText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
