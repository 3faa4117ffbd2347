package statement

import (
	"log/slog"
	"strconv"
	"strings"
)

// amountCleaner strips digit-group separators and currency glyphs that
// upstream producers embed in formatted amounts.
var amountCleaner = strings.NewReplacer(",", "", "₹", "", "$", "")

// SafeFloat converts an arbitrary value to float64. Strings are cleaned of
// whitespace, comma separators and currency symbols before parsing. Any
// value that cannot be converted yields def; the function never fails.
func SafeFloat(v any, def float64, log *slog.Logger) float64 {
	if log == nil {
		log = slog.Default()
	}
	switch n := v.(type) {
	case nil:
		return def
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint64:
		return float64(n)
	case string:
		cleaned := strings.TrimSpace(amountCleaner.Replace(n))
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			log.Warn("could not convert value to float, using default", "value", n, "default", def)
			return def
		}
		return f
	default:
		log.Warn("could not convert value to float, using default", "value", v, "default", def)
		return def
	}
}

// SafeInt converts an arbitrary value to int. Fractional numeric input is
// truncated toward zero. Any value that cannot be converted yields def; the
// function never fails.
func SafeInt(v any, def int, log *slog.Logger) int {
	if log == nil {
		log = slog.Default()
	}
	switch n := v.(type) {
	case nil:
		return def
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case uint:
		return int(n)
	case uint64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			log.Warn("could not convert value to int, using default", "value", n, "default", def)
			return def
		}
		return i
	default:
		log.Warn("could not convert value to int, using default", "value", v, "default", def)
		return def
	}
}
