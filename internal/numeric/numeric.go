// Package numeric implements decimal parsing, precision rounding, and
// fixed-point rendering free of binary floating-point artifacts.
package numeric

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NaN is the sentinel ToFixed returns for input that cannot be cleaned to a
// number. Callers must check for it explicitly.
const NaN = "NaN"

// maxExactDigits is the longest dotless digit string that survives a round
// trip through float64 without precision loss.
const maxExactDigits = 15

// ParseDecimal extracts a float from loosely formatted input. Numbers pass
// through unchanged; nil and other non-numeric types resolve to 0. Strings
// are trimmed and de-spaced, a decimal comma becomes a dot (grouping commas
// are dropped when a dot is already present), and parse failure resolves
// to 0.
func ParseDecimal(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case string:
		return parseDecimalString(x)
	default:
		return 0
	}
}

func parseDecimalString(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	s = strings.ReplaceAll(s, " ", "")

	if strings.Contains(s, ".") {
		// The dot is already the decimal point; commas are grouping.
		s = strings.ReplaceAll(s, ",", "")
	} else if i := strings.LastIndex(s, ","); i >= 0 {
		// Decimal-comma form: last comma is the decimal point.
		s = strings.ReplaceAll(s[:i], ",", "") + "." + s[i+1:]
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// CheckPrecision resolves a decimal-digit count from v, falling back to base
// when v is not a usable number.
func CheckPrecision(v float64, base int) int {
	if math.IsNaN(v) {
		return base
	}
	return int(roundHalfUp(math.Abs(v)))
}

// ToFixed renders v with exactly decimalDigits fractional digits.
//
// The input is first cleaned to digits, sign, and dot. A dotless cleaned
// string longer than 15 runes is too large to round through a float64, so it
// is returned verbatim with zero decimals appended instead of being rounded.
// Everything else is rounded with a decimal exponent shift (shift the
// decimal point right by decimalDigits at the string level, round half up,
// shift back), which sidesteps the binary truncation artifacts of naive
// multiply-and-round. Input that does not clean to a number yields the NaN
// sentinel.
func ToFixed(v any, decimalDigits int) string {
	if decimalDigits < 0 {
		decimalDigits = 0
	}

	cleaned := cleanNumeric(stringify(v))
	if cleaned == "" {
		return NaN
	}

	if !strings.Contains(cleaned, ".") && len(cleaned) > maxExactDigits {
		if _, err := strconv.ParseFloat(cleaned, 64); err != nil {
			return NaN
		}
		if decimalDigits == 0 {
			return cleaned
		}
		return cleaned + "." + strings.Repeat("0", decimalDigits)
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return NaN
	}

	return strconv.FormatFloat(shiftRound(f, decimalDigits), 'f', decimalDigits, 64)
}

// shiftRound rounds f to d decimal digits by shifting the exponent in the
// decimal string representation rather than multiplying, so 1.235 at two
// digits rounds up to 1.24 instead of truncating to 1.23.
func shiftRound(f float64, d int) float64 {
	shifted, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', -1, 64)+"e"+strconv.Itoa(d), 64)
	if err != nil {
		return f
	}

	rounded := roundHalfUp(shifted)

	back, err := strconv.ParseFloat(strconv.FormatFloat(rounded, 'f', -1, 64)+"e-"+strconv.Itoa(d), 64)
	if err != nil {
		return f
	}
	return back
}

// roundHalfUp rounds to the nearest integer with ties going up, matching the
// behavior the formatting contract documents.
func roundHalfUp(f float64) float64 {
	return math.Floor(f + 0.5)
}

// cleanNumeric keeps digits, a leading sign, and the first dot.
func cleanNumeric(s string) string {
	var b strings.Builder
	sawDot := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		case r == '.' && !sawDot:
			sawDot = true
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" || out == "-" || out == "." || out == "-." {
		return ""
	}
	return out
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", x)
	}
}
