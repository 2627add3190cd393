package currency

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/raaihank/maskform/internal/numeric"
)

// parenNegative rewrites the parenthesized-negative convention into a
// leading minus. The rule is deliberately narrow: it fires only when a digit
// immediately follows the opening parenthesis, so "($1,234.56)" stays
// positive. Downstream behavior depends on exactly this rule.
var parenNegative = regexp.MustCompile(`\((\d.*)\)`)

// Precompiled strip expressions for the common decimal separators.
var (
	stripKeepDot   = regexp.MustCompile(`[^0-9\-.]`)
	stripKeepComma = regexp.MustCompile(`[^0-9\-,]`)
)

// MoneyObject is the full result of composing a money string: the composed
// string, the template actually used, and every resolved option.
type MoneyObject struct {
	Result            string  `json:"result"`
	UsedFormat        string  `json:"usedFormat"`
	Value             float64 `json:"value"`
	FormattedValue    string  `json:"formattedValue"`
	Symbol            string  `json:"symbol"`
	DecimalDigits     int     `json:"decimalDigits"`
	ThousandSeparator string  `json:"thousandSeparator"`
	DecimalSeparator  string  `json:"decimalSeparator"`
	Format            string  `json:"format"`
}

// Unformat strips currency formatting from v and returns its numeric value.
// Numbers pass through unchanged; nil, empty strings, and unparseable input
// resolve to 0. An empty decimalSeparator picks up the session default.
func Unformat(v any, decimalSeparator string) float64 {
	switch x := v.(type) {
	case string:
		s, ok := unformatString(x, decimalSeparator)
		if !ok {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	case nil:
		return 0
	default:
		return numeric.ParseDecimal(v)
	}
}

// unformatString reduces a formatted string to a plain "-1234.56" form.
func unformatString(s, decimalSeparator string) (string, bool) {
	if s == "" {
		return "", false
	}
	if decimalSeparator == "" {
		decimalSeparator = SessionDefaults().DecimalSeparator
	}

	s = parenNegative.ReplaceAllString(s, "-$1")
	s = stripExpr(decimalSeparator).ReplaceAllString(s, "")
	if decimalSeparator != "." {
		s = strings.Replace(s, decimalSeparator, ".", 1)
	}
	if s == "" {
		return "", false
	}
	return s, true
}

func stripExpr(decimalSeparator string) *regexp.Regexp {
	switch decimalSeparator {
	case ".":
		return stripKeepDot
	case ",":
		return stripKeepComma
	default:
		return regexp.MustCompile(`[^0-9\-` + regexp.QuoteMeta(decimalSeparator) + `]`)
	}
}

// FormatNumber renders v with group separators and a resolved decimal digit
// count. Digits resolve in priority order: caller-supplied digits (including
// a format suffix) beat the fractional digits already present in the input,
// which beat the session default.
func FormatNumber(v any, opts ...Option) string {
	o, digitsSet := resolveOptions(opts)
	n := Unformat(v, o.DecimalSeparator)

	digits := o.DecimalDigits
	if !digitsSet {
		if frac, ok := fractionDigits(v, o.DecimalSeparator); ok {
			digits = frac
		}
	}

	return formatFixed(n, digits, o.ThousandSeparator, o.DecimalSeparator)
}

// fractionDigits counts the fractional digits present in the input's string
// form. ok is false when the input carries no decimal point at all.
func fractionDigits(v any, decimalSeparator string) (int, bool) {
	var s string
	switch x := v.(type) {
	case string:
		cleaned, ok := unformatString(x, decimalSeparator)
		if !ok {
			return 0, false
		}
		s = cleaned
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		s = strconv.FormatFloat(float64(x), 'f', -1, 32)
	default:
		return 0, false
	}

	i := strings.LastIndex(s, ".")
	if i < 0 {
		return 0, false
	}
	return len(s) - i - 1, true
}

// formatFixed renders n at the given precision with grouped integer digits.
func formatFixed(n float64, digits int, thousand, decimal string) string {
	fixed := numeric.ToFixed(math.Abs(n), digits)
	if fixed == numeric.NaN {
		fixed = numeric.ToFixed(0, digits)
	}

	intPart := fixed
	frac := ""
	if i := strings.Index(fixed, "."); i >= 0 {
		intPart = fixed[:i]
		frac = fixed[i+1:]
	}

	out := groupDigits(intPart, thousand)
	if digits > 0 && frac != "" {
		out += decimal + frac
	}
	if n < 0 {
		out = "-" + out
	}
	return out
}

// groupDigits inserts the thousand separator every three digits from the
// right.
func groupDigits(intPart, thousand string) string {
	if len(intPart) <= 3 || thousand == "" {
		return intPart
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
		b.WriteString(thousand)
	}
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(intPart[i : i+3])
		if i+3 < len(intPart) {
			b.WriteString(thousand)
		}
	}
	return b.String()
}

// FormatMoneyAsObject composes a money string for v and returns it together
// with the template used and all resolved options. The template is selected
// by the sign of the unformatted value.
func FormatMoneyAsObject(v any, opts ...Option) MoneyObject {
	o := PrepareOptions(opts...)
	n := Unformat(v, o.DecimalSeparator)
	formats := checkCurrencyFormat(o)

	var used string
	switch {
	case n > 0:
		used = formats.pos
	case n < 0:
		used = formats.neg
	default:
		used = formats.zero
	}

	magnitude := formatFixed(math.Abs(n), o.DecimalDigits, o.ThousandSeparator, o.DecimalSeparator)

	result := strings.Replace(used, "%s", o.Symbol, 1)
	result = strings.Replace(result, "%v", magnitude, 1)
	if o.Symbol == "" {
		result = strings.TrimSpace(result)
	}

	return MoneyObject{
		Result:            result,
		UsedFormat:        used,
		Value:             n,
		FormattedValue:    magnitude,
		Symbol:            o.Symbol,
		DecimalDigits:     o.DecimalDigits,
		ThousandSeparator: o.ThousandSeparator,
		DecimalSeparator:  o.DecimalSeparator,
		Format:            o.Format,
	}
}

// FormatMoney is the string form of FormatMoneyAsObject.
func FormatMoney(v any, opts ...Option) string {
	return FormatMoneyAsObject(v, opts...).Result
}
