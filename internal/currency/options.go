// Package currency implements locale-aware number and money formatting on
// top of the numeric normalization layer. All formatting falls back to the
// process-wide session defaults and degrades to sentinels instead of
// returning errors.
package currency

import (
	"regexp"
	"strings"
)

// Options is the full set of currency formatting settings.
type Options struct {
	Symbol            string `json:"symbol" mapstructure:"symbol"`
	DecimalDigits     int    `json:"decimalDigits" mapstructure:"decimal_digits"`
	ThousandSeparator string `json:"thousandSeparator" mapstructure:"thousand_separator"`
	DecimalSeparator  string `json:"decimalSeparator" mapstructure:"decimal_separator"`
	Format            string `json:"format" mapstructure:"format"`
}

// Option overrides a single field on top of the session defaults.
type Option func(*override)

type override struct {
	symbol        *string
	decimalDigits *int
	thousand      *string
	decimal       *string
	format        *string
}

// WithSymbol overrides the currency symbol.
func WithSymbol(s string) Option {
	return func(o *override) { o.symbol = &s }
}

// WithDecimalDigits overrides the decimal digit count. A decimal-digit
// suffix in the format string still takes precedence; see PrepareOptions.
func WithDecimalDigits(n int) Option {
	return func(o *override) { o.decimalDigits = &n }
}

// WithThousandSeparator overrides the group separator.
func WithThousandSeparator(s string) Option {
	return func(o *override) { o.thousand = &s }
}

// WithDecimalSeparator overrides the decimal separator.
func WithDecimalSeparator(s string) Option {
	return func(o *override) { o.decimal = &s }
}

// WithFormat overrides the currency template, e.g. "%s %v" or "%v %s .##".
func WithFormat(f string) Option {
	return func(o *override) { o.format = &f }
}

// WithOptions overrides every field at once, e.g. from a stored preset or a
// locale table entry.
func WithOptions(src Options) Option {
	return func(o *override) {
		o.symbol = &src.Symbol
		o.decimalDigits = &src.DecimalDigits
		o.thousand = &src.ThousandSeparator
		o.decimal = &src.DecimalSeparator
		o.format = &src.Format
	}
}

// formatSuffix matches a trailing "." followed by up to nine '#' digits and
// optional whitespace, e.g. "%s%v .###".
var formatSuffix = regexp.MustCompile(`\.#{0,9}\s*$`)

// ParseFormat splits a currency template into the bare template and the
// decimal-digit count encoded in its ".###" suffix. ok reports whether a
// suffix was present; a bare trailing dot means zero decimal digits.
func ParseFormat(format string) (string, int, bool) {
	format = strings.TrimSpace(format)

	loc := formatSuffix.FindStringIndex(format)
	if loc == nil {
		return format, 0, false
	}

	digits := strings.Count(format[loc[0]:loc[1]], "#")
	return strings.TrimSpace(format[:loc[0]]), digits, true
}

// PrepareOptions resolves the effective options for a call: a copy of the
// session defaults, overlaid with the caller's overrides, then the format
// suffix. A decimal-digit suffix in the format overrides even an explicitly
// supplied WithDecimalDigits; this is the documented contract.
func PrepareOptions(opts ...Option) Options {
	o, _ := resolveOptions(opts)
	return o
}

// resolveOptions additionally reports whether the decimal digit count was
// pinned by the caller or the format suffix, as opposed to inherited from
// the session defaults.
func resolveOptions(opts []Option) (Options, bool) {
	var ov override
	for _, opt := range opts {
		opt(&ov)
	}

	out := SessionDefaults()
	if ov.symbol != nil {
		out.Symbol = *ov.symbol
	}
	if ov.decimalDigits != nil {
		out.DecimalDigits = *ov.decimalDigits
	}
	if ov.thousand != nil {
		out.ThousandSeparator = *ov.thousand
	}
	if ov.decimal != nil {
		out.DecimalSeparator = *ov.decimal
	}
	if ov.format != nil {
		out.Format = *ov.format
	}

	digitsSet := ov.decimalDigits != nil

	if out.Format != "" {
		format, digits, ok := ParseFormat(out.Format)
		out.Format = format
		if ok {
			out.DecimalDigits = digits
			digitsSet = true
		}
	}

	return out, digitsSet
}

// currencyFormats holds the resolved templates per value sign.
type currencyFormats struct {
	pos  string
	neg  string
	zero string
}

// checkCurrencyFormat derives the positive, negative, and zero templates
// from the resolved format. A format without the %v placeholder falls back
// to the session format. The negative template drops any literal minus and
// prefixes the value placeholder with one instead.
func checkCurrencyFormat(o Options) currencyFormats {
	f := strings.ToLower(o.Format)
	if !strings.Contains(f, "%v") {
		f = strings.ToLower(SessionDefaults().Format)
		if !strings.Contains(f, "%v") {
			f = "%s%v"
		}
	}

	neg := strings.Replace(f, "-", "", 1)
	neg = strings.Replace(neg, "%v", "-%v", 1)

	return currencyFormats{pos: f, neg: neg, zero: f}
}
