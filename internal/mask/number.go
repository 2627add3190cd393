package mask

// NumberOptions configures the numeric mask generator.
type NumberOptions struct {
	// Precision is the number of decimal digits; 0 disables the decimal
	// separator entirely.
	Precision int
	// Delimiter separates thousand groups in the integer part.
	Delimiter string
	// Separator sits between the integer part and the Precision decimal
	// digits.
	Separator string
	// Prefix and Suffix are literal runs around the number, e.g. "R$ ".
	Prefix string
	Suffix string
}

func (o NumberOptions) withDefaults() NumberOptions {
	if o.Delimiter == "" {
		o.Delimiter = ","
	}
	if o.Separator == "" {
		o.Separator = "."
	}
	if o.Precision < 0 {
		o.Precision = 0
	}
	return o
}

// NumberMask returns a generator that synthesizes a numeric mask for the
// digits present in the current raw value: one digit slot per typed digit,
// the decimal separator ahead of the last Precision digits, and a group
// delimiter every three integer digits.
func NumberMask(opts NumberOptions) func(value string) Mask {
	opts = opts.withDefaults()

	return func(value string) Mask {
		digits := 0
		for _, r := range value {
			if r >= '0' && r <= '9' {
				digits++
			}
		}

		intDigits := digits
		decDigits := 0
		if opts.Precision > 0 && digits > opts.Precision {
			intDigits = digits - opts.Precision
			decDigits = opts.Precision
		}

		m := make(Mask, 0, len(opts.Prefix)+digits+digits/3+len(opts.Suffix)+1)
		m = appendLiterals(m, opts.Prefix)

		for i := 0; i < intDigits; i++ {
			m = append(m, Pattern(ClassDigit))
			if rest := intDigits - i - 1; rest > 0 && rest%3 == 0 {
				m = appendLiterals(m, opts.Delimiter)
			}
		}

		if decDigits > 0 {
			m = appendLiterals(m, opts.Separator)
			for i := 0; i < decDigits; i++ {
				m = append(m, Pattern(ClassDigit))
			}
		}

		m = appendLiterals(m, opts.Suffix)
		return m
	}
}

func appendLiterals(m Mask, s string) Mask {
	for _, r := range s {
		m = append(m, Literal(r))
	}
	return m
}
