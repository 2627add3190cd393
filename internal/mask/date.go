package mask

import "regexp"

// Positional digit classes for date narrowing.
var (
	classDay1    = regexp.MustCompile(`[0-3]`)
	classMonth1  = regexp.MustCompile(`[0-1]`)
	classZeroOne = regexp.MustCompile(`[0-1]`)
	classToTwo   = regexp.MustCompile(`[0-2]`)
	classNonZero = regexp.MustCompile(`[1-9]`)
)

// DateMask returns a generator for a DD<sep>MM<sep>YYYY mask whose digit
// classes narrow positionally as the user types. A leading day digit of 3
// restricts the second day digit to 0-1; a leading 0 excludes 00. A leading
// month digit of 1 restricts the second month digit to 0-2.
func DateMask(separator rune) func(value string) Mask {
	return func(value string) Mask {
		typed := digitRunes(value)

		day2 := ClassDigit
		if len(typed) > 0 {
			switch typed[0] {
			case '3':
				day2 = classZeroOne
			case '0':
				day2 = classNonZero
			}
		}

		month2 := ClassDigit
		if len(typed) > 2 {
			switch typed[2] {
			case '1':
				month2 = classToTwo
			case '0':
				month2 = classNonZero
			}
		}

		return Mask{
			Pattern(classDay1),
			Pattern(day2),
			Literal(separator),
			Pattern(classMonth1),
			Pattern(month2),
			Literal(separator),
			Pattern(ClassDigit),
			Pattern(ClassDigit),
			Pattern(ClassDigit),
			Pattern(ClassDigit),
		}
	}
}

func digitRunes(value string) []rune {
	var out []rune
	for _, r := range value {
		if r >= '0' && r <= '9' {
			out = append(out, r)
		}
	}
	return out
}
