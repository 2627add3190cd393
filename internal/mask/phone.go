package mask

import "strings"

// phoneTemplates maps lower-case ISO country codes to grouping templates.
// '9' marks a digit slot; everything else is a literal.
var phoneTemplates = map[string]string{
	"us": "(999) 999-9999",
	"ca": "(999) 999-9999",
	"br": "(99) 99999-9999",
	"fr": "99 99 99 99 99",
	"de": "9999 99999999",
	"uk": "99999 999999",
	"gb": "99999 999999",
	"in": "99999 99999",
	"jp": "99-9999-9999",
	"au": "9999 999 999",
}

const defaultPhoneCountry = "us"

// PhoneTemplate bundles a compiled phone mask with its placeholder and a
// completeness validator.
type PhoneTemplate struct {
	Mask        Mask
	Placeholder string
	Validate    func(unmasked string) bool
}

// PhoneMask resolves countryOrExample into a phone mask template. A
// two-letter country code selects a built-in grouping convention; any other
// input containing digits is treated as an example number and generalized
// digit for digit. Unknown input falls back to the default country.
func PhoneMask(countryOrExample string) PhoneTemplate {
	tmpl, ok := phoneTemplates[strings.ToLower(strings.TrimSpace(countryOrExample))]
	if !ok {
		if containsDigit(countryOrExample) {
			tmpl = generalizeExample(countryOrExample)
		} else {
			tmpl = phoneTemplates[defaultPhoneCountry]
		}
	}

	m := compilePhoneTemplate(tmpl)
	slots := countPatternTokens(m)

	return PhoneTemplate{
		Mask:        m,
		Placeholder: Placeholder(m),
		Validate: func(unmasked string) bool {
			return len([]rune(unmasked)) == slots
		},
	}
}

// generalizeExample turns a concrete number like "(212) 456-7890" into the
// template "(999) 999-9999".
func generalizeExample(example string) string {
	var b strings.Builder
	for _, r := range example {
		if r >= '0' && r <= '9' {
			b.WriteRune('9')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func compilePhoneTemplate(tmpl string) Mask {
	m := make(Mask, 0, len(tmpl))
	for _, r := range tmpl {
		if r == '9' {
			m = append(m, Pattern(ClassDigit))
		} else {
			m = append(m, Literal(r))
		}
	}
	return m
}

func countPatternTokens(m Mask) int {
	n := 0
	for _, tok := range m {
		if tok.Kind != KindLiteral {
			n++
		}
	}
	return n
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
