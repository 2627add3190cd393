package mask

import "strings"

// Match runs the two-cursor scan of value against m and returns every view
// at once: the masked display string, the clean unmasked value, the
// obfuscated display string, the fill-in placeholder, and a validity flag.
//
// The scan advances a mask cursor and a value cursor independently and only
// forward. Pattern tokens always consume one input character whether or not
// it satisfies the class, which lets the scan skip stray characters the user
// typed (a pasted separator, for example). Literal tokens that do not match
// the current input character are inserted into the display views without
// consuming input.
//
// When autoComplete is set and the input runs out, trailing literal tokens
// are still appended to the display views (never to the unmasked value).
//
// validate, when non-nil, decides validity from the unmasked value;
// otherwise the result is valid only if the whole mask was consumed.
// Match never fails: malformed input yields a partial Result.
func Match(value string, m Mask, obfuscationChar rune, autoComplete bool, validate func(unmasked string) bool) Result {
	res := Result{
		Mask:           m,
		HasObfuscation: hasObfuscation(m),
		Placeholder:    Placeholder(m),
	}

	// An empty mask or empty value is an identity passthrough.
	if len(m) == 0 || value == "" {
		res.Masked = value
		res.Unmasked = value
		res.Obfuscated = value
		res.Valid = true
		return res
	}

	var masked, unmasked, obfuscated strings.Builder
	input := []rune(value)
	maskIdx, valueIdx := 0, 0

	for maskIdx < len(m) {
		tok := m[maskIdx]

		if valueIdx == len(input) {
			if tok.Kind == KindLiteral && autoComplete {
				masked.WriteRune(tok.Lit)
				obfuscated.WriteRune(tok.Lit)
				maskIdx++
				continue
			}
			break
		}

		ch := input[valueIdx]

		switch tok.Kind {
		case KindLiteral:
			if tok.Lit == ch {
				masked.WriteRune(ch)
				obfuscated.WriteRune(ch)
				maskIdx++
				valueIdx++
			} else {
				// Separator the user did not type: insert it.
				masked.WriteRune(tok.Lit)
				obfuscated.WriteRune(tok.Lit)
				maskIdx++
			}

		default:
			valueIdx++
			if !tok.Class.MatchString(string(ch)) {
				// Input character rejected by the class; retry the same
				// token against the next input character.
				continue
			}
			masked.WriteRune(ch)
			unmasked.WriteRune(ch)
			if tok.Kind == KindObfuscated {
				obfuscated.WriteRune(obfuscationChar)
			} else {
				obfuscated.WriteRune(ch)
			}
			maskIdx++
		}
	}

	res.Masked = masked.String()
	res.Unmasked = unmasked.String()
	res.Obfuscated = obfuscated.String()

	if validate != nil {
		res.Valid = validate(res.Unmasked)
	} else {
		res.Valid = maskIdx == len(m)
	}

	return res
}

// Placeholder renders the shape of a mask: literals kept, pattern positions
// shown as blanks.
func Placeholder(m Mask) string {
	var b strings.Builder
	for _, tok := range m {
		if tok.Kind == KindLiteral {
			b.WriteRune(tok.Lit)
		} else {
			b.WriteRune(placeholderBlank)
		}
	}
	return b.String()
}

func hasObfuscation(m Mask) bool {
	for _, tok := range m {
		if tok.Kind == KindObfuscated {
			return true
		}
	}
	return false
}

// ParseTemplate compiles a mask template string into a Mask. Template
// markers follow the masked-input convention: '9' a digit, 'A' a letter,
// 'S' an alphanumeric, '*' an obfuscated alphanumeric. A backslash escapes
// the next rune; every other rune is a literal.
func ParseTemplate(tmpl string) Mask {
	runes := []rune(tmpl)
	m := make(Mask, 0, len(runes))

	escaped := false
	for _, r := range runes {
		if escaped {
			m = append(m, Literal(r))
			escaped = false
			continue
		}
		switch r {
		case '\\':
			escaped = true
		case '9':
			m = append(m, Pattern(ClassDigit))
		case 'A':
			m = append(m, Pattern(ClassLetter))
		case 'S':
			m = append(m, Pattern(ClassAlphaNum))
		case '*':
			m = append(m, Obfuscated(ClassAlphaNum))
		default:
			m = append(m, Literal(r))
		}
	}
	return m
}
