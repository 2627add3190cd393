package mask

import "regexp"

// TokenKind discriminates the three mask token variants.
type TokenKind int

const (
	// KindLiteral is a fixed character the mask inserts or expects verbatim.
	KindLiteral TokenKind = iota
	// KindPattern is a character-class slot filled from the input value.
	KindPattern
	// KindObfuscated is a pattern slot whose matched character is replaced
	// by the obfuscation character in the obfuscated view.
	KindObfuscated
)

// Token is one atomic unit of a mask. Literal tokens carry Lit; pattern
// tokens carry Class.
type Token struct {
	Kind  TokenKind
	Lit   rune
	Class *regexp.Regexp
}

// Mask is an ordered token sequence.
type Mask []Token

// Literal returns a literal token for r.
func Literal(r rune) Token {
	return Token{Kind: KindLiteral, Lit: r}
}

// Pattern returns a character-class token.
func Pattern(class *regexp.Regexp) Token {
	return Token{Kind: KindPattern, Class: class}
}

// Obfuscated returns a character-class token rendered as the obfuscation
// character in the obfuscated view.
func Obfuscated(class *regexp.Regexp) Token {
	return Token{Kind: KindObfuscated, Class: class}
}

// Result contains every view produced by a single match pass.
type Result struct {
	Masked         string `json:"masked"`
	Unmasked       string `json:"unmasked"`
	Obfuscated     string `json:"obfuscated"`
	Mask           Mask   `json:"-"`
	HasObfuscation bool   `json:"hasObfuscation"`
	Placeholder    string `json:"placeholder"`
	Valid          bool   `json:"valid"`
}

// Shared character classes used by the mask compilers.
var (
	ClassDigit    = regexp.MustCompile(`[0-9]`)
	ClassLetter   = regexp.MustCompile(`[a-zA-Z]`)
	ClassAlphaNum = regexp.MustCompile(`[a-zA-Z0-9]`)
)

// placeholderBlank marks a pattern position in a placeholder string.
const placeholderBlank = '_'

// DefaultObfuscationChar is used when a caller does not pick one.
const DefaultObfuscationChar = '*'
