package currency

import "golang.org/x/text/language"

// localePresets maps supported locales to ready-made formatting options.
// Order matters: the first entry is the matcher's fallback.
var localePresets = []struct {
	tag     language.Tag
	options Options
}{
	{language.AmericanEnglish, Options{Symbol: "$", DecimalDigits: 2, ThousandSeparator: ",", DecimalSeparator: ".", Format: "%s%v"}},
	{language.BritishEnglish, Options{Symbol: "£", DecimalDigits: 2, ThousandSeparator: ",", DecimalSeparator: ".", Format: "%s%v"}},
	{language.French, Options{Symbol: "€", DecimalDigits: 2, ThousandSeparator: " ", DecimalSeparator: ",", Format: "%v %s"}},
	{language.German, Options{Symbol: "€", DecimalDigits: 2, ThousandSeparator: ".", DecimalSeparator: ",", Format: "%v %s"}},
	{language.BrazilianPortuguese, Options{Symbol: "R$", DecimalDigits: 2, ThousandSeparator: ".", DecimalSeparator: ",", Format: "%s %v"}},
	{language.Spanish, Options{Symbol: "€", DecimalDigits: 2, ThousandSeparator: ".", DecimalSeparator: ",", Format: "%v %s"}},
	{language.Italian, Options{Symbol: "€", DecimalDigits: 2, ThousandSeparator: ".", DecimalSeparator: ",", Format: "%v %s"}},
	{language.Japanese, Options{Symbol: "¥", DecimalDigits: 0, ThousandSeparator: ",", DecimalSeparator: ".", Format: "%s%v"}},
	{language.Hindi, Options{Symbol: "₹", DecimalDigits: 2, ThousandSeparator: ",", DecimalSeparator: ".", Format: "%s%v"}},
}

var localeMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(localePresets))
	for i, p := range localePresets {
		tags[i] = p.tag
	}
	return language.NewMatcher(tags)
}()

// LocaleOptions resolves a BCP-47 tag ("fr", "pt-BR", "en-US") to the
// closest preset. ok is false when the tag does not parse; an unknown but
// well-formed tag matches the fallback preset.
func LocaleOptions(tag string) (Options, bool) {
	parsed, err := language.Parse(tag)
	if err != nil {
		return Options{}, false
	}

	_, index, _ := localeMatcher.Match(parsed)
	return localePresets[index].options, true
}
