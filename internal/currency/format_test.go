package currency

import (
	"math"
	"strings"
	"testing"
)

func TestUnformat(t *testing.T) {
	t.Run("Strings", func(t *testing.T) {
		cases := []struct {
			in   string
			want float64
		}{
			{"$1,234.56", 1234.56},
			{"1,234.56 €", 1234.56},
			{"-$42.00", -42},
			{"", 0},
			{"garbage", 0},
		}
		for _, c := range cases {
			if got := Unformat(c.in, ""); got != c.want {
				t.Errorf("Unformat(%q) = %v, want %v", c.in, got, c.want)
			}
		}
	})

	t.Run("ParenthesizedNegative", func(t *testing.T) {
		if got := Unformat("(1,234.56)", ""); got != -1234.56 {
			t.Errorf("Unformat((1,234.56)) = %v, want -1234.56", got)
		}
		// The rule is deliberately narrow: a symbol between the parenthesis
		// and the first digit defeats it.
		if got := Unformat("($1,234.56)", ""); got != 1234.56 {
			t.Errorf("Unformat(($1,234.56)) = %v, want 1234.56", got)
		}
	})

	t.Run("CustomDecimalSeparator", func(t *testing.T) {
		if got := Unformat("R$ 1.234,56", ","); got != 1234.56 {
			t.Errorf("Unformat(R$ 1.234,56) = %v, want 1234.56", got)
		}
	})

	t.Run("Passthrough", func(t *testing.T) {
		if got := Unformat(1234.56, ""); got != 1234.56 {
			t.Errorf("Unformat(1234.56) = %v, want passthrough", got)
		}
		if got := Unformat(42, ""); got != 42 {
			t.Errorf("Unformat(42) = %v, want passthrough", got)
		}
		if got := Unformat(nil, ""); got != 0 {
			t.Errorf("Unformat(nil) = %v, want 0", got)
		}
	})
}

func TestFormatNumber(t *testing.T) {
	old := SessionDefaults()
	defer Configure(old)

	t.Run("ExplicitDigits", func(t *testing.T) {
		if got := FormatNumber(1234.5678, WithDecimalDigits(2)); got != "1,234.57" {
			t.Errorf("FormatNumber = %q, want %q", got, "1,234.57")
		}
	})

	t.Run("DigitsFromInput", func(t *testing.T) {
		if got := FormatNumber(1234.5678); got != "1,234.5678" {
			t.Errorf("FormatNumber = %q, want fraction width kept: %q", got, "1,234.5678")
		}
		if got := FormatNumber("9876.5"); got != "9,876.5" {
			t.Errorf("FormatNumber = %q, want %q", got, "9,876.5")
		}
	})

	t.Run("SessionDefaultDigits", func(t *testing.T) {
		if got := FormatNumber(1234); got != "1,234.00" {
			t.Errorf("FormatNumber = %q, want %q", got, "1,234.00")
		}
	})

	t.Run("Negative", func(t *testing.T) {
		if got := FormatNumber(-1234.5, WithDecimalDigits(2)); got != "-1,234.50" {
			t.Errorf("FormatNumber = %q, want %q", got, "-1,234.50")
		}
	})

	t.Run("CustomSeparators", func(t *testing.T) {
		got := FormatNumber(1234567.891, WithDecimalDigits(2), WithThousandSeparator("."), WithDecimalSeparator(","))
		if got != "1.234.567,89" {
			t.Errorf("FormatNumber = %q, want %q", got, "1.234.567,89")
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		for _, x := range []float64{0, 1, 1.5, 12.34, 1234.5678, -987.001} {
			formatted := FormatNumber(x)
			back := Unformat(formatted, "")
			if math.Abs(back-x) > 1e-9 {
				t.Errorf("round trip %v -> %q -> %v", x, formatted, back)
			}
		}
	})
}

func TestFormatMoney(t *testing.T) {
	old := SessionDefaults()
	defer Configure(old)

	Configure(Options{
		Symbol:            "$",
		DecimalDigits:     2,
		ThousandSeparator: ",",
		DecimalSeparator:  ".",
		Format:            "%v %s",
	})

	t.Run("Positive", func(t *testing.T) {
		if got := FormatMoney(1234.56); got != "1,234.56 $" {
			t.Errorf("FormatMoney = %q, want %q", got, "1,234.56 $")
		}
	})

	t.Run("NegativeTemplate", func(t *testing.T) {
		obj := FormatMoneyAsObject(-1234.56)
		if !strings.HasPrefix(obj.UsedFormat, "-%v") {
			t.Errorf("UsedFormat = %q, want a -%%v prefix", obj.UsedFormat)
		}
		if obj.Result != "-1,234.56 $" {
			t.Errorf("Result = %q, want %q", obj.Result, "-1,234.56 $")
		}
		if obj.Value != -1234.56 {
			t.Errorf("Value = %v, want -1234.56", obj.Value)
		}
	})

	t.Run("ZeroUsesPositiveTemplate", func(t *testing.T) {
		obj := FormatMoneyAsObject(0)
		if obj.UsedFormat != "%v %s" {
			t.Errorf("UsedFormat = %q, want %q", obj.UsedFormat, "%v %s")
		}
		if obj.Result != "0.00 $" {
			t.Errorf("Result = %q, want %q", obj.Result, "0.00 $")
		}
	})

	t.Run("SymbolOverride", func(t *testing.T) {
		if got := FormatMoney(5, WithSymbol("€"), WithFormat("%s%v")); got != "€5.00" {
			t.Errorf("FormatMoney = %q, want %q", got, "€5.00")
		}
	})

	t.Run("EmptySymbol", func(t *testing.T) {
		if got := FormatMoney(5, WithSymbol("")); got != "5.00" {
			t.Errorf("FormatMoney = %q, want %q", got, "5.00")
		}
	})

	t.Run("FormatWithoutPlaceholderFallsBack", func(t *testing.T) {
		obj := FormatMoneyAsObject(1, WithFormat("just text"))
		if !strings.Contains(obj.UsedFormat, "%v") {
			t.Errorf("UsedFormat = %q, want a fallback containing %%v", obj.UsedFormat)
		}
	})

	t.Run("StringInput", func(t *testing.T) {
		if got := FormatMoney("$1,234.56"); got != "1,234.56 $" {
			t.Errorf("FormatMoney = %q, want %q", got, "1,234.56 $")
		}
	})

	t.Run("LocalePreset", func(t *testing.T) {
		preset, _ := LocaleOptions("pt-BR")
		if got := FormatMoney(1234.56, WithOptions(preset)); got != "R$ 1.234,56" {
			t.Errorf("FormatMoney = %q, want %q", got, "R$ 1.234,56")
		}
	})
}
