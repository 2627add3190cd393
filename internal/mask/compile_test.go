package mask

import "testing"

func TestNumberMask(t *testing.T) {
	t.Run("GroupingOnly", func(t *testing.T) {
		gen := NumberMask(NumberOptions{})

		result := Match("1234567", gen("1234567"), '*', true, nil)
		if result.Masked != "1,234,567" {
			t.Errorf("Masked = %q, want %q", result.Masked, "1,234,567")
		}
		if !result.Valid {
			t.Error("Complete numeric input should be valid")
		}
	})

	t.Run("PrecisionAndPrefix", func(t *testing.T) {
		gen := NumberMask(NumberOptions{
			Precision: 2,
			Delimiter: ".",
			Separator: ",",
			Prefix:    "R$ ",
		})

		result := Match("123456", gen("123456"), '*', true, nil)
		if result.Masked != "R$ 1.234,56" {
			t.Errorf("Masked = %q, want %q", result.Masked, "R$ 1.234,56")
		}
		if result.Unmasked != "123456" {
			t.Errorf("Unmasked = %q, want %q", result.Unmasked, "123456")
		}
	})

	t.Run("FewerDigitsThanPrecision", func(t *testing.T) {
		gen := NumberMask(NumberOptions{Precision: 2})

		// Too few digits for a decimal part: no separator yet.
		result := Match("5", gen("5"), '*', true, nil)
		if result.Masked != "5" {
			t.Errorf("Masked = %q, want %q", result.Masked, "5")
		}
	})

	t.Run("StripsNonDigits", func(t *testing.T) {
		gen := NumberMask(NumberOptions{})

		m := gen("12a34")
		result := Match("12a34", m, '*', true, nil)
		if result.Masked != "1,234" {
			t.Errorf("Masked = %q, want %q", result.Masked, "1,234")
		}
	})

	t.Run("Suffix", func(t *testing.T) {
		gen := NumberMask(NumberOptions{Suffix: " kg"})

		result := Match("250", gen("250"), '*', true, nil)
		if result.Masked != "250 kg" {
			t.Errorf("Masked = %q, want %q", result.Masked, "250 kg")
		}
	})
}

func TestDateMask(t *testing.T) {
	gen := DateMask('/')

	t.Run("Shape", func(t *testing.T) {
		m := gen("")
		if len(m) != 10 {
			t.Fatalf("len = %d, want 10", len(m))
		}
		if Placeholder(m) != "__/__/____" {
			t.Errorf("Placeholder = %q, want %q", Placeholder(m), "__/__/____")
		}
	})

	t.Run("DayStartingWithThree", func(t *testing.T) {
		m := gen("3")
		if !m[1].Class.MatchString("1") || m[1].Class.MatchString("2") {
			t.Error("After a leading 3 the second day digit must be 0 or 1")
		}
	})

	t.Run("DayStartingWithZero", func(t *testing.T) {
		m := gen("0")
		if m[1].Class.MatchString("0") || !m[1].Class.MatchString("9") {
			t.Error("After a leading 0 the second day digit must be 1-9")
		}
	})

	t.Run("MonthStartingWithOne", func(t *testing.T) {
		m := gen("311")
		if !m[4].Class.MatchString("2") || m[4].Class.MatchString("3") {
			t.Error("After a leading month 1 the second month digit must be 0-2")
		}
	})

	t.Run("FullDate", func(t *testing.T) {
		value := "31012024"
		result := Match(value, gen(value), '*', false, nil)
		if result.Masked != "31/01/2024" {
			t.Errorf("Masked = %q, want %q", result.Masked, "31/01/2024")
		}
		if !result.Valid {
			t.Error("Complete date should be valid")
		}
	})

	t.Run("RejectsDayThirtyTwo", func(t *testing.T) {
		result := Match("32", gen("32"), '*', false, nil)
		// The 2 is consumed but rejected by the narrowed class.
		if result.Masked != "3" {
			t.Errorf("Masked = %q, want %q", result.Masked, "3")
		}
	})
}

func TestPhoneMask(t *testing.T) {
	t.Run("CountryCode", func(t *testing.T) {
		tmpl := PhoneMask("us")
		if tmpl.Placeholder != "(___) ___-____" {
			t.Errorf("Placeholder = %q, want %q", tmpl.Placeholder, "(___) ___-____")
		}

		result := Match("2124567890", tmpl.Mask, '*', true, tmpl.Validate)
		if result.Masked != "(212) 456-7890" {
			t.Errorf("Masked = %q, want %q", result.Masked, "(212) 456-7890")
		}
		if !result.Valid {
			t.Error("Complete phone number should be valid")
		}
	})

	t.Run("CountryCodeCaseInsensitive", func(t *testing.T) {
		tmpl := PhoneMask(" BR ")
		if tmpl.Placeholder != "(__) _____-____" {
			t.Errorf("Placeholder = %q, want %q", tmpl.Placeholder, "(__) _____-____")
		}
	})

	t.Run("ExampleNumber", func(t *testing.T) {
		tmpl := PhoneMask("01 23 45 67 89")
		if tmpl.Placeholder != "__ __ __ __ __" {
			t.Errorf("Placeholder = %q, want %q", tmpl.Placeholder, "__ __ __ __ __")
		}
	})

	t.Run("IncompleteNumberInvalid", func(t *testing.T) {
		tmpl := PhoneMask("us")
		result := Match("212456", tmpl.Mask, '*', true, tmpl.Validate)
		if result.Valid {
			t.Error("Incomplete phone number should not validate")
		}
	})

	t.Run("UnknownFallsBack", func(t *testing.T) {
		tmpl := PhoneMask("nowhere")
		if tmpl.Placeholder != "(___) ___-____" {
			t.Errorf("Placeholder = %q, want the default country placeholder", tmpl.Placeholder)
		}
	})
}
