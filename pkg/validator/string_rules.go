package validator

import (
	"strings"
	"unicode/utf8"
)

// Required fails when value is empty after trimming whitespace.
// strings.TrimSpace follows Unicode White_Space, so unlike a browser's
// String.prototype.trim it keeps U+FEFF.
func (c Config) Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Kind:    KindRequired,
			Message: c.Messages.Required,
		},
	}
}

// MinLen fails when value has fewer than min characters.
// Characters are runes: a character outside the BMP counts once here but
// twice in a browser's String.length.
func (c Config) MinLen(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) >= min
		},
		Error: ValidationError{
			Field:   field,
			Kind:    KindMinLength,
			Message: c.Messages.MinLength(min),
			Bound:   min,
		},
	}
}

// MaxLen fails when value has more than max characters.
func (c Config) MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return utf8.RuneCountInString(value) <= max
		},
		Error: ValidationError{
			Field:   field,
			Kind:    KindMaxLength,
			Message: c.Messages.MaxLength(max),
			Bound:   max,
		},
	}
}
