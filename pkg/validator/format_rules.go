package validator

// Email matches value against the configured email pattern
// (local@domain.tld with a letters-only TLD of two or more characters).
func (c Config) Email(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return c.EmailPattern.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Kind:    KindEmail,
			Message: c.Messages.Email,
		},
	}
}

// Phone matches value against the configured phone pattern: an optional
// leading plus, then at least ten digits, spaces, dashes or parentheses.
func (c Config) Phone(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return c.PhonePattern.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Kind:    KindPhone,
			Message: c.Messages.Phone,
		},
	}
}
