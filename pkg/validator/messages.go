package validator

import "fmt"

// Kind identifies which check rejected a value.
type Kind string

const (
	KindRequired  Kind = "required"
	KindEmail     Kind = "email"
	KindPhone     Kind = "phone"
	KindMinLength Kind = "minLength"
	KindMaxLength Kind = "maxLength"
	// KindPattern is reserved for custom pattern rules; built-in rules never report it.
	KindPattern Kind = "pattern"
)

// Messages is the user-facing text table. The length formats take the bound
// as their only verb.
type Messages struct {
	Required        string
	Email           string
	Phone           string
	Pattern         string
	MinLengthFormat string
	MaxLengthFormat string

	// Form-level banners.
	Success string
	Invalid string
	Failure string
}

func DefaultMessages() Messages {
	return Messages{
		Required:        "This field is required",
		Email:           "Please enter a valid email address",
		Phone:           "Please enter a valid phone number",
		Pattern:         "Please enter a valid format",
		MinLengthFormat: "Must be at least %d characters long",
		MaxLengthFormat: "Must be no more than %d characters long",
		Success:         "Form submitted successfully!",
		Invalid:         "Please fix the errors below and try again",
		Failure:         "There was an error sending your message. Please try again.",
	}
}

func (m Messages) MinLength(min int) string {
	return fmt.Sprintf(m.MinLengthFormat, min)
}

func (m Messages) MaxLength(max int) string {
	return fmt.Sprintf(m.MaxLengthFormat, max)
}

// For returns the message for kind. bound is only used by the length kinds.
func (m Messages) For(kind Kind, bound int) string {
	switch kind {
	case KindRequired:
		return m.Required
	case KindEmail:
		return m.Email
	case KindPhone:
		return m.Phone
	case KindMinLength:
		return m.MinLength(bound)
	case KindMaxLength:
		return m.MaxLength(bound)
	default:
		return m.Pattern
	}
}
