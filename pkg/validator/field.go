package validator

import (
	"strings"

	"golang.org/x/text/cases"
)

// FieldType is the input type a field declares in markup.
type FieldType string

const (
	TypeEmail    FieldType = "email"
	TypeTel      FieldType = "tel"
	TypeText     FieldType = "text"
	TypeTextarea FieldType = "textarea"
	TypeSelect   FieldType = "select"
)

// FieldMeta is the part of a field the rules look at besides its value.
type FieldMeta struct {
	Name     string
	Type     FieldType
	Required bool
}

// Result is the outcome of validating one field value.
type Result struct {
	Valid   bool
	Kind    Kind
	Message string
	Bound   int
}

func passed() Result {
	return Result{Valid: true}
}

func failed(err ValidationError) Result {
	return Result{Kind: err.Kind, Message: err.Message, Bound: err.Bound}
}

// Validate checks an already trimmed value against the rules for meta.
//
// The required check runs first and short-circuits everything else. An empty
// optional value is valid without consulting any type rule. Types without
// rules (select, checkbox, ...) are always valid.
func (c Config) Validate(meta FieldMeta, value string) Result {
	if meta.Required {
		if err, ok := First(c.Required(meta.Name, value)); !ok {
			return failed(err)
		}
	}

	if value == "" {
		return passed()
	}

	if err, ok := First(c.rulesFor(meta, value)...); !ok {
		return failed(err)
	}
	return passed()
}

func (c Config) rulesFor(meta FieldMeta, value string) []Rule {
	switch meta.Type {
	case TypeEmail:
		return []Rule{c.Email(meta.Name, value)}
	case TypeTel:
		return []Rule{c.Phone(meta.Name, value)}
	case TypeText:
		return c.textRules(meta.Name, value)
	case TypeTextarea:
		return []Rule{
			c.MinLen(meta.Name, value, c.MinMessageLength),
			c.MaxLen(meta.Name, value, c.MaxMessageLength),
		}
	default:
		return nil
	}
}

// textRules picks length rules from the field name. A text field whose name
// mentions neither "name" nor "subject" accepts any content.
func (c Config) textRules(name, value string) []Rule {
	folded := cases.Fold().String(name)

	var rules []Rule
	if strings.Contains(folded, "name") {
		rules = append(rules, c.MinLen(name, value, c.MinNameLength))
	}
	if strings.Contains(folded, "subject") {
		rules = append(rules, c.MinLen(name, value, c.MinSubjectLength))
	}
	return rules
}
