package form

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/contactform/pkg/validator"
)

//go:embed contact.yaml
var defaultSchema []byte

// Schema is the markup contract: the forms a page declares and the fields
// each one contains.
type Schema struct {
	Forms []FormSpec `yaml:"forms"`
}

type FormSpec struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	// Validate opts the form into live validation.
	Validate    bool        `yaml:"validate"`
	StatusSlot  bool        `yaml:"statusSlot"`
	SubmitLabel string      `yaml:"submitLabel"`
	Fields      []FieldSpec `yaml:"fields"`
}

type FieldSpec struct {
	Name        string   `yaml:"name"`
	Label       string   `yaml:"label"`
	Type        string   `yaml:"type"`
	Required    bool     `yaml:"required"`
	MaxLength   int      `yaml:"maxlength"`
	AutoResize  bool     `yaml:"autoResize"`
	Placeholder string   `yaml:"placeholder"`
	Default     string   `yaml:"default"`
	Options     []string `yaml:"options"`
	Rows        int      `yaml:"rows"`
}

// DefaultSchema returns the built-in contact form schema.
func DefaultSchema() Schema {
	s, err := ParseSchema(defaultSchema)
	if err != nil {
		panic(fmt.Sprintf("form: embedded schema: %v", err))
	}
	return s
}

// LoadSchemaFile reads a schema from path. An empty path yields DefaultSchema.
func LoadSchemaFile(path string) (Schema, error) {
	if path == "" {
		return DefaultSchema(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Schema{}, fmt.Errorf("open schema: %w", err)
	}
	defer f.Close()
	return LoadSchema(f)
}

func LoadSchema(r io.Reader) (Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Schema{}, fmt.Errorf("read schema: %w", err)
	}
	return ParseSchema(data)
}

func ParseSchema(data []byte) (Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Schema{}, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	if err := s.Check(); err != nil {
		return Schema{}, err
	}
	return s, nil
}

// Check verifies ids and field names are present and unique.
func (s Schema) Check() error {
	if len(s.Forms) == 0 {
		return fmt.Errorf("%w: no forms declared", ErrInvalidSchema)
	}
	seen := make(map[string]bool, len(s.Forms))
	for i, fs := range s.Forms {
		if fs.ID == "" {
			return fmt.Errorf("%w: form[%d] has no id", ErrInvalidSchema, i)
		}
		if seen[fs.ID] {
			return fmt.Errorf("%w: duplicate form id %q", ErrInvalidSchema, fs.ID)
		}
		seen[fs.ID] = true

		names := make(map[string]bool, len(fs.Fields))
		for j, f := range fs.Fields {
			if f.Name == "" {
				return fmt.Errorf("%w: form %q field[%d] has no name", ErrInvalidSchema, fs.ID, j)
			}
			if names[f.Name] {
				return fmt.Errorf("%w: form %q has duplicate field %q", ErrInvalidSchema, fs.ID, f.Name)
			}
			if f.MaxLength < 0 {
				return fmt.Errorf("%w: field %q has negative maxlength", ErrInvalidSchema, f.Name)
			}
			names[f.Name] = true
		}
	}
	return nil
}

// Find returns the spec of the form with the given id.
func (s Schema) Find(id string) (FormSpec, error) {
	for _, fs := range s.Forms {
		if fs.ID == id {
			return fs, nil
		}
	}
	return FormSpec{}, fmt.Errorf("%w: %q", ErrUnknownForm, id)
}

// Build creates a fresh document from the spec.
func (fs FormSpec) Build() *Form {
	label := fs.SubmitLabel
	if label == "" {
		label = "Submit"
	}

	f := &Form{
		ID:         fs.ID,
		Title:      fs.Title,
		Validate:   fs.Validate,
		StatusSlot: fs.StatusSlot,
		Submit:     SubmitControl{Label: label},
		Fields:     make([]*Field, 0, len(fs.Fields)),
	}
	for _, spec := range fs.Fields {
		typ := validator.FieldType(spec.Type)
		if typ == "" {
			typ = validator.TypeText
		}
		f.Fields = append(f.Fields, &Field{
			Name:        spec.Name,
			Label:       spec.Label,
			Type:        typ,
			Placeholder: spec.Placeholder,
			Options:     append([]string(nil), spec.Options...),
			Rows:        spec.Rows,
			Default:     spec.Default,
			Value:       spec.Default,
			Required:    spec.Required,
			MaxLength:   spec.MaxLength,
			AutoResize:  spec.AutoResize,
		})
	}
	return f
}
