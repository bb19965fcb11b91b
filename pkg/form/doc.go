// Package form models an HTML form as a server-side document and drives its
// validation feedback.
//
// A Form holds Fields, an optional StatusMessage and the SubmitControl. Each
// Field stands for one input plus its field group, which owns at most one
// ErrorNode. Renderers read the document (usually through Snapshot) and turn
// it into markup; nothing here produces HTML.
//
// Checker is the field controller: ValidateField clears the previous
// decoration, validates the trimmed value with a validator.Config and, on
// failure, sets the invalid marker and an alert-role error node.
// ValidateForm runs it over every field without short-circuiting.
//
// Controller wires interaction events for one form. Input stores the value
// and schedules a trailing-edge debounced validation per field; Blur
// validates immediately; Focus clears decoration without validating. Every
// mutation is reported as a Change to the configured ChangeFunc.
//
// Schema is the markup contract: which forms opt into validation, their
// fields and their types. It is read from YAML; DefaultSchema returns the
// embedded contact form.
package form
