package binder

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// catchAll is the tag value that collects every remaining value into a
// map[string]string field.
const catchAll = "*"

func structValue(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, ErrInvalidTarget
	}
	return rv.Elem(), nil
}

// bindToStruct copies values into the fields of rv carrying tagName.
// Untagged fields are left alone.
func bindToStruct(rv reflect.Value, tagName string, values map[string][]string, bindErr error) error {
	rt := rv.Type()
	for i := range rv.NumField() {
		field := rv.Field(i)
		sf := rt.Field(i)
		if !field.CanSet() {
			continue
		}
		name, _, _ := strings.Cut(sf.Tag.Get(tagName), ",")
		if name == "" || name == "-" {
			continue
		}

		if name == catchAll {
			if err := setCatchAll(field, values); err != nil {
				return fmt.Errorf("%w: field %s: %v", bindErr, sf.Name, err)
			}
			continue
		}

		vals := values[name]
		if len(vals) == 0 {
			continue
		}
		if err := setValue(field, vals[0]); err != nil {
			return fmt.Errorf("%w: field %s: %v", bindErr, sf.Name, err)
		}
	}
	return nil
}

func setCatchAll(field reflect.Value, values map[string][]string) error {
	if field.Type() != reflect.TypeOf(map[string]string(nil)) {
		return fmt.Errorf("catch-all field must be map[string]string, got %s", field.Type())
	}
	m := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			m[k] = v[0]
		}
	}
	field.Set(reflect.ValueOf(m))
	return nil
}

func setValue(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		field.SetInt(n)
	case reflect.Bool:
		switch strings.ToLower(value) {
		case "on", "yes", "1", "true":
			field.SetBool(true)
		case "off", "no", "0", "false", "":
			field.SetBool(false)
		default:
			return fmt.Errorf("invalid bool value %q", value)
		}
	default:
		return fmt.Errorf("unsupported type %s", field.Kind())
	}
	return nil
}
