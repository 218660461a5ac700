// Package form holds the editable state of a record before it is submitted.
// This is part of the Functional Core - no I/O, only pure functions.
//
// A form is a pointer to a struct whose exported fields carry a json tag
// (the wire name), an optional validate tag (go-playground/validator rules)
// and an optional form tag describing how the field is edited:
//
//	form:"date"            YYYY-MM-DD, sent as null when empty
//	form:"ref=obras"       foreign key resolved against a lookup, sent as null when empty
//	form:"upload=image"    URL filled by the upload widget
package form

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Form is implemented by every per-entity form.
type Form interface {
	// Title names the entity in messages ("Equipamento").
	Title() string
}

// Kind describes how a field is edited and encoded.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindBool
	KindSelect
	KindDate
	KindRef
	KindUpload
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindSelect:
		return "select"
	case KindDate:
		return "date"
	case KindRef:
		return "ref"
	case KindUpload:
		return "upload"
	default:
		return "text"
	}
}

// Field describes one editable field of a form.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
	Options  []string // KindSelect
	Ref      string   // KindRef: lookup resource path
	Upload   string   // KindUpload: upload kind
	index    int
}

// Fields describes the editable fields of f in declaration order.
func Fields(f Form) []Field {
	return describe(structValue(f).Type())
}

// FieldByName returns the field with wire name name.
func FieldByName(f Form, name string) (Field, bool) {
	for _, fld := range Fields(f) {
		if fld.Name == name {
			return fld, true
		}
	}
	return Field{}, false
}

// Get returns the current value of field name as text.
func Get(f Form, name string) (string, error) {
	fld, ok := FieldByName(f, name)
	if !ok {
		return "", fmt.Errorf("%s has no field %q", f.Title(), name)
	}
	v := structValue(f).Field(fld.index)
	switch v.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), nil
	default:
		return v.String(), nil
	}
}

// Set parses value into field name. Dates are truncated to YYYY-MM-DD and
// numbers accept a decimal comma.
func Set(f Form, name, value string) error {
	fld, ok := FieldByName(f, name)
	if !ok {
		return fmt.Errorf("%s has no field %q", f.Title(), name)
	}
	v := structValue(f).Field(fld.index)

	switch v.Kind() {
	case reflect.Bool:
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		v.SetBool(b)
	case reflect.Float64:
		n, err := strconv.ParseFloat(strings.Replace(strings.TrimSpace(value), ",", ".", 1), 64)
		if err != nil {
			return fmt.Errorf("%s: número inválido %q", name, value)
		}
		v.SetFloat(n)
	default:
		value = strings.TrimSpace(value)
		if fld.Kind == KindDate {
			value = DateOnly(value)
		}
		v.SetString(value)
	}
	return nil
}

// Payload returns the JSON body for f. Empty foreign keys are encoded as
// null; every other field, empty dates included, is sent as is.
func Payload(f Form) map[string]any {
	rv := structValue(f)
	out := make(map[string]any)
	for _, fld := range describe(rv.Type()) {
		v := rv.Field(fld.index)
		if fld.Kind == KindRef && v.String() == "" {
			out[fld.Name] = nil
			continue
		}
		out[fld.Name] = v.Interface()
	}
	return out
}

// DateOnly truncates an ISO timestamp ("2024-03-01T00:00:00") to its date part.
func DateOnly(s string) string {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sim", "s", "yes", "y":
		return true, nil
	case "não", "nao", "n", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("valor lógico inválido %q", s)
	}
	return b, nil
}

func structValue(f Form) reflect.Value {
	rv := reflect.ValueOf(f)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("form: %T is not a pointer to struct", f))
	}
	return rv.Elem()
}

func describe(t reflect.Type) []Field {
	fields := make([]Field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name := jsonName(sf)
		if !sf.IsExported() || name == "" {
			continue
		}

		fld := Field{Name: name, index: i}
		switch sf.Type.Kind() {
		case reflect.Bool:
			fld.Kind = KindBool
		case reflect.Float64:
			fld.Kind = KindNumber
		default:
			fld.Kind = KindText
		}

		rules := strings.Split(sf.Tag.Get("validate"), ",")
		for _, rule := range rules {
			switch {
			case rule == "required":
				fld.Required = true
			case strings.HasPrefix(rule, "oneof="):
				fld.Kind = KindSelect
				fld.Options = strings.Fields(strings.TrimPrefix(rule, "oneof="))
			}
		}

		tag := sf.Tag.Get("form")
		switch {
		case tag == "date":
			fld.Kind = KindDate
		case strings.HasPrefix(tag, "ref="):
			fld.Kind = KindRef
			fld.Ref = strings.TrimPrefix(tag, "ref=")
		case strings.HasPrefix(tag, "upload="):
			fld.Kind = KindUpload
			fld.Upload = strings.TrimPrefix(tag, "upload=")
		}
		fields = append(fields, fld)
	}
	return fields
}

func jsonName(sf reflect.StructField) string {
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}
