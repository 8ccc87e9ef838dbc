// Package validate holds the shared request/form validator.
package validate

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"
)

var (
	once       sync.Once
	validate   *validator.Validate
	translator ut.Translator

	requiredTag  = "required"
	requiredText = "{0} is required"
)

// FieldError is a single invalid field, keyed by its JSON path (e.g. "questions[0].options[1]").
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is returned by Struct when one or more fields fail validation.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Map returns field -> message, the shape handlers render.
func (e *Error) Map() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		out[f.Field] = f.Message
	}
	return out
}

// Has reports whether the given field path failed.
func (e *Error) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

func instance() (*validator.Validate, ut.Translator) {
	once.Do(func() {
		locale := en.New()
		uni := ut.New(locale, locale)
		translator, _ = uni.GetTranslator("en")

		validate = validator.New()
		_ = en_translations.RegisterDefaultTranslations(validate, translator)

		// JSON tag names in error paths instead of Go field names.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		registerTranslation(validate, translator, requiredTag, requiredText, true)
	})
	return validate, translator
}

func registerTranslation(v *validator.Validate, t ut.Translator, tag, text string, override bool) {
	_ = v.RegisterTranslation(
		tag, t,
		func(t ut.Translator) error { return t.Add(tag, text, override) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// RegisterTranslation adds a message for a custom tag; "{0}" is replaced by the field name.
func RegisterTranslation(tag, text string) {
	v, t := instance()
	registerTranslation(v, t, tag, text, true)
}

// RegisterValidation installs a field-level rule under tag with its message.
// Call it from init, before any Struct call: the validator caches a type the
// first time it sees it and later registrations do not reach cached types.
func RegisterValidation(tag string, fn validator.Func, text string) {
	v, t := instance()
	_ = v.RegisterValidation(tag, fn)
	registerTranslation(v, t, tag, text, true)
}

// RegisterStructValidation installs a struct-level rule for the given types.
// Like RegisterValidation it must run from init, before the types are validated.
func RegisterStructValidation(fn validator.StructLevelFunc, types ...interface{}) {
	v, _ := instance()
	v.RegisterStructValidation(fn, types...)
}

// Struct validates s. It returns nil, an *Error, or a plain error when s is not a struct.
func Struct(s interface{}) error {
	v, t := instance()
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return errors.Wrap(err, "validate")
	}
	out := &Error{Fields: make([]FieldError, 0, len(ve))}
	for _, fe := range ve {
		out.Fields = append(out.Fields, FieldError{
			Field:   fieldPath(fe.Namespace()),
			Message: fe.Translate(t),
		})
	}
	sort.SliceStable(out.Fields, func(i, j int) bool { return out.Fields[i].Field < out.Fields[j].Field })
	return out
}

// fieldPath strips the root type name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// Fail builds a single-field *Error, for checks that happen outside struct tags.
func Fail(field, format string, args ...interface{}) *Error {
	return &Error{Fields: []FieldError{{Field: field, Message: fmt.Sprintf(format, args...)}}}
}
