package util

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationMessages maps "<json field>.<tag>" (or just "<json field>") to
// the message returned to the client.
type ValidationMessages map[string]string

// ValidateStruct runs the struct's `validate` tags and converts failures into
// a *FormError whose Message joins every field message in declaration order.
func ValidateStruct(s any, messages ValidationMessages) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	ordered := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := messageFor(fe, messages)
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = msg
		}
		ordered = append(ordered, msg)
	}
	return NewFormError("Validação falhou: "+strings.Join(ordered, ", "), fields)
}

func messageFor(fe validator.FieldError, messages ValidationMessages) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	if msg, ok := messages[fe.Field()]; ok {
		return msg
	}
	return fmt.Sprintf("%s inválido (%s)", fe.Field(), fe.Tag())
}
