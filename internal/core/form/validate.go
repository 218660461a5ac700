package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/example/armazem/internal/core/apperr"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(sf reflect.StructField) string {
			return jsonName(sf)
		})
	})
	return validate
}

// Validate checks f against its validate tags. It returns an
// *apperr.ValidationError listing every problem, or nil.
func Validate(f Form) error {
	err := validatorInstance().Struct(f)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate %s: %w", f.Title(), err)
	}

	t := structValue(f).Type()
	verr := apperr.NewValidationError()
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), message(t, fe))
	}
	return verr
}

func message(t reflect.Type, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "campo obrigatório"
	case "email":
		return "email inválido"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("mínimo %s caracteres", fe.Param())
		}
		return fmt.Sprintf("deve ser pelo menos %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("valor inválido (opções: %s)", strings.Join(strings.Fields(fe.Param()), ", "))
	case "datetime":
		return "data inválida, use AAAA-MM-DD"
	case "gt":
		return fmt.Sprintf("deve ser maior que %s", fe.Param())
	case "gte":
		return fmt.Sprintf("deve ser maior ou igual a %s", fe.Param())
	case "gtefield":
		other := fe.Param()
		if sf, ok := t.FieldByName(other); ok {
			other = jsonName(sf)
		}
		return fmt.Sprintf("não pode ser inferior a %s", other)
	}
	return "valor inválido"
}
