package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/grachmannico95/pix-relay/internal/domain"
)

// CustomValidator is the echo.Validator of the relay. Failures come back as
// *domain.ValidationError listing the offending JSON fields.
type CustomValidator struct {
	validate *validator.Validate
}

var customValidations = map[string]validator.Func{
	"document":    validateDocument,
	"pixkey_type": validatePixKeyType,
}

func NewValidator() (*CustomValidator, error) {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := registerValidations(v, customValidations); err != nil {
		return nil, err
	}

	return &CustomValidator{validate: v}, nil
}

// MustNewValidator is NewValidator for server wiring, where a bad tag is a
// programming error.
func MustNewValidator() *CustomValidator {
	cv, err := NewValidator()
	if err != nil {
		panic(err)
	}
	return cv
}

func registerValidations(v *validator.Validate, funcs map[string]validator.Func) error {
	for tag, fn := range funcs {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %q validation: %w", tag, err)
		}
	}
	return nil
}

func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.NewValidationError(err.Error())
	}

	var missing, invalid []string
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		if fe.Tag() == "required" {
			missing = append(missing, field)
		} else {
			invalid = append(invalid, field)
		}
	}

	if len(missing) > 0 {
		return domain.NewValidationError("missing required fields", append(missing, invalid...)...)
	}
	return domain.NewValidationError("invalid fields", invalid...)
}

// validateDocument accepts a CPF (11 digits) or CNPJ (14 digits) with any
// punctuation.
func validateDocument(fl validator.FieldLevel) bool {
	n := len(domain.OnlyDigits(fl.Field().String()))
	return n == 11 || n == 14
}

func validatePixKeyType(fl validator.FieldLevel) bool {
	_, ok := domain.ParsePixKeyType(fl.Field().String())
	return ok
}
