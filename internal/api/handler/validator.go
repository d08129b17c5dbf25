package handler

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/authshell/authshell/internal/core/validation"
	"github.com/authshell/authshell/internal/pkg/metrics"
)

// Custom struct tags backed by the validation engine.
const (
	tagEmail          = "user_email"
	tagName           = "user_name"
	tagPassword       = "password"
	tagStrongPassword = "strong_password"
)

// FieldErrors maps a JSON field name to the message shown under that input.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, k+": "+fe[k])
	}
	return strings.Join(msgs, "; ")
}

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names so field errors line up with the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	mustRegister(v, tagEmail, func(fl validator.FieldLevel) bool {
		return validation.ValidateEmail(fl.Field().String()).Valid
	})
	mustRegister(v, tagName, func(fl validator.FieldLevel) bool {
		return validation.ValidateName(fl.Field().String()).Valid
	})
	mustRegister(v, tagPassword, func(fl validator.FieldLevel) bool {
		return validation.ValidatePassword(fl.Field().String(), false).Valid
	})
	mustRegister(v, tagStrongPassword, func(fl validator.FieldLevel) bool {
		return validation.ValidatePassword(fl.Field().String(), true).Valid
	})

	return &echoValidator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validator: register %s: %v", tag, err))
	}
}

// Validate satisfies the echo.Validator interface. Field failures come back
// as FieldErrors.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make(FieldErrors, len(ve))
			for _, fe := range ve {
				fields[fe.Field()] = fieldError(fe)
				metrics.ValidationFailuresTotal.WithLabelValues(fe.Field()).Inc()
			}
			return fields
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a human-readable message.
// Engine-backed tags re-run the engine to recover its exact reason.
func fieldError(fe validator.FieldError) string {
	value, _ := fe.Value().(string)
	switch fe.Tag() {
	case tagEmail:
		return validation.ValidateEmail(value).Message
	case tagName:
		return validation.ValidateName(value).Message
	case tagPassword:
		return validation.ValidatePassword(value, false).Message
	case tagStrongPassword:
		return validation.ValidatePassword(value, true).Message
	case "eqfield":
		return validation.MsgPasswordMismatch
	case "required":
		return fe.Field() + " is required"
	default:
		return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
	}
}
