package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/ajitpratap0/titleclean/pkg/connector/core"
	"github.com/ajitpratap0/titleclean/pkg/errors"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their YAML key
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		c := sl.Current().Interface().(core.Config)
		if c.Path == "" {
			return
		}
		if _, _, err := c.Resolve(); err != nil {
			sl.ReportError(c.Path, "path", "Path", "tablefile", "")
		}
	}, core.Config{})

	return v
}

// Validate checks cfg and reports every problem found in one error of
// type ErrorTypeValidation.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(err, errors.ErrorTypeInternal, "failed to validate configuration")
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, formatValidationError(fe))
	}
	return errors.New(errors.ErrorTypeValidation, "invalid configuration: "+strings.Join(messages, "; ")).
		WithDetail("fields", len(messages))
}

func formatValidationError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "tablefile":
		return fmt.Sprintf("%s %q is not a supported table file", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
