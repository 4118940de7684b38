// Package validate checks decoded request bodies against their `validate`
// struct tags and reports failures as a domain.ValidationError keyed by the
// JSON field name.
package validate

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/pkordes/roadmap-planner/internal/domain"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Struct validates s. It returns nil, a *domain.ValidationError listing every
// failing field, or the underlying error when s cannot be validated at all.
func Struct(s any) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	out := &domain.ValidationError{Fields: make([]domain.FieldError, 0, len(ve))}
	for _, fe := range ve {
		out.Fields = append(out.Fields, domain.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required"
	case "min":
		return field + " must have at least " + fe.Param() + " character(s)"
	case "max":
		return field + " must have at most " + fe.Param() + " character(s)"
	case "oneof":
		return field + " must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return field + " must be a date in YYYY-MM-DD format"
	case "gte":
		return field + " must be at least " + fe.Param()
	case "lte":
		return field + " must be at most " + fe.Param()
	case "hexcolor":
		return field + " must be a hex color such as #3b82f6"
	default:
		return field + " failed on " + fe.Tag()
	}
}

func get() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic("validate: register notblank: " + err.Error())
		}
	})
	return validate
}
