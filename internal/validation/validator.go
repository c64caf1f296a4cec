// Package validation wraps go-playground/validator with the client's
// custom rules. Every user-supplied value is validated here before any
// network call is made.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/bankledger/internal/models"
)

type Validator struct {
	validate *validator.Validate
}

// New creates a validator instance with the custom rules registered.
func New() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("category", validateCategory)

	// report fields by their json name, matching what the user typed
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates s and returns a single human-readable error for the
// first failing field, or nil.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("field %q failed validation (%s)", fe.Field(), fe.Tag())
	}
	return err
}

// validateCategory accepts only members of the closed category set.
func validateCategory(fl validator.FieldLevel) bool {
	return models.Category(fl.Field().String()).Valid()
}
