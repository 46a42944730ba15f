// Cinemoment - Moment-Based Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemoment

// Package validation wraps go-playground/validator v10 behind a thread-safe
// singleton with custom validators for the API's closed enums. Failures
// translate to faults.Validation errors so handlers return the stable
// VALIDATION_ERROR code.
package validation

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/cinemoment/internal/faults"
	"github.com/tomtom215/cinemoment/internal/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator returns the singleton, registering custom enum validators on
// first use.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		must := func(tag string, fn validator.Func) {
			if err := validate.RegisterValidation(tag, fn); err != nil {
				panic("validation: register " + tag + ": " + err.Error())
			}
		}

		must("domain", func(fl validator.FieldLevel) bool {
			return models.Domain(fl.Field().String()).Valid()
		})
		must("reaction", func(fl validator.FieldLevel) bool {
			return models.Reaction(fl.Field().String()).Valid()
		})
	})
	return validate
}

// ValidateStruct validates a request struct. Returns nil on success or a
// *faults.Error carrying VALIDATION_ERROR with field-level messages.
func ValidateStruct(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// InvalidValidationError means the argument was not a struct, which
		// is a programmer bug rather than bad input.
		return faults.Internal(err)
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		messages = append(messages, translate(fe))
	}
	return faults.Validation("%s", strings.Join(messages, "; "))
}

// translate renders one field error as a human-readable message.
func translate(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "domain":
		return field + " must be one of: movies, tv-series, documentaries"
	case "reaction":
		return field + " must be one of: love, like, neutral, dislike, hate"
	case "min":
		return field + " must be at least " + fe.Param()
	case "max":
		return field + " must be at most " + fe.Param()
	case "gte":
		return field + " must be >= " + fe.Param()
	case "lte":
		return field + " must be <= " + fe.Param()
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return field + " failed validation rule " + fe.Tag()
	}
}
