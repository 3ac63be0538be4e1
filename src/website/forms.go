package website

import (
	"errors"
	"fmt"
	"strings"

	"git.teamcore.network/tcn/tcn/src/tcndata"
	"github.com/go-playground/validator/v10"
)

var formValidator = validator.New()

/*
Validates a form struct via its `validate` tags and folds the first failure
into the same error shape the store produces, so handlers have one path for
reporting bad input.
*/
func validateForm(form any) error {
	err := formValidator.Struct(form)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) && len(invalid) > 0 {
		fieldErr := invalid[0]
		return tcndata.ValidationError{
			Field:  strings.ToLower(fieldErr.Field()),
			Reason: reasonForTag(fieldErr),
		}
	}
	return err
}

func reasonForTag(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "must not be empty"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fieldErr.Param())
	default:
		return "is invalid"
	}
}

/*
Turns store and validation errors into a user-facing notice message. Returns
"" for errors that are not the user's fault; the handler should report those
as internal errors instead.
*/
func formErrorMessage(err error) string {
	var dup tcndata.DuplicateError
	if errors.As(err, &dup) {
		return fmt.Sprintf("That %s is already in use.", dup.Field)
	}
	var invalid tcndata.ValidationError
	if errors.As(err, &invalid) {
		return fmt.Sprintf("The %s %s.", invalid.Field, invalid.Reason)
	}
	var state tcndata.InvalidStateError
	if errors.As(err, &state) {
		return state.Reason
	}
	return ""
}
