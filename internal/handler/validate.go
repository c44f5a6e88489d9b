package handler

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/jobtracker/jobtracker/internal/service"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("nonul", noNUL); err != nil {
		panic(err)
	}
	return v
}

// noNUL rejects strings containing U+0000, which Postgres text cannot store.
func noNUL(fl validator.FieldLevel) bool {
	return !strings.ContainsRune(fl.Field().String(), 0)
}

// fieldMessages holds the message for each "<field>.<tag>" failure.
var fieldMessages = map[string]string{
	"email.notblank":           "Email is required",
	"email.max":                "Email must be at most 255 characters",
	"email.email":              "Email must be a valid address",
	"email.nonul":              "Email must not contain NUL characters",
	"password.required":        "Password is required",
	"fullName.notblank":        "Full name is required",
	"fullName.max":             "Full name must be at most 255 characters",
	"fullName.nonul":           "Full name must not contain NUL characters",
	"companyName.notblank":     "Company name is required",
	"companyName.max":          "Company name must be at most 255 characters",
	"companyName.nonul":        "Company name must not contain NUL characters",
	"positionTitle.notblank":   "Position title is required",
	"positionTitle.max":        "Position title must be at most 255 characters",
	"positionTitle.nonul":      "Position title must not contain NUL characters",
	"location.max":             "Location must be at most 255 characters",
	"location.nonul":           "Location must not contain NUL characters",
	"applicationSource.max":    "Application source must be at most 255 characters",
	"applicationSource.nonul":  "Application source must not contain NUL characters",
	"jobPostingUrl.nonul":      "Job posting URL must not contain NUL characters",
	"status.required":          "Status is required",
	"status.oneof":             "Status must be one of APPLIED, INTERVIEWING, OFFER, ACCEPTED, REJECTED, WITHDRAWN",
	"workMode.oneof":           "Work mode must be one of ONSITE, REMOTE, HYBRID",
	"applicationDate.required": "Application date is required",
	"content.notblank":         "Content is required",
	"content.nonul":            "Content must not contain NUL characters",
}

// validateRequest runs struct tag validation on a decoded request and
// converts failures into a *service.ValidationError keyed by JSON field.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = fe.Field() + " is invalid"
		}
		fields[fe.Field()] = msg
	}
	return &service.ValidationError{Fields: fields}
}
