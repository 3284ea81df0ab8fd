package infrastructures

import (
	"regexp"

	"github.com/caceasy/caceasy-core/internal/app/errors"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// phonePattern accepts E.164 numbers with or without the leading plus.
var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()
	err := validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	if err != nil {
		logrus.Fatalf("failed to register phone validation: %v", err)
	}

	return &Validator{
		validate: validate,
	}
}

func (v *Validator) Validate(i interface{}) error {
	if i == nil {
		return errors.NewBadRequestError("Invalid request body")
	}

	err := v.validate.Struct(i)
	if err != nil {
		return errors.NewBadRequestError(err.Error())
	}
	return nil
}
