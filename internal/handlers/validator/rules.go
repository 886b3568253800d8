package validator

import (
	"github.com/go-playground/validator/v10"

	api "github.com/made-to-scale/scaleops/api/v1"
)

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

func NewProjectValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("project_name", nameValidator),
		},
	}
}

func NewAdsValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("script_type", scriptTypeValidator),
		},
		{
			Rule: func(v *validator.Validate) {
				v.RegisterStructValidation(adGenerateValidator, api.AdGenerateRequest{})
			},
		},
	}
}
