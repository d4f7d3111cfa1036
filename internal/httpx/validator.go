package httpx

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var countryCodePattern = regexp.MustCompile(`^[A-Z]{2}$`)

func init() {
	validate = validator.New()

	// report fields by their query/json name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"query", "json"} {
			name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	if err := validate.RegisterValidation("nager_country_code", validateCountryCode); err != nil {
		panic(err)
	}
}

// RegisterStructValidation adds a struct-level rule for the given types.
func RegisterStructValidation(fn validator.StructLevelFunc, types ...interface{}) {
	validate.RegisterStructValidation(fn, types...)
}

func validateCountryCode(fl validator.FieldLevel) bool {
	return countryCodePattern.MatchString(fl.Field().String())
}

// ValidateStruct returns one detail per failing field, or nil.
func ValidateStruct(s interface{}) []ErrorDetail {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ErrorDetail{{Field: "", Message: err.Error()}}
	}

	details := make([]ErrorDetail, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		param := fe.Param()

		var message string
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "datetime":
			message = fmt.Sprintf("%s must be a date in %s format", field, dateLayoutHint(param))
		case "nager_country_code":
			message = fmt.Sprintf("%s must be a two-letter uppercase country code", field)
		case "min", "gte":
			message = fmt.Sprintf("%s must be at least %s", field, param)
		case "max", "lte":
			message = fmt.Sprintf("%s must be at most %s", field, param)
		case "date_range":
			message = fmt.Sprintf("%s must not be before the start date", field)
		case "dive":
			message = fmt.Sprintf("%s contains an invalid element", field)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}

		details = append(details, ErrorDetail{Field: field, Message: message})
	}
	return details
}

func dateLayoutHint(layout string) string {
	if layout == "2006-01-02" {
		return "YYYY-MM-DD"
	}
	return layout
}
