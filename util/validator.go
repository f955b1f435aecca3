package util

import (
	"math"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("latitude", validateLatitude)
	validate.RegisterValidation("longitude", validateLongitude)
}

// Submission coordinates must be finite and on the globe; NaN and the
// infinities fail both comparisons.
func validateLatitude(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return !math.IsNaN(lat) && lat >= -90 && lat <= 90
}

func validateLongitude(fl validator.FieldLevel) bool {
	lon := fl.Field().Float()
	return !math.IsNaN(lon) && lon >= -180 && lon <= 180
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
