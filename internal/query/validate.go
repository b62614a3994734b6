package query

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/directory"
	"github.com/khoakhoakhoa23/Hospital-Locator/internal/geo"
)

// validate is safe for concurrent use once configured.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enum := func(member func(string) bool) validator.Func {
		return func(fl validator.FieldLevel) bool {
			return member(fl.Field().String())
		}
	}
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("hospital_type", enum(directory.IsHospitalType))
	_ = v.RegisterValidation("district", enum(directory.IsDistrict))
	_ = v.RegisterValidation("specialty", enum(directory.IsSpecialty))

	return v
}

// check runs the struct validator over s and appends any failures to ve.
func check(ve *ValidationError, s any) {
	err := validate.Struct(s)
	if err == nil {
		return
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		ve.Add("request", err.Error())
		return
	}
	for _, fe := range verrs {
		ve.Add(fe.Field(), fieldMessage(fe))
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte", "min":
		return "must be at least " + fe.Param()
	case "lte", "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "hospital_type":
		return "must be one of public, private, clinic"
	case "district":
		return "must be a known district code"
	case "specialty":
		return "must be a known specialty code"
	default:
		return "is invalid"
	}
}

// origin resolves an optional coordinate pair. Both halves must be present or
// both absent; a present pair must be in range. latName and lngName are the
// request field names used in error messages.
func origin(ve *ValidationError, lat, lng *float64, latName, lngName string, required bool) *geo.Coordinate {
	switch {
	case lat == nil && lng == nil:
		if required {
			ve.Add(latName, "is required")
			ve.Add(lngName, "is required")
		}
		return nil
	case lat == nil:
		ve.Add(latName, "must be provided together with "+lngName)
		return nil
	case lng == nil:
		ve.Add(lngName, "must be provided together with "+latName)
		return nil
	}

	c := geo.Coordinate{Lat: *lat, Lng: *lng}
	if err := c.Validate(); err != nil {
		var rangeErr *geo.RangeError
		if errors.As(err, &rangeErr) {
			name := latName
			if rangeErr.Field == "longitude" {
				name = lngName
			}
			ve.Add(name, "is out of range")
		}
		return nil
	}
	return &c
}

func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
