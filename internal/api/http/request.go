package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/vitalog/vitalog/internal/api/store"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report field names as they appear on the wire.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Passwords need at least one lowercase letter, one uppercase letter,
	// and one digit. Length is checked separately via min=8.
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		var lower, upper, digit bool
		for _, r := range fl.Field().String() {
			switch {
			case unicode.IsLower(r):
				lower = true
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsDigit(r):
				digit = true
			}
		}
		return lower && upper && digit
	})

	return v
}

// FieldError is one entry of a validation failure's details list.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// decodeAndValidate parses the JSON request body into dst and runs the
// validator over it. On failure it writes the 400 response itself and
// returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make([]FieldError, 0, len(verrs))
			for _, fe := range verrs {
				details = append(details, FieldError{
					Field:   fe.Field(),
					Message: fieldMessage(fe),
				})
			}
			writeError(w, http.StatusBadRequest, "Validation failed", details)
			return false
		}
		writeError(w, http.StatusBadRequest, "Validation failed", nil)
		return false
	}

	return true
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "password":
		return "must contain a lowercase letter, an uppercase letter, and a digit"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}

// listFilter reads the optional from/to query parameters. A malformed date
// writes the 400 response and returns false.
func listFilter(w http.ResponseWriter, r *http.Request) (store.ListFilter, bool) {
	var f store.ListFilter
	for _, q := range []struct {
		name string
		dst  *string
	}{
		{"from", &f.From},
		{"to", &f.To},
	} {
		v := r.URL.Query().Get(q.name)
		if v == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", v); err != nil {
			writeError(w, http.StatusBadRequest, "Validation failed", []FieldError{
				{Field: q.name, Message: "must be a date in YYYY-MM-DD format"},
			})
			return store.ListFilter{}, false
		}
		*q.dst = v
	}
	return f, true
}
