package validation

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var initOnce sync.Once

// Init configures the validator behind gin binding: errors are keyed by json/form tag names,
// and a few aliases name the diary's field rules.
func Init() {
	initOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form", "uri"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
		v.RegisterAlias("username", "min=3,max=20")
		v.RegisterAlias("password", "min=8,max=32")
		v.RegisterAlias("displayname", "min=3,max=32")
		v.RegisterAlias("day", "datetime=2006-01-02")
		v.RegisterAlias("moodvalue", "min=1,max=10")
	})
}

// ToDetails converts binding errors into a map[field]reason for the 422 body.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) {
		return map[string]string{"payload": "empty body"}
	}
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return map[string]string{"payload": "invalid json"}
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		field := ute.Field
		if field == "" {
			field = "payload"
		}
		return map[string]string{field: "must be of type " + ute.Type.String()}
	}
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return map[string]string{"query": "must be a number"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return "is required"
	case "username":
		return "must be 3 to 20 characters long"
	case "password":
		return "must be 8 to 32 characters long"
	case "displayname":
		return "must be 3 to 32 characters long"
	case "day":
		return "must be a date in YYYY-MM-DD format"
	case "moodvalue":
		return "must be between 1 and 10"
	case "datetime":
		return "must match datetime format: " + param
	case "min":
		if isNumberKind(fe.Kind()) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(fe.Kind()) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "len":
		return "must be exactly " + param + " characters long"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	}
	if param != "" {
		return "failed '" + fe.Tag() + "' with parameter '" + param + "'"
	}
	return "failed '" + fe.Tag() + "'"
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
