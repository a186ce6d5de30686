// Package validators turns binding failures into field level messages
// clients can show next to their inputs
package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	// Report fields by their JSON names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}

			return name
		})
	}
}

type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// Fields converts a binding error into one FieldError per failed field.
// Errors that aren't about a specific field come back as a single entry
// for "body".
func Fields(err error) []FieldError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldError{
				Field: fieldName(fe),
				Msg:   message(fe),
			})
		}

		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []FieldError{{
			Field: typeErr.Field,
			Msg:   fmt.Sprintf("must be a %s", typeErr.Type.Kind()),
		}}
	}

	if errors.Is(err, io.EOF) {
		return []FieldError{{Field: "body", Msg: "request body is empty"}}
	}

	return []FieldError{{Field: "body", Msg: "malformed request body"}}
}

func fieldName(fe validator.FieldError) string {
	// Namespace is Struct.field, the JSON name is what clients know
	if i := strings.IndexByte(fe.Namespace(), '.'); i >= 0 {
		return fe.Namespace()[i+1:]
	}

	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	default:
		return fmt.Sprintf("failed the %s check", fe.Tag())
	}
}
