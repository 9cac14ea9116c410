package serializers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterJSONTagNames makes gin's validator report fields by their json
// names. Safe to call more than once.
func RegisterJSONTagNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
}

// TranslateBindingError converts a gin binding failure into domain
// validation errors keyed by field
func TranslateBindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(domain.ValidationErrors, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, domain.NewValidationError(fe.Field(), fieldMessage(fe), nil))
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return domain.NewValidationError(typeErr.Field, fmt.Sprintf("Expected %s.", typeErr.Type.Kind()), nil)
	}

	if errors.Is(err, io.EOF) {
		return domain.NewValidationError("", "Request body is empty.", nil)
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return domain.NewValidationError("", "Malformed JSON body.", nil)
	}
	return domain.NewValidationError("", err.Error(), nil)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		if fe.Param() == "1" {
			return "This field may not be blank."
		}
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	default:
		return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
	}
}
