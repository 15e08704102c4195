package dtos

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var equityPattern = regexp.MustCompile(`^(0(\.\d+)?|1(\.0+)?)$`)

var registerOnce sync.Once

// RegisterValidations installs the custom rules on gin's validator and makes
// its JSON decoder reject unknown fields.
func RegisterValidations() {
	registerOnce.Do(func() {
		binding.EnableDecoderDisallowUnknownFields = true

		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("dtos: gin validator engine is not go-playground/validator")
		}
		v.RegisterTagNameFunc(jsonFieldName)
		v.RegisterCustomTypeFunc(nullableValue, Nullable[int]{}, Nullable[string]{})
		if err := v.RegisterValidation("equity", validateEquity); err != nil {
			panic(fmt.Sprintf("dtos: register equity validation: %v", err))
		}
	})
}

// validateEquity accepts decimal strings between 0 and 1 inclusive.
func validateEquity(fl validator.FieldLevel) bool {
	return equityPattern.MatchString(fl.Field().String())
}

func jsonFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// Describe turns a binding failure into a client-facing message.
func Describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", fe.Field()))
		case "min", "max":
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is not a valid %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

// UnknownKeys reports query parameters outside the allowed set, sorted.
func UnknownKeys(query url.Values, allowed []string) []string {
	var unknown []string
	for key := range query {
		if !slices.Contains(allowed, key) {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}
