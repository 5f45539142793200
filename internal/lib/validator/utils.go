package validator

import (
	"fmt"
	"moviedeck/proj/internal/domain/filters"
	"reflect"
	"strings"
	"unicode"

	govalidator "github.com/go-playground/validator/v10"
)

// New returns a validator with the custom tags used by request types
// registered.
func New() *govalidator.Validate {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("sortbymoviefield", ValidateSortByMovieField); err != nil {
		panic(err)
	}
	return v
}

func camelToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func structType(obj any) reflect.Type {
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func getFieldName(obj any, origFieldName string) string {
	t := structType(obj)
	field, found := t.FieldByName(origFieldName)
	if !found {
		panic(fmt.Sprintf("Field %s not found in type %s", origFieldName, t.Name()))
	}
	for _, key := range []string{"json", "schema"} {
		if tag := field.Tag.Get(key); tag != "" && tag != "-" {
			if name := strings.Split(tag, ",")[0]; name != "" {
				return name
			}
		}
	}
	return camelToSnake(origFieldName)
}

func ProcessValidationErrors(obj any, errs govalidator.ValidationErrors) map[string]string {
	processedErrors := make(map[string]string)
	for _, e := range errs {
		processedErrors[getFieldName(obj, e.StructField())] = GetErrorMsgForField(obj, e)
	}
	return processedErrors
}

func ValidateStruct(validator *govalidator.Validate, obj any) (validationErrs map[string]string) {
	if err := validator.Struct(obj); err != nil {
		validationErrs = ProcessValidationErrors(obj, err.(govalidator.ValidationErrors))
	}
	return
}

func GetErrorMsgForField(obj any, err govalidator.FieldError) (errorMsg string) {
	t := structType(obj)
	field, found := t.FieldByName(err.StructField())
	if !found {
		panic(fmt.Sprintf("Field %s not found in type %s", err.StructField(), t.Name()))
	}
	errorMsg = field.Tag.Get("errorMsg")
	if errorMsg != "" {
		return
	}
	switch err.Tag() {
	case "required":
		errorMsg = "This field is required"
	case "max":
		errorMsg = fmt.Sprintf("The maximum value is %s", err.Param())
	case "min":
		errorMsg = fmt.Sprintf("The minimum value is %s", err.Param())
	case "gte":
		errorMsg = fmt.Sprintf("Value should be greater than or equal to %s", err.Param())
	case "lte":
		errorMsg = fmt.Sprintf("Value should be less than or equal to %s", err.Param())
	case "oneof":
		errorMsg = fmt.Sprintf("Value should be one of %s", err.Param())
	case "email":
		errorMsg = "Value must be a valid email address"
	case "sortbymoviefield":
		errorMsg = fmt.Sprintf("Value must be one of %s, optionally prefixed with '-'", strings.Join(filters.MovieSortSafelist, ", "))
	default:
		errorMsg = "This field is invalid"
	}
	return
}

// CUSTOM VALIDATORS

// ValidateSortByMovieField accepts a sortable movie column with an optional
// "-" prefix for descending order.
func ValidateSortByMovieField(fl govalidator.FieldLevel) bool {
	sort := strings.TrimPrefix(fl.Field().String(), "-")
	for _, column := range filters.MovieSortSafelist {
		if strings.EqualFold(sort, column) {
			return true
		}
	}
	return false
}
