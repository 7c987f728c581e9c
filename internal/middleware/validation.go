package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateRequest validates a struct with validation tags
func ValidateRequest(v interface{}) error {
	return validate.Struct(v)
}

// DecodeAndValidate decodes a JSON request body and validates it
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return ValidateRequest(v)
}

// DecodeAndValidateBytes decodes a JSON payload (e.g. the data part of a
// multipart request) and validates it
func DecodeAndValidateBytes(payload []byte, v interface{}) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return err
	}
	return ValidateRequest(v)
}

// ValidationMessage converts validator errors into the envelope error
// string; other errors fall back to a generic message
func ValidationMessage(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Invalid request body"
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, fieldMessage(e))
	}
	return strings.Join(messages, "; ")
}

func fieldMessage(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return "Please add a " + field
	case "email":
		return "Please add a valid email"
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(e.Param(), " ", ", ")
	case "gte", "min":
		return field + " must be at least " + e.Param()
	case "lte", "max":
		return field + " must be at most " + e.Param()
	default:
		return field + " is invalid"
	}
}
