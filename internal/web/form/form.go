// Package form binds request bodies to structs and collects field errors for re-rendering.
package form

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// Validation is the validator together with its message translation.
type Validation interface {
	Validator() *validator.Validate
	TranslateValidation(err error) map[string]string
}

// Form is the view model of an edit form over the data struct T.
// Fields of T carry `form` tags for binding and `validate` tags for validation.
type Form[T any] struct {
	Action    string
	Data      *T
	Errors    map[string]string
	Submitted bool
}

// New creates a form posting to action, prefilled with data.
func New[T any](action string, data *T) *Form[T] {
	return &Form[T]{
		Action: action,
		Data:   data,
		Errors: make(map[string]string),
	}
}

// HandleRequest binds the body of POST requests into Data. Other methods leave the form untouched.
func (f *Form[T]) HandleRequest(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return nil
	}

	f.Submitted = true

	if err := c.BodyParser(f.Data); err != nil {
		return errors.Wrap(err, "parse form body")
	}

	return nil
}

// Validate runs the struct validation and records failing fields.
func (f *Form[T]) Validate(v Validation) {
	err := v.Validator().Struct(f.Data)
	if err == nil {
		return
	}

	for field, msg := range v.TranslateValidation(err) {
		f.AddError(field, msg)
	}
}

// AddError records msg for field unless the field already failed.
func (f *Form[T]) AddError(field, msg string) {
	if _, ok := f.Errors[field]; !ok {
		f.Errors[field] = msg
	}
}

// HasError reports whether field failed.
func (f *Form[T]) HasError(field string) bool {
	_, ok := f.Errors[field]

	return ok
}

// Error returns the message of field.
func (f *Form[T]) Error(field string) string {
	return f.Errors[field]
}

// IsValid reports whether the form was submitted without errors.
func (f *Form[T]) IsValid() bool {
	return f.Submitted && len(f.Errors) == 0
}
