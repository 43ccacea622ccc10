// Package validator wraps go-playground/validator behind a small injectable
// type. This is part of the platform layer and contains no business logic.
package validator

import "github.com/go-playground/validator/v10"

// Validator checks structs and values against their validation tags.
type Validator struct {
	v *validator.Validate
}

// New returns a ready-to-use Validator. Custom rules can be added with
// RegisterValidation before handing it to modules.
func New() *Validator {
	return &Validator{v: validator.New()}
}

// Struct validates a struct using its field tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single value against a tag expression.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation adds a custom validation function under the given tag.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}
