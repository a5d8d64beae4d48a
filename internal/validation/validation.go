// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields, fixed lengths or email formats) defined in struct tags,
// and turns violations into an ordered list the client can understand.
// Rules run in field declaration order, so the first violation reported
// is always the first rule broken.
package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator instance.
//
// Field names in violations are the JSON names (e.g. "userID"), falling
// back to the `param` tag for path parameters.
func Validator() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(fieldName)
	})
	return instance
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	return Validator().Struct(s)
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "param", "query"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return fld.Name
}
