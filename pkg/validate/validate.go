// Package validate wraps go-playground/validator for request DTO validation.
package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = validator.New()

// Struct validates a DTO against its `validate` tags and returns a single
// human-readable error listing the failing fields.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s failed on %s", strings.ToLower(fe.Field()), fe.Tag())
	}
	return fmt.Errorf("validation failed: %s", strings.Join(msgs, ", "))
}
