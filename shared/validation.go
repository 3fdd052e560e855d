// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package shared

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/l3montree-dev/bodhi/dtos"
)

// V validates request structs. Errors are reported by the form field name.
var V = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidateStruct runs V on s and converts the result into FieldErrors.
// Errors which are not validation errors (e.g. passing a non struct) are returned as is.
func ValidateStruct(s any) (FieldErrors, error) {
	fe := FieldErrors{}
	err := V.Struct(s)
	if err == nil {
		return fe, nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, err
	}

	for _, e := range validationErrors {
		fe.Add(e.Field(), validationMessage(e), ErrInvalidValue)
	}
	return fe, nil
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return MessageRequired
	case "max":
		return fmt.Sprintf("Enter a value not more than %s characters long", e.Param())
	case "min":
		return fmt.Sprintf("Enter a value at least %s characters long", e.Param())
	case "uppercase":
		return "Enter an uppercase value"
	default:
		return fmt.Sprintf("Invalid value (%s)", e.Tag())
	}
}

// ValidationErrorBody is the 400 response of a request with field errors.
func ValidationErrorBody(fe FieldErrors) dtos.ValidationErrorResponse {
	return dtos.ValidationErrorResponse{
		Message: "validation failed",
		Errors:  fe.Messages(),
	}
}
