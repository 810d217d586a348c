// Package model holds the rows the repository reads and writes and the
// inputs callers hand to it.
//
// `db` tags name the columns pgx maps rows onto; `validate` tags are read
// by go-playground/validator before any query runs.
package model

import (
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// MaxID is the largest value a SERIAL or INTEGER column can hold.
const MaxID = math.MaxInt32

// ValidID reports whether id can name a row.
func ValidID(id int64) bool {
	return id > 0 && id <= MaxID
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report json names ("owner_id") instead of Go names ("OwnerID").
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}
