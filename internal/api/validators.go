package api

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/pageza/renewals/backend/internal/models"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags used by request types:
// notblank rejects whitespace-only strings, software restricts to the known
// software types.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("notblank", notBlank)
		_ = v.RegisterValidation("software", isSoftware)
	})
}

// jsonFieldName reports fields by their JSON name in validation messages
func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func isSoftware(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, software := range models.SoftwareTypes {
		if value == software {
			return true
		}
	}
	return false
}
