package crud

import (
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config carries per-resource settings for a Controller.
type Config struct {
	// Resource names the entity in errors and logs, e.g. "machine"
	Resource string

	// KeyField is reported as the offending field when Put's identity check fails.
	// Defaults to "id".
	KeyField string

	// SkipIdentityCheck disables the check that an updated object's key matches the requested id
	SkipIdentityCheck bool

	// Validate, when set, validates objects before they are created or updated
	Validate *validator.Validate

	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Resource == "" {
		c.Resource = "entity"
	}
	if c.KeyField == "" {
		c.KeyField = "id"
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// NewValidator returns a validator reporting fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
	return v
}
