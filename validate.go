package stylegen

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// ValidationError reports an invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateConfig checks the configuration before a run.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return &ValidationError{Field: "generate", Message: "configuration is nil"}
	}
	if strings.TrimSpace(cfg.Theme) == "" {
		return ErrThemeRequired
	}
	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}
	return nil
}

func convertValidationError(err error) error {
	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return &ValidationError{Field: field, Message: msg, Err: err}
	}
	return &ValidationError{Field: "generate", Message: err.Error(), Err: err}
}

// yamlishFieldName maps Config.Includes[0] to generate.includes[0].
func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.StructNamespace(), ".")
	parts[0] = "generate"
	for i := 1; i < len(parts); i++ {
		parts[i] = strings.ToLower(parts[i])
	}
	return strings.Join(parts, ".")
}
