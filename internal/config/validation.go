package config

import (
	"fmt"
	"path"
	"strings"

	"loadorder/pkg/logging"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// addErr appends err if it is a ValidationError.
func (ve *ValidationErrors) addErr(err error) {
	if err == nil {
		return
	}
	if v, ok := err.(ValidationError); ok {
		*ve = append(*ve, v)
		return
	}
	ve.Add("", err.Error())
}

// ValidateRequired checks if a required string field is not empty
func ValidateRequired(field, value, entityType string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf("is required for %s", entityType),
		}
	}
	return nil
}

// ValidateRequiredSlice checks if a required slice is not empty
func ValidateRequiredSlice(field string, value []string, entityType string) error {
	if len(value) == 0 {
		return ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf("must have at least one item for %s", entityType),
		}
	}
	return nil
}

// ValidateOneOf checks if a value is in a list of allowed values
func ValidateOneOf(field, value string, allowed []string) error {
	for _, allowedValue := range allowed {
		if value == allowedValue {
			return nil
		}
	}
	return ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

// ValidateMaxLength checks if a string doesn't exceed maximum length
func ValidateMaxLength(field, value string, maxLength int) error {
	if len(value) > maxLength {
		return ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf("must not exceed %d characters", maxLength),
		}
	}
	return nil
}

// ValidateEntityName validates that a name follows proper conventions
func ValidateEntityName(field, name, entityType string) error {
	if err := ValidateRequired(field, name, entityType); err != nil {
		return err
	}

	if err := ValidateMaxLength(field, name, 100); err != nil {
		return err
	}

	// Check for invalid characters (basic validation)
	if strings.ContainsAny(name, " \t\n") {
		return ValidationError{
			Field:   field,
			Value:   name,
			Message: "cannot contain whitespace",
		}
	}

	return nil
}

// FormatValidationError creates a consistent validation error message
func FormatValidationError(entityType, entityName string, err error) error {
	if err == nil {
		return nil
	}

	if entityName != "" {
		return fmt.Errorf("validation failed for %s '%s': %w", entityType, entityName, err)
	}
	return fmt.Errorf("validation failed for %s: %w", entityType, err)
}

// Validate checks the configuration and returns every problem found.
func (c LoadOrderConfig) Validate() ValidationErrors {
	var errs ValidationErrors

	errs.addErr(ValidateRequiredSlice("sources", c.Sources, "config"))
	for i, src := range c.Sources {
		errs.addErr(ValidateRequired(fmt.Sprintf("sources[%d]", i), src, "config"))
	}

	errs.addErr(ValidateEntityName("commonModule", c.CommonModule, "config"))

	for i, ns := range c.BaseList {
		errs.addErr(ValidateRequired(fmt.Sprintf("baseList[%d]", i), ns, "config"))
	}

	for i, pattern := range c.Exclude {
		if _, err := path.Match(pattern, ""); err != nil {
			errs.Add(fmt.Sprintf("exclude[%d]", i), "is not a valid glob pattern", pattern)
		}
	}

	seen := make(map[string]bool, len(c.Modules))
	for i, m := range c.Modules {
		prefix := fmt.Sprintf("modules[%d]", i)
		if err := ValidateEntityName(prefix+".name", m.Name, "module"); err != nil {
			errs.addErr(err)
			continue
		}
		if seen[m.Name] {
			errs.Add(prefix+".name", fmt.Sprintf("module %q is declared more than once", m.Name), m.Name)
		}
		seen[m.Name] = true

		for j, dep := range m.DependsOn {
			field := fmt.Sprintf("%s.dependsOn[%d]", prefix, j)
			if err := ValidateEntityName(field, dep, "module"); err != nil {
				errs.addErr(err)
				continue
			}
			if dep == m.Name {
				errs.Add(field, "a module cannot depend on itself", dep)
			}
		}
		for j, ns := range m.Namespaces {
			errs.addErr(ValidateRequired(fmt.Sprintf("%s.namespaces[%d]", prefix, j), ns, "module"))
		}
	}

	errs.addErr(ValidateOneOf("output.format", c.Output.Format, OutputFormats))

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs.Add("logLevel", "must be one of: debug, info, warn, error", c.LogLevel)
	}

	return errs
}
