package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(c *LoadOrderConfig)
		wantFields []string
	}{
		{
			name:   "defaults are valid",
			modify: func(c *LoadOrderConfig) {},
		},
		{
			name: "empty sources",
			modify: func(c *LoadOrderConfig) {
				c.Sources = nil
			},
			wantFields: []string{"sources"},
		},
		{
			name: "blank common module",
			modify: func(c *LoadOrderConfig) {
				c.CommonModule = " "
			},
			wantFields: []string{"commonModule"},
		},
		{
			name: "bad exclude pattern",
			modify: func(c *LoadOrderConfig) {
				c.Exclude = []string{"ok/*", "broken["}
			},
			wantFields: []string{"exclude[1]"},
		},
		{
			name: "module problems",
			modify: func(c *LoadOrderConfig) {
				c.Modules = []ModuleConfig{
					{Name: "app", DependsOn: []string{"lib", "app"}},
					{Name: "app"},
					{Name: "has space"},
					{Name: "lib", Namespaces: []string{""}},
				}
			},
			wantFields: []string{
				"modules[0].dependsOn[1]",
				"modules[1].name",
				"modules[2].name",
				"modules[3].namespaces[0]",
			},
		},
		{
			name: "unknown output format and log level",
			modify: func(c *LoadOrderConfig) {
				c.Output.Format = "xml"
				c.LogLevel = "loud"
			},
			wantFields: []string{"output.format", "logLevel"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.modify(&cfg)

			errs := cfg.Validate()
			var fields []string
			for _, e := range errs {
				fields = append(fields, e.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	var errs ValidationErrors
	assert.Equal(t, "no validation errors", errs.Error())
	assert.False(t, errs.HasErrors())

	errs.Add("a", "is wrong")
	assert.Equal(t, "field 'a': is wrong", errs.Error())

	errs.Add("", "general problem")
	assert.Equal(t, "validation failed: field 'a': is wrong; general problem", errs.Error())
}

func TestFormatValidationError(t *testing.T) {
	assert.NoError(t, FormatValidationError("module", "app", nil))
	assert.EqualError(t,
		FormatValidationError("module", "app", ValidationError{Field: "name", Message: "is required"}),
		"validation failed for module 'app': field 'name': is required")
	assert.EqualError(t,
		FormatValidationError("config", "", ValidationError{Message: "bad"}),
		"validation failed for config: bad")
}
