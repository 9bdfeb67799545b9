package quill

import (
	"fmt"
	"strings"
)

// ConfigurationError reports an invalid contract declaration. It is
// the only error kind produced by resolution: every configuration
// problem aborts the whole interface with one of these.
type ConfigurationError struct {
	ConfigKey string   // offending operation, "" for type-level problems
	Message   string
	Warnings  []string // diagnostics accumulated before the failure
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if e.ConfigKey != "" {
		fmt.Fprintf(&sb, " [%s]", e.ConfigKey)
	}
	if len(e.Warnings) > 0 {
		fmt.Fprintf(&sb, " (warnings: %s)", strings.Join(e.Warnings, "; "))
	}
	return sb.String()
}

// NewConfigurationError creates a ConfigurationError for an operation
func NewConfigurationError(configKey, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{
		ConfigKey: configKey,
		Message:   fmt.Sprintf(format, args...),
	}
}

func configErrorFor(meta *MethodMetadata, format string, args ...any) *ConfigurationError {
	err := NewConfigurationError(meta.ConfigKey, format, args...)
	err.Warnings = meta.Warnings
	return err
}
