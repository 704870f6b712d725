package errors

import (
	"strings"
	"unicode"
)

// ValidateVariableName validates a monitor-geometry variable name as it may
// appear inside a bracketed reference (e.g. Monitor1Width in [Monitor1Width]).
//
// The rules mirror what the expression grammar can actually reference:
//   - No empty names
//   - ASCII letters and digits only (brackets, operators, and whitespace
//     would collide with the expression tokenizer)
//   - Must start with a letter
//   - Maximum length of 64 characters
func ValidateVariableName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidVariable, "variable name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidVariable, "variable name too long (max 64 characters)")
	}

	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return New(ErrCodeInvalidVariable, "variable name must start with a letter: %q", name)
			}
		default:
			return New(ErrCodeInvalidVariable, "variable name contains invalid character %q: %q", r, name)
		}
	}

	return nil
}

// ValidateLayoutName validates a layout name destined for the output
// document. It rejects names that would produce confusing or unloadable
// layout entries in the consuming tool.
func ValidateLayoutName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidName, "layout name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "layout name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "layout name contains control characters")
		}
	}

	return nil
}

// ValidateOutputPath validates a destination path for a converted layout.
// It prevents path traversal out of the chosen output directory and
// rejects obviously broken paths.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "output path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidInput, "output path cannot contain path traversal sequences (..)")
	}

	return nil
}
