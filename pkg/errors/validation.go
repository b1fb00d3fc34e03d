package errors

import (
	"strings"
	"unicode"
)

// ValidateFilename validates a file name used for batch output.
// It ensures the name is a simple basename without path components, so a
// solution can never be written outside the output directory.
func ValidateFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "filename cannot be empty")
	}

	const maxLength = 255
	if len(name) > maxLength {
		return New(ErrCodeInvalidPath, "filename too long (max %d characters)", maxLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "filename contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "filename cannot contain path separators")
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidPath, "filename cannot be %q", name)
	}

	return nil
}

// ValidateDir validates a directory argument. The directory must be
// non-empty and must not contain null bytes.
func ValidateDir(dir string) error {
	if dir == "" {
		return New(ErrCodeInvalidPath, "directory cannot be empty")
	}
	if strings.ContainsRune(dir, '\x00') {
		return New(ErrCodeInvalidPath, "directory contains invalid characters")
	}
	return nil
}
