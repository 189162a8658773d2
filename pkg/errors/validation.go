package errors

import (
	"slices"
	"strings"
	"unicode"
)

// OutputFormats are the formats the render command and API accept.
var OutputFormats = []string{"svg", "png", "dot"}

// ValidateOutputFormat checks that format is one of OutputFormats.
func ValidateOutputFormat(format string) error {
	if !slices.Contains(OutputFormats, format) {
		return New(ErrCodeInvalidFormat, "unsupported output format %q (want one of %s)",
			format, strings.Join(OutputFormats, ", "))
	}
	return nil
}

// ValidatePath validates a user-supplied file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateHeight accepts -1 (maximum height) and any non-negative height.
func ValidateHeight(h int) error {
	if h < -1 {
		return New(ErrCodeInvalidHeight, "height %d must be -1 or >= 0", h)
	}
	return nil
}

// ValidateRoot checks 0 <= root < vertexCount.
func ValidateRoot(root, vertexCount int) error {
	if root < 0 || root >= vertexCount {
		return New(ErrCodeInvalidRoot, "root %d outside graph of %d vertices", root, vertexCount)
	}
	return nil
}

// MaxSignatureLength bounds signature strings accepted from users.
const MaxSignatureLength = 1 << 20

// ValidateSignatureString rejects empty and oversized signature input.
func ValidateSignatureString(s string) error {
	if strings.TrimSpace(s) == "" {
		return New(ErrCodeInvalidSignature, "signature cannot be empty")
	}
	if len(s) > MaxSignatureLength {
		return New(ErrCodeInvalidSignature, "signature too long (max %d bytes)", MaxSignatureLength)
	}
	return nil
}
