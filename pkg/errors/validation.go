package errors

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// documentNameRegex matches names usable as file basenames, Redis key
// suffixes and MongoDB _id values alike.
var documentNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateDocumentName validates the name a graph document is stored under.
// It rejects names that could be used for path traversal or key injection.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - Maximum length of 128 characters
//   - Letters, digits, '.', '_' and '-' only, not starting with a dot or dash
//   - No ".." sequences
func ValidateDocumentName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "document name cannot be empty")
	}

	const maxNameLength = 128
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "document name too long (max %d characters)", maxNameLength)
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidName, "document name cannot contain path traversal sequences (..)")
	}

	if !documentNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid document name: %q", name)
	}

	return nil
}

// ValidateLabel validates a node or edge label entered by a user.
// Labels may be empty and may contain spaces, but no control characters
// other than tab.
func ValidateLabel(label string) error {
	if !utf8.ValidString(label) {
		return New(ErrCodeInvalidLabel, "label is not valid UTF-8")
	}

	const maxLabelLength = 256
	if utf8.RuneCountInString(label) > maxLabelLength {
		return New(ErrCodeInvalidLabel, "label too long (max %d characters)", maxLabelLength)
	}

	for _, r := range label {
		if r != '\t' && unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "label contains invalid control characters")
		}
	}

	return nil
}

// storeSchemes lists the URL schemes a document store can be opened with.
var storeSchemes = []string{"file://", "redis://", "rediss://", "mongodb://", "mongodb+srv://"}

// ValidateStoreURL validates a document store location. Plain paths are
// accepted as shorthand for file:// URLs.
func ValidateStoreURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "store URL cannot be empty")
	}

	for _, r := range rawURL {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "store URL contains invalid characters")
		}
	}

	if !strings.Contains(rawURL, "://") {
		return nil
	}
	for _, scheme := range storeSchemes {
		if strings.HasPrefix(rawURL, scheme) {
			return nil
		}
	}
	return New(ErrCodeUnsupported, "unsupported store URL scheme: %q", rawURL)
}
