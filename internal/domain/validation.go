package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var versionPattern = regexp.MustCompile(`^v[0-9]+$`)

// NextVersion computes the successor of a product version. A nil version
// starts the sequence at "v1". Anything that is not "v" followed by digits
// fails closed with ErrMalformedVersion rather than guessing.
func NextVersion(version *string) (string, error) {
	if version == nil {
		return "v1", nil
	}
	v := *version
	if !versionPattern.MatchString(v) {
		return "", fmt.Errorf("%w: %q", ErrMalformedVersion, v)
	}
	n, err := strconv.ParseUint(v[1:], 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrMalformedVersion, v)
	}
	return "v" + strconv.FormatUint(n+1, 10), nil
}

// ValidateProduct checks the caller-supplied snapshot fields the factory
// relies on being present.
func ValidateProduct(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
	}
	if strings.TrimSpace(p.Type) == "" {
		return fmt.Errorf("%w: type must not be empty", ErrInvalidInput)
	}
	if p.ID != nil && *p.ID == "" {
		return fmt.Errorf("%w: id must not be an empty string", ErrInvalidInput)
	}
	return nil
}
