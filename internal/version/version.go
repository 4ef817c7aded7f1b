// Package version reads PEP 440 versions out of repository tags.
package version

import (
	"fmt"
	"regexp"
	"strings"

	pep440 "github.com/aquasecurity/go-pep440-version"
)

// prefixRegex matches everything before the first digit of a tag,
// e.g. "v" in "v1.2.3" or "release-" in "release-1.2.3".
var prefixRegex = regexp.MustCompile(`^[^0-9]*`)

// Valid reports whether s is a PEP 440 version. A leading "v" is allowed.
func Valid(s string) bool {
	_, err := pep440.Parse(s)
	return err == nil
}

// Public returns the normalized public version of tag. The non-numeric
// prefix and the "+local" segment are dropped, so "v1.0.0-beta.1+abc"
// gives "1.0.0b1".
func Public(tag string) (string, error) {
	v, err := pep440.Parse(prefixRegex.ReplaceAllString(tag, ""))
	if err != nil {
		return "", fmt.Errorf("parsing version from tag %q: %w", tag, err)
	}
	public, _, _ := strings.Cut(v.String(), "+")
	return public, nil
}
