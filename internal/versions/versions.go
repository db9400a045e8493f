// Package versions offers helpers for comparing release version strings.
package versions

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Parse accepts a release tag with or without a leading "v".
func Parse(tag string) (*semver.Version, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(tag, "v"))
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", tag, err)
	}
	return v, nil
}

// Newer reports whether candidate is strictly newer than current.
// Unparseable inputs compare as "not newer".
func Newer(candidate, current string) bool {
	cv, err := Parse(candidate)
	if err != nil {
		return false
	}
	cur, err := Parse(current)
	if err != nil {
		return false
	}
	return cv.GreaterThan(cur)
}

// MaxVersion returns the largest of the given version strings, as spelled by
// the caller. Entries that compare equal ("1.0.0" vs "v1.0.0") resolve to the
// earliest one. Returns an error if any entry does not parse or the list is
// empty.
func MaxVersion(vs []string) (string, error) {
	if len(vs) == 0 {
		return "", fmt.Errorf("no versions provided")
	}

	best := 0
	var bestParsed *semver.Version
	for i, raw := range vs {
		v, err := Parse(raw)
		if err != nil {
			return "", err
		}
		if bestParsed == nil || v.GreaterThan(bestParsed) {
			best, bestParsed = i, v
		}
	}
	return vs[best], nil
}
