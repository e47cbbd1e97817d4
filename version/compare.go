// Package version reports the build version and checks GitHub for newer releases.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// semver is major, minor and patch. Pre-release and build suffixes are dropped.
type semver [3]int

func parseSemver(s string) (semver, error) {
	var v semver

	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	if core, _, found := strings.Cut(s, "-"); found {
		s = core
	}
	s, _, _ = strings.Cut(s, "+")

	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return v, fmt.Errorf("invalid version %q", s)
	}

	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return v, fmt.Errorf("invalid version %q", s)
		}
		v[i] = n
	}

	return v, nil
}

// Compare returns 1 if a is newer than b, -1 if older and 0 if equal.
func Compare(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, err
	}

	bv, err := parseSemver(b)
	if err != nil {
		return 0, err
	}

	for i := range av {
		switch {
		case av[i] > bv[i]:
			return 1, nil
		case av[i] < bv[i]:
			return -1, nil
		}
	}

	return 0, nil
}
