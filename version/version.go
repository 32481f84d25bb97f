/*package version tracks the version of the tool and of the files it writes.*/
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SourceVersion is the semantic version number of the source code. Table
// files are stamped with it when they're written.
const SourceVersion = "1.1.0"

// ErrBadVersion is returned for strings which are not semantic versions.
var ErrBadVersion = errors.New(
	"version string does not take the form of three " +
		"period-separated non-negative numbers",
)

// Parse parses a semantic version number string and returns an error if
// the string is invalid.
func Parse(s string) (major, minor, patch int, err error) {
	toks := strings.Split(s, ".")
	if len(toks) != 3 {
		return -1, -1, -1, fmt.Errorf("'%s': %w", s, ErrBadVersion)
	}

	out := [3]int{}
	for i := range toks {
		out[i], err = strconv.Atoi(toks[i])
		if err != nil || out[i] < 0 {
			return -1, -1, -1, fmt.Errorf("'%s': %w", s, ErrBadVersion)
		}
	}

	return out[0], out[1], out[2], nil
}

// Later returns true if s1 represents a later version of the source than
// s2. An error is returned if either is invalid.
func Later(s1, s2 string) (bool, error) {
	major1, minor1, patch1, err := Parse(s1)
	if err != nil {
		return false, err
	}
	major2, minor2, patch2, err := Parse(s2)
	if err != nil {
		return false, err
	}

	switch {
	case major1 != major2:
		return major1 > major2, nil
	case minor1 != minor2:
		return minor1 > minor2, nil
	}
	return patch1 > patch2, nil
}

// Readable returns an error if a file written by version s can't be read by
// this source: files from a different major version or from a later
// version are rejected.
func Readable(s string) error {
	later, err := Later(s, SourceVersion)
	if err != nil {
		return err
	}
	major, _, _, _ := Parse(s)
	sourceMajor, _, _, _ := Parse(SourceVersion)

	if later || major != sourceMajor {
		return fmt.Errorf(
			"the file was written by version %s, but this is version %s",
			s, SourceVersion,
		)
	}
	return nil
}
