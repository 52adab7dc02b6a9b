// Package semver provides a minimal semantic version fingerprint.
package semver

import (
	"fmt"
	"strings"
)

type (
	// V is structured semantic version representation
	V struct {
		Major, Minor, Patch uint
		PreRelease          string
		BuildMetadata       []string
	}
)

func (v V) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.PreRelease != "" {
		s += "-" + v.PreRelease
	}
	if len(v.BuildMetadata) > 0 {
		s += "+" + strings.Join(v.BuildMetadata, ".")
	}
	return s
}
