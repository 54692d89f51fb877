package pandoc

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Version is a dotted integer version, either a pandoc api version
// ("1.23.1") or a pandoc release version ("3.1.2").
type Version []int

// Newest api version of the in-memory element model. Decoded documents of
// any supported older version are normalized to this shape.
var APIVersion = Version{1, 23, 1}

// MinAPIVersion is the absolute floor of supported api versions; anything
// below it has a wire shape this library does not read or write.
var MinAPIVersion = Version{1, 12, 3}

// Api versions at which wire shapes changed.
var (
	v116 = Version{1, 16} // SoftBreak and Link/Image attributes introduced
	v117 = Version{1, 17} // flat document object replaced the legacy array
	v118 = Version{1, 18} // LineBlock introduced
)

// ParseVersion parses a dotted version string. A version must have at
// least a major and a minor component.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) < 2 {
		return nil, &ArityError{Name: "version " + strconv.Quote(s), Want: 2, Got: len(parts)}
	}
	v := make(Version, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid version %q", s)
		}
		v[i] = n
	}
	return v, nil
}

// MustParseVersion is ParseVersion for static version literals.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	var sb strings.Builder
	for i, n := range v {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(n))
	}
	return sb.String()
}

// Compare orders versions component-wise; a shorter version that is a
// prefix of a longer one is the smaller ("1.23" < "1.23.1").
func (v Version) Compare(o Version) int {
	for i := 0; i < len(v); i++ {
		if i >= len(o) {
			return 1
		}
		if v[i] != o[i] {
			if v[i] > o[i] {
				return 1
			}
			return -1
		}
	}
	if len(v) < len(o) {
		return -1
	}
	return 0
}

// AtLeast reports whether v >= o.
func (v Version) AtLeast(o Version) bool { return v.Compare(o) >= 0 }

// The compatibility table: for each api revision, the first pandoc
// release that produces it. Ordered newest first; lookups walk the table
// and take the first containing entry.
var compatTable = []struct {
	api    Version
	pandoc Version
}{
	{Version{1, 23}, Version{3, 0}},
	{Version{1, 22}, Version{2, 11}},
	{Version{1, 21}, Version{2, 10}},
	{Version{1, 20}, Version{2, 8}},
	{Version{1, 19}, Version{2, 0}},
	{Version{1, 18}, Version{1, 18}},
	{Version{1, 17}, Version{1, 17}},
	{Version{1, 16}, Version{1, 16}},
	{Version{1, 12, 3}, Version{1, 12, 1}},
}

// MinimumPandocVersion returns the oldest pandoc release able to consume
// a document of the given api version. Api versions below the supported
// floor yield UnsupportedVersionError.
func MinimumPandocVersion(api Version) (Version, error) {
	for _, e := range compatTable {
		if api.AtLeast(e.api) {
			return e.pandoc, nil
		}
	}
	return nil, &UnsupportedVersionError{Version: api}
}

// RequiredAPIVersion returns the api version a given pandoc release
// requires. Releases older than the floor release yield
// UnsupportedVersionError.
func RequiredAPIVersion(release Version) (Version, error) {
	for _, e := range compatTable {
		if release.AtLeast(e.pandoc) {
			return e.api, nil
		}
	}
	return nil, &UnsupportedVersionError{Version: release}
}

// ParsePandocVersionOutput extracts the release version from the banner a
// pandoc-style collaborator prints for a "--version" query, e.g.
// "pandoc 3.1.2\nFeatures: ...". Only the first line is inspected.
func ParsePandocVersionOutput(out string) (Version, error) {
	line := out
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, errors.New("empty version output")
	}
	v, err := ParseVersion(fields[len(fields)-1])
	if err != nil {
		return nil, errors.Wrap(err, "parsing pandoc version output")
	}
	return v, nil
}
