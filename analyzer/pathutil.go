package analyzer

import (
	"os"
	"path/filepath"
	"strings"
)

// HasFilePathPrefix reports whether the filesystem path s begins with the
// elements in prefix. Both paths are expected to be clean.
func HasFilePathPrefix(s, prefix string) bool {
	sv, pv := filepath.VolumeName(s), filepath.VolumeName(prefix)
	s, prefix = s[len(sv):], prefix[len(pv):]

	switch {
	case !strings.EqualFold(sv, pv):
		return false
	case len(s) == len(prefix):
		return s == prefix
	case prefix == "":
		return true
	case len(s) > len(prefix):
		if prefix[len(prefix)-1] == filepath.Separator {
			return strings.HasPrefix(s, prefix)
		}
		return s[len(prefix)] == filepath.Separator && s[:len(prefix)] == prefix
	}
	return false
}

// TrimFilePathPrefix returns s without the leading path elements in prefix.
// If s does not start with prefix it is returned unchanged; if s equals
// prefix the result is "".
func TrimFilePathPrefix(s, prefix string) string {
	if prefix == "" || !HasFilePathPrefix(s, prefix) {
		return s
	}
	trimmed := s[len(prefix):]
	if len(trimmed) > 0 && os.IsPathSeparator(trimmed[0]) {
		trimmed = trimmed[1:]
	}
	return trimmed
}

// RelativePath shows path relative to base when it lies beneath it.
func RelativePath(base, path string) string {
	if base == "" {
		return path
	}
	rel := TrimFilePathPrefix(filepath.Clean(path), filepath.Clean(base))
	if rel == "" {
		return "."
	}
	return rel
}
