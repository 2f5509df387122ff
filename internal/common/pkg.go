package common

import "strings"

// UnknownStr is the String() fallback for out-of-range enum values.
const UnknownStr = "unknown"

// SplitTag splits a "prefix:name" tag into its parts.
// A tag without a colon has an empty prefix.
func SplitTag(tag string) (prefix, name string) {
	if i := strings.IndexByte(tag, ':'); i >= 0 {
		return tag[:i], tag[i+1:]
	}

	return "", tag
}

// JoinTag is the inverse of SplitTag.
func JoinTag(prefix, name string) string {
	if prefix == "" {
		return name
	}

	return prefix + ":" + name
}
