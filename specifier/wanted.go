/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"regexp"
	"strings"
)

var scopedPackageName = regexp.MustCompile(`^(?:@([^/]+?)[/])?([^/]+?)$`)

// ParseWantedDependency splits "alias@pref" as typed on a command line. A
// leading "@" belongs to a scoped alias. When the part before the separator
// is not a valid package name the whole string is taken as the pref, so
// "github:user/repo#a@b" is not mistaken for an alias.
func ParseWantedDependency(raw string) WantedDependency {
	if len(raw) > 1 {
		if i := strings.Index(raw[1:], "@"); i > -1 {
			at := i + 1
			if alias := raw[:at]; ValidPackageName(alias) {
				return WantedDependency{Alias: alias, Pref: raw[at+1:]}
			}
			return WantedDependency{Pref: raw}
		}
	}
	if ValidPackageName(raw) {
		return WantedDependency{Alias: raw}
	}
	return WantedDependency{Pref: raw}
}

// ValidPackageName reports whether name is acceptable as an existing npm
// package name: non-empty, no leading "." or "_", no surrounding
// whitespace, not a reserved name, and URL-safe apart from a scope.
func ValidPackageName(name string) bool {
	switch {
	case name == "",
		strings.HasPrefix(name, "."),
		strings.HasPrefix(name, "_"),
		strings.TrimSpace(name) != name,
		strings.EqualFold(name, "node_modules"),
		strings.EqualFold(name, "favicon.ico"):
		return false
	}
	if uriComponentSafe(name) {
		return true
	}
	m := scopedPackageName.FindStringSubmatch(name)
	if m == nil {
		return false
	}
	return uriComponentSafe(m[1]) && uriComponentSafe(m[2])
}

// uriComponentSafe reports whether s survives encodeURIComponent unchanged.
func uriComponentSafe(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		case strings.IndexByte("-_.!~*'()", c) > -1:
		default:
			return false
		}
	}
	return true
}
