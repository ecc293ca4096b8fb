/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidSpec is returned for specifiers that cannot be parsed.
	ErrInvalidSpec = errors.New("invalid specifier")

	// ErrUnsupportedProtocol is returned for path: specifiers.
	ErrUnsupportedProtocol = errors.New("unsupported protocol")

	// ErrRefNotFound is returned when a named ref is absent from the remote.
	ErrRefNotFound = errors.New("ref not found")

	// ErrRangeNotSatisfied is returned when no tag satisfies a semver range.
	ErrRangeNotSatisfied = errors.New("no version satisfies range")

	// ErrIntegrityRead is returned when a local tarball cannot be hashed.
	ErrIntegrityRead = errors.New("cannot read tarball for integrity")

	// ErrSpecNotSupported is returned when no resolver accepts a specifier.
	ErrSpecNotSupported = errors.New("specifier not supported by any resolver")
)

// RefError reports a committish or semver range that matched no commit.
type RefError struct {
	Repo      string
	Ref       string
	Range     string
	Available []string
}

func (e *RefError) Error() string {
	if e.Range != "" {
		return fmt.Sprintf("Could not resolve %s to a commit of %s. Available versions are %s",
			e.Range, e.Repo, strings.Join(e.Available, ", "))
	}
	return fmt.Sprintf("Could not resolve %s to a commit of %s.", e.Ref, e.Repo)
}

func (e *RefError) Is(target error) bool {
	if e.Range != "" {
		return target == ErrRangeNotSatisfied
	}
	return target == ErrRefNotFound
}

// NotSupportedError names a dependency that no resolver accepted.
type NotSupportedError struct {
	Alias string
	Pref  string
}

func (e *NotSupportedError) Error() string {
	name := e.Pref
	if e.Alias != "" {
		name = e.Alias + "@" + e.Pref
	}
	return fmt.Sprintf("SPEC_NOT_SUPPORTED_BY_ANY_RESOLVER: %s isn't supported by any available resolver.", name)
}

func (e *NotSupportedError) Is(target error) bool {
	return target == ErrSpecNotSupported
}

// UnsupportedProtocolError rejects a path: specifier.
type UnsupportedProtocolError struct {
	Pref string
}

func (e *UnsupportedProtocolError) Error() string {
	return "PATH_IS_UNSUPPORTED_PROTOCOL\nLocal dependencies via `path:` protocol are not supported. " +
		"Use the `link:` protocol for folder dependencies and `file:` for local tarballs"
}

func (e *UnsupportedProtocolError) Is(target error) bool {
	return target == ErrUnsupportedProtocol
}

func unsupportedProtocol(pref string) error {
	return &UnsupportedProtocolError{Pref: pref}
}
