/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWantedDependency(t *testing.T) {
	tests := []struct {
		raw  string
		want WantedDependency
	}{
		{"foo", WantedDependency{Alias: "foo"}},
		{"foo@1.0.0", WantedDependency{Alias: "foo", Pref: "1.0.0"}},
		{"@scope/foo", WantedDependency{Alias: "@scope/foo"}},
		{"@scope/foo@^2.0.0", WantedDependency{Alias: "@scope/foo", Pref: "^2.0.0"}},
		{"is-negative@github:zkochan/is-negative#2.0.1", WantedDependency{Alias: "is-negative", Pref: "github:zkochan/is-negative#2.0.1"}},
		{"github:user/repo#a@b", WantedDependency{Pref: "github:user/repo#a@b"}},
		{"../libs/shared", WantedDependency{Pref: "../libs/shared"}},
		{"link:../foo", WantedDependency{Pref: "link:../foo"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseWantedDependency(tt.raw))
		})
	}
}

func TestValidPackageName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"foo", true},
		{"foo-bar.baz_1", true},
		{"@scope/foo", true},
		{"Capitalized", true},
		{"", false},
		{".hidden", false},
		{"_private", false},
		{" padded ", false},
		{"node_modules", false},
		{"favicon.ico", false},
		{"foo/bar", false},
		{"@scope/foo/bar", false},
		{"github:user", false},
		{"with space", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidPackageName(tt.name))
		})
	}
}

func TestWantedDependency_String(t *testing.T) {
	assert.Equal(t, "foo@1.0.0", WantedDependency{Alias: "foo", Pref: "1.0.0"}.String())
}
