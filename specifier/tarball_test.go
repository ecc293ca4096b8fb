/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTarballResolver_CanResolve(t *testing.T) {
	tests := []struct {
		pref string
		want bool
	}{
		{"https://registry.example.com/foo/-/foo-1.0.0.tgz", true},
		{"http://example.com/pkg.tar.gz", true},
		{"https://github.com/user/repo/archive/main.tar.gz", true},
		{"https://github.com/user/repo", false},
		{"https://github.com/user/repo/", false},
		{"https://gitlab.com/group/repo", false},
		{"https://bitbucket.org/user/repo", false},
		{"https://example.com/user/repo", true},
		{"git+https://github.com/user/repo.git", false},
		{"file:../pkg.tgz", false},
		{"1.0.0", false},
	}

	r := NewTarballResolver()
	for _, tt := range tests {
		t.Run(tt.pref, func(t *testing.T) {
			assert.Equal(t, tt.want, r.CanResolve(WantedDependency{Pref: tt.pref}))
		})
	}
}

func TestTarballResolver_Resolve(t *testing.T) {
	tests := []struct {
		pref string
		id   string
	}{
		{"https://registry.example.com/foo/-/foo-1.0.0.tgz", "@registry.example.com/foo/-/foo-1.0.0.tgz"},
		{"http://localhost:4873/foo/-/foo-1.0.0.tgz", "@localhost+4873/foo/-/foo-1.0.0.tgz"},
	}

	r := NewTarballResolver()
	for _, tt := range tests {
		t.Run(tt.pref, func(t *testing.T) {
			result, err := r.Resolve(context.Background(), WantedDependency{Alias: "foo", Pref: tt.pref}, ResolveContext{})
			require.NoError(t, err)

			assert.Equal(t, tt.id, result.ID)
			assert.Equal(t, tt.pref, result.NormalizedPref)
			assert.Equal(t, TarballResolution{Tarball: tt.pref}, result.Resolution)
			assert.Equal(t, ResolvedViaURL, result.ResolvedVia)
			assert.Nil(t, result.Manifest)
		})
	}
}
