/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"context"
	"strings"
)

// repositoryHosts serve repository pages that look like tarball URLs.
var repositoryHosts = map[string]bool{
	"github.com":    true,
	"gitlab.com":    true,
	"bitbucket.org": true,
}

// TarballResolver resolves plain http(s) tarball URLs.
type TarballResolver struct{}

// NewTarballResolver creates a resolver for remote tarball URLs.
func NewTarballResolver() *TarballResolver {
	return &TarballResolver{}
}

// CanResolve accepts http: and https: URLs that are not repository pages.
func (r *TarballResolver) CanResolve(wanted WantedDependency) bool {
	pref := wanted.Pref
	if !strings.HasPrefix(pref, "http:") && !strings.HasPrefix(pref, "https:") {
		return false
	}
	return !isRepository(pref)
}

// Resolve uses the URL itself as the tarball location.
func (r *TarballResolver) Resolve(_ context.Context, wanted WantedDependency, _ ResolveContext) (*ResolveResult, error) {
	return &ResolveResult{
		ID:             "@" + strings.ReplaceAll(schemePrefix.ReplaceAllString(wanted.Pref, ""), ":", "+"),
		NormalizedPref: wanted.Pref,
		Resolution:     TarballResolution{Tarball: wanted.Pref},
		ResolvedVia:    ResolvedViaURL,
	}, nil
}

// isRepository reports whether pref is exactly https://<host>/<user>/<repo>
// on a known repository host.
func isRepository(pref string) bool {
	pref = strings.TrimSuffix(pref, "/")
	parts := strings.Split(pref, "/")
	return len(parts) == 5 && repositoryHosts[parts[2]]
}
