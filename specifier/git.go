/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"context"
	"regexp"
	"strings"

	"bennypowers.dev/depspec/hostedgit"
)

// schemePrefix matches a URL scheme plus an optional "git@" user.
var schemePrefix = regexp.MustCompile(`^.*://(git@)?`)

// RepoProber checks that git can reach a repository URL.
type RepoProber interface {
	Reachable(ctx context.Context, repo string) bool
}

// PublicChecker checks over HTTP whether a hosted repository is public.
type PublicChecker interface {
	IsPublic(ctx context.Context, httpsURL string) bool
}

// GitResolver resolves hosted-git shorthands and git URLs to a commit.
type GitResolver struct {
	hosts  *hostedgit.Parser
	refs   RefLister
	probe  RepoProber
	public PublicChecker
}

// NewGitResolver creates a git resolver. public may be nil to skip the
// HTTPS visibility check.
func NewGitResolver(hosts *hostedgit.Parser, refs RefLister, probe RepoProber, public PublicChecker) *GitResolver {
	return &GitResolver{hosts: hosts, refs: refs, probe: probe, public: public}
}

// CanResolve returns true for hosted repositories and git-protocol URLs.
func (r *GitResolver) CanResolve(wanted WantedDependency) bool {
	return r.hosts.FromURL(wanted.Pref) != nil || hasGitProtocol(wanted.Pref)
}

// Resolve pins the specifier to a commit. Hosted repositories reached
// anonymously over something other than ssh resolve to the host's tarball
// download.
func (r *GitResolver) Resolve(ctx context.Context, wanted WantedDependency, _ ResolveContext) (*ResolveResult, error) {
	spec, err := r.ParsePref(ctx, wanted.Pref)
	if err != nil {
		return nil, err
	}
	if spec == nil {
		return nil, &NotSupportedError{Alias: wanted.Alias, Pref: wanted.Pref}
	}

	pref := spec.GitCommittish
	if pref == "" {
		pref = "HEAD"
	}
	commit, err := ResolveRef(ctx, r.refs, spec.FetchSpec, pref, spec.GitRange)
	if err != nil {
		return nil, err
	}

	var resolution Resolution = GitRepositoryResolution{Repo: spec.FetchSpec, Commit: commit}
	if h := spec.Hosted; h != nil && !spec.NoTarball && !isSSH(spec.FetchSpec) {
		if tarball, ok := hostedgit.TarballURL(h.Provider, h.User, h.Project, commit); ok {
			resolution = TarballResolution{Tarball: tarball}
		}
	}

	return &ResolveResult{
		ID:             gitID(spec.FetchSpec, commit),
		NormalizedPref: spec.NormalizedPref,
		Resolution:     resolution,
		ResolvedVia:    ResolvedViaGitRepository,
	}, nil
}

func isSSH(fetchSpec string) bool {
	return strings.HasPrefix(fetchSpec, "git+ssh://") || strings.HasPrefix(fetchSpec, "git@")
}

// gitID builds "host+path/commit" from a fetch spec, e.g.
// "github.com/zkochan/is-negative/<sha>".
func gitID(fetchSpec, commit string) string {
	id := schemePrefix.ReplaceAllString(fetchSpec, "")
	id = strings.Replace(id, ":", "+", 1)
	id = strings.TrimSuffix(id, ".git")
	return id + "/" + commit
}
