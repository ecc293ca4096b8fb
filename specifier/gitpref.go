/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"bennypowers.dev/depspec/hostedgit"
	"bennypowers.dev/depspec/internal/logger"
)

// gitProtocols are the schemes that mark a specifier as a plain git URL.
var gitProtocols = map[string]bool{
	"git":       true,
	"git+http":  true,
	"git+https": true,
	"git+rsync": true,
	"git+ftp":   true,
	"git+file":  true,
	"git+ssh":   true,
	"ssh":       true,
}

var (
	// scpColon matches the host:path separator of an scp-like URL, but not
	// a numeric port followed by a path.
	scpColon = regexp.MustCompile(`:([^/\d]|\d+[^:/\d])`)

	gitSCP     = regexp.MustCompile(`(?i)^git\+ssh://([^:]+:[^#]+(?:\.git)?)(?:#(.*))$`)
	portInPath = regexp.MustCompile(`(?i):[0-9]+/?.*$`)
)

// HostedPackageSpec is a git specifier with its fetch location decided.
type HostedPackageSpec struct {
	// FetchSpec is the URL handed to git.
	FetchSpec string

	// Hosted is set when the repository lives on a known hosting service.
	Hosted *hostedgit.GitHost

	NormalizedPref string

	// GitCommittish is the branch, tag or commit to check out. Empty means HEAD.
	GitCommittish string

	// GitRange is a semver range from a "semver:" committish.
	GitRange string

	// NoTarball is set when the repository is fetched with credentials, so
	// the host's anonymous archive download cannot serve it.
	NoTarball bool
}

// splitCommittish separates a "semver:<range>" committish from a plain one.
func splitCommittish(committish string) (gitRange, gitCommittish string) {
	if r, ok := strings.CutPrefix(committish, "semver:"); ok {
		return r, ""
	}
	return "", committish
}

func hasGitProtocol(pref string) bool {
	scheme, _, ok := strings.Cut(pref, ":")
	return ok && gitProtocols[strings.ToLower(scheme)]
}

// ParsePref reads pref as a git specifier. It returns nil, nil when pref is
// neither a hosted repository nor a URL with a git protocol.
func (r *GitResolver) ParsePref(ctx context.Context, pref string) (*HostedPackageSpec, error) {
	if host := r.hosts.FromURL(pref); host != nil {
		return r.fromHostedGit(ctx, host), nil
	}
	if !hasGitProtocol(pref) {
		return nil, nil
	}

	u, err := url.Parse(escapeColon(pref))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSpec, pref, err)
	}

	if strings.EqualFold(u.Scheme, "git+ssh") {
		if fetchSpec, committish, ok := matchGitSCP(pref); ok {
			return &HostedPackageSpec{
				FetchSpec:      fetchSpec,
				NormalizedPref: pref,
				GitCommittish:  committish,
			}, nil
		}
	}

	gitRange, committish := splitCommittish(u.Fragment)
	return &HostedPackageSpec{
		FetchSpec:      urlToFetchSpec(u),
		NormalizedPref: pref,
		GitCommittish:  committish,
		GitRange:       gitRange,
	}, nil
}

// fromHostedGit picks the URL git should fetch from: the git protocol (or
// scp-like ssh) when reachable, then authenticated https, then public
// https, falling back to ssh.
func (r *GitResolver) fromHostedGit(ctx context.Context, host *hostedgit.GitHost) *HostedPackageSpec {
	gitRange, committish := splitCommittish(host.Committish)
	spec := &HostedPackageSpec{
		Hosted:         host,
		NormalizedPref: host.Shortcut(hostedgit.TemplateOptions{}),
		GitCommittish:  committish,
		GitRange:       gitRange,
	}

	bare := hostedgit.TemplateOptions{NoCommittish: true}
	gitURL, ok := host.Git(bare)
	if !ok {
		gitURL = host.SSH(bare)
	}
	if r.probe.Reachable(ctx, gitURL) {
		spec.FetchSpec = gitURL
		return spec
	}

	httpsURL := host.HTTPS(hostedgit.TemplateOptions{NoCommittish: true, NoGitPlus: true})
	if host.Auth != "" {
		if r.probe.Reachable(ctx, httpsURL) {
			spec.FetchSpec = httpsURL
			spec.NormalizedPref = "git+" + httpsURL
			spec.NoTarball = true
			return spec
		}
		logger.Debug("authenticated %s is not reachable", host.Shortcut(bare))
	}
	// git ls-remote prompts for credentials on private repositories, so
	// public visibility is checked over plain HTTP instead.
	if r.public != nil && r.public.IsPublic(ctx, httpsURL) {
		spec.FetchSpec = httpsURL
		return spec
	}

	spec.FetchSpec = host.SSHURL(bare)
	return spec
}

// escapeColon rewrites the first scp-style "host:path" colon after each "@"
// into "host:/path" so the result parses as a URL.
func escapeColon(raw string) string {
	if !strings.Contains(raw, "@") {
		return raw
	}
	parts := strings.Split(raw, "@")
	for i := 1; i < len(parts); i++ {
		parts[i] = replaceFirst(scpColon, parts[i])
	}
	return strings.Join(parts, "@")
}

func replaceFirst(re *regexp.Regexp, s string) string {
	loc := re.FindStringSubmatchIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + ":/" + s[loc[2]:loc[3]] + s[loc[1]:]
}

// matchGitSCP recognizes "git+ssh://host:path#committish", where path is
// not a port number, and returns the scp-like fetch spec.
func matchGitSCP(pref string) (fetchSpec, committish string, ok bool) {
	m := gitSCP.FindStringSubmatch(pref)
	if m == nil || portInPath.MatchString(m[1]) {
		return "", "", false
	}
	return m[1], m[2], true
}

// urlToFetchSpec drops the fragment and any "git+" prefix.
func urlToFetchSpec(u *url.URL) string {
	clean := *u
	clean.Fragment = ""
	clean.RawFragment = ""
	// An empty port left over from escapeColon is not part of the address.
	clean.Host = strings.TrimSuffix(clean.Host, ":")
	return strings.TrimPrefix(clean.String(), "git+")
}
