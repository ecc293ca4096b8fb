/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package hostedgit recognizes repository URLs on well-known git hosting
// services and renders them in the equivalent alternative forms (shortcut,
// https, ssh, git protocol and tarball download).
package hostedgit

import (
	"net/url"
	"strings"
)

// Provider identifies a git hosting service.
type Provider int

const (
	GitHub Provider = iota + 1
	Bitbucket
	GitLab
	Gist
	SourceHut
)

// Providers lists every known hosting service in lookup order.
var Providers = []Provider{GitHub, Bitbucket, GitLab, Gist, SourceHut}

type providerInfo struct {
	name      string
	domain    string
	treepath  string
	protocols []string
	extract   func(segments []string, fragment string) (Segments, bool)
}

var registry = map[Provider]providerInfo{
	GitHub: {
		name:      "github",
		domain:    "github.com",
		treepath:  "tree",
		protocols: []string{"git:", "http:", "git+ssh:", "git+https:", "ssh:", "https:"},
		extract:   extractGitHub,
	},
	Bitbucket: {
		name:      "bitbucket",
		domain:    "bitbucket.org",
		treepath:  "src",
		protocols: []string{"git+ssh:", "git+https:", "ssh:", "https:"},
		extract:   extractUserProject("get"),
	},
	GitLab: {
		name:      "gitlab",
		domain:    "gitlab.com",
		treepath:  "tree",
		protocols: []string{"git+ssh:", "git+https:", "ssh:", "https:"},
		extract:   extractGitLab,
	},
	Gist: {
		name:      "gist",
		domain:    "gist.github.com",
		protocols: []string{"git:", "git+ssh:", "git+https:", "ssh:", "https:"},
		extract:   extractGist,
	},
	SourceHut: {
		name:      "sourcehut",
		domain:    "git.sr.ht",
		treepath:  "tree",
		protocols: []string{"git+ssh:", "https:"},
		extract:   extractUserProject("archive"),
	},
}

var (
	byShortcut = make(map[string]Provider, len(Providers))
	byDomain   = make(map[string]Provider, len(Providers))
)

func init() {
	for _, p := range Providers {
		byShortcut[p.String()+":"] = p
		byDomain[p.Domain()] = p
	}
}

// String returns the provider name, which doubles as its shortcut protocol.
func (p Provider) String() string {
	if info, ok := registry[p]; ok {
		return info.name
	}
	return "unknown"
}

// Domain returns the host name the provider serves repositories from.
func (p Provider) Domain() string {
	return registry[p].domain
}

// Treepath returns the path segment used by the provider's tree browser,
// or the empty string when it has none.
func (p Provider) Treepath() string {
	return registry[p].treepath
}

// Protocols returns the URL schemes, including the trailing colon, that the
// provider accepts for full repository URLs.
func (p Provider) Protocols() []string {
	return append([]string(nil), registry[p].protocols...)
}

// Accepts reports whether protocol (for example "git+ssh:") is valid for p.
func (p Provider) Accepts(protocol string) bool {
	for _, candidate := range registry[p].protocols {
		if candidate == protocol {
			return true
		}
	}
	return false
}

// Extract pulls the user, project and committish out of a repository URL
// already known to be served by p. It reports false when the URL points
// somewhere other than a repository, such as a tarball or raw file.
func (p Provider) Extract(u *url.URL) (Segments, bool) {
	info, ok := registry[p]
	if !ok {
		return Segments{}, false
	}
	path := strings.TrimPrefix(u.EscapedPath(), "/")
	return info.extract(strings.Split(path, "/"), u.Fragment)
}

// LookupShortcut returns the provider whose shortcut protocol is protocol
// (for example "github:").
func LookupShortcut(protocol string) (Provider, bool) {
	p, ok := byShortcut[protocol]
	return p, ok
}

// LookupDomain returns the provider serving host. A leading "www." is ignored.
func LookupDomain(host string) (Provider, bool) {
	p, ok := byDomain[strings.TrimPrefix(strings.ToLower(host), "www.")]
	return p, ok
}

// Segments are the repository coordinates found in a hosted URL. User is
// empty for gists addressed by id alone.
type Segments struct {
	User       string
	Project    string
	Committish string
}

func segment(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}

func extractGitHub(parts []string, fragment string) (Segments, bool) {
	user, project := segment(parts, 0), segment(parts, 1)
	kind, committish := segment(parts, 2), segment(parts, 3)
	if kind != "" && kind != "tree" {
		return Segments{}, false
	}
	if kind == "" {
		committish = fragment
	}
	project = strings.TrimSuffix(project, ".git")
	if user == "" || project == "" {
		return Segments{}, false
	}
	return Segments{User: user, Project: project, Committish: committish}, true
}

// extractUserProject handles hosts laid out as /user/project with an
// auxiliary segment that marks a non-repository URL.
func extractUserProject(rejectAux string) func([]string, string) (Segments, bool) {
	return func(parts []string, fragment string) (Segments, bool) {
		user, project := segment(parts, 0), segment(parts, 1)
		if segment(parts, 2) == rejectAux {
			return Segments{}, false
		}
		project = strings.TrimSuffix(project, ".git")
		if user == "" || project == "" {
			return Segments{}, false
		}
		return Segments{User: user, Project: project, Committish: fragment}, true
	}
}

// GitLab nests projects under any number of groups, so everything before
// the final segment is the user.
func extractGitLab(parts []string, fragment string) (Segments, bool) {
	path := strings.Join(parts, "/")
	if strings.Contains(path, "/-/") || strings.Contains(path, "/archive.tar.gz") {
		return Segments{}, false
	}
	project := strings.TrimSuffix(parts[len(parts)-1], ".git")
	user := strings.Join(parts[:len(parts)-1], "/")
	if user == "" || project == "" {
		return Segments{}, false
	}
	return Segments{User: user, Project: project, Committish: fragment}, true
}

func extractGist(parts []string, fragment string) (Segments, bool) {
	user, project := segment(parts, 0), segment(parts, 1)
	if segment(parts, 2) == "raw" {
		return Segments{}, false
	}
	if project == "" {
		if user == "" {
			return Segments{}, false
		}
		user, project = "", user
	}
	project = strings.TrimSuffix(project, ".git")
	if project == "" {
		return Segments{}, false
	}
	return Segments{User: user, Project: project, Committish: fragment}, true
}
