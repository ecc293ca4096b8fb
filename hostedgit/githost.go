/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package hostedgit

import (
	"net/url"
	"strings"
)

// Representation names the form a hosted URL was written in.
type Representation string

const (
	RepresentationShortcut Representation = "shortcut"
	RepresentationSSHURL   Representation = "sshurl"
	RepresentationHTTPS    Representation = "https"
	RepresentationHTTP     Representation = "http"
	RepresentationGit      Representation = "git"
)

func representationFor(protocol string) Representation {
	switch protocol {
	case "git+ssh:", "ssh:":
		return RepresentationSSHURL
	case "git+https:":
		return RepresentationHTTPS
	case "git:":
		return RepresentationGit
	}
	return Representation(strings.TrimSuffix(protocol, ":"))
}

// GitHost is a repository on a known hosting service. Values returned by a
// Parser are copies and may be modified freely.
type GitHost struct {
	Provider   Provider `json:"provider" yaml:"provider"`
	User       string   `json:"user,omitempty" yaml:"user,omitempty"`
	Project    string   `json:"project" yaml:"project"`
	Committish string   `json:"committish,omitempty" yaml:"committish,omitempty"`
	// Auth is "user" or "user:password" taken from an authenticated URL.
	Auth                  string         `json:"auth,omitempty" yaml:"auth,omitempty"`
	DefaultRepresentation Representation `json:"defaultRepresentation" yaml:"defaultRepresentation"`
}

// MarshalText renders the provider by name.
func (p Provider) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// TemplateOptions adjust how a GitHost is rendered.
type TemplateOptions struct {
	// NoCommittish drops the committish fragment.
	NoCommittish bool
	// NoGitPlus strips a leading "git+" from the result.
	NoGitPlus bool
	// Committish overrides the host's own committish when non-empty.
	Committish string
}

func (h *GitHost) committish(opts TemplateOptions) string {
	switch {
	case opts.NoCommittish:
		return ""
	case opts.Committish != "":
		return opts.Committish
	}
	return h.Committish
}

func finish(rendered string, opts TemplateOptions) string {
	if opts.NoGitPlus {
		return strings.TrimPrefix(rendered, "git+")
	}
	return rendered
}

// join concatenates parts, or returns "" if any part is empty.
func join(parts ...string) string {
	for _, p := range parts {
		if p == "" {
			return ""
		}
	}
	return strings.Join(parts, "")
}

// repoPath is "user/project", or just "project" for gists.
func (h *GitHost) repoPath() string {
	if h.Provider == Gist || h.User == "" {
		return h.Project
	}
	return h.User + "/" + h.Project
}

// Shortcut renders "provider:user/project#committish".
func (h *GitHost) Shortcut(opts TemplateOptions) string {
	return finish(h.Provider.String()+":"+h.repoPath()+join("#", h.committish(opts)), opts)
}

// SSH renders the scp-like "git@domain:user/project.git#committish".
func (h *GitHost) SSH(opts TemplateOptions) string {
	return finish("git@"+h.Provider.Domain()+":"+h.repoPath()+".git"+join("#", h.committish(opts)), opts)
}

// SSHURL renders "git+ssh://git@domain/user/project.git#committish".
func (h *GitHost) SSHURL(opts TemplateOptions) string {
	return finish("git+ssh://git@"+h.Provider.Domain()+"/"+h.repoPath()+".git"+join("#", h.committish(opts)), opts)
}

// HTTPS renders "git+https://[auth@]domain/user/project.git#committish".
// SourceHut has no "git+" prefix.
func (h *GitHost) HTTPS(opts TemplateOptions) string {
	var b strings.Builder
	if h.Provider != SourceHut {
		b.WriteString("git+")
	}
	b.WriteString("https://")
	if h.Provider != Gist && h.Provider != SourceHut {
		b.WriteString(join(h.Auth, "@"))
	}
	b.WriteString(h.Provider.Domain() + "/" + h.repoPath() + ".git")
	b.WriteString(join("#", h.committish(opts)))
	return finish(b.String(), opts)
}

// Git renders the git protocol URL. Only GitHub and Gist serve it.
func (h *GitHost) Git(opts TemplateOptions) (string, bool) {
	var auth string
	switch h.Provider {
	case GitHub:
		auth = join(h.Auth, "@")
	case Gist:
	default:
		return "", false
	}
	return finish("git://"+auth+h.Provider.Domain()+"/"+h.repoPath()+".git"+join("#", h.committish(opts)), opts), true
}

// Tarball renders the archive download URL for the host's committish, or
// for opts.Committish when set.
func (h *GitHost) Tarball(opts TemplateOptions) (string, bool) {
	return TarballURL(h.Provider, h.User, h.Project, h.committish(opts))
}

// TarballURL renders the archive download URL of a hosted repository at
// committish, defaulting to HEAD.
func TarballURL(p Provider, user, project, committish string) (string, bool) {
	ref := "HEAD"
	if committish != "" {
		ref = url.PathEscape(committish)
	}
	domain := p.Domain()
	switch p {
	case GitHub:
		return "https://codeload." + domain + "/" + user + "/" + project + "/tar.gz/" + ref, true
	case Bitbucket:
		return "https://" + domain + "/" + user + "/" + project + "/get/" + ref + ".tar.gz", true
	case GitLab:
		return "https://" + domain + "/" + user + "/" + project + "/repository/archive.tar.gz?ref=" + ref, true
	case Gist:
		return "https://codeload.github.com/gist/" + project + "/tar.gz/" + ref, true
	case SourceHut:
		return "https://" + domain + "/" + user + "/" + project + "/archive/" + ref + ".tar.gz", true
	}
	return "", false
}

// String renders the host in its default representation.
func (h *GitHost) String() string {
	switch h.DefaultRepresentation {
	case RepresentationShortcut:
		return h.Shortcut(TemplateOptions{})
	case RepresentationSSHURL:
		return h.SSHURL(TemplateOptions{})
	case RepresentationGit:
		if s, ok := h.Git(TemplateOptions{}); ok {
			return s
		}
	}
	return h.HTTPS(TemplateOptions{})
}

func (h *GitHost) clone() *GitHost {
	if h == nil {
		return nil
	}
	c := *h
	return &c
}
