/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package hostedgit

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"

	"bennypowers.dev/depspec/internal/logger"
)

// DefaultCacheSize bounds the number of memoized FromURL lookups.
const DefaultCacheSize = 1000

// ErrInvalidURL is returned when a string cannot be read as an absolute URL.
var ErrInvalidURL = errors.New("invalid git URL")

var knownProtocols = map[string]bool{
	"http:":      true,
	"https:":     true,
	"git:":       true,
	"git+ssh:":   true,
	"git+https:": true,
	"ssh:":       true,
}

// authProtocols are the schemes whose userinfo is carried over into GitHost.Auth.
var authProtocols = map[string]bool{
	"git:":       true,
	"https:":     true,
	"git+https:": true,
	"http:":      true,
	"git+http:":  true,
}

func init() {
	for _, p := range Providers {
		knownProtocols[p.String()+":"] = true
	}
}

// Parser turns specifiers into GitHost values, memoizing both hits and
// misses in a bounded LRU cache. It is safe for concurrent use.
type Parser struct {
	cache *lru.Cache[string, *GitHost]
}

// NewParser creates a Parser whose cache holds up to size entries.
// A non-positive size selects DefaultCacheSize.
func NewParser(size int) *Parser {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, *GitHost](size)
	if err != nil {
		// lru.New only fails for non-positive sizes.
		panic(err)
	}
	return &Parser{cache: cache}
}

// FromURL returns the hosted repository raw refers to, or nil when raw is
// not a recognizable hosted-git specifier.
func (p *Parser) FromURL(raw string) *GitHost {
	if host, ok := p.cache.Get(raw); ok {
		return host.clone()
	}
	host := parse(raw)
	p.cache.Add(raw, host)
	return host.clone()
}

// Len reports the number of cached lookups.
func (p *Parser) Len() int {
	return p.cache.Len()
}

var defaultParser = NewParser(DefaultCacheSize)

// FromURL parses raw with a process-wide Parser.
func FromURL(raw string) *GitHost {
	return defaultParser.FromURL(raw)
}

func parse(raw string) *GitHost {
	candidate := correctProtocol(raw)
	if IsGitHubShorthand(raw) {
		candidate = "github:" + raw
	}

	u, err := parseGitURL(candidate)
	if err != nil {
		logger.Debug("not a hosted git URL: %q: %v", raw, err)
		return nil
	}

	protocol := strings.ToLower(u.Scheme) + ":"
	host := &GitHost{}

	if provider, ok := LookupShortcut(protocol); ok {
		host.Provider = provider
		if !fillFromShortcut(host, u) {
			return nil
		}
		return host
	}

	provider, ok := LookupDomain(u.Hostname())
	if !ok || !provider.Accepts(protocol) {
		return nil
	}
	segments, ok := provider.Extract(u)
	if !ok {
		return nil
	}
	host.Provider = provider
	host.User = unescape(segments.User)
	host.Project = unescape(segments.Project)
	host.Committish = unescape(segments.Committish)
	host.DefaultRepresentation = representationFor(protocol)
	if authProtocols[protocol] && u.User != nil {
		host.Auth = u.User.Username()
		if password, set := u.User.Password(); set && password != "" {
			host.Auth += ":" + password
		}
	}
	return host
}

// fillFromShortcut reads "provider:[user/]project[#committish]". Anything
// up to an "@" is discarded.
func fillFromShortcut(host *GitHost, u *url.URL) bool {
	pathname := u.Opaque
	if pathname == "" {
		pathname = u.EscapedPath()
	}
	pathname = strings.TrimPrefix(pathname, "/")
	if i := strings.Index(pathname, "@"); i > -1 {
		pathname = pathname[i+1:]
	}

	project := pathname
	if i := strings.LastIndex(pathname, "/"); i > -1 {
		host.User = unescape(pathname[:i])
		project = pathname[i+1:]
	}
	host.Project = strings.TrimSuffix(unescape(project), ".git")
	if host.Project == "" {
		return false
	}
	host.Committish = u.Fragment
	host.DefaultRepresentation = RepresentationShortcut
	return true
}

func unescape(s string) string {
	if decoded, err := url.PathUnescape(s); err == nil {
		return decoded
	}
	return s
}

// parseGitURL parses raw as an absolute URL, retrying once with the
// scp-style rewrite of correctURL.
func parseGitURL(raw string) (*url.URL, error) {
	u, err := parseAbsolute(raw)
	if err == nil {
		return u, nil
	}
	return parseAbsolute(correctURL(raw))
}

func parseAbsolute(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("%w: %q has no scheme", ErrInvalidURL, raw)
	}
	return u, nil
}

// IsGitHubShorthand reports whether arg has the bare "user/repo[#ref]" shape.
// Spaces, "@" and ":" may only appear in the fragment, there must be exactly
// one slash before it, and the repository part must not start with "." or
// end with "/".
func IsGitHubShorthand(arg string) bool {
	firstHash := strings.Index(arg, "#")
	firstSlash := strings.Index(arg, "/")
	secondSlash := -1
	if firstSlash > -1 {
		if i := strings.Index(arg[firstSlash+1:], "/"); i > -1 {
			secondSlash = firstSlash + 1 + i
		}
	}
	firstColon := strings.Index(arg, ":")
	firstSpace := strings.IndexFunc(arg, unicode.IsSpace)
	firstAt := strings.Index(arg, "@")

	return onlyInFragment(firstSpace, firstHash) &&
		onlyInFragment(firstAt, firstHash) &&
		onlyInFragment(firstColon, firstHash) &&
		onlyInFragment(secondSlash, firstHash) &&
		firstSlash > 0 &&
		!endsWithSlash(arg, firstHash) &&
		!strings.HasPrefix(arg, ".")
}

// onlyInFragment reports whether a character found at idx is absent or
// appears after the fragment marker at hash.
func onlyInFragment(idx, hash int) bool {
	return idx == -1 || (hash > -1 && idx > hash)
}

func endsWithSlash(arg string, hash int) bool {
	if hash > -1 {
		return hash > 0 && arg[hash-1] == '/'
	}
	return strings.HasSuffix(arg, "/")
}

// correctProtocol supplies the "//" a URL parser needs after an unknown
// scheme, and turns "user@host:path" into a git+ssh URL.
func correctProtocol(raw string) string {
	firstColon := strings.Index(raw, ":")
	proto := raw[:firstColon+1]
	if knownProtocols[proto] {
		return raw
	}

	if firstAt := strings.Index(raw, "@"); firstAt > -1 {
		if firstAt > firstColon {
			return "git+ssh://" + raw
		}
		return raw
	}

	if strings.Index(raw, "//") == firstColon+1 {
		return raw
	}
	return proto + "//" + raw[firstColon+1:]
}

// correctURL rewrites scp-like "host:path" into "host/path" and adds a
// git+ssh scheme when none remains.
func correctURL(raw string) string {
	firstAt := strings.Index(raw, "@")
	beforeHash := raw
	if lastHash := strings.LastIndex(raw, "#"); lastHash > -1 {
		beforeHash = raw[:lastHash]
	}
	lastColon := strings.LastIndex(beforeHash, ":")
	firstColon := strings.Index(raw, ":")

	corrected := raw
	if lastColon > firstAt {
		corrected = raw[:lastColon] + "/" + raw[lastColon+1:]
		firstColon = strings.Index(corrected, ":")
	}
	if firstColon == -1 && !strings.Contains(raw, "//") {
		corrected = "git+ssh://" + corrected
	}
	return corrected
}
