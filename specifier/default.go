/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"time"

	asimfs "bennypowers.dev/depspec/fs"
	"bennypowers.dev/depspec/git"
	"bennypowers.dev/depspec/hostedgit"
)

// Options configures NewDefaultResolver. Zero values select the real
// implementations.
type Options struct {
	FS asimfs.FileSystem

	// Hosts parses hosted-git URLs. Defaults to a Parser with CacheSize entries.
	Hosts     *hostedgit.Parser
	CacheSize int

	// Refs and Probe default to a git.Client whose commands are bounded by
	// GitTimeout, or git.DefaultTimeout when zero.
	Refs       RefLister
	Probe      RepoProber
	GitTimeout time.Duration

	// Public defaults to a git.HTTPProber. Set DisablePublicCheck to skip it.
	Public             PublicChecker
	DisablePublicCheck bool
}

// NewDefaultResolver creates a resolver chain that handles tarball URLs,
// git repositories and local paths, in that order.
func NewDefaultResolver(opts Options) *ChainResolver {
	if opts.FS == nil {
		opts.FS = asimfs.NewOSFileSystem()
	}
	if opts.Hosts == nil {
		opts.Hosts = hostedgit.NewParser(opts.CacheSize)
	}
	if opts.Refs == nil || opts.Probe == nil {
		timeout := opts.GitTimeout
		if timeout <= 0 {
			timeout = git.DefaultTimeout
		}
		client := git.NewClient(timeout)
		if opts.Refs == nil {
			opts.Refs = client
		}
		if opts.Probe == nil {
			opts.Probe = client
		}
	}
	if opts.Public == nil && !opts.DisablePublicCheck {
		opts.Public = git.NewHTTPProber(git.DefaultProbeTimeout)
	}

	return NewChainResolver(
		NewTarballResolver(),
		NewGitResolver(opts.Hosts, opts.Refs, opts.Probe, opts.Public),
		NewLocalResolver(opts.FS),
	)
}
