/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package specifier resolves dependency specifiers (git URLs and shorthands,
// tarball URLs, and local file:, link: and workspace: paths) into lockfile
// resolutions.
package specifier

import (
	"bennypowers.dev/depspec/manifest"
)

// WantedDependency is a dependency as declared by a project.
type WantedDependency struct {
	// Alias is the name the dependency is installed under. It may be empty.
	Alias string `json:"alias,omitempty" yaml:"alias,omitempty"`

	// Pref is the raw specifier, e.g. "github:user/repo#v1.0.0" or "file:../pkg".
	Pref string `json:"pref,omitempty" yaml:"pref,omitempty"`

	// Injected dependencies are copied into place rather than symlinked.
	Injected bool `json:"injected,omitempty" yaml:"injected,omitempty"`
}

func (w WantedDependency) String() string {
	return w.Alias + "@" + w.Pref
}

// ResolveContext carries the directories a resolution is relative to.
type ResolveContext struct {
	// ProjectDir is the directory of the project declaring the dependency.
	ProjectDir string

	// LockfileDir is the directory holding the lockfile. It defaults to ProjectDir.
	LockfileDir string
}

func (c ResolveContext) lockfileDir() string {
	if c.LockfileDir == "" {
		return c.ProjectDir
	}
	return c.LockfileDir
}

// ResolvedVia names the resolver that produced a ResolveResult.
type ResolvedVia int

const (
	ResolvedViaNpmRegistry ResolvedVia = iota + 1
	ResolvedViaGitRepository
	ResolvedViaLocalFilesystem
	ResolvedViaURL
)

func (v ResolvedVia) String() string {
	switch v {
	case ResolvedViaNpmRegistry:
		return "npm-registry"
	case ResolvedViaGitRepository:
		return "git-repository"
	case ResolvedViaLocalFilesystem:
		return "local-filesystem"
	case ResolvedViaURL:
		return "url"
	}
	return "unknown"
}

// MarshalText renders the resolver name.
func (v ResolvedVia) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Resolution describes where a resolved dependency's contents come from.
// It is one of TarballResolution, DirectoryResolution or GitRepositoryResolution.
type Resolution interface {
	// Type is the lockfile "type" discriminator.
	Type() string
}

// TarballResolution points at a tarball, remote or on disk.
type TarballResolution struct {
	Tarball   string `json:"tarball" yaml:"tarball"`
	Integrity string `json:"integrity,omitempty" yaml:"integrity,omitempty"`
	Registry  string `json:"registry,omitempty" yaml:"registry,omitempty"`
}

// Type implements Resolution.
func (TarballResolution) Type() string { return "tarball" }

// DirectoryResolution points at a local package directory.
type DirectoryResolution struct {
	Directory string `json:"directory" yaml:"directory"`
}

// Type implements Resolution.
func (DirectoryResolution) Type() string { return "directory" }

// GitRepositoryResolution pins a repository to a commit.
type GitRepositoryResolution struct {
	Repo   string `json:"repo" yaml:"repo"`
	Commit string `json:"commit" yaml:"commit"`
}

// Type implements Resolution.
func (GitRepositoryResolution) Type() string { return "git" }

// ResolveResult is the outcome of resolving a WantedDependency.
type ResolveResult struct {
	// ID is a stable lockfile key for the resolved package.
	ID string

	// NormalizedPref is the canonical form of the specifier to save back
	// into the manifest.
	NormalizedPref string

	// Manifest is set for directory dependencies.
	Manifest *manifest.BaseManifest

	Resolution  Resolution
	ResolvedVia ResolvedVia
}
