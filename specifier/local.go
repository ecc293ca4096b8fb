/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	asimfs "bennypowers.dev/depspec/fs"
	"bennypowers.dev/depspec/integrity"
	"bennypowers.dev/depspec/internal/logger"
	"bennypowers.dev/depspec/manifest"
)

// PackageKind distinguishes local tarballs from local directories.
type PackageKind int

const (
	KindDirectory PackageKind = iota + 1
	KindFile
)

func (k PackageKind) String() string {
	if k == KindFile {
		return "file"
	}
	return "directory"
}

var (
	looksLikePath  = regexp.MustCompile(`^(?:[.]|~[/]|[/]|[a-zA-Z]:)`)
	tarballName    = regexp.MustCompile(`(?i)[.](?:tgz|tar\.gz|tar)$`)
	drivePrefix    = regexp.MustCompile(`^(file|link|workspace):[/]*([A-Za-z]:)`)
	protocolPrefix = regexp.MustCompile(`^(file|link|workspace):(?:[/]*([~./]))?`)
)

// LocalPackageSpec is a local specifier resolved to filesystem locations.
type LocalPackageSpec struct {
	Kind PackageKind

	// FetchSpec is the absolute path of the dependency.
	FetchSpec string

	// DependencyPath is lockfile-relative for injected dependencies and
	// absolute otherwise.
	DependencyPath string

	ID             string
	NormalizedPref string
}

// classify reports whether pref names a local package and of which kind.
func classify(pref string) (PackageKind, bool, error) {
	switch {
	case strings.HasPrefix(pref, "path:"):
		return 0, true, unsupportedProtocol(pref)
	case strings.HasPrefix(pref, "link:"), strings.HasPrefix(pref, "workspace:"):
		return KindDirectory, true, nil
	case strings.HasSuffix(pref, ".tgz"),
		strings.HasSuffix(pref, ".tar.gz"),
		strings.HasSuffix(pref, ".tar"),
		strings.ContainsRune(pref, filepath.Separator),
		strings.HasPrefix(pref, "file:"),
		looksLikePath.MatchString(pref):
		if tarballName.MatchString(pref) {
			return KindFile, true, nil
		}
		return KindDirectory, true, nil
	}
	return 0, false, nil
}

// LocalResolver resolves file:, link: and workspace: specifiers and bare
// filesystem paths.
type LocalResolver struct {
	fs      asimfs.FileSystem
	homeDir func() (string, error)
}

// NewLocalResolver creates a resolver for local filesystem dependencies.
func NewLocalResolver(fs asimfs.FileSystem) *LocalResolver {
	return &LocalResolver{fs: fs, homeDir: os.UserHomeDir}
}

// CanResolve returns true for path-like specifiers, including path: which
// Resolve rejects.
func (r *LocalResolver) CanResolve(wanted WantedDependency) bool {
	_, ok, _ := classify(wanted.Pref)
	return ok
}

// Resolve computes the local package's location and either its tarball
// integrity or its manifest.
func (r *LocalResolver) Resolve(_ context.Context, wanted WantedDependency, rctx ResolveContext) (*ResolveResult, error) {
	spec, err := r.ParsePref(wanted, rctx)
	if err != nil {
		return nil, err
	}
	if spec == nil {
		return nil, &NotSupportedError{Alias: wanted.Alias, Pref: wanted.Pref}
	}

	if spec.Kind == KindFile {
		sri, err := integrity.FromFile(r.fs, spec.FetchSpec)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrIntegrityRead, err)
		}
		return &ResolveResult{
			ID:             spec.ID,
			NormalizedPref: spec.NormalizedPref,
			Resolution:     TarballResolution{Tarball: spec.ID, Integrity: sri},
			ResolvedVia:    ResolvedViaLocalFilesystem,
		}, nil
	}

	m, err := manifest.Read(r.fs, spec.FetchSpec)
	if err != nil {
		if !errors.Is(err, manifest.ErrNotFound) || !strings.HasPrefix(spec.ID, "link:") {
			return nil, fmt.Errorf("reading manifest of %s: %w", wanted.Pref, err)
		}
		// Linked directories need not be packages.
		logger.Debug("%s has no manifest, linking as %s@0.0.0", spec.FetchSpec, filepath.Base(spec.FetchSpec))
		m = &manifest.BaseManifest{Name: filepath.Base(spec.FetchSpec), Version: "0.0.0"}
	}
	return &ResolveResult{
		ID:             spec.ID,
		NormalizedPref: spec.NormalizedPref,
		Manifest:       m,
		Resolution:     DirectoryResolution{Directory: spec.DependencyPath},
		ResolvedVia:    ResolvedViaLocalFilesystem,
	}, nil
}

// ParsePref classifies wanted.Pref and computes its paths. It returns nil,
// nil when the specifier is not local.
func (r *LocalResolver) ParsePref(wanted WantedDependency, rctx ResolveContext) (*LocalPackageSpec, error) {
	kind, ok, err := classify(wanted.Pref)
	if err != nil || !ok {
		return nil, err
	}
	return r.fromLocal(wanted, rctx, kind)
}

func (r *LocalResolver) fromLocal(wanted WantedDependency, rctx ResolveContext, kind PackageKind) (*LocalPackageSpec, error) {
	spec := strings.ReplaceAll(wanted.Pref, `\`, "/")
	spec = drivePrefix.ReplaceAllString(spec, "${2}")
	spec = protocolPrefix.ReplaceAllString(spec, "${2}")

	protocol := "file:"
	if kind == KindDirectory && !wanted.Injected {
		protocol = "link:"
	}

	projectDir := r.canonicalOrSelf(rctx.ProjectDir)
	lockfileDir := r.canonicalOrSelf(rctx.lockfileDir())

	var fetchSpec, normalizedPref string
	if rest, ok := strings.CutPrefix(spec, "~/"); ok {
		home, err := r.homeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", wanted.Pref, err)
		}
		fetchSpec = filepath.Join(home, rest)
		normalizedPref = protocol + spec
	} else {
		target := filepath.FromSlash(spec)
		if !isAbsolute(spec) {
			target = filepath.Join(projectDir, target)
		}
		canonical, err := r.fs.Canonicalize(target)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", wanted.Pref, err)
		}
		fetchSpec = canonical
		if isAbsolute(spec) {
			normalizedPref = protocol + spec
		} else {
			normalizedPref = protocol + relativePath(projectDir, fetchSpec)
		}
	}

	dependencyPath := fetchSpec
	if wanted.Injected {
		dependencyPath = relativePath(lockfileDir, fetchSpec)
	}

	idBase := lockfileDir
	if !wanted.Injected && (kind == KindDirectory || projectDir == lockfileDir) {
		idBase = projectDir
	}

	return &LocalPackageSpec{
		Kind:           kind,
		FetchSpec:      fetchSpec,
		DependencyPath: dependencyPath,
		ID:             protocol + relativePath(idBase, fetchSpec),
		NormalizedPref: normalizedPref,
	}, nil
}

// canonicalOrSelf canonicalizes dir so relative paths are computed between
// symlink-free locations, keeping dir as given when it cannot be resolved.
func (r *LocalResolver) canonicalOrSelf(dir string) string {
	if canonical, err := r.fs.Canonicalize(dir); err == nil {
		return canonical
	}
	return dir
}

func isAbsolute(p string) bool {
	return filepath.IsAbs(filepath.FromSlash(p)) || strings.HasPrefix(p, "/")
}

// relativePath returns target relative to base with forward slashes. The
// same directory yields the empty string.
func relativePath(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	if rel == "." {
		return ""
	}
	return filepath.ToSlash(rel)
}
