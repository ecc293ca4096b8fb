/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"bennypowers.dev/depspec/git"
)

var (
	commitPattern = regexp.MustCompile(`^[0-9a-f]{7,40}$`)
	versionTag    = regexp.MustCompile(`^refs/tags/v?(\d+\.\d+\.\d+(?:[-+].+)?)(\^\{\})?$`)
)

// RefLister lists the refs of a remote repository. An empty ref lists all
// refs.
type RefLister interface {
	ListRefs(ctx context.Context, repo, ref string) (git.RefTable, error)
}

// ResolveRef turns a committish into a commit SHA. A pref that already looks
// like a commit is returned without contacting the remote. When gitRange is
// set, the highest tag satisfying it wins.
func ResolveRef(ctx context.Context, lister RefLister, repo, pref, gitRange string) (string, error) {
	if commitPattern.MatchString(pref) {
		return pref, nil
	}

	ref := pref
	if gitRange != "" {
		ref = ""
	}
	refs, err := lister.ListRefs(ctx, repo, ref)
	if err != nil {
		return "", fmt.Errorf("listing refs of %s: %w", repo, err)
	}

	if gitRange != "" {
		return resolveRange(refs, repo, gitRange)
	}
	for _, key := range []string{pref, "refs/tags/" + pref + "^{}", "refs/tags/" + pref, "refs/heads/" + pref} {
		if commit, ok := refs[key]; ok {
			return commit, nil
		}
	}
	return "", &RefError{Repo: repo, Ref: pref}
}

func resolveRange(refs git.RefTable, repo, gitRange string) (string, error) {
	constraint, err := semver.NewConstraint(gitRange)
	if err != nil {
		return "", fmt.Errorf("%w: semver range %q: %w", ErrInvalidSpec, gitRange, err)
	}

	var (
		available []string
		seen      = make(map[string]bool)
		best      *semver.Version
		bestTag   string
	)
	// Names are sorted so ties between "v1.0.0" and "1.0.0" break the same way every run.
	for _, name := range refs.Names() {
		if !versionTag.MatchString(name) {
			continue
		}
		tag := strings.TrimSuffix(strings.TrimPrefix(name, "refs/tags/"), "^{}")
		if seen[tag] {
			continue
		}
		seen[tag] = true

		v, err := semver.StrictNewVersion(strings.TrimPrefix(tag, "v"))
		if err != nil {
			continue
		}
		available = append(available, tag)
		if constraint.Check(v) && (best == nil || v.GreaterThan(best)) {
			best, bestTag = v, tag
		}
	}

	if best != nil {
		if commit, ok := refs["refs/tags/"+bestTag+"^{}"]; ok {
			return commit, nil
		}
		if commit, ok := refs["refs/tags/"+bestTag]; ok {
			return commit, nil
		}
	}
	return "", &RefError{Repo: repo, Range: gitRange, Available: available}
}
