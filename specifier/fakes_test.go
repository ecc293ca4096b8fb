/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package specifier

import (
	"context"
	"sync"

	"bennypowers.dev/depspec/git"
	"bennypowers.dev/depspec/hostedgit"
)

type listCall struct {
	repo string
	ref  string
}

// fakeRefLister serves canned ref tables per repository.
type fakeRefLister struct {
	mu    sync.Mutex
	refs  map[string]git.RefTable
	err   error
	calls []listCall
}

func (f *fakeRefLister) ListRefs(_ context.Context, repo, ref string) (git.RefTable, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, listCall{repo: repo, ref: ref})
	if f.err != nil {
		return nil, f.err
	}
	table := git.RefTable{}
	for name, commit := range f.refs[repo] {
		if ref == "" || name == ref || name == "refs/tags/"+ref || name == "refs/tags/"+ref+"^{}" || name == "refs/heads/"+ref {
			table[name] = commit
		}
	}
	return table, nil
}

// fakeProber reports the listed URLs as reachable.
type fakeProber map[string]bool

func (f fakeProber) Reachable(_ context.Context, repo string) bool { return f[repo] }

func (f fakeProber) IsPublic(_ context.Context, httpsURL string) bool { return f[httpsURL] }

const isNegativeCommit = "163360a8d3ae6bee9524541043197ff356f8ed99"

func newTestGitResolver(refs *fakeRefLister, reachable, public fakeProber) *GitResolver {
	return NewGitResolver(hostedgit.NewParser(16), refs, reachable, public)
}
