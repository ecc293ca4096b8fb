/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package git

import (
	"bufio"
	"bytes"
	"sort"
	"strings"
)

// RefTable maps ref names, such as "refs/tags/v1.0.0^{}", to commit SHAs.
type RefTable map[string]string

// ParseRefTable reads "git ls-remote" output: one "<sha>\t<ref>" per line.
// Malformed lines are skipped.
func ParseRefTable(out []byte) RefTable {
	refs := make(RefTable)
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		commit, ref, ok := strings.Cut(line, "\t")
		if !ok || commit == "" || ref == "" {
			continue
		}
		refs[ref] = commit
	}
	return refs
}

// Names returns the ref names in sorted order.
func (t RefTable) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
