/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"bennypowers.dev/depspec/fs"
)

func TestOSFileSystem_Canonicalize(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "pkg")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	osfs := fs.NewOSFileSystem()

	got, err := osfs.Canonicalize(filepath.Join(link, "..", "pkg"))
	if err != nil {
		t.Fatalf("Canonicalize() error = %v", err)
	}
	if got != target {
		t.Errorf("Canonicalize() = %q, want %q", got, target)
	}

	got, err = osfs.Canonicalize(link)
	if err != nil {
		t.Fatalf("Canonicalize(link) error = %v", err)
	}
	if got != target {
		t.Errorf("Canonicalize(link) = %q, want %q", got, target)
	}

	if _, err := osfs.Canonicalize(filepath.Join(dir, "missing")); err == nil {
		t.Error("Canonicalize(missing) expected error")
	}
}

func TestOSFileSystem_Exists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "package.json")
	if err := os.WriteFile(file, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	osfs := fs.NewOSFileSystem()
	if !osfs.Exists(file) {
		t.Errorf("Exists(%q) = false, want true", file)
	}
	if osfs.Exists(filepath.Join(dir, "nope")) {
		t.Error("Exists(nope) = true, want false")
	}
}
