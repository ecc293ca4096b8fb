/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package integrity computes Subresource Integrity strings ("sha512-<base64>")
// for tarballs.
package integrity

import (
	_ "crypto/sha512" // registers SHA-512 for digest.SHA512
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/opencontainers/go-digest"

	asimfs "bennypowers.dev/depspec/fs"
)

const prefix = "sha512-"

// FromReader hashes everything read from r.
func FromReader(r io.Reader) (string, error) {
	digester := digest.SHA512.Digester()
	if _, err := io.Copy(digester.Hash(), r); err != nil {
		return "", err
	}
	return fromDigest(digester.Digest())
}

// FromBytes hashes data.
func FromBytes(data []byte) string {
	sri, err := fromDigest(digest.SHA512.FromBytes(data))
	if err != nil {
		// A digest produced by go-digest is always valid hex.
		panic(err)
	}
	return sri
}

// FromFile hashes the file at path.
func FromFile(fsys asimfs.FileSystem, path string) (string, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	sri, err := FromReader(f)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return sri, nil
}

// ToDigest converts an SRI string back into an OCI digest, so callers can
// verify content with digest.Digest.Verifier.
func ToDigest(sri string) (digest.Digest, error) {
	encoded, ok := strings.CutPrefix(sri, prefix)
	if !ok {
		return "", fmt.Errorf("unsupported integrity %q: want %s prefix", sri, prefix)
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decoding integrity %q: %w", sri, err)
	}
	d := digest.NewDigestFromEncoded(digest.SHA512, hex.EncodeToString(raw))
	if err := d.Validate(); err != nil {
		return "", err
	}
	return d, nil
}

func fromDigest(d digest.Digest) (string, error) {
	raw, err := hex.DecodeString(d.Encoded())
	if err != nil {
		return "", err
	}
	return prefix + base64.StdEncoding.EncodeToString(raw), nil
}
