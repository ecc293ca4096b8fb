/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package manifest reads the package manifest of a local dependency
// directory.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	asimfs "bennypowers.dev/depspec/fs"
)

// ErrNotFound is returned when a directory has no recognized manifest file.
var ErrNotFound = errors.New("no package manifest found")

// FileNames lists the manifest files Read looks for, in order of preference.
var FileNames = []string{"package.json", "package.json5", "package.yaml"}

// BaseManifest holds the package.json fields relevant to dependency resolution.
type BaseManifest struct {
	Name                 string            `json:"name,omitempty" yaml:"name,omitempty"`
	Version              string            `json:"version,omitempty" yaml:"version,omitempty"`
	Description          string            `json:"description,omitempty" yaml:"description,omitempty"`
	Main                 string            `json:"main,omitempty" yaml:"main,omitempty"`
	Module               string            `json:"module,omitempty" yaml:"module,omitempty"`
	Types                string            `json:"types,omitempty" yaml:"types,omitempty"`
	Homepage             string            `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	License              string            `json:"license,omitempty" yaml:"license,omitempty"`
	Private              bool              `json:"private,omitempty" yaml:"private,omitempty"`
	Dependencies         map[string]string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	DevDependencies      map[string]string `json:"devDependencies,omitempty" yaml:"devDependencies,omitempty"`
	OptionalDependencies map[string]string `json:"optionalDependencies,omitempty" yaml:"optionalDependencies,omitempty"`
	PeerDependencies     map[string]string `json:"peerDependencies,omitempty" yaml:"peerDependencies,omitempty"`
	Engines              map[string]string `json:"engines,omitempty" yaml:"engines,omitempty"`
	OS                   []string          `json:"os,omitempty" yaml:"os,omitempty"`
	CPU                  []string          `json:"cpu,omitempty" yaml:"cpu,omitempty"`
}

// AllDependencies merges dependencies, devDependencies and
// optionalDependencies. Later groups override earlier ones.
func (m *BaseManifest) AllDependencies() map[string]string {
	all := make(map[string]string)
	for _, group := range []map[string]string{m.Dependencies, m.DevDependencies, m.OptionalDependencies} {
		for name, pref := range group {
			all[name] = pref
		}
	}
	return all
}

// Read loads the first manifest in FileNames found in dir.
func Read(fsys asimfs.FileSystem, dir string) (*BaseManifest, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		data, err := fsys.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		m, err := Parse(name, data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w in %s", ErrNotFound, dir)
}

// Parse decodes manifest data, choosing the format from fileName's extension.
func Parse(fileName string, data []byte) (*BaseManifest, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))

	var m BaseManifest
	switch filepath.Ext(fileName) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	case ".json5":
		if err := json.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, err
		}
	}
	return &m, nil
}
