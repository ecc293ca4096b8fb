/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolve

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/depspec/specifier"
)

// Report is the printable form of a batch of resolutions.
type Report struct {
	Dependencies []Entry `json:"dependencies" yaml:"dependencies"`
}

// Entry is one resolved or failed dependency.
type Entry struct {
	Alias          string          `json:"alias,omitempty" yaml:"alias,omitempty"`
	Pref           string          `json:"pref" yaml:"pref"`
	ID             string          `json:"id,omitempty" yaml:"id,omitempty"`
	NormalizedPref string          `json:"normalizedPref,omitempty" yaml:"normalizedPref,omitempty"`
	ResolvedVia    string          `json:"resolvedVia,omitempty" yaml:"resolvedVia,omitempty"`
	Resolution     *ResolutionView `json:"resolution,omitempty" yaml:"resolution,omitempty"`
	Package        *PackageView    `json:"package,omitempty" yaml:"package,omitempty"`
	Error          string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// ResolutionView flattens a specifier.Resolution with its type discriminator.
type ResolutionView struct {
	Type      string `json:"type" yaml:"type"`
	Tarball   string `json:"tarball,omitempty" yaml:"tarball,omitempty"`
	Integrity string `json:"integrity,omitempty" yaml:"integrity,omitempty"`
	Registry  string `json:"registry,omitempty" yaml:"registry,omitempty"`
	Directory string `json:"directory,omitempty" yaml:"directory,omitempty"`
	Repo      string `json:"repo,omitempty" yaml:"repo,omitempty"`
	Commit    string `json:"commit,omitempty" yaml:"commit,omitempty"`
}

// PackageView is the identity of a directory dependency's manifest.
type PackageView struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

// NewReport converts outcomes, keeping their order.
func NewReport(outcomes []specifier.Outcome) *Report {
	report := &Report{Dependencies: make([]Entry, 0, len(outcomes))}
	for _, o := range outcomes {
		entry := Entry{Alias: o.Wanted.Alias, Pref: o.Wanted.Pref}
		if o.Err != nil {
			entry.Error = o.Err.Error()
		} else if r := o.Result; r != nil {
			entry.ID = r.ID
			entry.NormalizedPref = r.NormalizedPref
			entry.ResolvedVia = r.ResolvedVia.String()
			entry.Resolution = viewResolution(r.Resolution)
			if r.Manifest != nil {
				entry.Package = &PackageView{Name: r.Manifest.Name, Version: r.Manifest.Version}
			}
		}
		report.Dependencies = append(report.Dependencies, entry)
	}
	return report
}

func viewResolution(res specifier.Resolution) *ResolutionView {
	if res == nil {
		return nil
	}
	view := &ResolutionView{Type: res.Type()}
	switch r := res.(type) {
	case specifier.TarballResolution:
		view.Tarball, view.Integrity, view.Registry = r.Tarball, r.Integrity, r.Registry
	case specifier.DirectoryResolution:
		view.Directory = r.Directory
	case specifier.GitRepositoryResolution:
		view.Repo, view.Commit = r.Repo, r.Commit
	}
	return view
}

func writeReport(w io.Writer, format string, report *Report) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("error marshaling report: %w", err)
		}
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("error marshaling report: %w", err)
		}
		return enc.Close()
	}
	return nil
}
