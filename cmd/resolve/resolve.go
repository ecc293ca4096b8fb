/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolve provides the resolve command for depspec.
package resolve

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/depspec/config"
	"bennypowers.dev/depspec/fs"
	"bennypowers.dev/depspec/manifest"
	"bennypowers.dev/depspec/specifier"
)

// Cmd is the resolve cobra command.
var Cmd = &cobra.Command{
	Use:   "resolve [alias@pref|pref...]",
	Short: "Resolve dependency specifiers",
	Long: `Resolve git, tarball and local dependency specifiers to lockfile resolutions.

With no arguments, the dependencies of the project manifest are resolved,
filtered by the include patterns of .config/depspec.{yaml,yml,json}.`,
	Example: `  depspec resolve github:zkochan/is-negative#2.0.1
  depspec resolve is-negative@zkochan/is-negative#semver:^2.0.0
  depspec resolve --injected ../shared
  depspec resolve -C packages/app --format json`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "yaml", "Output format (yaml, json)")
	Cmd.Flags().Bool("injected", false, "Resolve local directories as injected copies instead of links")
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	injected, _ := cmd.Flags().GetBool("injected")
	if format != "yaml" && format != "json" {
		return fmt.Errorf("unknown format %q: expected yaml or json", format)
	}

	filesystem := fs.NewOSFileSystem()
	dir := viper.GetString("dir")
	include := &config.Config{Include: viper.GetStringSlice("include")}

	wanted, err := wantedDependencies(filesystem, dir, args, include, injected)
	if err != nil {
		return err
	}
	if len(wanted) == 0 {
		return fmt.Errorf("no dependencies specified and none found in %s", dir)
	}

	resolver := specifier.NewDefaultResolver(specifier.Options{
		FS:                 filesystem,
		CacheSize:          viper.GetInt("cache-size"),
		GitTimeout:         viper.GetDuration("git-timeout"),
		DisablePublicCheck: !viper.GetBool("probe-https"),
	})
	rctx := specifier.ResolveContext{
		ProjectDir:  dir,
		LockfileDir: viper.GetString("lockfile-dir"),
	}

	outcomes := specifier.ResolveAll(cmd.Context(), resolver, wanted, rctx, viper.GetInt("concurrency"))
	if err := writeReport(cmd.OutOrStdout(), format, NewReport(outcomes)); err != nil {
		return err
	}

	if failed := specifier.Failed(outcomes); len(failed) > 0 {
		for _, o := range failed {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error resolving %s: %v\n", o.Wanted, o.Err)
		}
		return fmt.Errorf("%d of %d dependencies failed to resolve", len(failed), len(outcomes))
	}
	return nil
}

// wantedDependencies parses args, or reads the manifest in dir when there
// are none. Manifest dependencies are sorted by alias.
func wantedDependencies(filesystem fs.FileSystem, dir string, args []string, cfg *config.Config, injected bool) ([]specifier.WantedDependency, error) {
	var wanted []specifier.WantedDependency
	if len(args) > 0 {
		for _, arg := range args {
			w := specifier.ParseWantedDependency(arg)
			w.Injected = injected
			wanted = append(wanted, w)
		}
		return wanted, nil
	}

	m, err := manifest.Read(filesystem, dir)
	if err != nil {
		return nil, fmt.Errorf("error reading project manifest: %w", err)
	}
	deps := m.AllDependencies()
	aliases := make([]string, 0, len(deps))
	for alias := range deps {
		aliases = append(aliases, alias)
	}
	slices.Sort(aliases)

	for _, alias := range cfg.FilterAliases(aliases) {
		wanted = append(wanted, specifier.WantedDependency{Alias: alias, Pref: deps[alias], Injected: injected})
	}
	return wanted, nil
}
