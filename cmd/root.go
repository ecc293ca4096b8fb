/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for depspec.
package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/depspec/cmd/hosted"
	"bennypowers.dev/depspec/cmd/resolve"
	"bennypowers.dev/depspec/cmd/version"
	"bennypowers.dev/depspec/config"
	"bennypowers.dev/depspec/fs"
	"bennypowers.dev/depspec/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "depspec",
	Short: "Resolve package dependency specifiers",
	Long: `depspec resolves the non-registry dependency specifiers found in package
manifests (git repositories, hosted-git shorthands, tarball URLs and local
paths) to immutable, lockfile-ready resolutions.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringP("dir", "C", ".", "Project directory")
	pf.String("lockfile-dir", "", "Directory lockfile paths are relative to (default: project directory)")
	pf.Duration("git-timeout", config.DefaultGitTimeout, "Timeout for each git command")
	pf.IntP("concurrency", "j", config.DefaultConcurrency, "Number of dependencies resolved at once")
	pf.BoolP("verbose", "v", false, "Print debug logs")

	for _, name := range []string{"dir", "lockfile-dir", "git-timeout", "concurrency", "verbose"} {
		_ = viper.BindPFlag(name, pf.Lookup(name))
	}
	viper.SetEnvPrefix("DEPSPEC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(resolve.Cmd)
	rootCmd.AddCommand(hosted.Cmd)
	rootCmd.AddCommand(version.Cmd)
}

// setup loads .config/depspec.* from the project directory and installs its
// values beneath any flag or environment override.
func setup(cmd *cobra.Command, _ []string) error {
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetVerbose(viper.GetBool("verbose"))

	dir, err := filepath.Abs(viper.GetString("dir"))
	if err != nil {
		return fmt.Errorf("failed to resolve project directory: %w", err)
	}
	viper.Set("dir", dir)

	cfg, err := config.Load(fs.NewOSFileSystem(), dir)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if cfg == nil {
		cfg = config.Default()
	}

	applyConfig(cfg, dir)
	return nil
}

func applyConfig(cfg *config.Config, dir string) {
	if cfg.LockfileDir != "" {
		lockfileDir := cfg.LockfileDir
		if !filepath.IsAbs(lockfileDir) {
			lockfileDir = filepath.Join(dir, lockfileDir)
		}
		viper.SetDefault("lockfile-dir", lockfileDir)
	}
	viper.SetDefault("git-timeout", time.Duration(cfg.GitTimeout))
	viper.SetDefault("concurrency", cfg.Concurrency)
	viper.SetDefault("cache-size", cfg.CacheSize)
	viper.SetDefault("probe-https", cfg.ProbeHTTPS)
	viper.SetDefault("include", cfg.Include)
}
