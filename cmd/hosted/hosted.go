/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package hosted provides the hosted command for depspec.
package hosted

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/depspec/hostedgit"
)

// Cmd is the hosted cobra command that prints what a hosted-git URL parses to.
var Cmd = &cobra.Command{
	Use:   "hosted <url>",
	Short: "Show how a hosted git URL is understood",
	Long: `Parse a GitHub, GitLab, Bitbucket, Gist or SourceHut URL or shorthand and
print the repository it names together with its URL templates.`,
	Example: `  depspec hosted zkochan/is-negative#2.0.1
  depspec hosted git@gitlab.com:group/sub/repo.git`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("format", "f", "yaml", "Output format (yaml, json)")
}

// View is a parsed hosted repository with its rendered URLs.
type View struct {
	Provider   string    `json:"provider" yaml:"provider"`
	User       string    `json:"user,omitempty" yaml:"user,omitempty"`
	Project    string    `json:"project" yaml:"project"`
	Committish string    `json:"committish,omitempty" yaml:"committish,omitempty"`
	Default    string    `json:"default" yaml:"default"`
	URLs       Templates `json:"urls" yaml:"urls"`
}

// Templates holds each representation of the repository. Git and Tarball
// are empty for providers that lack them.
type Templates struct {
	Shortcut string `json:"shortcut" yaml:"shortcut"`
	SSH      string `json:"ssh" yaml:"ssh"`
	SSHURL   string `json:"sshurl" yaml:"sshurl"`
	HTTPS    string `json:"https" yaml:"https"`
	Git      string `json:"git,omitempty" yaml:"git,omitempty"`
	Tarball  string `json:"tarball,omitempty" yaml:"tarball,omitempty"`
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	parser := hostedgit.NewParser(viper.GetInt("cache-size"))
	host := parser.FromURL(args[0])
	if host == nil {
		return fmt.Errorf("%s is not a recognized hosted git URL", args[0])
	}
	return write(cmd.OutOrStdout(), format, NewView(host))
}

// NewView renders host's templates. Auth is left out of the output.
func NewView(host *hostedgit.GitHost) *View {
	anonymous := *host
	anonymous.Auth = ""
	host = &anonymous

	opts := hostedgit.TemplateOptions{}
	view := &View{
		Provider:   host.Provider.String(),
		User:       host.User,
		Project:    host.Project,
		Committish: host.Committish,
		Default:    string(host.DefaultRepresentation),
		URLs: Templates{
			Shortcut: host.Shortcut(opts),
			SSH:      host.SSH(opts),
			SSHURL:   host.SSHURL(opts),
			HTTPS:    host.HTTPS(opts),
		},
	}
	if gitURL, ok := host.Git(opts); ok {
		view.URLs.Git = gitURL
	}
	if tarball, ok := host.Tarball(opts); ok {
		view.URLs.Tarball = tarball
	}
	return view
}

func write(w io.Writer, format string, view *View) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(view)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(view); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q: expected yaml or json", format)
}
