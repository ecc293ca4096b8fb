/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package git queries remote repositories with the git command line tool.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"bennypowers.dev/depspec/internal/logger"
)

// DefaultTimeout bounds a single git invocation.
const DefaultTimeout = time.Minute

var (
	// ErrSubprocess is wrapped by every failed git invocation.
	ErrSubprocess = errors.New("git command failed")

	// ErrTimeout is returned when a git invocation exceeds its deadline.
	ErrTimeout = errors.New("git command timed out")
)

// CommandError describes a git invocation that exited unsuccessfully.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CommandError) Unwrap() []error {
	return []error{ErrSubprocess, e.Err}
}

// IsRetryable reports whether err is transient, such as a timeout.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// Client runs git subcommands against remote repositories.
type Client struct {
	binary  string
	timeout time.Duration
}

// NewClient creates a Client that gives each invocation up to timeout to
// finish. A non-positive timeout selects DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{binary: "git", timeout: timeout}
}

// ListRefs runs "git ls-remote" against repo. When ref is empty every ref is
// listed; otherwise only refs matching ref are. Pseudo-refs and peeled tags
// are omitted unless ref is "HEAD".
func (c *Client) ListRefs(ctx context.Context, repo, ref string) (RefTable, error) {
	args := []string{"ls-remote"}
	if ref != "HEAD" {
		args = append(args, "--refs")
	}
	args = append(args, repo)
	if ref != "" {
		args = append(args, ref)
	}

	out, err := c.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return ParseRefTable(out), nil
}

// Reachable reports whether repo answers "git ls-remote --exit-code <repo> HEAD".
func (c *Client) Reachable(ctx context.Context, repo string) bool {
	if _, err := c.run(ctx, "ls-remote", "--exit-code", repo, "HEAD"); err != nil {
		logger.Debug("%s is not reachable: %v", repo, err)
		return false
	}
	return true
}

func (c *Client) run(ctx context.Context, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	cmd.WaitDelay = time.Second
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logger.Debug("running git %s", strings.Join(args, " "))
	out, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s: git %s", ErrTimeout, c.timeout, strings.Join(args, " "))
		}
		return nil, &CommandError{Args: args, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return out, nil
}
