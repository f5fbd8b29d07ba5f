package dispatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// notInstalledStatus is the exit status the probe script uses for a missing package.
const notInstalledStatus = 3

// CommandRunner is the interface for running commands.
type CommandRunner interface {
	Run(ctx context.Context, name string, args []string, stdin io.Reader) (stdout, stderr []byte, err error)
}

// ExecCommandRunner uses os/exec.
type ExecCommandRunner struct{}

// Run runs a command.
func (ExecCommandRunner) Run(ctx context.Context, name string, args []string, stdin io.Reader) (stdout, stderr []byte, err error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err = cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), err
}

// RscriptChecker asks an R installation whether packages can be loaded. Answers are cached for
// cacheTTL so a plan does not start one interpreter per dependency every time.
type RscriptChecker struct {
	runner     CommandRunner
	binaryPath string
	timeout    time.Duration
	cache      *gocache.Cache
}

const cacheTTL = 5 * time.Minute

// NewRscriptChecker creates a checker running binary, which is looked up in PATH.
func NewRscriptChecker(binary string, timeout time.Duration) (*RscriptChecker, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("binary not found: %w", err)
	}
	return NewRscriptCheckerWithRunner(path, timeout, ExecCommandRunner{}), nil
}

// NewRscriptCheckerWithRunner creates a checker with a custom runner.
func NewRscriptCheckerWithRunner(binaryPath string, timeout time.Duration, runner CommandRunner) *RscriptChecker {
	return &RscriptChecker{
		runner:     runner,
		binaryPath: binaryPath,
		timeout:    timeout,
		cache:      gocache.New(cacheTTL, 2*cacheTTL),
	}
}

// Installed reports whether pkg can be loaded.
func (c *RscriptChecker) Installed(ctx context.Context, pkg string) (bool, error) {
	if cached, ok := c.cache.Get(pkg); ok {
		return cached.(bool), nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	expr := fmt.Sprintf("quit(status = if (requireNamespace(%q, quietly = TRUE)) 0 else %d)", pkg, notInstalledStatus)
	_, stderr, err := c.runner.Run(ctx, c.binaryPath, []string{"--vanilla", "-e", expr}, nil)

	var exit interface{ ExitCode() int }
	var installed bool
	switch {
	case err == nil:
		installed = true
	case errors.As(err, &exit) && exit.ExitCode() == notInstalledStatus:
		installed = false
	default:
		if s := strings.TrimSpace(string(stderr)); s != "" {
			return false, fmt.Errorf("%s: %w: %s", c.binaryPath, err, s)
		}
		return false, fmt.Errorf("%s: %w", c.binaryPath, err)
	}

	slog.Debug("Package checked", "package", pkg, "installed", installed)
	c.cache.Set(pkg, installed, gocache.DefaultExpiration)
	return installed, nil
}
