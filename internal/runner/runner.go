// Package runner drives a single invocation: resolve the config, read the
// pinned nixpkgs revision, build the nix shell command, then print or exec it.
package runner

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"mvdan.cc/sh/v3/expand"
	"notashelf.dev/nix-shell-locked/internal/args"
	"notashelf.dev/nix-shell-locked/internal/config"
	"notashelf.dev/nix-shell-locked/internal/flake"
	"notashelf.dev/nix-shell-locked/internal/output"
	"notashelf.dev/nix-shell-locked/internal/shell"
)

type State int

const (
	Init State = iota
	ConfigResolved
	RevisionExtracted
	CommandBuilt
	DryRunPrinted
	ProcessReplaced
	Failed
)

func (s State) String() string {
	switch s {
	case Init:
		return "init"
	case ConfigResolved:
		return "config resolved"
	case RevisionExtracted:
		return "revision extracted"
	case CommandBuilt:
		return "command built"
	case DryRunPrinted:
		return "dry run printed"
	case ProcessReplaced:
		return "process replaced"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

type Runner struct {
	Fs         afero.Fs
	ConfigDirs func() ([]string, error)
	Env        expand.Environ
	Logger     *log.Logger
	Stdout     io.Writer
	Executor   shell.Executor

	state State
}

// New returns a Runner wired to the real filesystem, environment and process.
func New(logger *log.Logger, stdout io.Writer) *Runner {
	return &Runner{
		Fs:         afero.NewOsFs(),
		ConfigDirs: config.XDGConfigDirs,
		Env:        expand.ListEnviron(os.Environ()...),
		Logger:     logger,
		Stdout:     stdout,
		Executor:   shell.ProcessExecutor{},
	}
}

// State returns the last state the runner reached.
func (r *Runner) State() State {
	return r.state
}

// Run executes one invocation. With DryRun set the command is written to
// Stdout; otherwise it is handed to the Executor, which does not return on
// success.
func (r *Runner) Run(flags args.Flags) error {
	r.state = Init

	err := r.run(flags)
	if err != nil {
		r.transition(Failed)
	}
	return err
}

func (r *Runner) run(flags args.Flags) error {
	parsed, err := args.Parse(flags)
	if err != nil {
		return err
	}

	resolver := &config.Resolver{
		Fs:         r.Fs,
		ConfigDirs: r.ConfigDirs,
		Logger:     r.Logger,
	}
	cfg, err := resolver.Resolve(parsed.Override)
	if err != nil {
		return err
	}
	r.logger().Info("using lockfile", "path", cfg.FlakeLockfile)

	lockfile, err := cfg.ExpandLockfile(r.Env)
	if err != nil {
		return err
	}
	r.transition(ConfigResolved)

	revision, err := flake.ReadNixpkgsRevision(r.Fs, lockfile)
	if err != nil {
		return err
	}
	r.logger().Info("nixpkgs revision", "rev", revision)
	r.transition(RevisionExtracted)

	argv := shell.BuildCommand(parsed.Packages, revision, parsed.Passthrough)
	r.transition(CommandBuilt)

	if parsed.DryRun {
		if err := output.PrintCommand(r.Stdout, argv); err != nil {
			return err
		}
		r.transition(DryRunPrinted)
		return nil
	}

	r.logger().Debug("executing", "argv", argv)
	if err := r.Executor.ExecReplacing(argv); err != nil {
		return fmt.Errorf("%w %q: %v", shell.ErrProcessReplacement, output.FormatCommand(argv), err)
	}
	// only reachable with an Executor that returns instead of exec'ing
	r.transition(ProcessReplaced)
	return nil
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}

func (r *Runner) transition(next State) {
	r.logger().Debug("state", "from", r.state, "to", next)
	r.state = next
}
