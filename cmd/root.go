package cmd

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	args "notashelf.dev/nix-shell-locked/internal/args"
	config "notashelf.dev/nix-shell-locked/internal/config"
	output "notashelf.dev/nix-shell-locked/internal/output"
	runner "notashelf.dev/nix-shell-locked/internal/runner"
)

// LogLevelEnv overrides the log level, e.g. NIX_SHELL_LOCKED_LOG=debug.
const LogLevelEnv = "NIX_SHELL_LOCKED_LOG"

// Version is set at build time.
var Version string

// newRunner is replaced in tests.
var newRunner = runner.New

type options struct {
	dryRun     bool
	configFile string
	lockfile   string
	verbose    int
}

// newRootCmd builds the root command with its own flag set.
func newRootCmd() *cobra.Command {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "nix-shell-locked [flags] [PACKAGES...] [-- ARGS...]",
		Short: "Start a transient shell with packages from the nixpkgs revision in a flake.lock",
		Long: `Start a transient shell with some specified packages installed.
Packages are installed from the nixpkgs repo matching the revision from a flake.lock file.
Intended to be used to temporarily test out packages without committing to installing them,
and to guarantee that the packages are compatible with system-wide or home-manager configs
managed with flakes.

Configure with a file ~/.config/` + config.FileName + `, e.g.:
  flake_lockfile = "/path/to/flake.lock"

Arguments after -- are passed to 'nix shell' unchanged.`,
		Example: `  nix-shell-locked hello cowsay
  nix-shell-locked --dryrun ripgrep
  nix-shell-locked --lockfile=~/dotfiles/flake.lock jq -- --command jq --version
  nix-shell-locked --config=./shell.toml python3`,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, positional []string) error {
			packages, passthrough := splitArgs(positional, cmd.ArgsLenAtDash())

			flags := args.Flags{
				DryRun:      opts.dryRun,
				Packages:    packages,
				Passthrough: passthrough,
			}
			// an explicitly empty value still counts as given
			if cmd.Flags().Changed("config") {
				flags.ConfigFile = &opts.configFile
			}
			if cmd.Flags().Changed("lockfile") {
				flags.Lockfile = &opts.lockfile
			}

			logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
			return newRunner(logger, cmd.OutOrStdout()).Run(flags)
		},
	}

	rootCmd.Flags().BoolVar(&opts.dryRun, "dryrun", false, "print the command that would be executed instead of executing it")
	rootCmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "path to config file to use (defaults to $XDG_CONFIG_HOME/"+config.FileName+")")
	rootCmd.Flags().StringVarP(&opts.lockfile, "lockfile", "l", "", "path to flake lockfile to use when determining nixpkgs revision")
	rootCmd.Flags().CountVarP(&opts.verbose, "verbose", "v", "log what is being resolved (repeat for debug output)")

	// a package may well be called "completion"
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate(`{{printf "%s version %s\n" .Name .Version}}`)

	if Version != "" {
		rootCmd.Version = Version
	}

	return rootCmd
}

// splitArgs separates package names from the arguments following "--".
func splitArgs(positional []string, dash int) ([]string, []string) {
	if dash < 0 {
		return positional, nil
	}
	dash = min(dash, len(positional))
	return positional[:dash], positional[dash:]
}

func newLogger(w io.Writer, verbose int) *log.Logger {
	level := log.WarnLevel
	switch {
	case verbose >= 2:
		level = log.DebugLevel
	case verbose == 1:
		level = log.InfoLevel
	}

	if env := strings.TrimSpace(os.Getenv(LogLevelEnv)); env != "" {
		if parsed, err := log.ParseLevel(env); err == nil {
			level = parsed
		}
	}

	return log.NewWithOptions(w, log.Options{
		Prefix: "nix-shell-locked",
		Level:  level,
	})
}

func Execute() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output.PrintError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}
