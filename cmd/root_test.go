package cmd

import (
	"bytes"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mvdan.cc/sh/v3/expand"
	"notashelf.dev/nix-shell-locked/internal/args"
	"notashelf.dev/nix-shell-locked/internal/runner"
	"notashelf.dev/nix-shell-locked/internal/shell"
)

func TestSplitArgs(t *testing.T) {
	testCases := []struct {
		name                string
		positional          []string
		dash                int
		expectedPackages    []string
		expectedPassthrough []string
	}{
		{
			name:             "no dash",
			positional:       []string{"hello", "cowsay"},
			dash:             -1,
			expectedPackages: []string{"hello", "cowsay"},
		},
		{
			name:                "packages and passthrough",
			positional:          []string{"hello", "--impure"},
			dash:                1,
			expectedPackages:    []string{"hello"},
			expectedPassthrough: []string{"--impure"},
		},
		{
			name:                "only passthrough",
			positional:          []string{"--impure"},
			dash:                0,
			expectedPackages:    []string{},
			expectedPassthrough: []string{"--impure"},
		},
		{
			name:                "dash past the end",
			positional:          []string{"hello"},
			dash:                2,
			expectedPackages:    []string{"hello"},
			expectedPassthrough: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			packages, passthrough := splitArgs(tc.positional, tc.dash)
			assert.Equal(t, tc.expectedPackages, packages)
			assert.Equal(t, tc.expectedPassthrough, passthrough)
		})
	}
}

type recordingExecutor struct {
	argv []string
}

func (r *recordingExecutor) ExecReplacing(argv []string) error {
	r.argv = argv
	return nil
}

var _ shell.Executor = (*recordingExecutor)(nil)

const lockData = `{"nodes":{"nixpkgs":{"locked":{"rev":"abc123"}}}}`

// useFakeRunner makes newRootCmd build runners on fs that record instead of
// exec'ing.
func useFakeRunner(t *testing.T, fs afero.Fs) *recordingExecutor {
	t.Helper()

	executor := &recordingExecutor{}
	original := newRunner
	t.Cleanup(func() { newRunner = original })
	newRunner = func(logger *log.Logger, stdout io.Writer) *runner.Runner {
		r := runner.New(logger, stdout)
		r.Fs = fs
		r.ConfigDirs = func() ([]string, error) { return []string{"/home/user/.config"}, nil }
		r.Env = expand.ListEnviron("HOME=/home/user")
		r.Executor = executor
		return r
	}
	return executor
}

func executeRoot(t *testing.T, argv ...string) (string, error) {
	t.Helper()

	var stdout bytes.Buffer
	rootCmd := newRootCmd()
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(argv)

	err := rootCmd.Execute()
	return stdout.String(), err
}

func TestRootCommand_DryRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/tmp/flake.lock", []byte(lockData), 0o644))
	useFakeRunner(t, fs)

	out, err := executeRoot(t, "--dryrun", "--lockfile", "/tmp/flake.lock", "hello", "cowsay", "--", "--impure")
	require.NoError(t, err)
	assert.Equal(t, "nix shell nixpkgs/abc123#hello nixpkgs/abc123#cowsay --impure\n", out)
}

func TestRootCommand_RepeatedRunsDoNotShareFlagState(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/tmp/flake.lock", []byte(lockData), 0o644))
	executor := useFakeRunner(t, fs)

	out, err := executeRoot(t, "--dryrun", "-l", "/tmp/flake.lock", "hello", "cowsay", "--", "--impure")
	require.NoError(t, err)
	assert.Equal(t, "nix shell nixpkgs/abc123#hello nixpkgs/abc123#cowsay --impure\n", out)

	// no --dryrun and no "--" this time
	out, err = executeRoot(t, "-l", "/tmp/flake.lock", "jq")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, []string{"nix", "shell", "nixpkgs/abc123#jq"}, executor.argv)
}

func TestRootCommand_ConflictingOverrides(t *testing.T) {
	executor := useFakeRunner(t, afero.NewMemMapFs())

	_, err := executeRoot(t, "-c", "a.toml", "-l", "flake.lock", "hello")
	require.ErrorIs(t, err, args.ErrConflictingOverrides)
	assert.Nil(t, executor.argv)
}

func TestRootCommand_EmptyOverrideIsGiven(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/home/user/.config/nix-shell-locked.toml", []byte(`flake_lockfile = "/tmp/flake.lock"`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/tmp/flake.lock", []byte(lockData), 0o644))
	useFakeRunner(t, fs)

	// an empty --lockfile must not fall back to the discovered config, which
	// would succeed
	out, err := executeRoot(t, "--dryrun", "--lockfile=", "hello")
	require.Error(t, err)
	assert.NotErrorIs(t, err, args.ErrConflictingOverrides)
	assert.Empty(t, out)

	_, err = executeRoot(t, "--dryrun", "-c", "a.toml", "--lockfile=", "hello")
	require.ErrorIs(t, err, args.ErrConflictingOverrides)
}

func TestNewLogger_Levels(t *testing.T) {
	testCases := []struct {
		name     string
		verbose  int
		env      string
		expected log.Level
	}{
		{name: "default", expected: log.WarnLevel},
		{name: "verbose", verbose: 1, expected: log.InfoLevel},
		{name: "very verbose", verbose: 2, expected: log.DebugLevel},
		{name: "env wins", verbose: 1, env: "error", expected: log.ErrorLevel},
		{name: "invalid env is ignored", verbose: 1, env: "loud", expected: log.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(LogLevelEnv, tc.env)
			assert.Equal(t, tc.expected, newLogger(io.Discard, tc.verbose).GetLevel())
		})
	}
}
