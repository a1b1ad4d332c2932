//go:build !unix

package shell

import (
	"errors"
	"os"
	"os/exec"
)

// Without exec(2) the command runs as a child and its exit status becomes
// ours.
func (e ProcessExecutor) ExecReplacing(argv []string) error {
	if len(argv) == 0 {
		return errors.New("empty command")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = e.environ()
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.ExitCode())
	}
	if err != nil {
		return err
	}

	os.Exit(0)
	return nil
}
