//go:build unix

package shell

import (
	"errors"
	"os/exec"

	"golang.org/x/sys/unix"
)

func (e ProcessExecutor) ExecReplacing(argv []string) error {
	if len(argv) == 0 {
		return errors.New("empty command")
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return err
	}

	return unix.Exec(path, argv, e.environ())
}
