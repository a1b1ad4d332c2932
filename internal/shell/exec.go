package shell

import (
	"errors"
	"os"
)

var ErrProcessReplacement = errors.New("failed to execute command")

// Executor hands the process over to argv. On success ExecReplacing does not
// return.
type Executor interface {
	ExecReplacing(argv []string) error
}

// ProcessExecutor replaces the current process image, looking argv[0] up in
// PATH the way execvp does.
type ProcessExecutor struct {
	// Env is passed to the new process. Nil means os.Environ().
	Env []string
}

func (e ProcessExecutor) environ() []string {
	if e.Env == nil {
		return os.Environ()
	}
	return e.Env
}
