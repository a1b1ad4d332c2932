package config

import (
	"errors"
	"fmt"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"
)

var ErrPathExpansion = errors.New("failed to expand path")

// ExpandPath applies tilde and environment variable expansion to s. Variable
// values are substituted verbatim, without field splitting or globbing. Only
// a leading "~" or "~/" is expanded; "~user" is left alone. Unset variables
// and command substitutions are errors. Quotes and backslashes are kept as
// written.
func ExpandPath(s string, env expand.Environ) (string, error) {
	prefix, rest := "", s
	if s == "~" || strings.HasPrefix(s, "~/") {
		home := env.Get("HOME")
		if !home.IsSet() {
			return "", fmt.Errorf("%w %q: HOME is not set", ErrPathExpansion, s)
		}
		prefix, rest = home.String(), s[1:]
	}

	if rest == "" {
		return prefix, nil
	}

	word, err := syntax.NewParser().Document(strings.NewReader(rest))
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrPathExpansion, s, err)
	}

	cfg := &expand.Config{
		Env:     env,
		NoUnset: true,
	}
	expanded, err := expand.Literal(cfg, word)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrPathExpansion, s, err)
	}

	return prefix + expanded, nil
}

// ExpandLockfile expands the FlakeLockfile path of c.
func (c Config) ExpandLockfile(env expand.Environ) (string, error) {
	return ExpandPath(c.FlakeLockfile, env)
}
