package args

import (
	"errors"
	"fmt"
)

var ErrConflictingOverrides = errors.New("conflicting overrides")

// Override replaces the default config file lookup. It is either a ConfigFile
// or a FlakeLockfile; a nil Override means no override was given.
type Override interface {
	isOverride()
}

// ConfigFile points at a config file to read instead of the one found in the
// XDG config directories.
type ConfigFile struct {
	Path string
}

// FlakeLockfile names the lockfile directly, skipping the config file.
type FlakeLockfile struct {
	Path string
}

func (ConfigFile) isOverride()    {}
func (FlakeLockfile) isOverride() {}

// Flags holds the values as they come off the command line. A nil
// ConfigFile or Lockfile means the flag was not given; an empty string is a
// value like any other.
type Flags struct {
	DryRun      bool
	ConfigFile  *string
	Lockfile    *string
	Packages    []string
	Passthrough []string
}

type Args struct {
	DryRun      bool
	Override    Override
	Packages    []string
	Passthrough []string
}

// Parse converts raw flags into Args. At most one of ConfigFile and Lockfile
// may be set.
func Parse(flags Flags) (Args, error) {
	override, err := NewOverride(flags.ConfigFile, flags.Lockfile)
	if err != nil {
		return Args{}, err
	}

	return Args{
		DryRun:      flags.DryRun,
		Override:    override,
		Packages:    flags.Packages,
		Passthrough: flags.Passthrough,
	}, nil
}

func NewOverride(configFile, lockfile *string) (Override, error) {
	switch {
	case configFile != nil && lockfile != nil:
		return nil, fmt.Errorf("%w: specify at most one of --config (%q) and --lockfile (%q)",
			ErrConflictingOverrides, *configFile, *lockfile)
	case configFile != nil:
		return ConfigFile{Path: *configFile}, nil
	case lockfile != nil:
		return FlakeLockfile{Path: *lockfile}, nil
	default:
		return nil, nil
	}
}
