package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"notashelf.dev/nix-shell-locked/internal/args"
)

// FileName is looked up in each XDG config directory.
const FileName = "nix-shell-locked.toml"

var (
	ErrConfigNotFound    = errors.New("config file not found")
	ErrConfigFileMissing = errors.New("specified config file does not exist")
	ErrConfigParse       = errors.New("invalid config file")
)

type Config struct {
	FlakeLockfile string `toml:"flake_lockfile"`
}

// file mirrors Config with pointer fields so a missing key can be told apart
// from an empty one.
type file struct {
	FlakeLockfile *string `toml:"flake_lockfile"`
}

// Resolver turns an optional override into a single Config.
type Resolver struct {
	Fs afero.Fs
	// ConfigDirs lists the directories searched for FileName, highest
	// priority first.
	ConfigDirs func() ([]string, error)
	Logger     *log.Logger
}

func NewResolver(fs afero.Fs, logger *log.Logger) *Resolver {
	return &Resolver{
		Fs:         fs,
		ConfigDirs: XDGConfigDirs,
		Logger:     logger,
	}
}

func (r *Resolver) Resolve(override args.Override) (Config, error) {
	switch o := override.(type) {
	case args.FlakeLockfile:
		return Config{FlakeLockfile: o.Path}, nil
	case args.ConfigFile:
		if !r.isFile(o.Path) {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigFileMissing, o.Path)
		}
		return r.read(o.Path)
	case nil:
		path, err := r.find()
		if err != nil {
			return Config{}, err
		}
		return r.read(path)
	default:
		return Config{}, fmt.Errorf("unsupported override %T", override)
	}
}

func (r *Resolver) find() (string, error) {
	dirs, err := r.ConfigDirs()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConfigNotFound, err)
	}

	for _, dir := range dirs {
		path := filepath.Join(dir, FileName)
		if r.isFile(path) {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: searched for %s in %s", ErrConfigNotFound, FileName, strings.Join(dirs, ", "))
}

func (r *Resolver) read(path string) (Config, error) {
	r.logger().Info("using config file", "path", path)

	data, err := afero.ReadFile(r.Fs, path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: reading %s: %v", ErrConfigParse, path, err)
	}

	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	if f.FlakeLockfile == nil {
		return Config{}, fmt.Errorf("%w: %s: missing field flake_lockfile", ErrConfigParse, path)
	}

	return Config{FlakeLockfile: *f.FlakeLockfile}, nil
}

func (r *Resolver) isFile(path string) bool {
	info, err := r.Fs.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (r *Resolver) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}

// XDGConfigDirs returns $XDG_CONFIG_HOME (default ~/.config) followed by the
// entries of $XDG_CONFIG_DIRS (default /etc/xdg).
func XDGConfigDirs() ([]string, error) {
	home := os.Getenv("XDG_CONFIG_HOME")
	if home == "" || !filepath.IsAbs(home) {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		home = filepath.Join(userHome, ".config")
	}

	dirs := []string{home}

	systemDirs := os.Getenv("XDG_CONFIG_DIRS")
	if systemDirs == "" {
		systemDirs = "/etc/xdg"
	}
	for _, dir := range filepath.SplitList(systemDirs) {
		// relative entries are invalid per the basedir spec
		if filepath.IsAbs(dir) {
			dirs = append(dirs, dir)
		}
	}

	return dirs, nil
}
