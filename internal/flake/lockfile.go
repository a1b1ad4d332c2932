package flake

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/afero"
)

// RevisionPointer is where the nixpkgs revision lives in a flake.lock,
// written as a JSON pointer.
const RevisionPointer = "/nodes/nixpkgs/locked/rev"

var revisionPath = []string{"nodes", "nixpkgs", "locked", "rev"}

var (
	ErrLockfileRead           = errors.New("failed to read flake lockfile")
	ErrLockfileParse          = errors.New("failed to decode flake lockfile")
	ErrLockfileFieldMissing   = errors.New("field not found in flake lockfile")
	ErrLockfileFieldNotString = errors.New("field in flake lockfile is not a string")
)

// ReadNixpkgsRevision reads the lockfile at path and returns the locked
// nixpkgs revision.
func ReadNixpkgsRevision(fs afero.Fs, path string) (string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", fmt.Errorf("%w %s: %v", ErrLockfileRead, path, err)
	}
	return NixpkgsRevision(data, path)
}

// NixpkgsRevision extracts the value at RevisionPointer from the lockfile
// contents in data. Nothing else in the document is looked at. path is only
// used in error messages.
func NixpkgsRevision(data []byte, path string) (string, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("%w %s: %v", ErrLockfileParse, path, err)
	}

	value, ok := lookup(doc, revisionPath)
	if !ok {
		return "", fmt.Errorf("%w: couldn't find path %q in %s", ErrLockfileFieldMissing, RevisionPointer, path)
	}

	rev, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: the value at %q in %s is %s", ErrLockfileFieldNotString, RevisionPointer, path, jsonKind(value))
	}

	return rev, nil
}

// Walks keys through nested objects. A present key holding null is still
// found.
func lookup(doc any, keys []string) (any, bool) {
	current := doc
	for _, key := range keys {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "a boolean"
	case float64:
		return "a number"
	case []any:
		return "an array"
	case map[string]any:
		return "an object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
