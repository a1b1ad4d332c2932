package util

import (
	"os"
)

// IsNoColor reports whether NO_COLOR is set to a non-empty value.
func IsNoColor() bool {
	return os.Getenv("NO_COLOR") != ""
}
