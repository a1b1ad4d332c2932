package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"notashelf.dev/nix-shell-locked/internal/config"
	util "notashelf.dev/nix-shell-locked/internal/util"
)

// ConfigSuggestion is shown when no config file could be found.
var ConfigSuggestion = fmt.Sprintf(`Try creating a file at ~/.config/%s with contents:

flake_lockfile = "path/to/flake.lock"`, config.FileName)

type styles struct {
	errorStyle, hintStyle, codeStyle lipgloss.Style
	errorIcon                        string
}

func newStyles() styles {
	if util.IsNoColor() {
		emptyStyle := lipgloss.NewStyle()
		return styles{
			errorStyle: emptyStyle,
			hintStyle:  emptyStyle,
			codeStyle:  emptyStyle,
			errorIcon:  "[✗]",
		}
	}

	return styles{
		errorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true),
		hintStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")),
		codeStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
		errorIcon: "✗",
	}
}

// FormatCommand renders argv as a single space separated line.
func FormatCommand(argv []string) string {
	return strings.Join(argv, " ")
}

// PrintCommand writes the command line unstyled, so it can be piped or
// copied as is.
func PrintCommand(w io.Writer, argv []string) error {
	_, err := fmt.Fprintln(w, FormatCommand(argv))
	return err
}

// PrintError writes err to w, followed by a hint for errors the user can fix
// by creating a config file.
func PrintError(w io.Writer, err error) {
	s := newStyles()

	fmt.Fprintln(w, s.errorStyle.Render(fmt.Sprintf("%s Error: %v", s.errorIcon, err)))

	if errors.Is(err, config.ErrConfigNotFound) {
		suggestion, example, _ := strings.Cut(ConfigSuggestion, "\n\n")
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.hintStyle.Render(suggestion))
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.codeStyle.Render(example))
	}
}
