package shell

const (
	Program    = "nix"
	Subcommand = "shell"
	// RepoPrefix is the flake registry name installables are resolved from.
	RepoPrefix = "nixpkgs"
)

// Installable returns the reference to pkg pinned at revision, e.g.
// "nixpkgs/<rev>#hello".
func Installable(pkg, revision string) string {
	return RepoPrefix + "/" + revision + "#" + pkg
}

// BuildCommand returns the full argv for `nix shell` with one installable per
// package followed by passthrough verbatim. Packages keep their order and
// duplicates are kept.
func BuildCommand(packages []string, revision string, passthrough []string) []string {
	argv := make([]string, 0, 2+len(packages)+len(passthrough))
	argv = append(argv, Program, Subcommand)
	for _, pkg := range packages {
		argv = append(argv, Installable(pkg, revision))
	}
	return append(argv, passthrough...)
}
