package main

import (
	cmd "notashelf.dev/nix-shell-locked/cmd"
)

func main() {
	cmd.Execute()
}
