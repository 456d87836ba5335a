// Package main is the entry point for the cec CLI.
package main

import (
	"os"

	"github.com/thoreinstein/cec/cmd/cec/commands"
)

func main() {
	os.Exit(commands.Execute())
}
