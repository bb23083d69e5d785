package main

import (
	"os"

	cpapp "github.com/arcator/cmdperms/app"
)

func main() {
	cpapp.App.Reader = os.Stdin
	cpapp.App.Writer = os.Stdout
	cpapp.App.ErrWriter = os.Stderr
	if err := cpapp.App.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
