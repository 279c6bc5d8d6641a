package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/goliatone/go-buildergen/internal/cli"
)

var version = "dev"

func main() {
	root := cli.NewRootCmd(cli.WithVersion(version))
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint("buildergen:"), err)
		os.Exit(1)
	}
}
