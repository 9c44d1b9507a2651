package main

import (
	"os"

	"github.com/thatsneat-dev/argmark/internal/cli"
)

var version = "dev"

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr, version))
}
