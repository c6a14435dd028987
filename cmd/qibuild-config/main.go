package main

import (
	"os"

	"github.com/dmerejkowsky/qibuild/internal/cli"
)

// version is set via ldflags at release time
var version = "dev"

func main() {
	cli.SetVersion(version)
	os.Exit(cli.Execute())
}
