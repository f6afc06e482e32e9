package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/timeboxd/timeboxd/internal/cmd"
	"github.com/timeboxd/timeboxd/internal/version"
)

func main() {
	var cli cmd.CLI
	ctx := kong.Parse(&cli,
		kong.Name("timeboxd"),
		kong.Description(version.Tagline),
		kong.UsageOnError(),
		kong.Vars{"version": version.Info()},
	)

	err := ctx.Run(cli.Container, &cli)
	if closeErr := cli.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
