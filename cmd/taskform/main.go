package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-taskform/internal/cmd"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, buildDate)
	if err := cmd.Execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "taskform:", err)
		os.Exit(cmd.ExitCode(err))
	}
}
