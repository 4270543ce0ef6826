// swbench drives stopwatches from concurrent workers and prints the resulting
// monitor snapshots.
//
// Usage:
//
//	swbench run [--workers N] [--tasks M] [--cancel-ratio R] [--work D] [--config FILE] [--prometheus] [--otel]
//
// A fraction R of the tasks fails on purpose; with cancel_on_error enabled
// (the default) their watches are canceled and no duration is recorded.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var log = logrus.WithField("prefix", "swbench")

func main() {
	if err := createApp().Run(context.Background(), os.Args); err != nil {
		log.WithError(err).Error("swbench failed")
		os.Exit(1)
	}
}

func createApp() *cli.Command {
	return &cli.Command{
		Name:     "swbench",
		Usage:    "exercise stopwatch monitors under concurrent load",
		Version:  fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Commands: []*cli.Command{createRunCommand()},
	}
}
