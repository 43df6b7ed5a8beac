// Command hn prints the current Hacker News stories in the terminal.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/yonasBSD/hacker-news/cli"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetVersion(version)
	code := cli.Execute(ctx, os.Args[1:], cli.Options{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})

	stop()
	os.Exit(code)
}
