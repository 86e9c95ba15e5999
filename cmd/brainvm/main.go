package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var red = color.New(color.FgRed).SprintfFunc()

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		fatal(err)
	}
}

func fatal(msg interface{}) {
	var s string
	switch msg := msg.(type) {
	case string:
		s = red("%s", msg)
	case error:
		s = formatError(msg, useColor(os.Stderr))
	default:
		s = red("%v", msg)
	}
	fmt.Fprintln(os.Stderr, s)
	os.Exit(1)
}
