package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
)

// exit statuses follow diff(1)
const (
	exitSame   = 0
	exitDiffer = 1
	exitError  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRoot().Command()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if cmd, err := rootCmd.ExecuteContextC(ctx); err != nil {
		if err == errDifferences {
			return exitDiffer
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if _, ok := err.(usageError); ok {
			fmt.Fprintf(stderr, "\n%s\n", cmd.UsageString())
		}
		return exitError
	}
	return exitSame
}
