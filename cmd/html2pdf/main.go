package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/automaxprocs/maxprocs"

	html2pdf "github.com/alnah/go-html2pdf"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

// run dispatches commands and maps errors to exit codes.
func run(args []string) int {
	if len(args) == 0 {
		printUsage(os.Stderr)
		return ExitUsage
	}

	switch args[0] {
	case "convert":
		return runConvertCommand(args[1:])
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return ExitSuccess
	case "version", "--version":
		fmt.Println("html2pdf", Version)
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(os.Stderr)
		return ExitUsage
	}
}

// runConvertCommand parses flags, builds the service pool, and runs the
// conversion until done or interrupted.
func runConvertCommand(args []string) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitUsage
	}

	setupMaxProcs(flags.verbose)

	opts, err := buildOptions(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ExitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poolSize := html2pdf.ResolvePoolSize(flags.workers)
	if flags.verbose {
		fmt.Fprintf(os.Stderr, "Pool size: %d\n", poolSize)
	}
	pool := newServicePool(poolSize, opts...)
	defer pool.Close()

	if err := runConvert(ctx, positional, flags, pool, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// setupMaxProcs configures GOMAXPROCS with conditional logging.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setupMaxProcs(verbose bool) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}
}
