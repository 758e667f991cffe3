// nsc is the neuroscan CLI — a client for the remote brain-MRI
// classification service.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/neuroscanhq/neuroscan/internal/style"
	"github.com/spf13/cobra"
)

// Version metadata injected via ldflags.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	initSentry()
	code := run(os.Args[1:], os.Stdout, os.Stderr)
	sentry.Flush(2 * time.Second)
	os.Exit(code)
}

// initSentry enables crash reporting when a DSN is configured.
// Without NSC_SENTRY_DSN this is a no-op and nothing leaves the machine.
func initSentry() {
	dsn := os.Getenv("NSC_SENTRY_DSN")
	if dsn == "" {
		return
	}
	_ = sentry.Init(sentry.ClientOptions{
		Dsn:     dsn,
		Release: "neuroscan@" + version,
	})
}

// errExit is a sentinel error returned by cobra RunE functions to signal
// non-zero exit. The command has already written its own error to stderr.
var errExit = errors.New("exit")

// run executes the nsc CLI with the given args.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errExit) {
			sentry.CaptureException(err)
			fmt.Fprintf(stderr, "nsc: %v\n", err)
			var hinted *HintedError
			if errors.As(err, &hinted) {
				fmt.Fprintf(stderr, "%s\n", style.Dim.Render(hinted.Hint))
			}
		}
		return 1
	}
	return 0
}

// newRootCmd creates the root cobra command with all subcommands.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "nsc",
		Short:         "neuroscan — brain-MRI classification client",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			fmt.Fprintf(stderr, "nsc: unknown command %q\n", args[0]) //nolint:errcheck // best-effort stderr
			return errExit
		},
	}
	root.PersistentFlags().String("server", "", "Classification server base URL (default $NSC_SERVER or http://localhost:8000)")
	root.PersistentFlags().String("color", "auto", "Color output: always, auto, never")
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		colorMode, _ := cmd.Flags().GetString("color")
		switch colorMode {
		case "always", "auto", "never":
			style.SetColorMode(colorMode)
			return nil
		default:
			return fmt.Errorf("invalid --color value %q: must be always, auto, or never", colorMode)
		}
	}
	root.AddCommand(
		newPredictCmd(stdout, stderr),
		newBulkCmd(stdout, stderr),
		newHistoryCmd(stdout, stderr),
		newModelsCmd(stdout, stderr),
		newTUICmd(stdout, stderr),
		newVersionCmd(stdout),
	)
	return root
}
