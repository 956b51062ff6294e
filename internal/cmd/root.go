// Package cmd implements the cirrus CLI.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/3leaps/cirrus/internal/observability"
	"github.com/3leaps/cirrus/pkg/output"
	"github.com/3leaps/cirrus/pkg/status"
)

// versionInfo holds build metadata injected via SetVersionInfo.
var versionInfo = struct {
	Version   string
	Commit    string
	BuildDate string
}{
	Version:   "dev",
	Commit:    "HEAD",
	BuildDate: "unknown",
}

// SetVersionInfo records build metadata for the version command and
// server endpoints. Called from main with ldflags-injected values.
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

var rootCmd = &cobra.Command{
	Use:   "cirrus",
	Short: "Translate cloud account and permission status into domain results",
	Long: `cirrus queries a cloud provider for account status and application
permissions and translates the raw codes into a closed set of domain
results with user-facing guidance and retry hints.

Results are emitted as JSONL records (cirrus.<type>.v1) on stdout;
diagnostics go to stderr.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		observability.InitCLILogger(rootVerbose, rootLogJSON)
	},
}

var (
	rootVerbose bool
	rootLogJSON bool
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&rootLogJSON, "log-json", false, "Emit diagnostics as JSON lines")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("cirrus %s (commit %s, built %s)\n",
				versionInfo.Version, versionInfo.Commit, versionInfo.BuildDate)
		},
	})
}

// Execute runs the CLI. Interrupt and termination signals cancel the
// command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer observability.Sync()

	return rootCmd.ExecuteContext(ctx)
}

// codedError carries the process exit code alongside the failure.
type codedError struct {
	code int
	err  error
}

func (e *codedError) Error() string { return e.err.Error() }
func (e *codedError) Unwrap() error { return e.err }

// exitError creates an error that will cause the CLI to exit with the given code.
func exitError(code int, message string, err error) error {
	return &codedError{
		code: code,
		err:  fmt.Errorf("%s: %w", message, err),
	}
}

// ExitCode resolves the process exit code for a CLI error: the code
// attached by exitError, or 1 for any other failure.
func ExitCode(err error) int {
	var ce *codedError
	if errors.As(err, &ce) {
		return ce.code
	}
	return 1
}

// errorRecord converts an operation failure into its JSONL payload.
func errorRecord(err error) *output.ErrorRecord {
	var de *status.Error
	if errors.As(err, &de) {
		return &output.ErrorRecord{
			Kind:              string(de.Kind),
			Message:           de.Message,
			RetryAfterSeconds: de.RetryAfter,
			Retryable:         de.Retryable(),
		}
	}
	return &output.ErrorRecord{
		Kind:   output.KindUnclassified,
		Detail: err.Error(),
	}
}
