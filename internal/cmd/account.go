package cmd

import (
	"os"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/3leaps/cirrus/internal/observability"
	"github.com/3leaps/cirrus/pkg/output"
	"github.com/3leaps/cirrus/pkg/status"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Query cloud account status",
	Long: `Query the state of the cloud account credentials backing the
configured bucket and classify the outcome.

Emits a cirrus.account.v1 record on success or a cirrus.error.v1 record
on failure.

Example:
  cirrus account --bucket my-bucket
  cirrus account --bucket my-bucket --endpoint http://localhost:9000 --path-style`,
	RunE: runAccount,
}

func init() {
	rootCmd.AddCommand(accountCmd)
	addConnectionFlags(accountCmd)
}

func runAccount(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cont, _, err := newContainer(ctx)
	if err != nil {
		observability.CLILogger.Error("Failed to create container", zap.Error(err))
		return exitError(foundry.ExitInvalidArgument, "Invalid provider configuration", err)
	}

	jobID := uuid.New().String()
	w := output.NewJSONLWriter(os.Stdout, jobID, "s3")
	defer func() { _ = w.Close() }()

	acct, err := status.CheckAccount(ctx, cont).Get()
	if err != nil {
		if werr := w.WriteError(ctx, errorRecord(err)); werr != nil {
			observability.CLILogger.Debug("Failed to emit error record", zap.Error(werr))
		}
		return exitError(foundry.ExitExternalServiceUnavailable, "Account status query failed", err)
	}

	observability.CLILogger.Debug("Account status classified",
		zap.String("state", string(acct.State)),
		zap.String("job_id", jobID),
	)

	return w.WriteAccount(ctx, &output.AccountRecord{
		State:    string(acct.State),
		Guidance: acct.Guidance,
	})
}
