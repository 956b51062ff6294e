package cmd

import (
	"os"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/3leaps/cirrus/internal/observability"
	"github.com/3leaps/cirrus/pkg/output"
	"github.com/3leaps/cirrus/pkg/provider"
	"github.com/3leaps/cirrus/pkg/status"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Negotiate the user-discoverability permission",
	Long: `Check the current grant state of the user-discoverability permission
and, if the user has not decided yet, request it.

The request step only runs when the status check reports the initial
state; a granted, denied, or failed check is reported as-is. Emits a
cirrus.permission.v1 record on success or a cirrus.error.v1 record on
failure.

Example:
  cirrus discover --bucket my-bucket`,
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)
	addConnectionFlags(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cont, _, err := newContainer(ctx)
	if err != nil {
		observability.CLILogger.Error("Failed to create container", zap.Error(err))
		return exitError(foundry.ExitInvalidArgument, "Invalid provider configuration", err)
	}

	jobID := uuid.New().String()
	w := output.NewJSONLWriter(os.Stdout, jobID, "s3")
	defer func() { _ = w.Close() }()

	perm, err := status.RequestDiscoverability(ctx, cont).Get()
	if err != nil {
		if werr := w.WriteError(ctx, errorRecord(err)); werr != nil {
			observability.CLILogger.Debug("Failed to emit error record", zap.Error(werr))
		}
		return exitError(foundry.ExitExternalServiceUnavailable, "Discoverability negotiation failed", err)
	}

	observability.CLILogger.Debug("Permission classified",
		zap.String("state", string(perm.State)),
		zap.String("job_id", jobID),
	)

	return w.WritePermission(ctx, &output.PermissionRecord{
		Permission: provider.PermissionUserDiscoverability.String(),
		State:      string(perm.State),
		Guidance:   perm.Guidance,
	})
}
