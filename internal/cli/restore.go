package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/subtag/internal/logging"
	"github.com/yaklabco/subtag/pkg/fsutil"
)

// ErrNoBackup is returned by restore for a script without a backup.
var ErrNoBackup = errors.New("no backup found")

func newRestoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file>...",
		Short: "Restore scripts from their backups",
		Long: `Put the sidecar backup written by the last edit back in place of each
script, and remove the backup.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.Default()
			ctx := commandContext(cmd)

			var errs []error
			for _, path := range args {
				restored, err := fsutil.RestoreBackup(ctx, path)
				switch {
				case err != nil:
					errs = append(errs, fmt.Errorf("%s: %w", path, err))
				case !restored:
					errs = append(errs, fmt.Errorf("%s: %w", path, ErrNoBackup))
				default:
					logger.Info("restored from backup", logging.FieldPath, path)
					fmt.Fprintf(cmd.OutOrStdout(), "restored %s\n", path)
				}
			}
			return errors.Join(errs...)
		},
	}
}
