package channels

import (
	"fmt"

	"github.com/spf13/cobra"

	"safecast-migrate/cmd/scmigrate/cmd/runner"
	"safecast-migrate/internal/app"
	"safecast-migrate/internal/app/console"
)

var opts runner.Options

func init() {
	opts.Bind(Cmd.Flags())
}

// Cmd represents the channels command
var Cmd = &cobra.Command{
	Use:   "channels",
	Short: "Backfill channel data on already-migrated spectra",
	Long: `Backfill channel data on target spectra whose channels column is NULL.

Re-reads the channel arrays from the SQLite source, parses the JSON
representation into a native array, and updates the channel metadata
columns in batches. Rows already holding channel data are left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := runner.Setup(opts)
		if err != nil {
			return err
		}

		console.Banner("Update PostgreSQL Spectral Data with Channel Information")
		fmt.Println()

		migrator, cleanup, err := app.InitializeMigrator(cfg)
		if err != nil {
			return err
		}
		defer cleanup()
		defer migrator.Shutdown()

		pending, populated, err := migrator.ChannelBackfillStatus()
		if err != nil {
			return err
		}
		fmt.Printf("  Records with channels: %s\n", console.N(populated))
		fmt.Printf("  Records with NULL channels: %s\n\n", console.N(pending))

		if pending == 0 {
			fmt.Println("No records need updating. All done!")
			return nil
		}

		if opts.DryRun {
			fmt.Println("Dry run: no changes applied.")
			return nil
		}

		if !runner.Confirm(opts, fmt.Sprintf("Update %s spectral records?", console.N(pending))) {
			fmt.Println("Update cancelled.")
			return nil
		}

		fmt.Println("\nFetching spectral data from SQLite...")
		res, err := migrator.BackfillChannels()
		if err != nil {
			return err
		}
		fmt.Printf("  Updated %s spectral records in %s batches\n", console.N(res.Updated), console.N(res.Batches))
		if res.Skipped > 0 {
			fmt.Printf("  (Skipped %s records with unparseable channels)\n", console.N(res.Skipped))
		}

		remaining, populated, err := migrator.ChannelBackfillStatus()
		if err != nil {
			return err
		}
		fmt.Println()
		console.Banner("Verifying update")
		fmt.Printf("  Records with channels: %s\n", console.N(populated))
		fmt.Printf("  Records still NULL: %s\n", console.N(remaining))
		return nil
	},
}
