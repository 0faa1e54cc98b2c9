package spectra

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

// Cmd represents the spectra command
var Cmd = &cobra.Command{
	Use:   "spectra",
	Short: "Migrate spectral records and marker flags only",
	Long: `Migrate spectral records and marker flags from SQLite to PostgreSQL.

Inserts every spectrum missing from the target and raises has_spectrum on
the linked markers. Speed data is left alone; use "scmigrate all" for the
full migration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := runner.Setup(opts)
		if err != nil {
			return err
		}

		console.Banner("Safecast Spectral Data Migration", "SQLite -> PostgreSQL")
		fmt.Println()

		migrator, cleanup, err := app.InitializeMigrator(cfg)
		if err != nil {
			return err
		}
		defer cleanup()
		defer migrator.Shutdown()

		plan, err := migrator.Preflight()
		if err != nil {
			return err
		}

		runner.PrintAnalysis(plan)
		if plan.Source.Spectra == 0 {
			fmt.Println("No spectral data found in SQLite database. Nothing to migrate.")
			return nil
		}
		runner.PrintPlan(plan, false)

		if opts.DryRun {
			fmt.Println("Dry run: no changes applied.")
			return nil
		}

		if !runner.Confirm(opts, "Continue with migration?") {
			fmt.Println("Migration cancelled.")
			return nil
		}

		fmt.Println("\nStarting migration...")

		res, err := migrator.CopyMissingSpectra()
		if err != nil {
			return err
		}
		fmt.Printf("  Inserted %s spectral records\n", console.N(res.Inserted))
		if res.Skipped > 0 {
			fmt.Printf("  (Skipped %s existing records)\n", console.N(res.Skipped))
		}
		if res.BadChannels > 0 {
			fmt.Printf("  (Skipped %s records with unparseable channels)\n", console.N(res.BadChannels))
		}

		flagRes, err := migrator.UpdateSpectrumFlags()
		if err != nil {
			return err
		}
		fmt.Printf("  Updated %s marker spectrum flags\n", console.N(flagRes.Updated))

		fmt.Println()
		result, err := migrator.Verify(plan.Source)
		if err != nil {
			return err
		}
		runner.PrintVerification(plan.Source, result, false)
		return nil
	},
}
