package all

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

// Cmd represents the all command
var Cmd = &cobra.Command{
	Use:   "all",
	Short: "Migrate spectral data, marker flags and speed values",
	Long: `Migrate spectral data, marker flags and speed values from SQLite to PostgreSQL.

- Inserts every spectrum missing from the target, preserving ids
- Raises has_spectrum on markers that carry it in the source
- Copies positive speeds onto markers whose speed is still unset,
  in independently committed batches so an interrupted run can resume`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := runner.Setup(opts)
		if err != nil {
			return err
		}

		console.Banner("Safecast Data Migration: Spectral + Speed Data", "SQLite -> PostgreSQL")
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
		if plan.SourceEmpty() {
			fmt.Println("No spectral or speed data found in SQLite database. Nothing to migrate.")
			return nil
		}
		runner.PrintPlan(plan, true)

		if opts.DryRun {
			fmt.Println("Dry run: no changes applied.")
			return nil
		}

		if plan.NothingToDo() {
			fmt.Println("All data appears to be already migrated!")
			if !runner.Confirm(opts, "Do you want to re-check and update anyway?") {
				fmt.Println("Migration cancelled.")
				return nil
			}
		}

		fmt.Printf("Note: speed data migration will process in batches of %s records.\n\n", console.N(cfg.BatchSize))
		if !runner.Confirm(opts, "Continue with migration?") {
			fmt.Println("Migration cancelled.")
			return nil
		}

		fmt.Println()
		console.Banner("Starting Migration")

		fmt.Println("\n[1/3] Migrating spectral data...")
		if plan.SpectraToInsert > 0 {
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
		} else {
			fmt.Println("  Spectral data already migrated, skipping...")
		}

		fmt.Println("\n[2/3] Updating marker spectrum flags...")
		flagRes, err := migrator.UpdateSpectrumFlags()
		if err != nil {
			return err
		}
		fmt.Printf("  Updated %s marker spectrum flags\n", console.N(flagRes.Updated))

		fmt.Println("\n[3/3] Migrating speed data...")
		if plan.SpeedsToUpdate > 0 {
			speedRes, err := migrator.UpdateSpeeds()
			if err != nil {
				return err
			}
			fmt.Printf("  Processed %s speed values in %s batches (%s rows changed)\n",
				console.N(speedRes.Processed), console.N(speedRes.Batches), console.N(speedRes.Updated))
		} else {
			fmt.Println("  Speed data already migrated, skipping...")
		}

		fmt.Println()
		result, err := migrator.Verify(plan.Source)
		if err != nil {
			return err
		}
		runner.PrintVerification(plan.Source, result, true)
		return nil
	},
}
