package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"safecast-migrate/cmd/scmigrate/cmd/all"
	"safecast-migrate/cmd/scmigrate/cmd/channels"
	"safecast-migrate/cmd/scmigrate/cmd/spectra"
	"safecast-migrate/cmd/scmigrate/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scmigrate",
	Short: "One-shot migration of Safecast sensor data from SQLite to PostgreSQL",
	Long: `One-shot migration of Safecast sensor data from SQLite to PostgreSQL.
- "all" moves spectral records, marker flags and GPS speed values
- "spectra" moves spectral records and marker flags only
- "channels" backfills channel arrays on already-migrated spectra

Configuration comes from the environment (SQLITE_DB, PG_HOST, PG_PORT,
PG_USER, PG_DB, PG_PASSWORD, BATCH_SIZE); a .env file is honored. Every
run is idempotent and safe to repeat after an interruption.`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(all.Cmd)
	rootCmd.AddCommand(spectra.Cmd)
	rootCmd.AddCommand(channels.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
