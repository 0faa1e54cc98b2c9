// Package runner carries the setup and reporting steps shared by every
// migration subcommand.
package runner

import (
	"fmt"
	"os"

	"safecast-migrate/internal/app/console"
	"safecast-migrate/internal/app/repository/migrate"
	"safecast-migrate/internal/config"
)

// Options are the policy flags every migration subcommand exposes.
type Options struct {
	DryRun    bool
	Yes       bool
	BatchSize int
}

// FlagSet is the slice of pflag.FlagSet the options need.
type FlagSet interface {
	BoolVar(p *bool, name string, value bool, usage string)
	IntVar(p *int, name string, value int, usage string)
}

// Bind registers the shared flags on a subcommand's flag set.
func (o *Options) Bind(fs FlagSet) {
	fs.BoolVar(&o.DryRun, "dry-run", false, "compute and print the migration plan without changing anything")
	fs.BoolVar(&o.Yes, "yes", false, "skip the interactive confirmation")
	fs.IntVar(&o.BatchSize, "batch-size", 0, "override BATCH_SIZE for bulk updates")
}

// Setup loads the environment, builds the configuration, and fills in the
// password from the terminal when it is not configured.
func Setup(opts Options) (config.Config, error) {
	if err := config.LoadEnv(); err != nil {
		return config.Config{}, err
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}

	if opts.BatchSize > 0 {
		cfg.BatchSize = opts.BatchSize
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}

	// Dry runs still read both stores, so the password is needed either way.
	if cfg.PGPassword == "" {
		password, err := console.PromptPassword("PostgreSQL password: ")
		if err != nil {
			return config.Config{}, err
		}
		cfg.PGPassword = password
	}

	return cfg, nil
}

// PrintAnalysis prints the two pre-flight count snapshots.
func PrintAnalysis(plan migrate.Plan) {
	fmt.Println("Analyzing SQLite database...")
	fmt.Printf("  Total markers: %s\n", console.N(plan.Source.Markers))
	fmt.Printf("  Spectral records: %s\n", console.N(plan.Source.Spectra))
	fmt.Printf("  Markers with spectrum: %s\n", console.N(plan.Source.MarkersWithSpectrum))
	fmt.Printf("  Markers with speed data: %s\n", console.N(plan.Source.MarkersWithSpeed))
	fmt.Println()
	fmt.Println("Analyzing PostgreSQL database...")
	fmt.Printf("  Total markers: %s\n", console.N(plan.Target.Markers))
	fmt.Printf("  Spectral records: %s\n", console.N(plan.Target.Spectra))
	fmt.Printf("  Markers with spectrum: %s\n", console.N(plan.Target.MarkersWithSpectrum))
	fmt.Printf("  Markers with speed data: %s\n", console.N(plan.Target.MarkersWithSpeed))
	fmt.Println()
}

// PrintPlan prints the numbered migration plan.
func PrintPlan(plan migrate.Plan, withSpeed bool) {
	console.Banner("Migration Plan:")
	fmt.Printf("  1. Spectral records to add: %s\n", console.N(plan.SpectraToInsert))
	fmt.Printf("  2. Marker spectrum flags to update: %s\n", console.N(plan.FlagsToUpdate))
	if withSpeed {
		fmt.Printf("  3. Speed values to update: ~%s\n", console.N(plan.SpeedsToUpdate))
	}
	fmt.Println()
}

// PrintVerification prints the post-run counts and any shortfall warnings.
// Warnings do not change the exit code.
func PrintVerification(source migrate.Counts, result migrate.VerifyResult, withSpeed bool) {
	console.Banner("Verifying Migration")
	fmt.Printf("  Spectral records: %s\n", console.N(result.Target.Spectra))
	fmt.Printf("  Markers with spectrum: %s\n", console.N(result.Target.MarkersWithSpectrum))
	if withSpeed {
		fmt.Printf("  Markers with speed data: %s\n", console.N(result.Target.MarkersWithSpeed))
	}
	fmt.Println()

	if !result.SpectraOK {
		fmt.Printf("  Warning: spectral records mismatch (expected %s, got %s)\n",
			console.N(source.Spectra), console.N(result.Target.Spectra))
	}
	if withSpeed && !result.SpeedOK {
		fmt.Printf("  Warning: speed data mismatch (expected ~%s, got %s)\n",
			console.N(source.MarkersWithSpeed), console.N(result.Target.MarkersWithSpeed))
	}

	if result.SpectraOK && (!withSpeed || result.SpeedOK) {
		console.Banner("Migration Completed Successfully!")
	} else {
		console.Banner("Migration completed with warnings")
		fmt.Println("Please review the warnings above.")
	}
}

// Confirm wraps the interactive gate; --yes short-circuits it.
func Confirm(opts Options, question string) bool {
	if opts.Yes {
		return true
	}
	return console.Confirm(os.Stdin, question)
}
