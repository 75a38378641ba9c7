package cmd

import (
	"context"
	"fmt"

	"listing-media/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on storage and database",
	Long:  `Checks that the storage bucket holds the photo prefix and that the index tables carry every mapped column.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the bucket structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the index tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, schemaCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing prefixes")
}

func runIntegrityChecks(ctx context.Context, runStructure, runSchema bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := newEnv(true)
	if err != nil {
		return err
	}
	defer e.logger.Sync()
	logg := e.logger

	svc := integrity.NewService(e.client, e.cfg.Storage.Bucket, []string{e.cfg.Storage.PathPrefix}, e.db, logg)
	failed := false

	if runStructure {
		missing, err := svc.CheckStructure(ctx)
		switch {
		case err != nil:
			logg.Error("Structure check failed", zap.Error(err))
			failed = true
		case len(missing) == 0:
			logg.Info("Structure check passed")
		case fixFlag:
			if err := svc.FixStructure(ctx, missing); err != nil {
				return fmt.Errorf("failed to fix structure: %w", err)
			}
			logg.Info("Structure fixed", zap.Strings("created", missing))
		default:
			logg.Warn("Missing prefixes", zap.Strings("missing", missing))
			failed = true
		}
	}

	if runSchema {
		report, err := svc.CheckSchema()
		if err != nil {
			logg.Error("Schema check failed", zap.Error(err))
			failed = true
		} else {
			for name, tbl := range report.Tables {
				if tbl.Status != "ok" {
					logg.Warn("Table drift", zap.String("table", name), zap.String("status", tbl.Status), zap.Strings("missing_columns", tbl.MissingColumns))
				}
			}
			for _, msg := range report.Errors {
				logg.Error("Schema inspection error", zap.String("error", msg))
			}
			if report.Matched {
				logg.Info("Schema check passed", zap.String("driver", report.Driver))
			} else {
				failed = true
			}
		}
	}

	if failed {
		return fmt.Errorf("integrity checks failed")
	}
	return nil
}
