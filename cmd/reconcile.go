package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"listing-media/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	listingFlag int64
	dryRunFlag  bool
	yesConfirm  bool
)

// reconcileCmd removes index rows whose photos are gone from the blob store.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Remove index rows whose blobs no longer exist",
	Long: `Probes the blob of every indexed photo and removes rows whose blob is
confirmed missing. Probes that time out or fail are reported and never cleaned.

Examples:
  # Report only
  reconcile --dry-run

  # One listing, with interactive confirmation
  reconcile --listing 1000000042

  # Every listing, non-interactive
  reconcile --yes`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().Int64Var(&listingFlag, "listing", 0, "Restrict the pass to one listing")
	reconcileCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Report without cleaning")
	reconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm cleanup (non-interactive)")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	e, err := newEnv(true)
	if err != nil {
		return err
	}
	defer e.logger.Sync()
	l := e.logger

	_, _, photos := e.features(nil)
	rec := photos.Reconciler()

	// Step 1: Plan (always runs)
	l.Info("Planning reconciliation...", zap.Int64("listing_id", listingFlag))
	plan, err := rec.Plan(ctx, listingFlag)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}
	printReconcilePlan(l, plan)

	if dryRunFlag {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if len(plan.Actions) == 0 {
		l.Info("No orphaned rows found.")
		return nil
	}

	// Step 2: Apply (if confirmed)
	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	report := rec.Apply(ctx, plan, reconcile.ReconcileOptions{Confirmed: true})
	l.Info("Reconciliation finished",
		zap.Int("checked", report.Checked),
		zap.Int("orphaned", report.Orphaned),
		zap.Int("cleaned", report.Cleaned),
		zap.Int("errors", len(report.Errors)),
	)
	return nil
}

// printReconcilePlan prints a reconcile plan using the logger.
func printReconcilePlan(l *zap.Logger, plan *reconcile.ReconcilePlan) {
	s := plan.Summary
	l.Info("Reconciliation report",
		zap.Int("checked", s.Checked),
		zap.Int("present", s.Present),
		zap.Int("orphaned", s.Orphaned),
		zap.Int("unknown", s.Unknown),
	)

	// Show a sample of actions and errors
	const maxShow = 5
	for i, action := range plan.Actions {
		if i == maxShow {
			l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
			break
		}
		l.Info("Planned action",
			zap.String("type", string(action.Type)),
			zap.String("asset_id", action.Key),
			zap.String("url", action.Item.Locator),
		)
	}
	for i, pe := range plan.Errors {
		if i == maxShow {
			l.Info("Additional probe errors not shown", zap.Int("count", len(plan.Errors)-maxShow))
			break
		}
		l.Warn("Probe inconclusive", zap.String("asset_id", pe.Key), zap.String("reason", pe.Reason))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\nAuto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\nType 'yes' to confirm cleanup: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
