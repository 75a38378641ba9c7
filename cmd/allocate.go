package cmd

import (
	"context"
	"fmt"

	"listing-media/feature/listing"

	"github.com/spf13/cobra"
)

var peekFlag bool

// allocateCmd issues or previews a listing identifier.
var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Allocate a listing identifier from the exclusive partition",
	Long: `Consumes and prints the next listing identifier.

With --peek the next identifier is printed without being consumed. The preview
is advisory: a concurrent allocation may take it first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(false)
		if err != nil {
			return err
		}
		defer e.logger.Sync()

		alloc := listing.NewAllocator(e.db, e.cfg.Allocator, e.logger)
		ctx := context.Background()

		if peekFlag {
			next, err := alloc.PeekNext(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%d (advisory)\n", next)
			return nil
		}

		id, err := alloc.Allocate(ctx)
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(allocateCmd)
	allocateCmd.Flags().BoolVar(&peekFlag, "peek", false, "Preview the next identifier without consuming it")
}
