package cmd

import (
	"fmt"
	"os"

	"listing-media/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "listing-media",
	Short: "Exclusive Listing Media Service",
	Long: `Listing Media stores the photos of exclusive listings, keeps each listing's
photo order and summary consistent, and issues listing identifiers from a
reserved partition.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with the development config gives readable CLI errors.
		cfg := &logger.Config{
			Level:   "debug",
			Format:  "console",
			Service: "listing-media",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
