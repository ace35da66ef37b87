// Package cmd provides the command-line interface of flashsim.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "flashsim",
	Short: "flashsim simulates the flash block cache of a handheld console.",
	Long: `flashsim simulates the flash block cache of a handheld console. ` +
		`It replays recorded flash accesses and prints the periodic FLASH ` +
		`statistics the firmware would print.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("env", ".env",
		"File with FLASHSIM_* variables to load before reading the environment")
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
