package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/castkeep/publisher-api/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "publisher-api",
	Short: "Castkeep podcast publishing API server",
	Long: `Castkeep Publisher API - a podcast publishing and serving backend.

This API manages podcast shows and episodes, including media uploads
(cover images, audio, video), role-based publishing workflows, and
listener-facing playback endpoints.

Features:
  • Account registration and token-based authentication
  • Podcast and episode management with multipart media uploads
  • Draft/published visibility controls
  • Play and download counters`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd returns the root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(loadConfig)
}

// loadConfig loads the configuration when a command needs it. Version
// and help never touch the config.
func loadConfig() {
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}
